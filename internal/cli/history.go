package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sillydeps/pkg/errors"
	"github.com/matzehuels/sillydeps/pkg/history"
)

func (c *CLI) historyCommand() *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded audits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newHistory(ctx, false)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(ctx, limit)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			printHistory(w, entries)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", history.DefaultLimit, "number of entries to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print entries as JSON")

	cmd.AddCommand(c.historyClearCommand())
	return cmd
}

func (c *CLI) historyClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the local history file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.Config.Mongo.URI != "" {
				return errors.New(errors.ErrCodeUnsupported, "history clear only applies to the history file; drop the MongoDB collection instead")
			}
			if c.Config.HistoryFile == "" {
				return errors.New(errors.ErrCodeNotFound, "no history file configured")
			}
			store, err := history.NewFileStore(c.Config.HistoryFile)
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Cleared audit history")
			printDetail(cmd.OutOrStdout(), "File: %s", store.Path())
			return nil
		},
	}
}

func printHistory(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		printInfo(w, "No audits recorded yet")
		return
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s  %-24s direct %s  indirect %s  other %s",
			StyleDim.Render(e.Date.Local().Format("2006-01-02 15:04")),
			e.Project,
			StyleNumber.Render(fmt.Sprint(e.Summary.Direct)),
			StyleNumber.Render(fmt.Sprint(e.Summary.Indirect)),
			StyleNumber.Render(fmt.Sprint(e.Summary.Other)))
		if e.Category != "" {
			line += StyleDim.Render(" [" + e.Category + "]")
		}
		if e.Degraded {
			line += " " + StyleWarning.Render("(direct only)")
		}
		fmt.Fprintln(w, line)
	}
}
