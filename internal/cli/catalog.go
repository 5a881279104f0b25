package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sillydeps/pkg/catalog"
	"github.com/matzehuels/sillydeps/pkg/errors"
)

func (c *CLI) catalogCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "catalog [category]",
		Short: "List the trivial-package catalog",
		Long: `List catalog categories with their package counts, or the packages and
suggested replacements of one category.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.loadCatalog(path)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(args) == 0 {
				printCategories(w, cat)
				return nil
			}
			return printCategory(w, cat, args[0])
		},
	}

	cmd.Flags().StringVar(&path, "catalog", "", "catalog file (.json or .toml) replacing the bundled one")
	return cmd
}

func printCategories(w io.Writer, cat *catalog.Catalog) {
	fmt.Fprintln(w, StyleTitle.Render("Catalog"))
	for _, name := range cat.Categories() {
		printKeyValue(w, name, StyleNumber.Render(fmt.Sprintf("%d", len(cat.Entries(name)))))
	}
	fmt.Fprintln(w)
	printDetail(w, "%d packages in %d categories", cat.Len(), len(cat.Categories()))
	printNextStep(w, "Show one category", "sillydeps catalog <category>")
}

func printCategory(w io.Writer, cat *catalog.Catalog, name string) error {
	if err := errors.ValidateCategory(name); err != nil {
		return err
	}
	if !cat.Has(name) {
		return errors.New(errors.ErrCodeNotFound, "no category %q in catalog", name)
	}
	entries := cat.Entries(name)
	fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("%s (%d)", name, len(entries))))
	for _, e := range entries {
		fmt.Fprintf(w, "- %s: %s\n", e.Name, StyleDim.Render(e.Suggestion))
	}
	return nil
}
