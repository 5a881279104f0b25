package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sillydeps/pkg/errors"
	"github.com/matzehuels/sillydeps/pkg/pipeline"
	"github.com/matzehuels/sillydeps/pkg/report"
	"github.com/matzehuels/sillydeps/pkg/report/provenance"
)

type auditFlags struct {
	category  string
	stats     bool
	noColor   bool
	lang      string
	out       string
	json      bool
	tree      string
	catalog   string
	noCache   bool
	noHistory bool
	graph     string
}

func (c *CLI) auditCommand() *cobra.Command {
	var flags auditFlags

	cmd := &cobra.Command{
		Use:   "audit [dir]",
		Short: "Report trivial dependencies of a project",
		Long: `Audit the package.json in dir (default: current directory).

Direct dependencies come from package.json; indirect ones from "npm ls --json --all"
or a saved copy of its output (--tree). When no tree is available the audit
covers direct dependencies only and prints a warning.`,
		Example: `  sillydeps audit
  sillydeps audit ./web --category=type-checks
  sillydeps audit --tree=npm-ls.json --json > silly.json
  sillydeps audit --stats --lang=es
  sillydeps audit --graph=provenance.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return c.runAudit(cmd.Context(), cmd.OutOrStdout(), dir, flags)
		},
	}

	cmd.Flags().StringVar(&flags.category, "category", "", "only report this category (\"other\" included)")
	cmd.Flags().BoolVarP(&flags.stats, "stats", "s", false, "print a per-category table")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "disable colored output")
	cmd.Flags().StringVar(&flags.lang, "lang", "", "report language: en or es (default: from locale)")
	cmd.Flags().StringVar(&flags.out, "out", "", "also write the JSON result to this file")
	cmd.Flags().BoolVar(&flags.json, "json", false, "print the JSON result instead of the text report")
	cmd.Flags().StringVar(&flags.tree, "tree", "", "saved \"npm ls --json --all\" output to use instead of running npm")
	cmd.Flags().StringVar(&flags.catalog, "catalog", "", "catalog file (.json or .toml) replacing the bundled one")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "do not read or write cached results")
	cmd.Flags().BoolVar(&flags.noHistory, "no-history", false, "do not record this audit in history")
	cmd.Flags().StringVar(&flags.graph, "graph", "", "write a provenance graph (.dot or .svg)")

	return cmd
}

func (c *CLI) runAudit(ctx context.Context, w io.Writer, dir string, flags auditFlags) error {
	lang, err := c.resolveLang(flags.lang)
	if err != nil {
		return err
	}
	if flags.graph != "" {
		if err := validateGraphPath(flags.graph); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(ctx, runnerOptions{
		catalogPath: flags.catalog,
		noCache:     flags.noCache,
		noHistory:   flags.noHistory,
	})
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spin := c.startSpinner(ctx, flags)
	out, err := runner.Audit(ctx, pipeline.Options{
		Dir:         dir,
		TreeFile:    flags.tree,
		Category:    flags.category,
		SkipHistory: flags.noHistory,
		Logger:      c.Logger,
	})
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Audited %s", out.Project))

	textOpts := report.TextOptions{
		Verbose: c.verbose,
		NoColor: flags.noColor || c.Config.NoColor,
		Lang:    lang,
	}
	if flags.json {
		if err := report.WriteJSON(w, out.Result); err != nil {
			return err
		}
	} else {
		if err := report.WriteText(w, out.Result, textOpts); err != nil {
			return err
		}
		if flags.stats {
			if err := report.WriteStats(w, out.Result, textOpts); err != nil {
				return err
			}
		}
		if c.verbose {
			printAuditStats(w, out.Stats.DirectCount, out.Stats.TreeNodes, out.Cached)
		}
	}

	// Side outputs are confirmed on stderr when stdout carries JSON.
	status := w
	if flags.json {
		status = os.Stderr
	}
	if flags.out != "" {
		if err := report.ExportJSON(out.Result, flags.out); err != nil {
			return err
		}
		printSuccess(status, "%s %s", report.SavedTo(lang), flags.out)
	}
	if flags.graph != "" {
		if err := writeGraph(ctx, out, flags.graph); err != nil {
			return err
		}
		printFile(status, flags.graph)
	}
	if out.Degraded && !flags.json && flags.tree == "" {
		printNextStep(status, "Install dependencies for a full audit", "npm install && sillydeps audit")
	}
	return nil
}

// resolveLang picks the flag, then SILLYDEPS_LANG, then the locale.
func (c *CLI) resolveLang(flag string) (string, error) {
	switch flag {
	case report.LangEnglish, report.LangSpanish:
		return flag, nil
	case "":
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "unsupported language %q (must be en or es)", flag)
	}
	if c.Config.Lang != "" {
		return report.NormalizeLang(c.Config.Lang), nil
	}
	return report.DetectLang(c.Config.Locale), nil
}

func (c *CLI) startSpinner(ctx context.Context, flags auditFlags) *Spinner {
	if flags.tree != "" || flags.json || c.verbose || !interactive(os.Stderr) {
		return nil
	}
	return runSpinner(ctx, os.Stderr, "Resolving dependency tree...")
}

func validateGraphPath(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dot", ".gv", ".svg":
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "graph output must end in .dot, .gv or .svg: %s", path)
}

func writeGraph(ctx context.Context, out *pipeline.Outcome, path string) error {
	dot := provenance.ToDOT(out.Result, provenance.Options{Project: out.Project})
	data := []byte(dot)
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		svg, err := provenance.RenderSVG(ctx, dot)
		if err != nil {
			return err
		}
		data = svg
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
