// Package pipeline runs a complete sillydeps audit.
//
// The core packages are pure: [deps] turns bytes into a dependency set and
// [classify] matches it against a [catalog]. This package supplies the I/O
// around them so the CLI and the HTTP API behave identically:
//
//  1. Manifest: read package.json (fatal on error)
//  2. Tree: read a tree file or ask the [TreeSource] (npm); any failure
//     becomes a warning and the audit continues on direct dependencies
//  3. Classify: build the set and match it, or reuse a cached result
//  4. Record: store the result snapshot and append a history entry
//
// # Usage
//
//	runner := pipeline.NewRunner(cat, cache.NewNullCache(), history.NewNullStore(), logger)
//	out, err := runner.Audit(ctx, pipeline.Options{Dir: "./my-app"})
//	if err != nil {
//	    log.Fatal(err) // INVALID_MANIFEST
//	}
//	for _, w := range out.Warnings {
//	    logger.Warn(w)
//	}
//	report.WriteText(os.Stdout, out.Result, report.TextOptions{})
//
// [deps]: github.com/matzehuels/sillydeps/pkg/deps
// [classify]: github.com/matzehuels/sillydeps/pkg/classify
// [catalog]: github.com/matzehuels/sillydeps/pkg/catalog
package pipeline

import (
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sillydeps/pkg/cache"
	"github.com/matzehuels/sillydeps/pkg/classify"
	"github.com/matzehuels/sillydeps/pkg/deps"
	"github.com/matzehuels/sillydeps/pkg/errors"
)

// Options configures a single audit.
type Options struct {
	// Dir is the project directory. It locates package.json when Manifest is
	// empty and is where the TreeSource runs.
	Dir string `json:"dir,omitempty"`

	// Manifest holds raw package.json content. When set, Dir is not read.
	Manifest []byte `json:"-"`

	// Tree holds raw `npm ls --json --all` output. When set, neither
	// TreeFile nor the TreeSource is consulted.
	Tree []byte `json:"-"`

	// TreeFile points at a saved `npm ls --json --all` output.
	TreeFile string `json:"tree_file,omitempty"`

	// Category restricts findings to one category. Empty means all.
	Category string `json:"category,omitempty"`

	// Project names the audit in history. Defaults to the manifest name,
	// then the directory name.
	Project string `json:"project,omitempty"`

	// Refresh skips the cache lookup. The fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// SkipHistory disables the history entry for this audit.
	SkipHistory bool `json:"skip_history,omitempty"`

	// Runtime options (not serialized)
	Heuristic classify.Heuristic `json:"-"`
	Logger    *log.Logger        `json:"-"`
}

// Validate checks the options and applies defaults.
func (o *Options) Validate() error {
	if o.Dir == "" && len(o.Manifest) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "a project directory or manifest is required")
	}
	if err := errors.ValidateCategory(o.Category); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ManifestPath returns the package.json location for Dir.
func (o *Options) ManifestPath() string {
	return deps.ManifestPath(o.Dir)
}

// resolves reports whether the TreeSource may be asked for a tree.
func (o *Options) resolves() bool {
	return len(o.Tree) == 0 && o.TreeFile == "" && len(o.Manifest) == 0 && o.Dir != ""
}

func (o *Options) project(m *deps.Manifest) string {
	switch {
	case o.Project != "":
		return o.Project
	case m != nil && m.Name != "":
		return m.Name
	case o.Dir != "":
		if abs, err := filepath.Abs(o.Dir); err == nil {
			return filepath.Base(abs)
		}
		return filepath.Base(o.Dir)
	}
	return ""
}

func (o *Options) resultKeyOpts(catalogHash string) cache.ResultKeyOpts {
	return cache.ResultKeyOpts{CatalogHash: catalogHash, Category: o.Category}
}

// Outcome contains the outputs of an audit.
type Outcome struct {
	// Result is the classification.
	Result *classify.Result

	// Project is the name recorded in history.
	Project string

	// Warnings are recovered problems, typically TREE_UNAVAILABLE.
	Warnings []error

	// Degraded is true when no resolved tree was available.
	Degraded bool

	// Cached is true when Result came from the cache.
	Cached bool

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains audit execution statistics.
type Stats struct {
	DirectCount  int
	TreeNodes    int
	TreeTime     time.Duration
	ClassifyTime time.Duration
	TotalTime    time.Duration
}

// WarningMessages returns the warnings as user-facing strings.
func (o *Outcome) WarningMessages() []string {
	out := make([]string, len(o.Warnings))
	for i, w := range o.Warnings {
		out[i] = errors.UserMessage(w)
	}
	return out
}
