package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/matzehuels/sillydeps/pkg/deps"
	"github.com/matzehuels/sillydeps/pkg/errors"
	"github.com/matzehuels/sillydeps/pkg/observability"
)

// TreeSource produces raw `npm ls --json --all` output for a project.
type TreeSource interface {
	Name() string
	List(ctx context.Context, dir string) ([]byte, error)
}

// treeInput is the raw tree plus what it parsed to. raw is kept for the
// cache key even when parsing failed.
type treeInput struct {
	raw  []byte
	tree *deps.Tree
}

// loadTree obtains and parses the tree. A non-nil warning means the audit
// continues without indirect dependencies. Only context cancellation is
// returned as an error.
func (r *Runner) loadTree(ctx context.Context, opts Options) (in treeInput, warning error, err error) {
	source, raw, lerr := r.rawTree(ctx, opts)
	if lerr != nil {
		if ctx.Err() != nil {
			return in, nil, ctx.Err()
		}
		return in, lerr, nil
	}
	in.raw = raw
	if len(raw) == 0 {
		return in, errors.New(errors.ErrCodeTreeUnavailable, "no dependency tree supplied"), nil
	}

	start := time.Now()
	observability.Audit().OnTreeStart(ctx, source)
	t, perr := deps.ParseTree(raw)
	nodes := 0
	if t != nil {
		nodes = t.Count()
	}
	observability.Audit().OnTreeComplete(ctx, source, nodes, time.Since(start), perr)
	if perr != nil {
		return in, perr, nil
	}
	in.tree = t
	return in, nil, nil
}

func (r *Runner) rawTree(ctx context.Context, opts Options) (source string, raw []byte, err error) {
	switch {
	case len(opts.Tree) > 0:
		return "request", opts.Tree, nil
	case opts.TreeFile != "":
		data, err := os.ReadFile(opts.TreeFile)
		if err != nil {
			return opts.TreeFile, nil, errors.Wrap(errors.ErrCodeTreeUnavailable, err, "read tree %s", opts.TreeFile)
		}
		return opts.TreeFile, data, nil
	case opts.resolves() && r.Trees != nil:
		opts.Logger.Debug("resolving dependency tree", "source", r.Trees.Name(), "dir", opts.Dir)
		data, err := r.Trees.List(ctx, opts.Dir)
		return r.Trees.Name(), data, err
	}
	return "", nil, nil
}
