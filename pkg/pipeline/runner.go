package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sillydeps/pkg/cache"
	"github.com/matzehuels/sillydeps/pkg/catalog"
	"github.com/matzehuels/sillydeps/pkg/classify"
	"github.com/matzehuels/sillydeps/pkg/deps"
	"github.com/matzehuels/sillydeps/pkg/errors"
	"github.com/matzehuels/sillydeps/pkg/history"
	"github.com/matzehuels/sillydeps/pkg/integrations/npm"
	"github.com/matzehuels/sillydeps/pkg/observability"
)

const keyTypeResult = "result"

// Runner executes audits against one catalog with caching and history.
// Both CLI and API use it.
//
// The Runner holds no per-audit state; multiple goroutines can call Audit
// concurrently.
type Runner struct {
	Catalog *catalog.Catalog
	Cache   cache.Cache
	Keyer   cache.Keyer
	History history.Store
	Trees   TreeSource
	Logger  *log.Logger
}

// NewRunner creates a runner. A nil cache or store disables that sink; the
// tree source defaults to `npm ls`.
func NewRunner(cat *catalog.Catalog, c cache.Cache, store history.Store, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if store == nil {
		store = history.NewNullStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Catalog: cat,
		Cache:   c,
		Keyer:   cache.NewDefaultKeyer(),
		History: store,
		Trees:   npm.NewLister(npm.Options{}),
		Logger:  logger,
	}
}

// Audit runs manifest → tree → classify → record.
//
// Manifest and catalog problems are returned as errors. Tree problems are
// reported in Outcome.Warnings and the audit covers direct dependencies
// only. Cache and history failures are logged and otherwise ignored.
func (r *Runner) Audit(ctx context.Context, opts Options) (*Outcome, error) {
	if r.Catalog == nil {
		return nil, errors.New(errors.ErrCodeCatalogLoad, "no catalog loaded")
	}
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	logger := opts.Logger

	// Stage 1: Manifest
	rawManifest, err := r.readManifest(opts)
	if err != nil {
		return nil, err
	}
	m, err := deps.ParseManifest(rawManifest)
	if err != nil {
		return nil, err
	}

	out := &Outcome{Project: opts.project(m)}
	out.Stats.DirectCount = len(m.Direct())
	for _, name := range m.Skipped {
		logger.Warn("skipping unsafe package name", "name", name)
		out.Warnings = append(out.Warnings, errors.New(errors.ErrCodeInvalidPackage, "skipped unsafe package name %q", name))
	}

	// Stage 2: Tree
	treeStart := time.Now()
	tree, warning, err := r.loadTree(ctx, opts)
	if err != nil {
		return nil, err
	}
	out.Stats.TreeTime = time.Since(treeStart)
	if warning != nil {
		logger.Warn("auditing direct dependencies only", "reason", errors.UserMessage(warning))
		out.Warnings = append(out.Warnings, warning)
		out.Degraded = true
	} else {
		out.Stats.TreeNodes = tree.tree.Count()
		logger.Debug("loaded dependency tree", "nodes", out.Stats.TreeNodes, "duration", out.Stats.TreeTime)
	}

	// Stage 3: Classify (or reuse)
	key := r.Keyer.ResultKey(rawManifest, tree.raw, opts.resultKeyOpts(r.Catalog.Fingerprint()))
	if !opts.Refresh {
		if res, ok := r.cached(ctx, key, opts); ok {
			out.Result = res
			out.Cached = true
		}
	}
	if out.Result == nil {
		classifyStart := time.Now()
		set := deps.Build(m, tree.tree)
		out.Result = classify.Classify(set, r.Catalog, classify.Options{
			Category:  opts.Category,
			Heuristic: opts.Heuristic,
		})
		out.Stats.ClassifyTime = time.Since(classifyStart)
		observability.Audit().OnClassifyComplete(ctx, opts.Category, set.Len(), len(out.Result.Findings()), out.Stats.ClassifyTime)
		r.store(ctx, key, out, logger)
	}

	logger.Info("audited dependencies",
		"direct", out.Result.DirectCount,
		"indirect", out.Result.IndirectCount,
		"other", len(out.Result.ByCategory[catalog.Other]),
		"cached", out.Cached)

	// Stage 4: History
	if !opts.SkipHistory {
		r.record(ctx, out, logger)
	}

	out.Stats.TotalTime = time.Since(start)
	return out, nil
}

// Last returns the most recent result stored for project, if any.
func (r *Runner) Last(ctx context.Context, project string) (*classify.Result, bool, error) {
	data, ok, err := r.Cache.Get(ctx, r.Keyer.LastKey(project))
	if err != nil || !ok {
		return nil, false, err
	}
	var res classify.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, false, fmt.Errorf("decode last result: %w", err)
	}
	return &res, true, nil
}

// Close releases the cache and history store.
func (r *Runner) Close() error {
	var firstErr error
	if r.Cache != nil {
		firstErr = r.Cache.Close()
	}
	if r.History != nil {
		if err := r.History.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *Runner) readManifest(opts Options) ([]byte, error) {
	if len(opts.Manifest) > 0 {
		return opts.Manifest, nil
	}
	path := opts.ManifestPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "read %s", path)
	}
	return data, nil
}

func (r *Runner) cached(ctx context.Context, key string, opts Options) (*classify.Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		opts.Logger.Debug("cache read failed", "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeResult)
		return nil, false
	}
	var res classify.Result
	if err := json.Unmarshal(data, &res); err != nil {
		// Corrupt snapshot: fall through to recompute.
		observability.Cache().OnCacheMiss(ctx, keyTypeResult)
		return nil, false
	}
	// The key pins the catalog, so its declaration order applies.
	res.Categories = append(r.Catalog.Categories(), catalog.Other)
	for _, c := range res.Categories {
		if res.ByCategory[c] == nil {
			res.ByCategory[c] = []classify.Finding{}
		}
	}
	res.Filter = opts.Category
	observability.Cache().OnCacheHit(ctx, keyTypeResult)
	return &res, true
}

func (r *Runner) store(ctx context.Context, key string, out *Outcome, logger *log.Logger) {
	data, err := json.Marshal(out.Result)
	if err != nil {
		logger.Warn("encode result for cache", "error", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
		logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeResult, len(data))
	if out.Project != "" {
		if err := r.Cache.Set(ctx, r.Keyer.LastKey(out.Project), data, cache.DefaultTTL); err != nil {
			logger.Warn("cache write failed", "error", err)
		}
	}
}

func (r *Runner) record(ctx context.Context, out *Outcome, logger *log.Logger) {
	err := r.History.Append(ctx, history.NewEntry(out.Project, out.Result, out.Degraded))
	observability.Audit().OnHistoryAppend(ctx, out.Project, err)
	if err != nil {
		logger.Warn("could not record audit history", "error", err)
	}
}
