// Package pkg provides the libraries behind sillydeps, an audit of trivial
// npm dependencies.
//
// # Overview
//
// sillydeps reads a project's package.json and its resolved dependency tree,
// checks every package against a catalog of trivial modules (left-pad,
// is-number and friends) and suggests the inline code that can replace them.
// The pkg directory is organized into three areas:
//
//  1. Audit core: [catalog], [deps] and [classify], pure and free of I/O
//  2. Orchestration: [pipeline] wires the core to [integrations/npm], the
//     result [cache] and the audit [history]
//  3. Output: [report] for text, tables and JSON, [report/provenance] for
//     Graphviz diagrams
//
// # Architecture
//
// The data flow of one audit:
//
//	package.json + npm ls --json --all
//	         ↓
//	    [deps] package (direct names, indirect names with their parent)
//	         ↓
//	    [classify] package (catalog lookup, short-name heuristic)
//	         ↓
//	    [report] package (text, stats table, JSON, DOT/SVG)
//
// A missing or broken tree does not stop the audit. [deps.BuildFromBytes]
// returns a TREE_UNAVAILABLE warning alongside a set built from the manifest
// alone; an unreadable manifest or catalog is fatal.
//
// # Quick Start
//
// Classify two in-memory documents:
//
//	cat, _ := catalog.Default()
//	set, warning, err := deps.BuildFromBytes(manifest, tree)
//	if err != nil {
//	    return err // INVALID_MANIFEST
//	}
//	if warning != nil {
//	    log.Warn("auditing direct dependencies only", "reason", warning)
//	}
//	result := classify.Classify(set, cat, classify.Options{})
//	report.WriteText(os.Stdout, result, report.TextOptions{})
//
// Audit a project directory, running npm and caching the result:
//
//	fc, _ := cache.NewFileCache(dir)
//	runner := pipeline.NewRunner(cat, fc, history.NewNullStore(), logger)
//	out, err := runner.Audit(ctx, pipeline.Options{Dir: "./my-app"})
//
// # Supporting Packages
//
// [errors] - Structured error codes shared by the CLI and the HTTP API.
//
// [observability] - Hook interfaces for tree, classification, cache and HTTP
// events, no-op by default.
//
// [retry] - Backoff for dialing Redis and MongoDB.
//
// [buildinfo] - Version information injected through ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./...                        # All tests
//	go test -run Example ./pkg/...       # Examples only
//	go test -tags integration ./pkg/...  # Include Redis and MongoDB tests
//
// [catalog]: https://pkg.go.dev/github.com/matzehuels/sillydeps/pkg/catalog
// [deps]: https://pkg.go.dev/github.com/matzehuels/sillydeps/pkg/deps
// [deps.BuildFromBytes]: https://pkg.go.dev/github.com/matzehuels/sillydeps/pkg/deps#BuildFromBytes
// [classify]: https://pkg.go.dev/github.com/matzehuels/sillydeps/pkg/classify
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/sillydeps/pkg/pipeline
// [integrations/npm]: https://pkg.go.dev/github.com/matzehuels/sillydeps/pkg/integrations/npm
// [cache]: https://pkg.go.dev/github.com/matzehuels/sillydeps/pkg/cache
// [history]: https://pkg.go.dev/github.com/matzehuels/sillydeps/pkg/history
// [report]: https://pkg.go.dev/github.com/matzehuels/sillydeps/pkg/report
// [report/provenance]: https://pkg.go.dev/github.com/matzehuels/sillydeps/pkg/report/provenance
// [errors]: https://pkg.go.dev/github.com/matzehuels/sillydeps/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/sillydeps/pkg/observability
// [retry]: https://pkg.go.dev/github.com/matzehuels/sillydeps/pkg/retry
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/sillydeps/pkg/buildinfo
package pkg
