// Package npm obtains the resolved dependency tree of a project from npm.
//
// # Overview
//
// [Lister] runs `npm ls --json --all` in a project directory and returns the
// raw JSON for [deps.ParseTree]. This is the only place sillydeps starts an
// external process; the audit itself works on the returned bytes.
//
// # Usage
//
//	l := npm.NewLister(npm.Options{Timeout: time.Minute})
//	out, err := l.List(ctx, "./my-app")
//	if err != nil {
//	    // TREE_UNAVAILABLE: audit direct dependencies only
//	}
//	tree, err := deps.ParseTree(out)
//
// # Exit codes
//
// npm exits non-zero when the installed tree has problems (missing peers,
// extraneous packages) but still prints the tree. Output is used whenever
// it is non-empty; the exit status only matters when nothing was printed.
//
// [deps.ParseTree]: github.com/matzehuels/sillydeps/pkg/deps.ParseTree
package npm
