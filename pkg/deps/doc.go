// Package deps normalizes a JavaScript project's dependencies for auditing.
//
// # Overview
//
// Two inputs describe a project:
//
//   - The manifest (package.json), which declares direct dependencies in
//     "dependencies" and "devDependencies"
//   - The resolved tree, the JSON printed by `npm ls --json --all`, which
//     shows every installed package nested under whatever required it
//
// [Build] merges them into a [Set]: the declared names, and every other
// installed package once, tagged with the parent that pulled it in.
//
// # Ordering and provenance
//
// Both inputs are read with their key order intact, so the output is
// reproducible for a given pair of files. Direct names are ordered as
// declared (dependencies first). The tree is walked depth-first; when a
// package shows up under several parents, the first parent seen wins.
// Packages under the tree root that the manifest does not declare get the
// parent [RootParent].
//
// A name declared in the manifest never appears as indirect, even when the
// tree also lists it under some other package.
//
// # Failure model
//
// Manifest problems are fatal and carry INVALID_MANIFEST. Tree problems
// carry TREE_UNAVAILABLE and are meant to be recovered: build with a nil
// tree and report the problem as a warning. [BuildFromBytes] does exactly
// that.
//
//	set, warning, err := deps.BuildFromBytes(manifestJSON, npmLsJSON)
//	if err != nil {
//	    return err // no package.json, nothing to audit
//	}
//	if warning != nil {
//	    logger.Warn("auditing direct dependencies only", "err", warning)
//	}
package deps
