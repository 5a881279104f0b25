package deps

import (
	"github.com/matzehuels/sillydeps/pkg/errors"
)

// Build normalizes a manifest and its resolved tree into a dependency Set.
//
// Direct names come from the manifest. The tree is walked depth-first in the
// order the package manager listed it; every package that is not declared
// directly is recorded once, with the parent under which it was first seen.
// A nil tree yields an empty indirect list.
func Build(m *Manifest, t *Tree) *Set {
	direct := m.Direct()
	set := &Set{
		Direct:   direct,
		Indirect: []IndirectDependency{},
	}
	if t == nil {
		return set
	}

	skip := make(map[string]bool, len(direct))
	for _, name := range direct {
		skip[name] = true
	}

	type frame struct {
		node   *Node
		parent string
	}
	stack := make([]frame, 0, len(t.Dependencies))
	push := func(children []*Node, parent string) {
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: children[i], parent: parent})
		}
	}
	push(t.Dependencies, RootParent)

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := f.node
		if !skip[n.Name] {
			skip[n.Name] = true
			set.Indirect = append(set.Indirect, IndirectDependency{
				Name:     n.Name,
				Parent:   f.parent,
				Version:  n.Version,
				Resolved: n.Resolved,
			})
		}
		push(n.Dependencies, n.Name)
	}
	return set
}

// BuildFromBytes parses raw manifest and tree content and builds the Set.
//
// A manifest problem is returned as the error and no Set is produced. A tree
// problem does not stop the build: the Set is built from the manifest alone
// and the tree error is returned as the warning.
func BuildFromBytes(manifest, tree []byte) (set *Set, warning error, err error) {
	m, err := ParseManifest(manifest)
	if err != nil {
		return nil, nil, err
	}
	if len(tree) == 0 {
		return Build(m, nil), errors.New(errors.ErrCodeTreeUnavailable, "no dependency tree supplied"), nil
	}
	t, terr := ParseTree(tree)
	if terr != nil {
		return Build(m, nil), terr, nil
	}
	return Build(m, t), nil, nil
}
