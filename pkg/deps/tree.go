package deps

import (
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/matzehuels/sillydeps/pkg/errors"
)

// Node is one package in a resolved dependency tree.
type Node struct {
	Name         string  `json:"name"`
	Version      string  `json:"version,omitempty"`
	Resolved     string  `json:"resolved,omitempty"`
	Dependencies []*Node `json:"dependencies,omitempty"`
}

// Tree is the resolved dependency tree reported by the package manager,
// typically the output of `npm ls --json --all`. Children keep the order in
// which the package manager listed them.
type Tree struct {
	Name         string  `json:"name,omitempty"`
	Version      string  `json:"version,omitempty"`
	Dependencies []*Node `json:"dependencies"`
}

// Count returns the number of nodes in the tree, duplicates included.
func (t *Tree) Count() int {
	if t == nil {
		return 0
	}
	n := 0
	stack := append([]*Node(nil), t.Dependencies...)
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n++
		stack = append(stack, top.Dependencies...)
	}
	return n
}

// ParseTree parses `npm ls --json` output. Failures carry the
// TREE_UNAVAILABLE code, which callers treat as recoverable.
//
// Entries whose value is not an object are skipped, and a missing
// "dependencies" field yields an empty tree.
func ParseTree(data []byte) (*Tree, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New(errors.ErrCodeTreeUnavailable, "dependency tree is empty")
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.New(errors.ErrCodeTreeUnavailable, "dependency tree is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.New(errors.ErrCodeTreeUnavailable, "dependency tree must be a JSON object")
	}

	t := &Tree{
		Name:    root.Get("name").String(),
		Version: root.Get("version").String(),
	}

	type frame struct {
		deps gjson.Result
		into *[]*Node
	}
	// Iterative so that deeply nested trees do not grow the call stack.
	stack := []frame{{deps: root.Get("dependencies"), into: &t.Dependencies}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !f.deps.IsObject() {
			continue
		}
		f.deps.ForEach(func(key, value gjson.Result) bool {
			if !value.IsObject() {
				return true
			}
			n := &Node{
				Name:     key.String(),
				Version:  value.Get("version").String(),
				Resolved: value.Get("resolved").String(),
			}
			*f.into = append(*f.into, n)
			if children := value.Get("dependencies"); children.IsObject() {
				stack = append(stack, frame{deps: children, into: &n.Dependencies})
			}
			return true
		})
	}
	return t, nil
}

// ReadTree reads and parses a tree file previously saved from the package
// manager.
func ReadTree(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTreeUnavailable, err, "read dependency tree %s", path)
	}
	return ParseTree(data)
}
