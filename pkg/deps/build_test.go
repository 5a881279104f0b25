package deps

import (
	"reflect"
	"testing"

	"github.com/matzehuels/sillydeps/pkg/errors"
)

func mustManifest(t *testing.T, content string) *Manifest {
	t.Helper()
	m, err := ParseManifest([]byte(content))
	if err != nil {
		t.Fatalf("ParseManifest failed: %v", err)
	}
	return m
}

func mustTree(t *testing.T, content string) *Tree {
	t.Helper()
	tree, err := ParseTree([]byte(content))
	if err != nil {
		t.Fatalf("ParseTree failed: %v", err)
	}
	return tree
}

func TestBuild(t *testing.T) {
	m := mustManifest(t, `{"dependencies": {"left-pad": "^1.3.0", "express": "^4.0.0"}}`)
	tree := mustTree(t, `{"dependencies": {
		"left-pad": {"version": "1.3.0"},
		"chalk": {"version": "4.0.0", "dependencies": {"ansi-styles": {"version": "4.3.0"}}}
	}}`)

	set := Build(m, tree)

	if want := []string{"left-pad", "express"}; !reflect.DeepEqual(set.Direct, want) {
		t.Errorf("Direct = %v, want %v", set.Direct, want)
	}
	want := []IndirectDependency{
		{Name: "chalk", Parent: RootParent, Version: "4.0.0"},
		{Name: "ansi-styles", Parent: "chalk", Version: "4.3.0"},
	}
	if !reflect.DeepEqual(set.Indirect, want) {
		t.Errorf("Indirect = %+v, want %+v", set.Indirect, want)
	}
}

func TestBuildFirstParentWins(t *testing.T) {
	m := mustManifest(t, `{"dependencies": {"a": "1", "b": "1"}}`)
	tree := mustTree(t, `{"dependencies": {
		"a": {"version": "1.0.0", "dependencies": {"x": {"version": "1.0.0"}}},
		"b": {"version": "1.0.0", "dependencies": {"x": {"version": "2.0.0"}}}
	}}`)

	set := Build(m, tree)
	if len(set.Indirect) != 1 {
		t.Fatalf("Indirect = %+v, want one entry", set.Indirect)
	}
	if got := set.Indirect[0]; got.Parent != "a" || got.Version != "1.0.0" {
		t.Errorf("x recorded as %+v, want parent a, version 1.0.0", got)
	}
}

func TestBuildDepthFirstOrder(t *testing.T) {
	m := mustManifest(t, `{}`)
	tree := mustTree(t, `{"dependencies": {
		"a": {"dependencies": {"a1": {"dependencies": {"a11": {}}}, "a2": {}}},
		"b": {"dependencies": {"a11": {}, "b1": {}}}
	}}`)

	set := Build(m, tree)
	var names, parents []string
	for _, d := range set.Indirect {
		names = append(names, d.Name)
		parents = append(parents, d.Parent)
	}
	if want := []string{"a", "a1", "a11", "a2", "b", "b1"}; !reflect.DeepEqual(names, want) {
		t.Errorf("order = %v, want %v", names, want)
	}
	if want := []string{"root", "a", "a1", "a", "root", "b"}; !reflect.DeepEqual(parents, want) {
		t.Errorf("parents = %v, want %v", parents, want)
	}
}

func TestBuildDirectPrecedence(t *testing.T) {
	m := mustManifest(t, `{"dependencies": {"chalk": "4"}, "devDependencies": {"ansi-styles": "4"}}`)
	tree := mustTree(t, `{"dependencies": {
		"chalk": {"version": "4.0.0", "dependencies": {
			"ansi-styles": {"version": "4.3.0", "dependencies": {"color-convert": {"version": "2.0.1"}}}
		}},
		"jest": {"dependencies": {"chalk": {"version": "4.0.0"}}}
	}}`)

	set := Build(m, tree)
	for _, d := range set.Indirect {
		if d.Name == "chalk" || d.Name == "ansi-styles" {
			t.Errorf("direct dependency %q listed as indirect", d.Name)
		}
	}
	// Children of a skipped direct node are still visited.
	if kind, ok := set.Contains("color-convert"); !ok || kind != KindIndirect {
		t.Errorf("color-convert = %v, %v, want indirect", kind, ok)
	}
	if got := set.Indirect[0]; got.Name != "color-convert" || got.Parent != "ansi-styles" {
		t.Errorf("first indirect = %+v, want color-convert via ansi-styles", got)
	}
}

func TestBuildDisjoint(t *testing.T) {
	m := mustManifest(t, `{"dependencies": {"a": "1", "c": "1"}, "devDependencies": {"a": "1"}}`)
	tree := mustTree(t, `{"dependencies": {
		"a": {"dependencies": {"b": {"dependencies": {"c": {}, "a": {}}}}},
		"b": {},
		"d": {"dependencies": {"b": {}, "d": {}}}
	}}`)

	set := Build(m, tree)
	seen := make(map[string]bool)
	for _, name := range set.Direct {
		if seen[name] {
			t.Errorf("direct %q appears twice", name)
		}
		seen[name] = true
	}
	for _, d := range set.Indirect {
		if seen[d.Name] {
			t.Errorf("%q appears twice across direct/indirect", d.Name)
		}
		seen[d.Name] = true
	}
	if set.Len() != 4 {
		t.Errorf("Len() = %d, want 4", set.Len())
	}
}

func TestBuildNilTree(t *testing.T) {
	m := mustManifest(t, `{"dependencies": {"left-pad": "1"}}`)
	set := Build(m, nil)
	if set.Indirect == nil || len(set.Indirect) != 0 {
		t.Errorf("Indirect = %#v, want empty non-nil slice", set.Indirect)
	}
	if !reflect.DeepEqual(set.Direct, []string{"left-pad"}) {
		t.Errorf("Direct = %v", set.Direct)
	}
}

func TestBuildFromBytes(t *testing.T) {
	manifest := []byte(`{"dependencies": {"left-pad": "1"}}`)

	t.Run("valid tree", func(t *testing.T) {
		set, warning, err := BuildFromBytes(manifest, []byte(`{"dependencies": {"chalk": {"version": "4.0.0"}}}`))
		if err != nil || warning != nil {
			t.Fatalf("err = %v, warning = %v", err, warning)
		}
		if len(set.Indirect) != 1 {
			t.Errorf("Indirect = %+v", set.Indirect)
		}
	})

	for name, tree := range map[string][]byte{
		"missing":   nil,
		"malformed": []byte(`npm ERR! missing script`),
		"truncated": []byte(`{"dependencies": {"chalk": {`),
	} {
		t.Run("degraded "+name, func(t *testing.T) {
			set, warning, err := BuildFromBytes(manifest, tree)
			if err != nil {
				t.Fatalf("tree problems must not fail the build: %v", err)
			}
			if !errors.Is(warning, errors.ErrCodeTreeUnavailable) {
				t.Errorf("warning = %v, want TREE_UNAVAILABLE", warning)
			}
			if !reflect.DeepEqual(set.Direct, []string{"left-pad"}) || len(set.Indirect) != 0 {
				t.Errorf("set = %+v, want direct-only", set)
			}
		})
	}

	t.Run("bad manifest", func(t *testing.T) {
		set, _, err := BuildFromBytes([]byte(`nope`), nil)
		if set != nil || !errors.Is(err, errors.ErrCodeInvalidManifest) {
			t.Errorf("set = %v, err = %v, want INVALID_MANIFEST", set, err)
		}
	})
}
