package deps

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/sillydeps/pkg/errors"
)

func TestParseTree(t *testing.T) {
	content := `{
  "name": "app",
  "version": "1.0.0",
  "problems": ["missing: foo@1"],
  "dependencies": {
    "chalk": {
      "version": "4.0.0",
      "resolved": "https://registry.npmjs.org/chalk/-/chalk-4.0.0.tgz",
      "dependencies": {
        "ansi-styles": {"version": "4.3.0"},
        "supports-color": {"version": "7.2.0", "dependencies": {"has-flag": {"version": "4.0.0"}}}
      }
    },
    "broken": "not-an-object",
    "left-pad": {"version": "1.3.0"}
  }
}`

	tree, err := ParseTree([]byte(content))
	if err != nil {
		t.Fatalf("ParseTree failed: %v", err)
	}
	if tree.Name != "app" {
		t.Errorf("Name = %q, want app", tree.Name)
	}
	if len(tree.Dependencies) != 2 {
		t.Fatalf("root dependencies = %d, want 2", len(tree.Dependencies))
	}

	chalk := tree.Dependencies[0]
	if chalk.Name != "chalk" || chalk.Version != "4.0.0" || !strings.HasSuffix(chalk.Resolved, "chalk-4.0.0.tgz") {
		t.Errorf("chalk = %+v", chalk)
	}
	if len(chalk.Dependencies) != 2 || chalk.Dependencies[0].Name != "ansi-styles" || chalk.Dependencies[1].Name != "supports-color" {
		t.Errorf("chalk children out of order: %+v", chalk.Dependencies)
	}
	if got := chalk.Dependencies[1].Dependencies[0].Name; got != "has-flag" {
		t.Errorf("nested child = %q, want has-flag", got)
	}
	if tree.Dependencies[1].Name != "left-pad" {
		t.Errorf("second root dependency = %q, want left-pad", tree.Dependencies[1].Name)
	}
	if got := tree.Count(); got != 5 {
		t.Errorf("Count() = %d, want 5", got)
	}
}

func TestParseTreeWithoutDependencies(t *testing.T) {
	tree, err := ParseTree([]byte(`{"name": "app"}`))
	if err != nil {
		t.Fatalf("ParseTree failed: %v", err)
	}
	if len(tree.Dependencies) != 0 {
		t.Errorf("Dependencies = %v, want none", tree.Dependencies)
	}
}

func TestParseTreeDeep(t *testing.T) {
	const depth = 2000
	var b strings.Builder
	for i := 0; i < depth; i++ {
		b.WriteString(`{"version": "1.0.0", "dependencies": {"p`)
		b.WriteString(strings.Repeat("x", i%7))
		b.WriteString(`": `)
	}
	b.WriteString(`{"version": "1.0.0"}`)
	for i := 0; i < depth; i++ {
		b.WriteString(`}}`)
	}

	tree, err := ParseTree([]byte(b.String()))
	if err != nil {
		t.Fatalf("ParseTree failed: %v", err)
	}
	if got := tree.Count(); got != depth {
		t.Errorf("Count() = %d, want %d", got, depth)
	}
}

func TestParseTreeErrors(t *testing.T) {
	for _, content := range []string{"", "   ", "npm ERR! code ELSPROBLEMS", `[1, 2]`, `{"dependencies": `} {
		_, err := ParseTree([]byte(content))
		if !errors.Is(err, errors.ErrCodeTreeUnavailable) {
			t.Errorf("ParseTree(%q) error = %v, want TREE_UNAVAILABLE", content, err)
		}
	}
}

func TestReadTree(t *testing.T) {
	dir := t.TempDir()
	if _, err := ReadTree(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeTreeUnavailable) {
		t.Errorf("missing tree error = %v, want TREE_UNAVAILABLE", err)
	}

	path := filepath.Join(dir, "tree.json")
	if err := os.WriteFile(path, []byte(`{"dependencies": {"is-odd": {"version": "3.0.1"}}}`), 0644); err != nil {
		t.Fatal(err)
	}
	tree, err := ReadTree(path)
	if err != nil {
		t.Fatalf("ReadTree failed: %v", err)
	}
	if tree.Count() != 1 {
		t.Errorf("Count() = %d, want 1", tree.Count())
	}
}
