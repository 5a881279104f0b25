package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/sillydeps/pkg/errors"
)

func TestLoad(t *testing.T) {
	src := `{
  "padding": {"left-pad": "Use String.prototype.padStart()", "right-pad": "Use padEnd()"},
  "type-checks": {"is-odd": "n % 2 !== 0"}
}`
	c, err := Load([]byte(src))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got, want := c.Categories(), []string{"padding", "type-checks"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}

	cat, sug, ok := c.Lookup("is-odd")
	if !ok || cat != "type-checks" || sug != "n % 2 !== 0" {
		t.Errorf("Lookup(is-odd) = %q, %q, %v", cat, sug, ok)
	}
	if _, _, ok := c.Lookup("express"); ok {
		t.Error("Lookup(express) should not match")
	}

	entries := c.Entries("padding")
	if len(entries) != 2 || entries[0].Name != "left-pad" || entries[1].Name != "right-pad" {
		t.Errorf("Entries(padding) = %+v, want declaration order", entries)
	}
}

func TestLoadPreservesDeclarationOrder(t *testing.T) {
	src := `{"zeta": {"a": "x"}, "alpha": {"b": "y"}, "mid": {"c": "z"}}`
	c, err := Load([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"zeta", "alpha", "mid"}
	if got := c.Categories(); !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

func TestLookupFirstCategoryWins(t *testing.T) {
	src := `{"first": {"dup": "from first"}, "second": {"dup": "from second"}}`
	c, err := Load([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		cat, sug, ok := c.Lookup("dup")
		if !ok || cat != "first" || sug != "from first" {
			t.Fatalf("Lookup(dup) = %q, %q, %v, want first category", cat, sug, ok)
		}
	}
	if len(c.Entries("second")) != 1 {
		t.Error("duplicate should still be listed under its own category")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"whitespace", "   \n"},
		{"invalid json", `{"padding": `},
		{"array", `["left-pad"]`},
		{"string", `"left-pad"`},
		{"no categories", `{}`},
		{"category not object", `{"padding": ["left-pad"]}`},
		{"suggestion not string", `{"padding": {"left-pad": 1}}`},
		{"reserved other", `{"other": {"x": "y"}}`},
		{"duplicate category", `{"a": {"x": "y"}, "a": {"z": "w"}}`},
		{"empty package name", `{"a": {"": "y"}}`},
		{"empty suggestion", `{"padding": {"left-pad": ""}}`},
		{"blank suggestion", `{"padding": {"left-pad": "  "}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.src))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeCatalogLoad) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeCatalogLoad)
			}
		})
	}
}

func TestLoadTOML(t *testing.T) {
	src := `
[type-checks]
is-odd = "n % 2 !== 0"
is-even = "n % 2 === 0"

[padding]
left-pad = "Use String.prototype.padStart()"
`
	c, err := LoadTOML([]byte(src))
	if err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}
	if got, want := c.Categories(), []string{"type-checks", "padding"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
	entries := c.Entries("type-checks")
	if len(entries) != 2 || entries[0].Name != "is-odd" || entries[1].Name != "is-even" {
		t.Errorf("Entries(type-checks) = %+v", entries)
	}
	if cat, _, ok := c.Lookup("left-pad"); !ok || cat != "padding" {
		t.Errorf("Lookup(left-pad) = %q, %v", cat, ok)
	}
}

func TestLoadTOMLErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"syntax", "[padding\nleft-pad = 1"},
		{"top-level value", `left-pad = "x"`},
		{"top-level value before table", "left-pad = \"x\"\n[padding]\nright-pad = \"padEnd\""},
		{"nested table", "[padding]\n[padding.extra]\nleft-pad = \"x\""},
		{"empty suggestion", "[padding]\nleft-pad = \"\""},
		{"non-string suggestion", "[padding]\nleft-pad = 1"},
		{"reserved other", "[other]\nx = \"y\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadTOML([]byte(tt.src)); !errors.Is(err, errors.ErrCodeCatalogLoad) {
				t.Errorf("LoadTOML() error = %v, want CATALOG_LOAD", err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "catalog.json")
	if err := os.WriteFile(jsonPath, []byte(`{"padding": {"left-pad": "padStart"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	tomlPath := filepath.Join(dir, "catalog.toml")
	if err := os.WriteFile(tomlPath, []byte("[padding]\nleft-pad = \"padStart\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{jsonPath, tomlPath} {
		c, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile(%s) failed: %v", path, err)
		}
		if _, sug, ok := c.Lookup("left-pad"); !ok || sug != "padStart" {
			t.Errorf("LoadFile(%s): Lookup(left-pad) = %q, %v", path, sug, ok)
		}
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeCatalogLoad) {
		t.Errorf("missing file error = %v, want CATALOG_LOAD", err)
	}
	yamlPath := filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(yamlPath, []byte("padding: {}"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(yamlPath); !errors.Is(err, errors.ErrCodeCatalogLoad) {
		t.Errorf("yaml error = %v, want CATALOG_LOAD", err)
	}
}

func TestDefault(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}
	if c.Len() == 0 {
		t.Fatal("default catalog is empty")
	}
	for _, name := range []string{"left-pad", "is-odd", "is-number"} {
		if _, _, ok := c.Lookup(name); !ok {
			t.Errorf("default catalog should contain %q", name)
		}
	}
	if c.Has(Other) {
		t.Error("default catalog must not declare the reserved category")
	}
}

func TestFingerprint(t *testing.T) {
	jsonCat, err := Load([]byte(`{"padding": {"left-pad": "Use padStart()"}}`))
	if err != nil {
		t.Fatal(err)
	}
	tomlCat, err := LoadTOML([]byte("[padding]\nleft-pad = \"Use padStart()\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if jsonCat.Fingerprint() != tomlCat.Fingerprint() {
		t.Error("same content in different formats should share a fingerprint")
	}

	changed, err := Load([]byte(`{"padding": {"left-pad": "Use String.prototype.padStart()"}}`))
	if err != nil {
		t.Fatal(err)
	}
	if changed.Fingerprint() == jsonCat.Fingerprint() {
		t.Error("changing a suggestion should change the fingerprint")
	}
}
