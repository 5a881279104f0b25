package deps

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/sillydeps/pkg/errors"
)

func TestParseManifest(t *testing.T) {
	content := `{
  "name": "my-package",
  "version": "1.0.0",
  "dependencies": {
    "left-pad": "^1.3.0",
    "express": "^4.18.0"
  },
  "devDependencies": {
    "jest": "^29.0.0",
    "express": "^4.18.0"
  }
}`

	m, err := ParseManifest([]byte(content))
	if err != nil {
		t.Fatalf("ParseManifest failed: %v", err)
	}

	if m.Name != "my-package" || m.Version != "1.0.0" {
		t.Errorf("Name/Version = %q/%q", m.Name, m.Version)
	}
	if len(m.Dependencies) != 2 || m.Dependencies[0] != (Declared{Name: "left-pad", Spec: "^1.3.0"}) {
		t.Errorf("Dependencies = %+v", m.Dependencies)
	}

	want := []string{"left-pad", "express", "jest"}
	if got := m.Direct(); !reflect.DeepEqual(got, want) {
		t.Errorf("Direct() = %v, want %v", got, want)
	}

	if m.IsDev("express") {
		t.Error("express is declared in dependencies, IsDev should be false")
	}
	if !m.IsDev("jest") {
		t.Error("jest is only a dev dependency")
	}
}

func TestParseManifestWithoutDependencies(t *testing.T) {
	m, err := ParseManifest([]byte(`{"name": "empty", "dependencies": null}`))
	if err != nil {
		t.Fatalf("ParseManifest failed: %v", err)
	}
	if got := m.Direct(); len(got) != 0 {
		t.Errorf("Direct() = %v, want empty", got)
	}
}

func TestParseManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"invalid json", `{"dependencies": {`},
		{"array", `["left-pad"]`},
		{"dependencies not object", `{"dependencies": "left-pad"}`},
		{"dev dependencies array", `{"devDependencies": ["jest"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.content))
			if !errors.Is(err, errors.ErrCodeInvalidManifest) {
				t.Errorf("ParseManifest() error = %v, want INVALID_MANIFEST", err)
			}
		})
	}
}

func TestParseManifestSkipsUnsafeNames(t *testing.T) {
	m, err := ParseManifest([]byte(`{
		"dependencies": {"../../etc": "1.0.0", "left-pad": "^1.3.0"},
		"devDependencies": {"a//b": "1.0.0", "is-odd": "^3.0.1"}
	}`))
	if err != nil {
		t.Fatalf("unsafe names must not fail the manifest: %v", err)
	}
	if got := m.Direct(); len(got) != 2 || got[0] != "left-pad" || got[1] != "is-odd" {
		t.Errorf("Direct() = %v, want [left-pad is-odd]", got)
	}
	if len(m.Skipped) != 2 || m.Skipped[0] != "../../etc" || m.Skipped[1] != "a//b" {
		t.Errorf("Skipped = %v, want [../../etc a//b]", m.Skipped)
	}
}

func TestReadManifest(t *testing.T) {
	dir := t.TempDir()

	if _, err := ReadManifest(ManifestPath(dir)); !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("missing manifest error = %v, want INVALID_MANIFEST", err)
	}

	path := filepath.Join(dir, ManifestFile)
	if err := os.WriteFile(path, []byte(`{"dependencies": {"is-odd": "3.0.1"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := ReadManifest(ManifestPath(dir))
	if err != nil {
		t.Fatalf("ReadManifest failed: %v", err)
	}
	if got := m.Direct(); !reflect.DeepEqual(got, []string{"is-odd"}) {
		t.Errorf("Direct() = %v", got)
	}
}

func TestManifestPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"project", filepath.Join("project", "package.json")},
		{filepath.Join("project", "package.json"), filepath.Join("project", "package.json")},
		{filepath.Join("project", "Package.json"), filepath.Join("project", "Package.json")},
	}
	for _, tt := range tests {
		if got := ManifestPath(tt.in); got != tt.want {
			t.Errorf("ManifestPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
