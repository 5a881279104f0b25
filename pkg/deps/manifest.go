package deps

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/matzehuels/sillydeps/pkg/errors"
)

// ManifestFile is the manifest name the audit looks for in a project directory.
const ManifestFile = "package.json"

// Declared is a dependency entry from the manifest. The version spec is kept
// for display only; the audit never interprets it.
type Declared struct {
	Name string `json:"name"`
	Spec string `json:"spec"`
}

// Manifest holds the fields of package.json the audit reads. Dependency
// lists keep the order in which they appear in the file.
type Manifest struct {
	Name            string     `json:"name,omitempty"`
	Version         string     `json:"version,omitempty"`
	Dependencies    []Declared `json:"dependencies"`
	DevDependencies []Declared `json:"devDependencies"`

	// Skipped lists declared names rejected by errors.ValidatePackageName.
	// They are left out of the audit instead of failing it.
	Skipped []string `json:"skipped,omitempty"`
}

// ParseManifest parses package.json content. Any structural problem is an
// INVALID_MANIFEST error: without the declared dependencies nothing can be
// audited.
func ParseManifest(data []byte) (*Manifest, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "manifest is empty")
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "manifest is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "manifest must be a JSON object")
	}

	m := &Manifest{
		Name:    root.Get("name").String(),
		Version: root.Get("version").String(),
	}
	var err error
	if m.Dependencies, err = m.declaredDeps(root, "dependencies"); err != nil {
		return nil, err
	}
	if m.DevDependencies, err = m.declaredDeps(root, "devDependencies"); err != nil {
		return nil, err
	}
	return m, nil
}

// ReadManifest reads and parses the manifest at path.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "no %s found at %s", ManifestFile, path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "read %s", path)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", path)
	}
	return m, nil
}

// ManifestPath returns the manifest path for a project directory. A path
// that already names a file is returned unchanged.
func ManifestPath(dir string) string {
	if strings.EqualFold(filepath.Base(dir), ManifestFile) {
		return dir
	}
	return filepath.Join(dir, ManifestFile)
}

// Direct returns the declared package names: dependencies first, then
// devDependencies, each name once.
func (m *Manifest) Direct() []string {
	seen := make(map[string]bool, len(m.Dependencies)+len(m.DevDependencies))
	names := make([]string, 0, len(m.Dependencies)+len(m.DevDependencies))
	for _, group := range [][]Declared{m.Dependencies, m.DevDependencies} {
		for _, d := range group {
			if seen[d.Name] {
				continue
			}
			seen[d.Name] = true
			names = append(names, d.Name)
		}
	}
	return names
}

// IsDev reports whether name is declared only as a dev dependency.
func (m *Manifest) IsDev(name string) bool {
	for _, d := range m.Dependencies {
		if d.Name == name {
			return false
		}
	}
	for _, d := range m.DevDependencies {
		if d.Name == name {
			return true
		}
	}
	return false
}

func (m *Manifest) declaredDeps(root gjson.Result, field string) ([]Declared, error) {
	v := root.Get(field)
	if !v.Exists() || v.Type == gjson.Null {
		return nil, nil
	}
	if !v.IsObject() {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "%q must be an object", field)
	}

	var out []Declared
	v.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if errors.ValidatePackageName(name) != nil {
			m.Skipped = append(m.Skipped, name)
			return true
		}
		out = append(out, Declared{Name: name, Spec: value.String()})
		return true
	})
	return out, nil
}
