package catalog

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/gjson"

	"github.com/matzehuels/sillydeps/pkg/errors"
)

// Other is the synthetic category for unmatched packages with short names.
// It is reserved and cannot be declared by catalog data.
const Other = "other"

//go:embed data/catalog.json
var defaultData []byte

// Entry is one trivial package and the inline alternative suggested for it.
type Entry struct {
	Name       string
	Suggestion string
}

type category struct {
	name    string
	entries []Entry
}

type match struct {
	category   string
	suggestion string
}

// Catalog maps categories to trivial packages. It is immutable once loaded
// and safe for concurrent reads.
type Catalog struct {
	categories []category
	index      map[string]match
}

// Load parses a JSON catalog shaped {"category": {"package": "suggestion"}}.
// Categories keep the order in which they are declared.
func Load(source []byte) (*Catalog, error) {
	if len(strings.TrimSpace(string(source))) == 0 {
		return nil, errors.New(errors.ErrCodeCatalogLoad, "catalog source is empty")
	}
	if !gjson.ValidBytes(source) {
		return nil, errors.New(errors.ErrCodeCatalogLoad, "catalog source is not valid JSON")
	}

	root := gjson.ParseBytes(source)
	if !root.IsObject() {
		return nil, errors.New(errors.ErrCodeCatalogLoad, "catalog must be an object of categories")
	}

	b := newBuilder()
	var err error
	root.ForEach(func(key, value gjson.Result) bool {
		if !value.IsObject() {
			err = errors.New(errors.ErrCodeCatalogLoad, "category %q must be an object of package suggestions", key.String())
			return false
		}
		if err = b.category(key.String()); err != nil {
			return false
		}
		value.ForEach(func(pkg, suggestion gjson.Result) bool {
			if suggestion.Type != gjson.String {
				err = errors.New(errors.ErrCodeCatalogLoad, "suggestion for %q in %q must be a string", pkg.String(), key.String())
				return false
			}
			err = b.entry(pkg.String(), suggestion.String())
			return err == nil
		})
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return b.finish()
}

// LoadTOML parses a TOML catalog with one table per category:
//
//	[padding]
//	left-pad = "Use String.prototype.padStart()"
func LoadTOML(source []byte) (*Catalog, error) {
	if len(strings.TrimSpace(string(source))) == 0 {
		return nil, errors.New(errors.ErrCodeCatalogLoad, "catalog source is empty")
	}

	var raw map[string]map[string]string
	md, err := toml.Decode(string(source), &raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCatalogLoad, err, "parse TOML catalog")
	}

	b := newBuilder()
	// md.Keys preserves document order, which the decoded maps do not.
	for _, key := range md.Keys() {
		switch len(key) {
		case 1:
			if md.Type(key...) != "Hash" {
				return nil, errors.New(errors.ErrCodeCatalogLoad, "top-level key %q must be a category table", key.String())
			}
			if err := b.category(key[0]); err != nil {
				return nil, err
			}
		case 2:
			if md.Type(key...) != "String" {
				return nil, errors.New(errors.ErrCodeCatalogLoad, "suggestion for %q in %q must be a string", key[1], key[0])
			}
			if err := b.entry(key[1], raw[key[0]][key[1]]); err != nil {
				return nil, err
			}
		default:
			return nil, errors.New(errors.ErrCodeCatalogLoad, "unexpected nested key %q", key.String())
		}
	}
	return b.finish()
}

// LoadFile reads a catalog from disk, choosing the decoder from the extension.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCatalogLoad, err, "read catalog %s", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return LoadTOML(data)
	case ".json", "":
		return Load(data)
	default:
		return nil, errors.New(errors.ErrCodeCatalogLoad, "unsupported catalog format: %s", filepath.Ext(path))
	}
}

// Default returns the catalog bundled with the binary.
func Default() (*Catalog, error) {
	return Load(defaultData)
}

// Lookup returns the category and suggestion for name. Categories are
// scanned in declaration order; a name declared twice resolves to the
// first category that lists it.
func (c *Catalog) Lookup(name string) (category, suggestion string, ok bool) {
	m, ok := c.index[name]
	if !ok {
		return "", "", false
	}
	return m.category, m.suggestion, true
}

// Categories returns category names in declaration order.
func (c *Catalog) Categories() []string {
	names := make([]string, len(c.categories))
	for i, cat := range c.categories {
		names[i] = cat.name
	}
	return names
}

// Has reports whether category is declared in the catalog.
func (c *Catalog) Has(category string) bool {
	for _, cat := range c.categories {
		if cat.name == category {
			return true
		}
	}
	return false
}

// Entries returns the packages of a category in declaration order.
func (c *Catalog) Entries(category string) []Entry {
	for _, cat := range c.categories {
		if cat.name == category {
			out := make([]Entry, len(cat.entries))
			copy(out, cat.entries)
			return out
		}
	}
	return nil
}

// Len returns the number of distinct package names in the catalog.
func (c *Catalog) Len() int {
	return len(c.index)
}

// Fingerprint returns a hex SHA-256 over the catalog content in declaration
// order. Two catalogs with the same fingerprint classify identically.
func (c *Catalog) Fingerprint() string {
	h := sha256.New()
	for _, cat := range c.categories {
		fmt.Fprintf(h, "[%s]\n", cat.name)
		for _, e := range cat.entries {
			fmt.Fprintf(h, "%s\x00%s\n", e.Name, e.Suggestion)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// builder accumulates categories and entries in the order a decoder sees them.
type builder struct {
	cat  *Catalog
	seen map[string]bool
}

func newBuilder() *builder {
	return &builder{
		cat:  &Catalog{index: make(map[string]match)},
		seen: make(map[string]bool),
	}
}

func (b *builder) category(name string) error {
	switch {
	case name == "":
		return errors.New(errors.ErrCodeCatalogLoad, "category name cannot be empty")
	case name == Other:
		return errors.New(errors.ErrCodeCatalogLoad, "category %q is reserved", Other)
	case b.seen[name]:
		return errors.New(errors.ErrCodeCatalogLoad, "category %q declared twice", name)
	}
	b.seen[name] = true
	b.cat.categories = append(b.cat.categories, category{name: name})
	return nil
}

func (b *builder) entry(pkg, suggestion string) error {
	if len(b.cat.categories) == 0 {
		return errors.New(errors.ErrCodeCatalogLoad, "package %q declared outside a category", pkg)
	}
	if pkg == "" {
		return errors.New(errors.ErrCodeCatalogLoad, "package name cannot be empty")
	}
	if strings.TrimSpace(suggestion) == "" {
		return errors.New(errors.ErrCodeCatalogLoad, "package %q has an empty suggestion", pkg)
	}
	cur := &b.cat.categories[len(b.cat.categories)-1]
	cur.entries = append(cur.entries, Entry{Name: pkg, Suggestion: suggestion})
	if _, dup := b.cat.index[pkg]; !dup {
		b.cat.index[pkg] = match{category: cur.name, suggestion: suggestion}
	}
	return nil
}

func (b *builder) finish() (*Catalog, error) {
	if len(b.cat.categories) == 0 {
		return nil, errors.New(errors.ErrCodeCatalogLoad, "catalog has no categories")
	}
	return b.cat, nil
}

// String implements fmt.Stringer.
func (c *Catalog) String() string {
	return fmt.Sprintf("catalog(%d categories, %d packages)", len(c.categories), len(c.index))
}
