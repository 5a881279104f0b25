package classify

import (
	"github.com/matzehuels/sillydeps/pkg/catalog"
	"github.com/matzehuels/sillydeps/pkg/deps"
)

// DefaultSuggestion is attached to findings in the "other" category.
const DefaultSuggestion = "Review whether this dependency is needed"

// Options configures a classification.
type Options struct {
	// Category restricts output to one category ("other" included).
	// Empty means every category.
	Category string

	// Heuristic selects uncatalogued packages for the "other" category.
	// Defaults to ShortName(DefaultShortNameLimit).
	Heuristic Heuristic

	// Suggestion is the text attached to "other" findings.
	// Defaults to DefaultSuggestion.
	Suggestion string
}

func (o Options) withDefaults() Options {
	if o.Heuristic == nil {
		o.Heuristic = ShortName(DefaultShortNameLimit)
	}
	if o.Suggestion == "" {
		o.Suggestion = DefaultSuggestion
	}
	return o
}

func (o Options) emits(category string) bool {
	return o.Category == "" || o.Category == category
}

// Classify matches every dependency in set against cat.
//
// Direct dependencies are processed before indirect ones, each in the order
// of the set. A catalog hit in category C is counted for its kind and
// recorded under C; a miss whose name passes the heuristic is recorded
// under "other" without being counted; any other miss is dropped.
func Classify(set *deps.Set, cat *catalog.Catalog, opts Options) *Result {
	opts = opts.withDefaults()

	categories := append(cat.Categories(), catalog.Other)
	r := &Result{
		Packages:   Packages{Direct: []string{}, Indirect: []string{}},
		ByCategory: make(map[string][]Finding, len(categories)),
		Categories: categories,
		Filter:     opts.Category,
	}
	for _, c := range categories {
		r.ByCategory[c] = []Finding{}
	}

	visit := func(name string, kind deps.Kind, via string) {
		category, suggestion, ok := cat.Lookup(name)
		if !ok {
			if opts.Heuristic(name) && opts.emits(catalog.Other) {
				r.ByCategory[catalog.Other] = append(r.ByCategory[catalog.Other], Finding{
					Name:       name,
					Category:   catalog.Other,
					Suggestion: opts.Suggestion,
					Kind:       kind,
					Via:        via,
				})
			}
			return
		}
		if !opts.emits(category) {
			return
		}
		switch kind {
		case deps.KindDirect:
			r.DirectCount++
			r.Packages.Direct = append(r.Packages.Direct, name)
		case deps.KindIndirect:
			r.IndirectCount++
			r.Packages.Indirect = append(r.Packages.Indirect, name)
		}
		r.ByCategory[category] = append(r.ByCategory[category], Finding{
			Name:       name,
			Category:   category,
			Suggestion: suggestion,
			Kind:       kind,
			Via:        via,
		})
	}

	for _, name := range set.Direct {
		visit(name, deps.KindDirect, "")
	}
	for _, d := range set.Indirect {
		visit(d.Name, deps.KindIndirect, d.Parent)
	}
	return r
}
