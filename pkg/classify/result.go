package classify

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/matzehuels/sillydeps/pkg/catalog"
	"github.com/matzehuels/sillydeps/pkg/deps"
)

// Finding is one package flagged by the audit.
type Finding struct {
	Name       string    `json:"name"`
	Category   string    `json:"-"`
	Suggestion string    `json:"solution"`
	Kind       deps.Kind `json:"type"`
	Via        string    `json:"via,omitempty"`
}

// Packages lists catalog matches by dependency kind.
type Packages struct {
	Direct   []string `json:"direct"`
	Indirect []string `json:"indirect"`
}

// Result is the outcome of a classification. It is never mutated after
// Classify returns.
//
// ByCategory holds a (possibly empty) slice for every catalog category plus
// "other". Categories lists those keys in emission order: catalog order,
// then "other".
type Result struct {
	DirectCount   int
	IndirectCount int
	Packages      Packages
	ByCategory    map[string][]Finding
	Categories    []string
	Filter        string
}

// Found reports whether any finding survived the filter.
func (r *Result) Found() bool {
	for _, items := range r.ByCategory {
		if len(items) > 0 {
			return true
		}
	}
	return false
}

// Total returns the number of catalog matches, i.e. DirectCount+IndirectCount.
// Findings under "other" are not catalog matches and are excluded.
func (r *Result) Total() int {
	return r.DirectCount + r.IndirectCount
}

// Findings returns all findings in emission order.
func (r *Result) Findings() []Finding {
	var out []Finding
	for _, c := range r.Categories {
		out = append(out, r.ByCategory[c]...)
	}
	return out
}

// NonEmpty returns the categories holding at least one finding, in
// emission order.
func (r *Result) NonEmpty() []string {
	var out []string
	for _, c := range r.Categories {
		if len(r.ByCategory[c]) > 0 {
			out = append(out, c)
		}
	}
	return out
}

type kindSummary struct {
	Count    int      `json:"count"`
	Packages []string `json:"packages"`
}

type wireResult struct {
	Direct     kindSummary          `json:"direct"`
	Indirect   kindSummary          `json:"indirect"`
	ByCategory map[string][]Finding `json:"byCategory"`
}

// MarshalJSON encodes the result in the export shape consumed by
// presentation layers: {"direct": {...}, "indirect": {...}, "byCategory": {...}}.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(toWire(&r))
}

// UnmarshalJSON decodes the export shape. Category order is not part of the
// wire format, so Categories comes back sorted by encoding/json's map order
// with "other" last.
func (r *Result) UnmarshalJSON(data []byte) error {
	var w wireResult
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = Result{
		DirectCount:   w.Direct.Count,
		IndirectCount: w.Indirect.Count,
		Packages:      Packages{Direct: w.Direct.Packages, Indirect: w.Indirect.Packages},
		ByCategory:    make(map[string][]Finding, len(w.ByCategory)),
	}
	hasOther := false
	for _, c := range slices.Sorted(maps.Keys(w.ByCategory)) {
		items := w.ByCategory[c]
		for i := range items {
			items[i].Category = c
		}
		r.ByCategory[c] = items
		if c == catalog.Other {
			hasOther = true
			continue
		}
		r.Categories = append(r.Categories, c)
	}
	if hasOther {
		r.Categories = append(r.Categories, catalog.Other)
	}
	return nil
}

// ToMap returns the result as plain nested maps and slices of strings and
// ints, for consumers that must not depend on this package's types.
func (r *Result) ToMap() map[string]any {
	byCategory := make(map[string]any, len(r.ByCategory))
	for c, items := range r.ByCategory {
		list := make([]any, len(items))
		for i, f := range items {
			m := map[string]any{
				"name":     f.Name,
				"solution": f.Suggestion,
				"type":     string(f.Kind),
			}
			if f.Via != "" {
				m["via"] = f.Via
			}
			list[i] = m
		}
		byCategory[c] = list
	}
	return map[string]any{
		"direct":     map[string]any{"count": r.DirectCount, "packages": append([]string{}, r.Packages.Direct...)},
		"indirect":   map[string]any{"count": r.IndirectCount, "packages": append([]string{}, r.Packages.Indirect...)},
		"byCategory": byCategory,
	}
}

func toWire(r *Result) wireResult {
	byCategory := make(map[string][]Finding, len(r.ByCategory))
	for c, items := range r.ByCategory {
		if items == nil {
			items = []Finding{}
		}
		byCategory[c] = items
	}
	return wireResult{
		Direct:     kindSummary{Count: r.DirectCount, Packages: nonNil(r.Packages.Direct)},
		Indirect:   kindSummary{Count: r.IndirectCount, Packages: nonNil(r.Packages.Indirect)},
		ByCategory: byCategory,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
