package classify

import "unicode/utf8"

// DefaultShortNameLimit is the longest name, in characters, that the default
// heuristic still considers a possible trivial utility.
const DefaultShortNameLimit = 12

// Heuristic decides whether an uncatalogued package is worth listing under
// the "other" category.
type Heuristic func(name string) bool

// ShortName returns a Heuristic accepting names of at most limit characters.
func ShortName(limit int) Heuristic {
	return func(name string) bool {
		return utf8.RuneCountInString(name) <= limit
	}
}

// Never is a Heuristic that keeps uncatalogued packages out of the result.
func Never(string) bool { return false }
