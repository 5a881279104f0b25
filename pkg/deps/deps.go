package deps

// RootParent is the parent recorded for packages that sit directly under the
// resolved tree's root without being declared in the manifest.
const RootParent = "root"

// Kind distinguishes declared dependencies from transitive ones.
type Kind string

const (
	KindDirect   Kind = "direct"
	KindIndirect Kind = "indirect"
)

// IndirectDependency is a transitive package together with the nearest
// ancestor that pulled it in.
type IndirectDependency struct {
	Name     string `json:"name"`
	Parent   string `json:"parent"`
	Version  string `json:"version,omitempty"`
	Resolved string `json:"resolved,omitempty"`
}

// Set is the normalized dependency set of a project. Direct and Indirect are
// disjoint by name and each name appears at most once.
type Set struct {
	Direct   []string             `json:"direct"`
	Indirect []IndirectDependency `json:"indirect"`
}

// Len returns the number of distinct packages in the set.
func (s *Set) Len() int {
	return len(s.Direct) + len(s.Indirect)
}

// Contains reports whether name is in the set and with which kind.
func (s *Set) Contains(name string) (Kind, bool) {
	for _, d := range s.Direct {
		if d == name {
			return KindDirect, true
		}
	}
	for _, d := range s.Indirect {
		if d.Name == name {
			return KindIndirect, true
		}
	}
	return "", false
}
