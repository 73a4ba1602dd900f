package classifier

import (
	"sort"
	"strings"
)

// LibraryMember is one imported member of an external library
type LibraryMember struct {
	Name       string `json:"name" yaml:"name"`
	IsTypeOnly bool   `json:"isTypeOnly,omitempty" yaml:"isTypeOnly,omitempty"`
}

// LibraryGroup aggregates every import of one external library across files
type LibraryGroup struct {
	Key        string          `json:"key" yaml:"key"`
	Members    []LibraryMember `json:"members,omitempty" yaml:"members,omitempty"`
	Importers  []string        `json:"importers,omitempty" yaml:"importers,omitempty"`
	ImportedBy int             `json:"importedBy" yaml:"importedBy"`
}

// LibraryIndex accumulates external-library groups. It is single-writer: when
// classification runs in parallel, per-file collection merges into one index
// afterwards.
type LibraryIndex struct {
	groups map[string]*LibraryGroup
}

// NewLibraryIndex creates an empty index
func NewLibraryIndex() *LibraryIndex {
	return &LibraryIndex{groups: make(map[string]*LibraryGroup)}
}

// GroupKey normalizes an external specifier to its library group key:
// namespace specifiers keep "<namespace>/<firstSegment>", scoped names keep
// "@scope/pkg", ordinary names collapse to their first path segment.
func GroupKey(specifier string) string {
	if idx := strings.Index(specifier, ":"); idx > 0 {
		namespace := specifier[:idx]
		rest := specifier[idx+1:]
		if slash := strings.Index(rest, "/"); slash > 0 {
			rest = rest[:slash]
		}
		return namespace + "/" + rest
	}
	segments := strings.Split(specifier, "/")
	if strings.HasPrefix(specifier, "@") && len(segments) >= 2 {
		return segments[0] + "/" + segments[1]
	}
	return segments[0]
}

// Add records one external or builtin dependency of filePath into its group
func (x *LibraryIndex) Add(filePath string, dependency Dependency) {
	key := GroupKey(dependency.Source)
	group, ok := x.groups[key]
	if !ok {
		group = &LibraryGroup{Key: key}
		x.groups[key] = group
	}
	for _, member := range dependency.Members {
		group.addMember(LibraryMember{Name: member, IsTypeOnly: dependency.IsTypeOnly})
	}
	group.addImporter(filePath)
}

func (g *LibraryGroup) addMember(member LibraryMember) {
	for i, existing := range g.Members {
		if existing.Name == member.Name {
			// a value import of the same member wins over a type-only one
			if !member.IsTypeOnly {
				g.Members[i].IsTypeOnly = false
			}
			return
		}
	}
	g.Members = append(g.Members, member)
}

func (g *LibraryGroup) addImporter(filePath string) {
	for _, existing := range g.Importers {
		if existing == filePath {
			return
		}
	}
	g.Importers = append(g.Importers, filePath)
	g.ImportedBy = len(g.Importers)
}

// Merge folds another index into this one
func (x *LibraryIndex) Merge(other *LibraryIndex) {
	for key, group := range other.groups {
		existing, ok := x.groups[key]
		if !ok {
			x.groups[key] = group
			continue
		}
		for _, member := range group.Members {
			existing.addMember(member)
		}
		for _, importer := range group.Importers {
			existing.addImporter(importer)
		}
	}
}

// Groups returns every group sorted by key for deterministic output
func (x *LibraryIndex) Groups() []*LibraryGroup {
	groups := make([]*LibraryGroup, 0, len(x.groups))
	for _, group := range x.groups {
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	return groups
}

// Lookup returns the group for key, if present
func (x *LibraryIndex) Lookup(key string) *LibraryGroup {
	return x.groups[key]
}
