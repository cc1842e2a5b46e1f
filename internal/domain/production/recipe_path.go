package production

import (
	"sort"
	"strings"

	"github.com/andrescamacho/recipe-resolver/internal/domain/recipe"
)

// Assignment records the recipe chosen to produce one item
type Assignment struct {
	Item   string
	Recipe *recipe.Recipe
}

// RecipePath is a partial mapping item -> chosen recipe along one resolution branch.
//
// A RecipePath is immutable: With and Merge return new values and never touch the
// receiver, so sibling branches can share a parent path safely. Entries are kept
// sorted by item, which makes merging linear and the signature free to compute.
type RecipePath struct {
	entries []Assignment
}

// EmptyPath returns a path with no assignments
func EmptyPath() RecipePath {
	return RecipePath{}
}

// NewPath returns a path holding a single assignment
func NewPath(item string, r *recipe.Recipe) RecipePath {
	return RecipePath{entries: []Assignment{{Item: item, Recipe: r}}}
}

// Len returns the number of assigned items
func (p RecipePath) Len() int {
	return len(p.entries)
}

// IsEmpty reports whether the path has no assignments
func (p RecipePath) IsEmpty() bool {
	return len(p.entries) == 0
}

func (p RecipePath) search(item string) (int, bool) {
	i := sort.Search(len(p.entries), func(i int) bool {
		return p.entries[i].Item >= item
	})
	return i, i < len(p.entries) && p.entries[i].Item == item
}

// Lookup returns the recipe chosen for item
func (p RecipePath) Lookup(item string) (*recipe.Recipe, bool) {
	i, ok := p.search(item)
	if !ok {
		return nil, false
	}
	return p.entries[i].Recipe, true
}

// With returns a copy of p with item assigned to r.
// An existing assignment for item is kept (left-biased, like Merge).
func (p RecipePath) With(item string, r *recipe.Recipe) RecipePath {
	i, ok := p.search(item)
	if ok {
		return p
	}
	entries := make([]Assignment, 0, len(p.entries)+1)
	entries = append(entries, p.entries[:i]...)
	entries = append(entries, Assignment{Item: item, Recipe: r})
	entries = append(entries, p.entries[i:]...)
	return RecipePath{entries: entries}
}

// Merge returns the union of p and other. When both assign the same item the
// assignment from p wins.
func (p RecipePath) Merge(other RecipePath) RecipePath {
	if len(other.entries) == 0 {
		return p
	}
	if len(p.entries) == 0 {
		return other
	}

	entries := make([]Assignment, 0, len(p.entries)+len(other.entries))
	i, j := 0, 0
	for i < len(p.entries) && j < len(other.entries) {
		left, right := p.entries[i], other.entries[j]
		switch {
		case left.Item < right.Item:
			entries = append(entries, left)
			i++
		case left.Item > right.Item:
			entries = append(entries, right)
			j++
		default:
			entries = append(entries, left)
			i++
			j++
		}
	}
	entries = append(entries, p.entries[i:]...)
	entries = append(entries, other.entries[j:]...)
	return RecipePath{entries: entries}
}

// Assignments returns the (item, recipe) pairs sorted by item
func (p RecipePath) Assignments() []Assignment {
	result := make([]Assignment, len(p.entries))
	copy(result, p.entries)
	return result
}

// AsMap returns item -> recipe identifier
func (p RecipePath) AsMap() map[string]string {
	result := make(map[string]string, len(p.entries))
	for _, entry := range p.entries {
		result[entry.Item] = entry.Recipe.ID
	}
	return result
}

// Signature is the identity of a path: the sorted (item, recipe id) pairs
func (p RecipePath) Signature() string {
	var builder strings.Builder
	for i, entry := range p.entries {
		if i > 0 {
			builder.WriteByte('|')
		}
		builder.WriteString(entry.Item)
		builder.WriteByte('=')
		builder.WriteString(entry.Recipe.ID)
	}
	return builder.String()
}
