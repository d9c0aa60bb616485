// Package ingredient finds ingredients shared across posts.
package ingredient

import (
	"Recipe-Marketplace/entities"
	"sort"
	"strings"
)

// Set holds normalized ingredient names.
type Set map[string]struct{}

// Normalize is the equality key for ingredient names.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// MultiPostIngredients returns the normalized ingredient names that occur more
// than once across the whole corpus. Occurrences are counted, not distinct
// posts, so an ingredient listed twice in one post qualifies.
func MultiPostIngredients(posts []*entities.Post) Set {
	counts := make(map[string]int)
	for _, post := range posts {
		if post == nil {
			continue
		}
		for _, item := range post.Ingredients {
			name := Normalize(item.Name)
			if name == "" {
				continue
			}
			counts[name]++
		}
	}

	set := make(Set)
	for name, count := range counts {
		if count > 1 {
			set[name] = struct{}{}
		}
	}
	return set
}

// Has normalizes displayName before checking membership.
func (s Set) Has(displayName string) bool {
	name := Normalize(displayName)
	if name == "" {
		return false
	}
	_, ok := s[name]
	return ok
}

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
