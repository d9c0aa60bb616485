// Package search filters a post corpus by a free-text term.
package search

import (
	"Recipe-Marketplace/entities"
	"strings"
)

// Search returns the posts whose title, ingredient names or material names
// contain term, ignoring case. The result keeps input order. An empty term
// matches every post.
func Search(posts []*entities.Post, term string) []*entities.Post {
	needle := strings.ToLower(term)

	result := make([]*entities.Post, 0)
	for _, post := range posts {
		if Matches(post, needle) {
			result = append(result, post)
		}
	}
	return result
}

// Matches expects needle to be lower-cased already.
func Matches(post *entities.Post, needle string) bool {
	if post == nil {
		return false
	}
	if strings.Contains(strings.ToLower(post.Title), needle) {
		return true
	}
	return anyItemContains(post.Ingredients, needle) || anyItemContains(post.Materials, needle)
}

func anyItemContains(items entities.PostItems, needle string) bool {
	for _, item := range items {
		// entries without a name never match, not even the empty term
		if item.Name == "" {
			continue
		}
		if strings.Contains(strings.ToLower(item.Name), needle) {
			return true
		}
	}
	return false
}
