package location

import (
	"Recipe-Marketplace/entities"
	"github.com/google/uuid"
	"strings"
)

// IsClearTerm reports whether term resets the map to every pin.
func IsClearTerm(term string) bool {
	return strings.TrimSpace(term) == ""
}

// TitleMatches mirrors the store query (case-sensitive prefix range on title)
// followed by the case-insensitive containment re-check.
func TitleMatches(title, term string) bool {
	return strings.HasPrefix(title, term) &&
		strings.Contains(strings.ToLower(title), strings.ToLower(term))
}

// ResolveLocations returns the pins of users owning a post whose title matches
// term. A blank term returns every location; a term nobody matches returns no
// locations at all.
func ResolveLocations(posts []*entities.Post, locations []*entities.UserLocation, term string) []*entities.UserLocation {
	if IsClearTerm(term) {
		all := make([]*entities.UserLocation, len(locations))
		copy(all, locations)
		return all
	}

	owners := make(map[uuid.UUID]struct{})
	for _, post := range posts {
		if post == nil || post.UserID == uuid.Nil {
			continue
		}
		if TitleMatches(post.Title, term) {
			owners[post.UserID] = struct{}{}
		}
	}

	resolved := make([]*entities.UserLocation, 0)
	if len(owners) == 0 {
		return resolved
	}

	for _, loc := range locations {
		if loc == nil {
			continue
		}
		if _, ok := owners[loc.UserID]; ok {
			resolved = append(resolved, loc)
		}
	}
	return resolved
}
