package db

import "strings"

const likeEscape = `\`

// sanitizeLikeString escapes LIKE metacharacters in a user-typed search term
// so the term cannot inject wildcard patterns.
func sanitizeLikeString(term string) string {
	replacer := strings.NewReplacer(
		likeEscape, likeEscape+likeEscape,
		"%", likeEscape+"%",
		"_", likeEscape+"_",
	)
	return replacer.Replace(term)
}
