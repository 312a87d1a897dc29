// Package naming turns API identifiers like operationIds into
// human-readable names.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Humanize converts an identifier like "listPets", "list_pets", or
// "list-pets" into title-cased words: "List Pets".
func Humanize(id string) string {
	return titleCaser.String(strings.Join(SplitWords(id), " "))
}

// SplitWords breaks an identifier into its lowercase words. Underscores,
// hyphens, dots, spaces, and camelCase boundaries all separate words.
func SplitWords(id string) []string {
	var words []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			words = append(words, strings.ToLower(current.String()))
			current.Reset()
		}
	}
	for _, r := range id {
		switch {
		case r == '_' || r == '-' || r == '.' || r == ' ':
			flush()
		case unicode.IsUpper(r) && current.Len() > 0:
			flush()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return words
}
