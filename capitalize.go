package finbook

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// capitalize title-cases every word of a name before storage: first letter
// upper-cased, the rest lower-cased. Inputs shorter than 3 characters and
// single-letter words pass through unchanged.
func capitalize(str string) string {
	str = strings.TrimSpace(str)
	if len(str) < 3 {
		return str
	}
	words := strings.Split(str, " ")
	for i, word := range words {
		if len(word) > 1 {
			words[i] = titleCaser.String(word)
		}
	}
	return strings.Join(words, " ")
}
