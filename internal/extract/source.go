package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// WikiBaseURL is where series card list pages are fetched from.
const WikiBaseURL = "https://yugioh.fandom.com/wiki/"

// lowercase words stay lower case in page titles.
var titleSkip = map[string]bool{"the": true, "of": true}

// PageTitle turns a series name into its wiki page title: each word gets an
// upper case first letter except the skip words, joined with underscores.
func PageTitle(series string) string {
	words := strings.Fields(series)
	for i, word := range words {
		if titleSkip[word] {
			continue
		}
		r, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(r)) + word[size:]
	}
	return strings.Join(words, "_")
}

// SeriesPageURL returns the card list page for a series name.
func SeriesPageURL(series string) string {
	return WikiBaseURL + PageTitle(series)
}
