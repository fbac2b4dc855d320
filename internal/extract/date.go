package extract

import (
	"strings"
	"time"
)

// DateLayout is the storage form of release dates.
const DateLayout = "2006-01-02"

// FallbackReleaseDate is stored when a release date cannot be parsed.
const FallbackReleaseDate = "1970-01-01"

var releaseDateLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	DateLayout,
	"January 2006",
	"2006",
}

// ParseReleaseDate converts a release date as written on a series page into
// YYYY-MM-DD. ok is false when no known layout matches.
func ParseReleaseDate(value string) (string, bool) {
	value = strings.Join(strings.Fields(value), " ")
	for _, layout := range releaseDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.Format(DateLayout), true
		}
	}
	return "", false
}

// ReleaseDateOrFallback is ParseReleaseDate with FallbackReleaseDate for unparseable input.
func ReleaseDateOrFallback(value string) (string, bool) {
	if parsed, ok := ParseReleaseDate(value); ok {
		return parsed, true
	}
	return FallbackReleaseDate, false
}
