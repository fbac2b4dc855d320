package extract

import "strings"

const (
	shortPrintMarker = "Short Print"
	// CommonRarity is the label short print variants collapse to.
	CommonRarity = "Common"
)

// NormalizeRarity maps raw rarity cell text onto its canonical label. Short print
// variants become Common; otherwise only the first line is kept, trimmed.
func NormalizeRarity(raw string) string {
	if strings.Contains(raw, shortPrintMarker) {
		return CommonRarity
	}
	if first, _, found := strings.Cut(raw, "\n"); found {
		raw = first
	}
	return strings.TrimSpace(raw)
}
