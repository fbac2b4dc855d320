// Package extract turns a series card list page into an ingestion export: rows of
// table cells plus the labeled infobox blocks that carry the series metadata.
package extract

import (
	"fmt"
	"strings"
)

// ReleaseDatesLabel labels the infobox block holding release dates.
const ReleaseDatesLabel = "Release dates"

// Row is one table row, cells in source order: number, name, rarity, category.
type Row []string

// Cell returns the trimmed cell at i, or "" when the row is short.
func (r Row) Cell(i int) string {
	return strings.TrimSpace(r.raw(i))
}

func (r Row) raw(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// Block is a labeled key/value block from the page infobox.
type Block struct {
	Label  string
	Values []string
}

// SeriesMeta is the metadata surrounding the card table.
type SeriesMeta struct {
	Name   string
	Blocks []Block
}

// Lookup returns the values of the first block whose label matches.
func (m SeriesMeta) Lookup(label string) ([]string, bool) {
	for _, block := range m.Blocks {
		if strings.TrimSpace(block.Label) == label {
			return block.Values, true
		}
	}
	return nil, false
}

// CardRecord is one extracted card, still in source terms.
type CardRecord struct {
	Number   string
	Name     string
	Rarity   string
	Category string
}

// SeriesRecord is the extracted series header.
type SeriesRecord struct {
	Name        string
	ReleaseDate string
	CardCount   int
}

// Result is a complete extraction for one series page.
type Result struct {
	Series SeriesRecord
	Cards  []CardRecord
}

// MissingMetadataError is returned when the page lacks the data needed to
// identify the series.
type MissingMetadataError struct {
	Series string
	Reason string
}

func (e *MissingMetadataError) Error() string {
	if e.Series == "" {
		return fmt.Sprintf("missing series metadata: %s", e.Reason)
	}
	return fmt.Sprintf("missing series metadata for %q: %s", e.Series, e.Reason)
}

// Extract builds the series and card records. Short rows default their missing
// cells to "" and never fail the run; a missing or empty release date block does,
// and then nothing is returned.
func Extract(rows []Row, meta SeriesMeta) (Result, error) {
	name := strings.TrimSpace(meta.Name)

	releaseDate, err := releaseDate(name, meta)
	if err != nil {
		return Result{}, err
	}

	cards := make([]CardRecord, 0, len(rows))
	for _, row := range rows {
		cards = append(cards, CardRecord{
			Number:   row.Cell(0),
			Name:     strings.TrimSpace(strings.ReplaceAll(row.Cell(1), `"`, "")),
			Rarity:   NormalizeRarity(row.raw(2)),
			Category: row.Cell(3),
		})
	}

	return Result{
		Series: SeriesRecord{
			Name:        name,
			ReleaseDate: releaseDate,
			CardCount:   len(cards),
		},
		Cards: cards,
	}, nil
}

func releaseDate(series string, meta SeriesMeta) (string, error) {
	values, ok := meta.Lookup(ReleaseDatesLabel)
	if !ok {
		return "", &MissingMetadataError{Series: series, Reason: "no \"Release dates\" block"}
	}
	if len(values) == 0 {
		return "", &MissingMetadataError{Series: series, Reason: "\"Release dates\" block is empty"}
	}

	first, _, _ := strings.Cut(values[0], "\n")
	return strings.TrimSpace(first), nil
}
