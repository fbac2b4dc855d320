// Package listing renders catalog projections for the command line.
package listing

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-runewidth"
	"github.com/parquet-go/parquet-go"

	"github.com/cardcol/cardcol/internal/catalog"
	"github.com/cardcol/cardcol/internal/viewmodel"
)

// DefaultTemplate is the line template used by the template format.
const DefaultTemplate = "|{series}|{number}|{name}|"

// Format selects how cards are written.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatTemplate Format = "template"
	FormatParquet  Format = "parquet"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatTemplate, FormatParquet:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format: %s (valid values: table, json, template, parquet)", s)
	}
}

// SeriesNames indexes series names by id.
func SeriesNames(series []catalog.Series) map[int64]string {
	names := make(map[int64]string, len(series))
	for _, s := range series {
		names[s.ID] = s.Name
	}
	return names
}

// FormatCard fills the placeholders {name}, {number}, {collection_number},
// {rarity}, {series}, {card_type} and {in_collection} in tmpl.
func FormatCard(card catalog.Card, series, tmpl string) string {
	r := strings.NewReplacer(
		"{name}", card.Name,
		"{number}", card.Number,
		"{collection_number}", strconv.Itoa(card.CollectionNumber),
		"{rarity}", card.Rarity.Name,
		"{series}", series,
		"{card_type}", card.CardType.Display(),
		"{in_collection}", strconv.Itoa(card.InCollection),
	)
	return r.Replace(tmpl)
}

// WriteTemplate writes one templated line per card.
func WriteTemplate(w io.Writer, cards []catalog.Card, series map[int64]string, tmpl string) error {
	if tmpl == "" {
		tmpl = DefaultTemplate
	}
	for _, card := range cards {
		if _, err := fmt.Fprintln(w, FormatCard(card, series[card.SeriesID], tmpl)); err != nil {
			return err
		}
	}
	return nil
}

type jsonListing struct {
	Cards   []catalog.Card    `json:"cards"`
	Summary viewmodel.Summary `json:"summary"`
}

// WriteJSON writes the cards and the summary as indented JSON.
func WriteJSON(w io.Writer, cards []catalog.Card, summary viewmodel.Summary) error {
	if cards == nil {
		cards = []catalog.Card{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(jsonListing{Cards: cards, Summary: summary})
}

// Row is the flat record written to parquet files.
type Row struct {
	Number           string `parquet:"number"`
	Name             string `parquet:"name"`
	Series           string `parquet:"series"`
	CollectionNumber int32  `parquet:"collection_number"`
	Rarity           string `parquet:"rarity"`
	CardType         string `parquet:"card_type"`
	InCollection     int32  `parquet:"in_collection"`
}

// Rows flattens cards for columnar output.
func Rows(cards []catalog.Card, series map[int64]string) []Row {
	rows := make([]Row, 0, len(cards))
	for _, card := range cards {
		rows = append(rows, Row{
			Number:           card.Number,
			Name:             card.Name,
			Series:           series[card.SeriesID],
			CollectionNumber: int32(card.CollectionNumber),
			Rarity:           card.Rarity.Name,
			CardType:         card.CardType.Display(),
			InCollection:     int32(card.InCollection),
		})
	}
	return rows
}

// WriteParquet writes cards as a parquet file.
func WriteParquet(w io.Writer, cards []catalog.Card, series map[int64]string) error {
	writer := parquet.NewGenericWriter[Row](w)
	if _, err := writer.Write(Rows(cards, series)); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return nil
}

// fixed columns: Number, Rarity, Type, Owned plus borders
const reservedWidth = 12 + 20 + 22 + 7 + 18

// WriteTable renders cards as a table sized to termWidth, followed by the summary.
func WriteTable(w io.Writer, cards []catalog.Card, series map[int64]string, summary viewmodel.Summary, termWidth int) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Number", "Name", "Series", "Rarity", "Type", "Owned"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 6, Align: text.AlignRight},
	})

	free := termWidth - reservedWidth
	if free < 30 {
		free = 30
	}
	nameWidth := free * 3 / 5
	seriesWidth := free - nameWidth

	for _, card := range cards {
		t.AppendRow(table.Row{
			card.Number,
			runewidth.Truncate(card.Name, nameWidth, "..."),
			runewidth.Truncate(series[card.SeriesID], seriesWidth, "..."),
			card.Rarity.Name,
			card.CardType.Display(),
			card.InCollection,
		})
	}
	t.AppendFooter(table.Row{
		"", fmt.Sprintf("%d of %d cards", summary.Visible, summary.Total), "",
		fmt.Sprintf("%d collected", summary.CollectedVisible), "copies", summary.TotalCopies,
	})
	t.Render()
}
