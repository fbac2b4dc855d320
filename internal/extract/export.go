package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the encoding of an export document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ExportCard is one card of an ingestion export.
type ExportCard struct {
	CardNumber string `json:"card_number" yaml:"card_number"`
	Name       string `json:"name" yaml:"name"`
	Rarity     string `json:"rarity" yaml:"rarity"`
	Category   string `json:"category" yaml:"category"`
}

// Export is the document handed to the seeding step.
type Export struct {
	Name        string       `json:"name" yaml:"name"`
	NCards      int          `json:"ncards" yaml:"ncards"`
	ReleaseDate string       `json:"release_date" yaml:"release_date"`
	Cards       []ExportCard `json:"cards" yaml:"cards"`
}

// BuildExport converts an extraction result into its export document.
func BuildExport(result Result) Export {
	cards := make([]ExportCard, 0, len(result.Cards))
	for _, card := range result.Cards {
		cards = append(cards, ExportCard{
			CardNumber: card.Number,
			Name:       card.Name,
			Rarity:     card.Rarity,
			Category:   card.Category,
		})
	}
	return Export{
		Name:        result.Series.Name,
		NCards:      result.Series.CardCount,
		ReleaseDate: result.Series.ReleaseDate,
		Cards:       cards,
	}
}

// ParseFormat validates a format flag value.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid export format: %s (valid values: json, yaml)", value)
	}
}

// FormatFromPath picks the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// EncodeExport writes exp to w.
func EncodeExport(w io.Writer, exp Export, format Format) error {
	switch format {
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(exp); err != nil {
			return fmt.Errorf("failed to encode export: %w", err)
		}
		return encoder.Close()
	default:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(exp); err != nil {
			return fmt.Errorf("failed to encode export: %w", err)
		}
		return nil
	}
}

// DecodeExport reads an export document.
func DecodeExport(r io.Reader, format Format) (Export, error) {
	var exp Export
	var err error
	switch format {
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&exp)
	default:
		err = json.NewDecoder(r).Decode(&exp)
	}
	if err != nil {
		return Export{}, fmt.Errorf("failed to decode export: %w", err)
	}
	if strings.TrimSpace(exp.Name) == "" {
		return Export{}, &MissingMetadataError{Reason: "export has no series name"}
	}
	if exp.NCards == 0 {
		exp.NCards = len(exp.Cards)
	}
	return exp, nil
}
