// Package application wires extraction, archiving and seeding into the
// operations the command line exposes.
package application

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cardcol/cardcol/internal/database"
	"github.com/cardcol/cardcol/internal/extract"
	"github.com/cardcol/cardcol/internal/filesystem"
	"github.com/cardcol/cardcol/internal/logger"
	"github.com/cardcol/cardcol/internal/services"
)

// ExtractPage reads a saved series page and returns its export document.
func ExtractPage(r io.Reader) (extract.Export, error) {
	page, err := extract.ReadPage(r)
	if err != nil {
		return extract.Export{}, err
	}
	result, err := extract.Extract(page.Rows, page.Meta)
	if err != nil {
		return extract.Export{}, err
	}
	return extract.BuildExport(result), nil
}

// ArchiveExport encodes exp and stores it in the export archive.
func ArchiveExport(exp extract.Export, format extract.Format) (string, error) {
	var buf bytes.Buffer
	if err := extract.EncodeExport(&buf, exp, format); err != nil {
		return "", err
	}
	path, _, err := filesystem.SaveExport(exp.Name, string(format), buf.String())
	if err != nil {
		return "", fmt.Errorf("failed to archive export: %w", err)
	}
	return path, nil
}

// LoadExportFile decodes an export document, picking the format from the extension.
func LoadExportFile(path string) (extract.Export, error) {
	//nolint:gosec // G304: path is supplied by the operator
	file, err := os.Open(path)
	if err != nil {
		return extract.Export{}, err
	}
	defer func() {
		_ = file.Close()
	}()
	return extract.DecodeExport(file, extract.FormatFromPath(path))
}

// SeedSeries writes an export into the catalog. Release dates that cannot be
// parsed are stored as the fallback date and logged.
func SeedSeries(ctx context.Context, dbCtx *database.Context, exp extract.Export, log logger.Logger) (*services.SeedResult, error) {
	log = log.WithComponent("ingest").WithFields(map[string]interface{}{"series": exp.Name})

	releaseDate, ok := extract.ReleaseDateOrFallback(exp.ReleaseDate)
	if !ok {
		log.Warnf("unparseable release date %q, storing %s", exp.ReleaseDate, releaseDate)
	}

	if exp.NCards != len(exp.Cards) {
		log.Warnf("export declares %d cards but carries %d", exp.NCards, len(exp.Cards))
	}

	input := services.SeedInput{
		Name:        exp.Name,
		ReleaseDate: releaseDate,
		Cards:       make([]services.SeedCard, 0, len(exp.Cards)),
	}
	for _, card := range exp.Cards {
		input.Cards = append(input.Cards, services.SeedCard{
			Number:   card.CardNumber,
			Name:     card.Name,
			Rarity:   card.Rarity,
			Category: card.Category,
		})
	}

	result, err := services.NewSeedService(dbCtx).Seed(ctx, input)
	if err != nil {
		return nil, err
	}

	for _, skipped := range result.Skipped {
		log.Debugf("skipped card %q", skipped)
	}
	log.Infof("seeded %d cards, skipped %d", result.Inserted, len(result.Skipped))
	return result, nil
}
