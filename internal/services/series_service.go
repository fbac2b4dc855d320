package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cardcol/cardcol/internal/catalog"
	"github.com/cardcol/cardcol/internal/database"
	"github.com/cardcol/cardcol/internal/extract"
)

// ErrSeriesNotFound is returned when a series lookup has no match.
var ErrSeriesNotFound = errors.New("series not found")

// ErrNonCanonicalRarity is returned when a rarity name would be stored under a different label.
var ErrNonCanonicalRarity = errors.New("rarity name is not canonical")

// SeriesService exposes series with their derived card counts.
type SeriesService struct {
	ctx *database.Context
}

func NewSeriesService(ctx *database.Context) *SeriesService {
	return &SeriesService{ctx: ctx}
}

// List returns all series, oldest release first.
func (s *SeriesService) List(ctx context.Context) ([]catalog.Series, error) {
	records, err := database.NewSeriesRepository(s.ctx).FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}
	result := make([]catalog.Series, 0, len(records))
	for _, record := range records {
		result = append(result, record.ToCatalogSeries())
	}
	return result, nil
}

// FindByName looks a series up by exact name.
func (s *SeriesService) FindByName(ctx context.Context, name string) (*catalog.Series, error) {
	record, err := database.NewSeriesRepository(s.ctx).FindByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%w: %s", ErrSeriesNotFound, name)
	}
	series := record.ToCatalogSeries()
	return &series, nil
}

// RarityService manages the rarity reference list.
type RarityService struct {
	ctx *database.Context
}

func NewRarityService(ctx *database.Context) *RarityService {
	return &RarityService{ctx: ctx}
}

// Add registers a rarity and returns its id; existing names return their id.
func (s *RarityService) Add(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errors.New("rarity name must not be empty")
	}
	if canonical := extract.NormalizeRarity(name); canonical != name {
		return 0, fmt.Errorf("%w: %q normalizes to %q", ErrNonCanonicalRarity, name, canonical)
	}
	return database.NewRarityRepository(s.ctx).GetOrCreate(ctx, name)
}

// List returns every rarity in id order.
func (s *RarityService) List(ctx context.Context) ([]catalog.Rarity, error) {
	records, err := database.NewRarityRepository(s.ctx).FindAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]catalog.Rarity, 0, len(records))
	for _, record := range records {
		result = append(result, catalog.Rarity{ID: record.ID, Name: record.Name})
	}
	return result, nil
}
