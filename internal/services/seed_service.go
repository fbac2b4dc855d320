package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/cardcol/cardcol/internal/catalog"
	"github.com/cardcol/cardcol/internal/database"
	sqldb "github.com/cardcol/cardcol/internal/database/sqlc"
	"github.com/cardcol/cardcol/internal/extract"
)

// UnknownRarity is stored for cards whose rarity cell was empty.
const UnknownRarity = "Unknown"

// SeedCard is one card of a series being seeded, in source terms.
type SeedCard struct {
	Number   string
	Name     string
	Rarity   string
	Category string
}

// SeedInput describes a series to add to the catalog.
type SeedInput struct {
	Name        string
	ReleaseDate string
	Cards       []SeedCard
}

// SeedResult reports what a seed run changed.
type SeedResult struct {
	SeriesID int64
	Prefix   string
	Inserted int
	Skipped  []string
}

// SeedService writes extracted series into the catalog.
type SeedService struct {
	ctx *database.Context
}

func NewSeedService(ctx *database.Context) *SeedService {
	return &SeedService{ctx: ctx}
}

// Seed inserts the series and its cards in one transaction. Card numbers are
// canonicalised to PREFIX-NNN; numbers already present and rows without a number
// are skipped and reported rather than failing the run.
func (s *SeedService) Seed(ctx context.Context, input SeedInput) (*SeedResult, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("seed: series name is required")
	}

	result := &SeedResult{Prefix: seriesPrefix(input.Cards)}

	err := database.WithTx(ctx, s.ctx, func(q *sqldb.Queries) error {
		txCtx := s.ctx.WithQueries(q)
		rarities := database.NewRarityRepository(txCtx)
		cardTypes := database.NewCardTypeRepository(txCtx)
		cards := database.NewCardRepository(txCtx)

		seriesID, err := database.NewSeriesRepository(txCtx).GetOrCreate(ctx, name, result.Prefix, input.ReleaseDate)
		if err != nil {
			return fmt.Errorf("failed to store series %q: %w", name, err)
		}
		result.SeriesID = seriesID

		rarityIDs := map[string]int64{}
		typeIDs := map[catalog.CardType]int64{}

		for _, card := range input.Cards {
			if strings.TrimSpace(card.Number) == "" {
				result.Skipped = append(result.Skipped, card.Name)
				continue
			}
			number, collectionNumber := catalog.CanonicalNumber(card.Number)

			rarity := extract.NormalizeRarity(card.Rarity)
			if rarity == "" {
				rarity = UnknownRarity
			}
			rarityID, ok := rarityIDs[rarity]
			if !ok {
				if rarityID, err = rarities.GetOrCreate(ctx, rarity); err != nil {
					return fmt.Errorf("failed to store rarity %q: %w", rarity, err)
				}
				rarityIDs[rarity] = rarityID
			}

			cardType := catalog.ParseCategory(card.Category)
			typeID, ok := typeIDs[cardType]
			if !ok {
				if typeID, err = cardTypes.GetOrCreate(ctx, cardType); err != nil {
					return fmt.Errorf("failed to store card type %q: %w", cardType.Display(), err)
				}
				typeIDs[cardType] = typeID
			}

			inserted, err := cards.Insert(ctx, database.NewCard{
				Number:           number,
				Name:             strings.TrimSpace(card.Name),
				CollectionNumber: collectionNumber,
				SeriesID:         seriesID,
				RarityID:         rarityID,
				CardTypeID:       typeID,
			})
			if err != nil {
				return fmt.Errorf("failed to store card %s: %w", number, err)
			}
			if !inserted {
				result.Skipped = append(result.Skipped, number)
				continue
			}
			result.Inserted++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func seriesPrefix(cards []SeedCard) string {
	for _, card := range cards {
		if parts, ok := catalog.SplitCardNumber(card.Number); ok && parts.Prefix != "" {
			return parts.Prefix
		}
	}
	return ""
}
