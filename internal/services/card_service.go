package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cardcol/cardcol/internal/catalog"
	"github.com/cardcol/cardcol/internal/database"
	sqldb "github.com/cardcol/cardcol/internal/database/sqlc"
)

var (
	// ErrCardNotFound is returned when no card has the requested number.
	ErrCardNotFound = errors.New("card not found")
	// ErrNegativeCount is returned when a delta would take an owned count below zero.
	ErrNegativeCount = errors.New("owned count cannot go below zero")
	// ErrEmptyQuery is returned for a name search without a name.
	ErrEmptyQuery = errors.New("search name must not be empty")
)

// CardService exposes the card catalog and its ownership counts.
type CardService struct {
	ctx *database.Context
}

// NewCardService creates a new CardService.
func NewCardService(ctx *database.Context) *CardService {
	return &CardService{ctx: ctx}
}

// List returns every card in catalog order.
func (s *CardService) List(ctx context.Context) ([]catalog.Card, error) {
	records, err := database.NewCardRepository(s.ctx).ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return toCatalogCards(records), nil
}

// ListBySeries returns the cards of one series.
func (s *CardService) ListBySeries(ctx context.Context, seriesID int64) ([]catalog.Card, error) {
	records, err := database.NewCardRepository(s.ctx).ListBySeries(ctx, seriesID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards of series %d: %w", seriesID, err)
	}
	return toCatalogCards(records), nil
}

// Search returns cards whose name contains name, ignoring case.
func (s *CardService) Search(ctx context.Context, name string) ([]catalog.Card, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyQuery
	}
	records, err := database.NewCardRepository(s.ctx).SearchByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to search cards: %w", err)
	}
	return toCatalogCards(records), nil
}

// Get returns one card by number.
func (s *CardService) Get(ctx context.Context, number string) (*catalog.Card, error) {
	record, err := database.NewCardRepository(s.ctx).FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrCardNotFound
	}
	card := record.ToCatalogCard()
	return &card, nil
}

// Adjust applies a signed delta to the owned count of a card and returns the new
// count. A nil delta means +1.
func (s *CardService) Adjust(ctx context.Context, number string, delta *int) (int, error) {
	d := 1
	if delta != nil {
		d = *delta
	}

	var count int
	err := database.WithTx(ctx, s.ctx, func(q *sqldb.Queries) error {
		repo := database.NewCardRepository(s.ctx.WithQueries(q))

		updated, ok, err := repo.ApplyDelta(ctx, number, d)
		if err != nil {
			return err
		}
		if ok {
			count = updated
			return nil
		}

		existing, err := repo.FindByNumber(ctx, number)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("%w: %s", ErrCardNotFound, number)
		}
		return fmt.Errorf("%w: %s has %d, delta %d", ErrNegativeCount, number, existing.InCollection, d)
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// SetCount overwrites the owned count. Clients adjust through deltas; this is the
// operator's escape hatch.
func (s *CardService) SetCount(ctx context.Context, number string, count int) error {
	if count < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeCount, count)
	}
	err := database.NewCardRepository(s.ctx).SetCount(ctx, number, count)
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrCardNotFound, number)
	}
	return err
}

// TotalOwned sums owned copies across the catalog.
func (s *CardService) TotalOwned(ctx context.Context) (int, error) {
	return database.NewCardRepository(s.ctx).TotalOwned(ctx)
}

func toCatalogCards(records []database.CardRecord) []catalog.Card {
	cards := make([]catalog.Card, 0, len(records))
	for _, record := range records {
		cards = append(cards, record.ToCatalogCard())
	}
	return cards
}

// ResetCollection clears every owned count, keeping the catalog itself.
func (s *CardService) ResetCollection(ctx context.Context) (int64, error) {
	n, err := database.NewCardRepository(s.ctx).ResetOwned(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to reset collection: %w", err)
	}
	return n, nil
}
