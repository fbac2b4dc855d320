package database

import (
	"context"
	"errors"

	sqldb "github.com/cardcol/cardcol/internal/database/sqlc"
)

type CardRepository struct {
	ctx *Context
}

func NewCardRepository(dbCtx *Context) *CardRepository {
	return &CardRepository{ctx: dbCtx}
}

func (r *CardRepository) ListAll(ctx context.Context) ([]CardRecord, error) {
	queries, err := requireQueries(r.ctx, "card")
	if err != nil {
		return nil, err
	}

	rows, err := queries.ListCards(ctx)
	if err != nil {
		return nil, err
	}
	return mapCardRows(rows), nil
}

func (r *CardRepository) ListBySeries(ctx context.Context, seriesID int64) ([]CardRecord, error) {
	queries, err := requireQueries(r.ctx, "card")
	if err != nil {
		return nil, err
	}

	rows, err := queries.ListCardsBySeries(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	return mapCardRows(rows), nil
}

// SearchByName matches name as a case-insensitive substring.
func (r *CardRepository) SearchByName(ctx context.Context, name string) ([]CardRecord, error) {
	queries, err := requireQueries(r.ctx, "card")
	if err != nil {
		return nil, err
	}

	rows, err := queries.SearchCardsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return mapCardRows(rows), nil
}

func (r *CardRepository) FindByNumber(ctx context.Context, number string) (*CardRecord, error) {
	queries, err := requireQueries(r.ctx, "card")
	if err != nil {
		return nil, err
	}

	row, err := queries.GetCardByNumber(ctx, number)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}

	record := CardRecordFromRow(row)
	return &record, nil
}

// Insert adds a card and reports false when the number already exists.
func (r *CardRepository) Insert(ctx context.Context, card NewCard) (bool, error) {
	queries, err := requireQueries(r.ctx, "card")
	if err != nil {
		return false, err
	}

	affected, err := queries.InsertCard(ctx, sqldb.InsertCardParams{
		Number:           card.Number,
		Name:             card.Name,
		CollectionNumber: int64(card.CollectionNumber),
		SeriesID:         card.SeriesID,
		RarityID:         card.RarityID,
		CardTypeID:       card.CardTypeID,
	})
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ApplyDelta adds delta to the owned count in one statement. ok is false when no
// row changed: the card is missing or the count would drop below zero.
func (r *CardRepository) ApplyDelta(ctx context.Context, number string, delta int) (int, bool, error) {
	queries, err := requireQueries(r.ctx, "card")
	if err != nil {
		return 0, false, err
	}

	count, err := queries.ApplyCardDelta(ctx, sqldb.ApplyCardDeltaParams{Number: number, Delta: int64(delta)})
	if err != nil {
		if isNoRows(err) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return int(count), true, nil
}

// SetCount overwrites the owned count. Only the operator CLI uses this.
func (r *CardRepository) SetCount(ctx context.Context, number string, count int) error {
	queries, err := requireQueries(r.ctx, "card")
	if err != nil {
		return err
	}
	if count < 0 {
		return errors.New("card repository: count must not be negative")
	}

	affected, err := queries.SetCardCount(ctx, sqldb.SetCardCountParams{Number: number, Count: int64(count)})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// TotalOwned sums owned copies over the whole catalog.
func (r *CardRepository) TotalOwned(ctx context.Context) (int, error) {
	queries, err := requireQueries(r.ctx, "card")
	if err != nil {
		return 0, err
	}
	total, err := queries.SumInCollection(ctx)
	return int(total), err
}

// ResetOwned sets every owned count back to zero and returns how many cards changed.
func (r *CardRepository) ResetOwned(ctx context.Context) (int64, error) {
	queries, err := requireQueries(r.ctx, "card")
	if err != nil {
		return 0, err
	}
	return queries.ResetCollection(ctx)
}
