package database

import (
	"context"

	"github.com/cardcol/cardcol/internal/catalog"
	sqldb "github.com/cardcol/cardcol/internal/database/sqlc"
)

type RarityRepository struct {
	ctx *Context
}

func NewRarityRepository(dbCtx *Context) *RarityRepository {
	return &RarityRepository{ctx: dbCtx}
}

// GetOrCreate returns the id of the rarity with this exact name, creating it when absent.
func (r *RarityRepository) GetOrCreate(ctx context.Context, name string) (int64, error) {
	queries, err := requireQueries(r.ctx, "rarity")
	if err != nil {
		return 0, err
	}

	row, err := queries.GetRarityByName(ctx, name)
	switch {
	case err == nil:
		return row.ID, nil
	case isNoRows(err):
		res, err := queries.InsertRarity(ctx, name)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	default:
		return 0, err
	}
}

func (r *RarityRepository) FindAll(ctx context.Context) ([]RarityRecord, error) {
	queries, err := requireQueries(r.ctx, "rarity")
	if err != nil {
		return nil, err
	}

	rows, err := queries.ListRarities(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]RarityRecord, 0, len(rows))
	for _, row := range rows {
		result = append(result, RarityRecord{ID: row.ID, Name: row.Name})
	}
	return result, nil
}

type CardTypeRepository struct {
	ctx *Context
}

func NewCardTypeRepository(dbCtx *Context) *CardTypeRepository {
	return &CardTypeRepository{ctx: dbCtx}
}

// GetOrCreate returns the id of the (main, sub) pair, creating it when absent.
func (r *CardTypeRepository) GetOrCreate(ctx context.Context, cardType catalog.CardType) (int64, error) {
	queries, err := requireQueries(r.ctx, "card type")
	if err != nil {
		return 0, err
	}

	row, err := queries.GetCardType(ctx, sqldb.GetCardTypeParams{MainType: cardType.Main, SubType: cardType.Sub})
	switch {
	case err == nil:
		return row.ID, nil
	case isNoRows(err):
		res, err := queries.InsertCardType(ctx, sqldb.InsertCardTypeParams{MainType: cardType.Main, SubType: cardType.Sub})
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	default:
		return 0, err
	}
}
