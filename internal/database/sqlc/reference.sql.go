package sqldb

import (
	"context"
	"database/sql"
)

const getRarityByName = `SELECT id, name FROM rarities WHERE name = ?`

func (q *Queries) GetRarityByName(ctx context.Context, name string) (Rarity, error) {
	row := q.db.QueryRowContext(ctx, getRarityByName, name)
	var i Rarity
	err := row.Scan(&i.ID, &i.Name)
	return i, err
}

const insertRarity = `INSERT INTO rarities (name) VALUES (?)`

func (q *Queries) InsertRarity(ctx context.Context, name string) (sql.Result, error) {
	return q.db.ExecContext(ctx, insertRarity, name)
}

const listRarities = `SELECT id, name FROM rarities ORDER BY id`

func (q *Queries) ListRarities(ctx context.Context) ([]Rarity, error) {
	rows, err := q.db.QueryContext(ctx, listRarities)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Rarity
	for rows.Next() {
		var i Rarity
		if err := rows.Scan(&i.ID, &i.Name); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getCardType = `SELECT id, main_type, sub_type FROM card_types WHERE main_type = ? AND sub_type = ?`

type GetCardTypeParams struct {
	MainType string
	SubType  string
}

func (q *Queries) GetCardType(ctx context.Context, arg GetCardTypeParams) (CardType, error) {
	row := q.db.QueryRowContext(ctx, getCardType, arg.MainType, arg.SubType)
	var i CardType
	err := row.Scan(&i.ID, &i.MainType, &i.SubType)
	return i, err
}

const insertCardType = `INSERT INTO card_types (main_type, sub_type) VALUES (?, ?)`

type InsertCardTypeParams struct {
	MainType string
	SubType  string
}

func (q *Queries) InsertCardType(ctx context.Context, arg InsertCardTypeParams) (sql.Result, error) {
	return q.db.ExecContext(ctx, insertCardType, arg.MainType, arg.SubType)
}
