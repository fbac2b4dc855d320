package sqldb

import (
	"context"
	"database/sql"
)

const cardColumns = `c.number, c.name, c.collection_number, c.in_collection, c.series_id,
       r.id, r.name, t.main_type, t.sub_type
FROM cards c
JOIN rarities r ON r.id = c.rarity_id
JOIN card_types t ON t.id = c.card_type_id
JOIN series s ON s.id = c.series_id`

const cardOrder = `ORDER BY s.release_date, s.id, c.collection_number, c.number`

type CardRow struct {
	Number           string
	Name             string
	CollectionNumber int64
	InCollection     int64
	SeriesID         int64
	RarityID         int64
	RarityName       string
	MainType         string
	SubType          string
}

func scanCardRow(scanner interface{ Scan(dest ...any) error }) (CardRow, error) {
	var i CardRow
	err := scanner.Scan(
		&i.Number,
		&i.Name,
		&i.CollectionNumber,
		&i.InCollection,
		&i.SeriesID,
		&i.RarityID,
		&i.RarityName,
		&i.MainType,
		&i.SubType,
	)
	return i, err
}

func (q *Queries) queryCardRows(ctx context.Context, query string, args ...any) ([]CardRow, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CardRow
	for rows.Next() {
		i, err := scanCardRow(rows)
		if err != nil {
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

const listCards = `SELECT ` + cardColumns + `
` + cardOrder

func (q *Queries) ListCards(ctx context.Context) ([]CardRow, error) {
	return q.queryCardRows(ctx, listCards)
}

const listCardsBySeries = `SELECT ` + cardColumns + `
WHERE c.series_id = ?
` + cardOrder

func (q *Queries) ListCardsBySeries(ctx context.Context, seriesID int64) ([]CardRow, error) {
	return q.queryCardRows(ctx, listCardsBySeries, seriesID)
}

const searchCardsByName = `SELECT ` + cardColumns + `
WHERE instr(lower(c.name), lower(?)) > 0
` + cardOrder

func (q *Queries) SearchCardsByName(ctx context.Context, name string) ([]CardRow, error) {
	return q.queryCardRows(ctx, searchCardsByName, name)
}

const getCardByNumber = `SELECT ` + cardColumns + `
WHERE c.number = ?`

func (q *Queries) GetCardByNumber(ctx context.Context, number string) (CardRow, error) {
	row := q.db.QueryRowContext(ctx, getCardByNumber, number)
	return scanCardRow(row)
}

const insertCard = `INSERT INTO cards (number, name, collection_number, in_collection, series_id, rarity_id, card_type_id)
VALUES (?, ?, ?, 0, ?, ?, ?)
ON CONFLICT(number) DO NOTHING`

type InsertCardParams struct {
	Number           string
	Name             string
	CollectionNumber int64
	SeriesID         int64
	RarityID         int64
	CardTypeID       int64
}

func (q *Queries) InsertCard(ctx context.Context, arg InsertCardParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, insertCard,
		arg.Number,
		arg.Name,
		arg.CollectionNumber,
		arg.SeriesID,
		arg.RarityID,
		arg.CardTypeID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const applyCardDelta = `UPDATE cards
SET in_collection = in_collection + ?, updated_at = CURRENT_TIMESTAMP
WHERE number = ? AND in_collection + ? >= 0
RETURNING in_collection`

type ApplyCardDeltaParams struct {
	Number string
	Delta  int64
}

// ApplyCardDelta returns sql.ErrNoRows when the card is missing or the delta
// would take the count below zero.
func (q *Queries) ApplyCardDelta(ctx context.Context, arg ApplyCardDeltaParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, applyCardDelta, arg.Delta, arg.Number, arg.Delta)
	var inCollection int64
	err := row.Scan(&inCollection)
	return inCollection, err
}

const setCardCount = `UPDATE cards
SET in_collection = ?, updated_at = CURRENT_TIMESTAMP
WHERE number = ?`

type SetCardCountParams struct {
	Number string
	Count  int64
}

func (q *Queries) SetCardCount(ctx context.Context, arg SetCardCountParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, setCardCount, arg.Count, arg.Number)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const sumInCollection = `SELECT COALESCE(SUM(in_collection), 0) FROM cards`

func (q *Queries) SumInCollection(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, sumInCollection)
	var total sql.NullInt64
	err := row.Scan(&total)
	return total.Int64, err
}
