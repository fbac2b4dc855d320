package sqldb

import (
	"context"
	"database/sql"
)

const getSeriesByName = `SELECT id, name, prefix, release_date FROM series WHERE name = ?`

func (q *Queries) GetSeriesByName(ctx context.Context, name string) (Series, error) {
	row := q.db.QueryRowContext(ctx, getSeriesByName, name)
	var i Series
	err := row.Scan(&i.ID, &i.Name, &i.Prefix, &i.ReleaseDate)
	return i, err
}

const getSeriesByID = `SELECT id, name, prefix, release_date FROM series WHERE id = ?`

func (q *Queries) GetSeriesByID(ctx context.Context, id int64) (Series, error) {
	row := q.db.QueryRowContext(ctx, getSeriesByID, id)
	var i Series
	err := row.Scan(&i.ID, &i.Name, &i.Prefix, &i.ReleaseDate)
	return i, err
}

const insertSeries = `INSERT INTO series (name, prefix, release_date) VALUES (?, ?, ?)`

type InsertSeriesParams struct {
	Name        string
	Prefix      sql.NullString
	ReleaseDate string
}

func (q *Queries) InsertSeries(ctx context.Context, arg InsertSeriesParams) (sql.Result, error) {
	return q.db.ExecContext(ctx, insertSeries, arg.Name, arg.Prefix, arg.ReleaseDate)
}

const updateSeriesPrefix = `UPDATE series SET prefix = ? WHERE id = ? AND (prefix IS NULL OR prefix = '')`

type UpdateSeriesPrefixParams struct {
	Prefix sql.NullString
	ID     int64
}

func (q *Queries) UpdateSeriesPrefix(ctx context.Context, arg UpdateSeriesPrefixParams) error {
	_, err := q.db.ExecContext(ctx, updateSeriesPrefix, arg.Prefix, arg.ID)
	return err
}

const seriesWithCountColumns = `SELECT s.id, s.name, s.prefix, s.release_date, COUNT(c.number) AS card_count
FROM series s
LEFT JOIN cards c ON c.series_id = s.id
`

const listSeriesWithCounts = seriesWithCountColumns + `GROUP BY s.id
ORDER BY s.release_date, s.id`

type ListSeriesWithCountsRow struct {
	ID          int64
	Name        string
	Prefix      sql.NullString
	ReleaseDate string
	CardCount   int64
}

func (q *Queries) ListSeriesWithCounts(ctx context.Context) ([]ListSeriesWithCountsRow, error) {
	rows, err := q.db.QueryContext(ctx, listSeriesWithCounts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListSeriesWithCountsRow
	for rows.Next() {
		var i ListSeriesWithCountsRow
		if err := rows.Scan(&i.ID, &i.Name, &i.Prefix, &i.ReleaseDate, &i.CardCount); err != nil {
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

const getSeriesWithCountByID = seriesWithCountColumns + `WHERE s.id = ?
GROUP BY s.id`

func (q *Queries) GetSeriesWithCountByID(ctx context.Context, id int64) (ListSeriesWithCountsRow, error) {
	row := q.db.QueryRowContext(ctx, getSeriesWithCountByID, id)
	var i ListSeriesWithCountsRow
	err := row.Scan(&i.ID, &i.Name, &i.Prefix, &i.ReleaseDate, &i.CardCount)
	return i, err
}

const getSeriesWithCountByName = seriesWithCountColumns + `WHERE s.name = ?
GROUP BY s.id`

func (q *Queries) GetSeriesWithCountByName(ctx context.Context, name string) (ListSeriesWithCountsRow, error) {
	row := q.db.QueryRowContext(ctx, getSeriesWithCountByName, name)
	var i ListSeriesWithCountsRow
	err := row.Scan(&i.ID, &i.Name, &i.Prefix, &i.ReleaseDate, &i.CardCount)
	return i, err
}
