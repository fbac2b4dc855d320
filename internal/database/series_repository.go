package database

import (
	"context"

	sqldb "github.com/cardcol/cardcol/internal/database/sqlc"
)

type SeriesRepository struct {
	ctx *Context
}

func NewSeriesRepository(dbCtx *Context) *SeriesRepository {
	return &SeriesRepository{ctx: dbCtx}
}

// GetOrCreate returns the id of the series with this name, creating it when absent.
// An existing series without a prefix picks up the given one.
func (r *SeriesRepository) GetOrCreate(ctx context.Context, name, prefix, releaseDate string) (int64, error) {
	queries, err := requireQueries(r.ctx, "series")
	if err != nil {
		return 0, err
	}

	row, err := queries.GetSeriesByName(ctx, name)
	switch {
	case err == nil:
		if prefix != "" && !row.Prefix.Valid {
			if err := queries.UpdateSeriesPrefix(ctx, sqldb.UpdateSeriesPrefixParams{Prefix: nullString(prefix), ID: row.ID}); err != nil {
				return 0, err
			}
		}
		return row.ID, nil
	case isNoRows(err):
		res, err := queries.InsertSeries(ctx, sqldb.InsertSeriesParams{
			Name:        name,
			Prefix:      nullString(prefix),
			ReleaseDate: releaseDate,
		})
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	default:
		return 0, err
	}
}

func (r *SeriesRepository) FindByID(ctx context.Context, id int64) (*SeriesRecord, error) {
	queries, err := requireQueries(r.ctx, "series")
	if err != nil {
		return nil, err
	}

	row, err := queries.GetSeriesWithCountByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}

	record := SeriesRecordFromCountRow(row)
	return &record, nil
}

// FindByName looks a series up by exact name, with its derived card count.
func (r *SeriesRepository) FindByName(ctx context.Context, name string) (*SeriesRecord, error) {
	queries, err := requireQueries(r.ctx, "series")
	if err != nil {
		return nil, err
	}

	row, err := queries.GetSeriesWithCountByName(ctx, name)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}

	record := SeriesRecordFromCountRow(row)
	return &record, nil
}

// FindAll lists every series with its derived card count, oldest release first.
func (r *SeriesRepository) FindAll(ctx context.Context) ([]SeriesRecord, error) {
	queries, err := requireQueries(r.ctx, "series")
	if err != nil {
		return nil, err
	}

	rows, err := queries.ListSeriesWithCounts(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]SeriesRecord, 0, len(rows))
	for _, row := range rows {
		result = append(result, SeriesRecordFromCountRow(row))
	}
	return result, nil
}
