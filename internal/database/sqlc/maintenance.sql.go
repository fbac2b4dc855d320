package sqldb

import "context"

const deleteAllCards = `DELETE FROM cards`

func (q *Queries) DeleteAllCards(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllCards)
	return err
}

const deleteAllSeries = `DELETE FROM series`

func (q *Queries) DeleteAllSeries(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllSeries)
	return err
}

const deleteAllCardTypes = `DELETE FROM card_types`

func (q *Queries) DeleteAllCardTypes(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllCardTypes)
	return err
}

const resetCollection = `UPDATE cards SET in_collection = 0, updated_at = CURRENT_TIMESTAMP`

func (q *Queries) ResetCollection(ctx context.Context) (int64, error) {
	result, err := q.db.ExecContext(ctx, resetCollection)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
