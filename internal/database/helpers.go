package database

import (
	"database/sql"
	"errors"
	"fmt"

	sqldb "github.com/cardcol/cardcol/internal/database/sqlc"
)

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func optionalString(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func queriesFromContext(ctx *Context) *sqldb.Queries {
	if ctx == nil {
		return nil
	}
	if ctx.Queries != nil {
		return ctx.Queries
	}
	if ctx.DB == nil {
		return nil
	}
	return sqldb.New(ctx.DB)
}

func requireQueries(ctx *Context, repo string) (*sqldb.Queries, error) {
	queries := queriesFromContext(ctx)
	if queries == nil {
		return nil, fmt.Errorf("%s repository: %w", repo, errMissingContext)
	}
	return queries, nil
}
