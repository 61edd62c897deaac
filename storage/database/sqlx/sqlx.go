// Package sqlxrepos implements the repositories on PostgreSQL with sqlx.
package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// insertReturningID runs a named INSERT ... RETURNING id query.
func insertReturningID(ctx context.Context, db *sqlx.DB, query string, arg interface{}) (int64, error) {
	stmt, err := db.PrepareNamedContext(ctx, query)
	if err != nil {
		return 0, err
	}
	defer func() { _ = stmt.Close() }()

	var id int64
	if err := stmt.GetContext(ctx, &id, arg); err != nil {
		return 0, err
	}
	return id, nil
}

// selectIn runs a query holding an IN (?) clause, expanding the slice args.
func selectIn(ctx context.Context, db *sqlx.DB, dest interface{}, query string, args ...interface{}) error {
	q, inArgs, err := sqlx.In(query, args...)
	if err != nil {
		return errors.Wrap(err, "expanding IN clause")
	}
	return db.SelectContext(ctx, dest, db.Rebind(q), inArgs...)
}

func checkAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
