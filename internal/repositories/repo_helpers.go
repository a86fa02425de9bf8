package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

func nullStringToPtr(s sql.NullString) *string {
	if s.Valid {
		return &s.String
	}
	return nil
}

func emptyToNull(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func boolToSmallint(b bool) int {
	if b {
		return 1
	}
	return 0
}

// withTx runs fn in a transaction, rolling back on error or panic.
func withTx(ctx context.Context, db *sqlx.DB, log *zap.Logger, step string, fn func(tx *sqlx.Tx) error) error {
	t0 := time.Now()

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		log.Error("BeginTx failed", zap.String("step", step), zap.Error(err))
		return fmt.Errorf("%s: begin tx: %w", step, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		log.Error("TX ROLLBACK",
			zap.String("step", step),
			zap.Error(err),
			zap.Duration("elapsed", time.Since(t0)),
			zap.Bool("ctx_done", ctx.Err() != nil),
		)
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("TX COMMIT failed", zap.String("step", step), zap.Error(err))
		return fmt.Errorf("%s: commit: %w", step, err)
	}

	log.Info("TX OK", zap.String("step", step), zap.Duration("elapsed", time.Since(t0)))
	return nil
}

// execOne runs a guarded write and reports ErrConflict unless exactly one row changed.
func execOne(ctx context.Context, tx *sqlx.Tx, query string, args ...interface{}) error {
	res, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n != 1 {
		return ErrConflict
	}
	return nil
}
