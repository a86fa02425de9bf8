package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	SeriesOpeningEntry = "POS-OPE"
	SeriesClosingEntry = "POS-CLO"
	SeriesInvoice      = "ACC-PSINV"
	SeriesKOT          = "KOT"
)

const (
	bumpSeriesMySQL    = `INSERT INTO naming_series (name, current) VALUES (?, 1) ON DUPLICATE KEY UPDATE current = current + 1`
	bumpSeriesPostgres = `INSERT INTO naming_series (name, current) VALUES (?, 1) ON CONFLICT (name) DO UPDATE SET current = naming_series.current + 1`
)

func bumpSeriesQuery(driver string) string {
	if driver == "pgx" || driver == "postgres" {
		return bumpSeriesPostgres
	}
	return bumpSeriesMySQL
}

// nextName bumps the yearly counter for prefix inside tx and returns
// e.g. "KOT-2026-00042". The upsert creates the series on first use and
// holds the row lock until commit, so concurrent first names of a year
// serialize instead of colliding.
func nextName(ctx context.Context, tx *sqlx.Tx, prefix string, at time.Time) (string, error) {
	key := fmt.Sprintf("%s-%d-", prefix, at.Year())

	if _, err := tx.ExecContext(ctx, tx.Rebind(bumpSeriesQuery(tx.DriverName())), key); err != nil {
		return "", fmt.Errorf("bump series %s: %w", key, err)
	}

	var current int
	if err := tx.QueryRowContext(ctx, tx.Rebind(`SELECT current FROM naming_series WHERE name = ?`), key).Scan(&current); err != nil {
		return "", fmt.Errorf("read series %s: %w", key, err)
	}

	return fmt.Sprintf("%s%05d", key, current), nil
}
