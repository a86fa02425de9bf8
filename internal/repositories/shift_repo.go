package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"restopos-api/internal/models"
)

type ShiftRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewShiftRepository(db *sqlx.DB, log *zap.Logger) *ShiftRepository {
	return &ShiftRepository{db: db, log: log}
}

var _ Shifts = (*ShiftRepository)(nil)

func (r *ShiftRepository) FindOpenEntry(ctx context.Context, profile, user string) (string, error) {
	var name string
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`
SELECT name
FROM pos_opening_entries
WHERE pos_profile = ? AND user_name = ? AND status = ? AND docstatus = ?
ORDER BY period_start_date DESC
LIMIT 1`), profile, user, models.OpeningStatusOpen, models.DocStatusSubmitted).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return name, nil
}

// CreateOpeningEntry inserts the entry already submitted, with its balance rows.
func (r *ShiftRepository) CreateOpeningEntry(ctx context.Context, entry *models.OpeningEntry) (string, error) {
	r.log.Info("CreateOpeningEntry START",
		zap.String("pos_profile", entry.POSProfile),
		zap.String("user", entry.User),
	)

	var name string
	err := withTx(ctx, r.db, r.log, "CreateOpeningEntry", func(tx *sqlx.Tx) error {
		var err error
		name, err = nextName(ctx, tx, SeriesOpeningEntry, entry.PeriodStartDate)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, tx.Rebind(`
INSERT INTO pos_opening_entries
(name, pos_profile, user_name, company, period_start_date, status, docstatus)
VALUES (?, ?, ?, ?, ?, ?, ?)`),
			name, entry.POSProfile, entry.User, entry.Company, entry.PeriodStartDate,
			models.OpeningStatusOpen, models.DocStatusSubmitted,
		)
		if err != nil {
			return fmt.Errorf("insert opening entry: %w", err)
		}

		for i, d := range entry.BalanceDetails {
			_, err = tx.ExecContext(ctx, tx.Rebind(`
INSERT INTO pos_opening_balance_details (parent, idx, mode_of_payment, opening_amount)
VALUES (?, ?, ?, ?)`), name, i+1, d.ModeOfPayment, d.OpeningAmount)
			if err != nil {
				return fmt.Errorf("insert balance detail: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	entry.Name = name
	entry.Status = models.OpeningStatusOpen
	entry.DocStatus = models.DocStatusSubmitted
	return name, nil
}

// GetOpeningEntry returns sql.ErrNoRows when the entry does not exist.
func (r *ShiftRepository) GetOpeningEntry(ctx context.Context, name string) (*models.OpeningEntry, error) {
	var e models.OpeningEntry
	var closing sql.NullString
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`
SELECT name, pos_profile, user_name, company, period_start_date, status, pos_closing_entry, docstatus
FROM pos_opening_entries
WHERE name = ?`), name).Scan(
		&e.Name, &e.POSProfile, &e.User, &e.Company, &e.PeriodStartDate, &e.Status, &closing, &e.DocStatus,
	)
	if err != nil {
		return nil, err
	}
	e.POSClosingEntry = nullStringToPtr(closing)

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(`
SELECT mode_of_payment, opening_amount
FROM pos_opening_balance_details
WHERE parent = ?
ORDER BY idx ASC`), name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	e.BalanceDetails = []models.BalanceDetail{}
	for rows.Next() {
		var d models.BalanceDetail
		if err := rows.Scan(&d.ModeOfPayment, &d.OpeningAmount); err != nil {
			return nil, err
		}
		e.BalanceDetails = append(e.BalanceDetails, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &e, nil
}

func (r *ShiftRepository) GetShiftSummary(ctx context.Context, openingEntry string) (*models.ShiftSummary, error) {
	s := models.ShiftSummary{OpeningEntry: openingEntry}
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`
SELECT COALESCE(SUM(grand_total), 0), COUNT(name)
FROM pos_invoices
WHERE pos_opening_entry = ? AND docstatus = ?`), openingEntry, models.DocStatusSubmitted).Scan(&s.TotalSales, &s.Count)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
