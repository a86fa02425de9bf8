package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"restopos-api/internal/models"
)

type ClosingRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewClosingRepository(db *sqlx.DB, log *zap.Logger) *ClosingRepository {
	return &ClosingRepository{db: db, log: log}
}

var _ Closings = (*ClosingRepository)(nil)

func (r *ClosingRepository) ListSubmittedInvoices(ctx context.Context, openingEntry string) ([]models.InvoiceSummary, error) {
	invoices := []models.InvoiceSummary{}
	err := r.db.SelectContext(ctx, &invoices, r.db.Rebind(`
SELECT name, grand_total, net_total, total_qty, posting_date
FROM pos_invoices
WHERE pos_opening_entry = ? AND docstatus = ?
ORDER BY name ASC`), openingEntry, models.DocStatusSubmitted)
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *ClosingRepository) SumPaymentsByMode(ctx context.Context, openingEntry string) ([]models.ModeTotal, error) {
	totals := []models.ModeTotal{}
	err := r.db.SelectContext(ctx, &totals, r.db.Rebind(`
SELECT p.mode_of_payment AS mode_of_payment, SUM(p.amount) AS total_amount
FROM pos_invoice_payments p
INNER JOIN pos_invoices inv ON p.parent = inv.name
WHERE inv.pos_opening_entry = ? AND inv.docstatus = ?
GROUP BY p.mode_of_payment
ORDER BY p.mode_of_payment ASC`), openingEntry, models.DocStatusSubmitted)
	if err != nil {
		return nil, err
	}
	return totals, nil
}

// CreateClosingEntry submits the closing record and closes its opening entry.
// ErrConflict means the opening entry was no longer open.
func (r *ClosingRepository) CreateClosingEntry(ctx context.Context, c *models.ClosingEntry) (string, error) {
	r.log.Info("CreateClosingEntry START",
		zap.String("pos_opening_entry", c.POSOpeningEntry),
		zap.Int("invoices", len(c.Transactions)),
	)

	var name string
	err := withTx(ctx, r.db, r.log, "CreateClosingEntry", func(tx *sqlx.Tx) error {
		var err error
		name, err = nextName(ctx, tx, SeriesClosingEntry, c.PeriodEndDate)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, tx.Rebind(`
INSERT INTO pos_closing_entries
(name, pos_opening_entry, pos_profile, user_name, company, period_start_date, period_end_date,
 grand_total, net_total, total_quantity, docstatus)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
			name, c.POSOpeningEntry, c.POSProfile, c.User, c.Company, c.PeriodStartDate, c.PeriodEndDate,
			c.GrandTotal, c.NetTotal, c.TotalQuantity, models.DocStatusSubmitted,
		)
		if err != nil {
			return fmt.Errorf("insert closing entry: %w", err)
		}

		for i, t := range c.Transactions {
			_, err = tx.ExecContext(ctx, tx.Rebind(`
INSERT INTO pos_closing_transactions (parent, idx, pos_invoice, grand_total, posting_date)
VALUES (?, ?, ?, ?, ?)`), name, i+1, t.POSInvoice, t.GrandTotal, t.PostingDate)
			if err != nil {
				return fmt.Errorf("insert closing transaction: %w", err)
			}
		}

		for i, p := range c.Reconciliation {
			_, err = tx.ExecContext(ctx, tx.Rebind(`
INSERT INTO pos_closing_reconciliations
(parent, idx, mode_of_payment, opening_amount, expected_amount, closing_amount)
VALUES (?, ?, ?, ?, ?, ?)`), name, i+1, p.ModeOfPayment, p.OpeningAmount, p.ExpectedAmount, p.ClosingAmount)
			if err != nil {
				return fmt.Errorf("insert payment reconciliation: %w", err)
			}
		}

		return execOne(ctx, tx, `
UPDATE pos_opening_entries SET status = ?, pos_closing_entry = ?
WHERE name = ? AND status = ?`,
			models.OpeningStatusClosed, name, c.POSOpeningEntry, models.OpeningStatusOpen,
		)
	})
	if err != nil {
		return "", err
	}

	c.Name = name
	return name, nil
}
