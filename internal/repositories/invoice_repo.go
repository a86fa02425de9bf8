package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"restopos-api/internal/models"
)

type InvoiceRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

const freeTableQuery = `UPDATE restaurant_tables SET status = ? WHERE name = ? AND NOT EXISTS (
  SELECT 1 FROM kitchen_order_tickets WHERE table_name = ? AND company = ? AND docstatus = ?)`

func NewInvoiceRepository(db *sqlx.DB, log *zap.Logger) *InvoiceRepository {
	return &InvoiceRepository{db: db, log: log}
}

var _ Invoices = (*InvoiceRepository)(nil)

// CreateInvoice inserts a submitted invoice with its items and payments, then
// submits the consumed KOTs and frees the table. ErrConflict means one of the
// KOTs was already consumed by another invoice.
func (r *InvoiceRepository) CreateInvoice(ctx context.Context, inv *models.Invoice, kotNames []string) (string, error) {
	r.log.Info("CreateInvoice START",
		zap.String("table", inv.RestaurantTable),
		zap.String("pos_opening_entry", inv.POSOpeningEntry),
		zap.Strings("kots", kotNames),
	)

	var name string
	err := withTx(ctx, r.db, r.log, "CreateInvoice", func(tx *sqlx.Tx) error {
		var err error
		name, err = nextName(ctx, tx, SeriesInvoice, inv.PostingDate)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, tx.Rebind(`
INSERT INTO pos_invoices
(name, pos_opening_entry, pos_profile, customer, company, restaurant_table, posting_date, update_stock,
 total_qty, net_total, grand_total, paid_amount, change_amount, docstatus)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
			name, inv.POSOpeningEntry, inv.POSProfile, inv.Customer, inv.Company, emptyToNull(inv.RestaurantTable),
			inv.PostingDate, boolToSmallint(inv.UpdateStock),
			inv.TotalQty, inv.NetTotal, inv.GrandTotal, inv.PaidAmount, inv.ChangeAmount, models.DocStatusSubmitted,
		)
		if err != nil {
			return fmt.Errorf("insert invoice: %w", err)
		}

		for i, it := range inv.Items {
			_, err = tx.ExecContext(ctx, tx.Rebind(`
INSERT INTO pos_invoice_items
(parent, idx, item_code, item_name, qty, price_list_rate, discount_percentage, rate, amount, warehouse, cost_center)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
				name, i+1, it.ItemCode, it.ItemName, it.Qty, it.PriceListRate, it.DiscountPercentage,
				it.Rate, it.Amount, emptyToNull(it.Warehouse), emptyToNull(it.CostCenter),
			)
			if err != nil {
				return fmt.Errorf("insert invoice item: %w", err)
			}
		}

		for i, p := range inv.Payments {
			_, err = tx.ExecContext(ctx, tx.Rebind(`
INSERT INTO pos_invoice_payments (parent, idx, mode_of_payment, account, amount)
VALUES (?, ?, ?, ?, ?)`), name, i+1, p.ModeOfPayment, emptyToNull(p.Account), p.Amount)
			if err != nil {
				return fmt.Errorf("insert invoice payment: %w", err)
			}
		}

		if len(kotNames) > 0 {
			q, args, err := sqlx.In(`UPDATE kitchen_order_tickets SET docstatus = ? WHERE docstatus = ? AND name IN (?)`,
				models.DocStatusSubmitted, models.DocStatusDraft, kotNames)
			if err != nil {
				return err
			}
			res, err := tx.ExecContext(ctx, tx.Rebind(q), args...)
			if err != nil {
				return fmt.Errorf("submit kots: %w", err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if n != int64(len(kotNames)) {
				return ErrConflict
			}
		}

		// A ticket fired after the tickets were listed keeps the table occupied.
		if inv.RestaurantTable != "" {
			_, err = tx.ExecContext(ctx, tx.Rebind(freeTableQuery),
				models.TableStatusAvailable, inv.RestaurantTable,
				inv.RestaurantTable, inv.Company, models.DocStatusDraft)
		}
		return err
	})
	if err != nil {
		return "", err
	}

	inv.Name = name
	return name, nil
}
