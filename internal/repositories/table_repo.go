package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"restopos-api/internal/models"
)

type TableRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewTableRepository(db *sqlx.DB, log *zap.Logger) *TableRepository {
	return &TableRepository{db: db, log: log}
}

var _ Tables = (*TableRepository)(nil)

func (r *TableRepository) ListTables(ctx context.Context, company string) ([]models.RestaurantTable, error) {
	tables := []models.RestaurantTable{}
	err := r.db.SelectContext(ctx, &tables, r.db.Rebind(`
SELECT name, status, company
FROM restaurant_tables
WHERE company = ?
ORDER BY name ASC`), company)
	if err != nil {
		return nil, err
	}
	return tables, nil
}

// GetTable returns sql.ErrNoRows when the table does not exist.
func (r *TableRepository) GetTable(ctx context.Context, name string) (*models.RestaurantTable, error) {
	var t models.RestaurantTable
	err := r.db.GetContext(ctx, &t, r.db.Rebind(`SELECT name, status, company FROM restaurant_tables WHERE name = ?`), name)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TableRepository) UpdateStatus(ctx context.Context, name, status string) error {
	r.log.Info("UpdateStatus START", zap.String("table", name), zap.String("status", status))

	_, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE restaurant_tables SET status = ? WHERE name = ?`), status, name)
	return err
}

// TransferOrders moves every draft KOT from oldTable to newTable and swaps
// their statuses. Claiming the target is guarded: ErrConflict means it became
// Occupied meanwhile.
func (r *TableRepository) TransferOrders(ctx context.Context, company, oldTable, newTable string) (int64, error) {
	r.log.Info("TransferOrders START",
		zap.String("company", company),
		zap.String("old_table", oldTable),
		zap.String("new_table", newTable),
	)

	var moved int64
	err := withTx(ctx, r.db, r.log, "TransferOrders", func(tx *sqlx.Tx) error {
		if err := execOne(ctx, tx, `
UPDATE restaurant_tables SET status = ?
WHERE name = ? AND company = ? AND status <> ?`,
			models.TableStatusOccupied, newTable, company, models.TableStatusOccupied,
		); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, tx.Rebind(`
UPDATE kitchen_order_tickets SET table_name = ?
WHERE table_name = ? AND company = ? AND docstatus = ?`),
			newTable, oldTable, company, models.DocStatusDraft,
		)
		if err != nil {
			return fmt.Errorf("move kots: %w", err)
		}
		if moved, err = res.RowsAffected(); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, tx.Rebind(`UPDATE restaurant_tables SET status = ? WHERE name = ?`),
			models.TableStatusAvailable, oldTable)
		return err
	})
	if err != nil {
		return 0, err
	}
	return moved, nil
}
