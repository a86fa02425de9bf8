package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"restopos-api/internal/models"
)

type KOTRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewKOTRepository(db *sqlx.DB, log *zap.Logger) *KOTRepository {
	return &KOTRepository{db: db, log: log}
}

var _ KOTs = (*KOTRepository)(nil)

// CreateKOT inserts a draft ticket with its items and marks the table Occupied.
func (r *KOTRepository) CreateKOT(ctx context.Context, kot *models.KOT) (string, error) {
	r.log.Info("CreateKOT START",
		zap.String("table", kot.Table),
		zap.String("company", kot.Company),
		zap.Int("items", len(kot.Items)),
	)

	var name string
	err := withTx(ctx, r.db, r.log, "CreateKOT", func(tx *sqlx.Tx) error {
		var err error
		name, err = nextName(ctx, tx, SeriesKOT, kot.OrderTime)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, tx.Rebind(`
INSERT INTO kitchen_order_tickets (name, table_name, company, customer_name, order_time, docstatus)
VALUES (?, ?, ?, ?, ?, ?)`),
			name, kot.Table, kot.Company, emptyToNull(kot.CustomerName), kot.OrderTime, models.DocStatusDraft,
		)
		if err != nil {
			return fmt.Errorf("insert kot: %w", err)
		}

		for i, it := range kot.Items {
			_, err = tx.ExecContext(ctx, tx.Rebind(`
INSERT INTO kot_items (parent, idx, item_code, item_name, qty, rate, discount_percentage, description)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
				name, i+1, it.ItemCode, it.ItemName, it.Qty, it.Rate, it.DiscountPercentage, emptyToNull(it.Description),
			)
			if err != nil {
				return fmt.Errorf("insert kot item: %w", err)
			}
		}

		_, err = tx.ExecContext(ctx, tx.Rebind(`UPDATE restaurant_tables SET status = ? WHERE name = ?`),
			models.TableStatusOccupied, kot.Table)
		return err
	})
	if err != nil {
		return "", err
	}

	kot.Name = name
	kot.DocStatus = models.DocStatusDraft
	return name, nil
}

func (r *KOTRepository) ListTableOrderItems(ctx context.Context, table, company string) ([]models.TableOrderItem, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(`
SELECT ki.item_code, ki.item_name, ki.qty, ki.rate, ki.discount_percentage, ki.description
FROM kot_items ki
INNER JOIN kitchen_order_tickets k ON k.name = ki.parent
WHERE k.table_name = ? AND k.company = ? AND k.docstatus = ?
ORDER BY k.order_time ASC, k.name ASC, ki.idx ASC`), table, company, models.DocStatusDraft)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.TableOrderItem{}
	for rows.Next() {
		var it models.TableOrderItem
		var itemName, note sql.NullString
		if err := rows.Scan(&it.ItemCode, &itemName, &it.Qty, &it.Rate, &it.DiscountPercentage, &note); err != nil {
			return nil, err
		}
		it.ItemName = itemName.String
		if it.ItemName == "" {
			it.ItemName = it.ItemCode
		}
		it.Note = nullStringToPtr(note)
		it.IsFired = 1
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *KOTRepository) ListDraftKOTs(ctx context.Context, table, company string) ([]models.KOTRef, error) {
	kots := []models.KOTRef{}
	err := r.db.SelectContext(ctx, &kots, r.db.Rebind(`
SELECT name, customer_name
FROM kitchen_order_tickets
WHERE table_name = ? AND company = ? AND docstatus = ?
ORDER BY order_time ASC, name ASC`), table, company, models.DocStatusDraft)
	if err != nil {
		return nil, err
	}
	return kots, nil
}

// ListKOTItems returns the items of the given tickets, grouped in ticket order.
func (r *KOTRepository) ListKOTItems(ctx context.Context, kotNames []string) ([]models.KOTItem, error) {
	if len(kotNames) == 0 {
		return []models.KOTItem{}, nil
	}

	query, args, err := sqlx.In(`
SELECT ki.parent, ki.item_code, COALESCE(ki.item_name, '') AS item_name, ki.qty, ki.rate,
       ki.discount_percentage, COALESCE(ki.description, '') AS description
FROM kot_items ki
INNER JOIN kitchen_order_tickets k ON k.name = ki.parent
WHERE ki.parent IN (?)
ORDER BY k.order_time ASC, k.name ASC, ki.idx ASC`, kotNames)
	if err != nil {
		return nil, err
	}

	items := []models.KOTItem{}
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return items, nil
}
