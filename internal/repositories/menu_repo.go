package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"restopos-api/internal/models"
)

type MenuRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewMenuRepository(db *sqlx.DB, log *zap.Logger) *MenuRepository {
	return &MenuRepository{db: db, log: log}
}

var _ Menu = (*MenuRepository)(nil)

// The price-list rate wins over the item's standard rate when one exists.
const itemSelect = `
SELECT
    i.item_code, i.item_name, i.image,
    COALESCE((SELECT ip.price_list_rate FROM item_prices ip
              WHERE ip.item_code = i.item_code AND ip.price_list = ?
              LIMIT 1), i.standard_rate) AS standard_rate
FROM items i`

func (r *MenuRepository) ListSalesItems(ctx context.Context, priceList string) ([]models.Item, error) {
	r.log.Info("ListSalesItems START", zap.String("price_list", priceList))

	items := []models.Item{}
	err := r.db.SelectContext(ctx, &items,
		r.db.Rebind(itemSelect+` WHERE i.disabled = 0 AND i.is_sales_item = 1 ORDER BY i.item_name ASC`),
		priceList,
	)
	if err != nil {
		r.log.Error("items query error", zap.Error(err))
		return nil, err
	}
	return items, nil
}

func (r *MenuRepository) GetItem(ctx context.Context, itemCode, priceList string) (*models.Item, error) {
	var item models.Item
	err := r.db.GetContext(ctx, &item, r.db.Rebind(itemSelect+` WHERE i.item_code = ?`), priceList, itemCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindItemCodeByBarcode returns "" when the barcode is unknown.
func (r *MenuRepository) FindItemCodeByBarcode(ctx context.Context, barcode string) (string, error) {
	var code string
	err := r.db.GetContext(ctx, &code, r.db.Rebind(`SELECT parent FROM item_barcodes WHERE barcode = ?`), barcode)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return code, nil
}
