package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"restopos-api/internal/models"
)

type CustomerRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewCustomerRepository(db *sqlx.DB, log *zap.Logger) *CustomerRepository {
	return &CustomerRepository{db: db, log: log}
}

var _ Customers = (*CustomerRepository)(nil)

func (r *CustomerRepository) Exists(ctx context.Context, name string) (bool, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM customers WHERE name = ?`), name); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create names the customer after customer_name.
func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) (string, error) {
	r.log.Info("CreateCustomer START", zap.String("customer_name", c.CustomerName))

	c.Name = c.CustomerName
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
INSERT INTO customers (name, customer_name, customer_group, territory)
VALUES (?, ?, ?, ?)`), c.Name, c.CustomerName, c.CustomerGroup, c.Territory)
	if err != nil {
		return "", err
	}
	return c.Name, nil
}
