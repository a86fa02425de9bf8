package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"restopos-api/internal/models"
)

func TestCustomerRepository(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	repo := NewCustomerRepository(db, zap.NewNop())

	mock.ExpectQuery(q("SELECT COUNT(*) FROM customers")).
		WithArgs(models.WalkInCustomer).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	ok, err := repo.Exists(ctx, models.WalkInCustomer)
	require.NoError(t, err)
	assert.False(t, ok)

	mock.ExpectExec(q("INSERT INTO customers")).
		WithArgs(models.WalkInCustomer, models.WalkInCustomer, "Individual", "All Territories").
		WillReturnResult(sqlmock.NewResult(0, 1))
	c := &models.Customer{CustomerName: models.WalkInCustomer, CustomerGroup: "Individual", Territory: "All Territories"}
	name, err := repo.Create(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, models.WalkInCustomer, name)
	assert.Equal(t, name, c.Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}
