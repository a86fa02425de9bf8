package repositories

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"restopos-api/internal/models"
)

func TestTableRepository_ListTables(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTableRepository(db, zap.NewNop())

	mock.ExpectQuery(q("FROM restaurant_tables")).
		WithArgs("Farm Fresh").
		WillReturnRows(sqlmock.NewRows([]string{"name", "status", "company"}).
			AddRow("T1", "Available", "Farm Fresh").
			AddRow("T2", "Occupied", "Farm Fresh"))

	tables, err := repo.ListTables(context.Background(), "Farm Fresh")
	require.NoError(t, err)
	assert.Equal(t, []models.RestaurantTable{
		{Name: "T1", Status: "Available", Company: "Farm Fresh"},
		{Name: "T2", Status: "Occupied", Company: "Farm Fresh"},
	}, tables)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableRepository_GetTable(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTableRepository(db, zap.NewNop())

	mock.ExpectQuery(q("FROM restaurant_tables WHERE name = ?")).
		WithArgs("T9").
		WillReturnRows(sqlmock.NewRows([]string{"name", "status", "company"}))

	_, err := repo.GetTable(context.Background(), "T9")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestTableRepository_UpdateStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTableRepository(db, zap.NewNop())

	mock.ExpectExec(q("UPDATE restaurant_tables SET status = ? WHERE name = ?")).
		WithArgs("Dirty", "T1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.UpdateStatus(context.Background(), "T1", "Dirty"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableRepository_TransferOrders(t *testing.T) {
	t.Run("moves draft tickets", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTableRepository(db, zap.NewNop())

		mock.ExpectBegin()
		mock.ExpectExec(q("WHERE name = ? AND company = ? AND status <> ?")).
			WithArgs(models.TableStatusOccupied, "T2", "Farm Fresh", models.TableStatusOccupied).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(q("UPDATE kitchen_order_tickets SET table_name = ?")).
			WithArgs("T2", "T1", "Farm Fresh", models.DocStatusDraft).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(q("UPDATE restaurant_tables SET status = ? WHERE name = ?")).
			WithArgs(models.TableStatusAvailable, "T1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		moved, err := repo.TransferOrders(context.Background(), "Farm Fresh", "T1", "T2")
		require.NoError(t, err)
		assert.Equal(t, int64(3), moved)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("target taken meanwhile", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTableRepository(db, zap.NewNop())

		mock.ExpectBegin()
		mock.ExpectExec(q("WHERE name = ? AND company = ? AND status <> ?")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		_, err := repo.TransferOrders(context.Background(), "Farm Fresh", "T1", "T2")
		assert.ErrorIs(t, err, ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
