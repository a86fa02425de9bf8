package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"restopos-api/internal/models"
)

func TestShiftRepository_FindOpenEntry(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	repo := NewShiftRepository(db, zap.NewNop())

	mock.ExpectQuery(q("FROM pos_opening_entries")).
		WithArgs("Main Till", "cashier", models.OpeningStatusOpen, models.DocStatusSubmitted).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("POS-OPE-2026-00003"))
	name, err := repo.FindOpenEntry(ctx, "Main Till", "cashier")
	require.NoError(t, err)
	assert.Equal(t, "POS-OPE-2026-00003", name)

	mock.ExpectQuery(q("FROM pos_opening_entries")).
		WillReturnRows(sqlmock.NewRows([]string{"name"}))
	name, err = repo.FindOpenEntry(ctx, "Main Till", "cashier")
	require.NoError(t, err)
	assert.Empty(t, name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepository_CreateOpeningEntry(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewShiftRepository(db, zap.NewNop())

	start := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	entry := &models.OpeningEntry{
		POSProfile:      "Main Till",
		User:            "cashier",
		Company:         "Farm Fresh",
		PeriodStartDate: start,
		BalanceDetails:  []models.BalanceDetail{{ModeOfPayment: "Cash", OpeningAmount: 500}},
	}

	mock.ExpectBegin()
	expectNextName(mock, "POS-OPE-2026-", 7)
	mock.ExpectExec(q("INSERT INTO pos_opening_entries")).
		WithArgs("POS-OPE-2026-00007", "Main Till", "cashier", "Farm Fresh", start,
			models.OpeningStatusOpen, models.DocStatusSubmitted).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("INSERT INTO pos_opening_balance_details")).
		WithArgs("POS-OPE-2026-00007", 1, "Cash", 500.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	name, err := repo.CreateOpeningEntry(context.Background(), entry)
	require.NoError(t, err)
	assert.Equal(t, "POS-OPE-2026-00007", name)
	assert.Equal(t, name, entry.Name)
	assert.Equal(t, models.OpeningStatusOpen, entry.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepository_CreateOpeningEntry_RollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewShiftRepository(db, zap.NewNop())

	mock.ExpectBegin()
	expectNextName(mock, "POS-OPE-2026-", 8)
	mock.ExpectExec(q("INSERT INTO pos_opening_entries")).WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	_, err := repo.CreateOpeningEntry(context.Background(), &models.OpeningEntry{
		PeriodStartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepository_GetOpeningEntry(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	repo := NewShiftRepository(db, zap.NewNop())
	start := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(q("FROM pos_opening_entries")).
		WithArgs("POS-OPE-2026-00001").
		WillReturnRows(sqlmock.NewRows([]string{"name", "pos_profile", "user_name", "company", "period_start_date", "status", "pos_closing_entry", "docstatus"}).
			AddRow("POS-OPE-2026-00001", "Main Till", "cashier", "Farm Fresh", start, "Open", nil, 1))
	mock.ExpectQuery(q("FROM pos_opening_balance_details")).
		WithArgs("POS-OPE-2026-00001").
		WillReturnRows(sqlmock.NewRows([]string{"mode_of_payment", "opening_amount"}).AddRow("Cash", 250.5))

	e, err := repo.GetOpeningEntry(ctx, "POS-OPE-2026-00001")
	require.NoError(t, err)
	assert.Equal(t, "cashier", e.User)
	assert.Nil(t, e.POSClosingEntry)
	assert.Equal(t, []models.BalanceDetail{{ModeOfPayment: "Cash", OpeningAmount: 250.5}}, e.BalanceDetails)

	mock.ExpectQuery(q("FROM pos_opening_entries")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)
	_, err = repo.GetOpeningEntry(ctx, "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepository_GetShiftSummary(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewShiftRepository(db, zap.NewNop())

	mock.ExpectQuery(q("COALESCE(SUM(grand_total), 0), COUNT(name)")).
		WithArgs("POS-OPE-2026-00001", models.DocStatusSubmitted).
		WillReturnRows(sqlmock.NewRows([]string{"total", "count"}).AddRow(1234.5, 9))

	s, err := repo.GetShiftSummary(context.Background(), "POS-OPE-2026-00001")
	require.NoError(t, err)
	assert.Equal(t, &models.ShiftSummary{OpeningEntry: "POS-OPE-2026-00001", TotalSales: 1234.5, Count: 9}, s)
	assert.NoError(t, mock.ExpectationsWereMet())
}
