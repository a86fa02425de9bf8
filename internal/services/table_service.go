package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"restopos-api/internal/metrics"
	"restopos-api/internal/models"
	"restopos-api/internal/repositories"
)

type TableService struct {
	profiles repositories.Profiles
	tables   repositories.Tables
	kots     repositories.KOTs
	metrics  *metrics.POS
}

func NewTableService(p repositories.Profiles, t repositories.Tables, k repositories.KOTs, m *metrics.POS) *TableService {
	return &TableService{profiles: p, tables: t, kots: k, metrics: m}
}

// UpdateTableStatus returns false without writing when either argument is empty.
func (s *TableService) UpdateTableStatus(ctx context.Context, table, status string) (bool, error) {
	if table == "" || status == "" {
		return false, nil
	}
	if !models.IsValidTableStatus(status) {
		return false, failf(ErrInvalidTableStatus, "Invalid table status %s.", status)
	}
	if _, err := loadTable(ctx, s.tables, table); err != nil {
		return false, err
	}

	if err := s.tables.UpdateStatus(ctx, table, status); err != nil {
		return false, fmt.Errorf("update table status: %w", err)
	}
	return true, nil
}

// GetTableOrders lists the lines already fired for the table.
func (s *TableService) GetTableOrders(ctx context.Context, user, table string) ([]models.TableOrderItem, error) {
	profile, err := assignedProfile(ctx, s.profiles, user)
	if err != nil {
		return nil, err
	}

	items, err := s.kots.ListTableOrderItems(ctx, table, profile.Company)
	if err != nil {
		return nil, fmt.Errorf("list table orders: %w", err)
	}
	return items, nil
}

// TransferTable moves open tickets from oldTable to newTable within the
// profile's company.
func (s *TableService) TransferTable(ctx context.Context, user, oldTable, newTable string) (bool, error) {
	profile, err := assignedProfile(ctx, s.profiles, user)
	if err != nil {
		return false, err
	}
	if oldTable == newTable {
		return false, failf(ErrSameTable, "Cannot transfer table %s to itself.", oldTable)
	}

	for _, name := range []string{oldTable, newTable} {
		t, err := loadTable(ctx, s.tables, name)
		if err != nil {
			return false, err
		}
		if t.Company != profile.Company {
			return false, failf(ErrTableNotFound, "Restaurant Table %s not found.", name)
		}
		if name == newTable && t.Status == models.TableStatusOccupied {
			return false, failf(ErrTableOccupied, "Target table %s is already occupied.", newTable)
		}
	}

	if _, err := s.tables.TransferOrders(ctx, profile.Company, oldTable, newTable); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return false, failf(ErrTableOccupied, "Target table %s is already occupied.", newTable)
		}
		return false, fmt.Errorf("transfer orders: %w", err)
	}
	s.metrics.TableTransferred()
	return true, nil
}

func loadTable(ctx context.Context, tables repositories.Tables, name string) (*models.RestaurantTable, error) {
	t, err := tables.GetTable(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, failf(ErrTableNotFound, "Restaurant Table %s not found.", name)
	}
	if err != nil {
		return nil, fmt.Errorf("get table: %w", err)
	}
	return t, nil
}
