package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"restopos-api/internal/models"
	"restopos-api/internal/services"
)

type MockShiftService struct {
	mock.Mock
}

func (m *MockShiftService) CheckPOSOpening(ctx context.Context, user string) (*models.OpeningStatus, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OpeningStatus), args.Error(1)
}

func (m *MockShiftService) CreateOpeningEntry(ctx context.Context, user, posProfile string, amount float64) (string, error) {
	args := m.Called(ctx, user, posProfile, amount)
	return args.String(0), args.Error(1)
}

func (m *MockShiftService) GetShiftSummary(ctx context.Context, user, openingEntry string) (*models.ShiftSummary, error) {
	args := m.Called(ctx, user, openingEntry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShiftSummary), args.Error(1)
}

func (m *MockShiftService) ClosePOSOpeningEntry(ctx context.Context, user, openingEntry string) (string, error) {
	args := m.Called(ctx, user, openingEntry)
	return args.String(0), args.Error(1)
}

type MockMenuService struct {
	mock.Mock
}

func (m *MockMenuService) GetPOSData(ctx context.Context, user string) (*models.POSData, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.POSData), args.Error(1)
}

func (m *MockMenuService) GetItemByBarcode(ctx context.Context, user, barcode string) (*models.Item, error) {
	args := m.Called(ctx, user, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

type MockTableService struct {
	mock.Mock
}

func (m *MockTableService) UpdateTableStatus(ctx context.Context, table, status string) (bool, error) {
	args := m.Called(ctx, table, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockTableService) GetTableOrders(ctx context.Context, user, table string) ([]models.TableOrderItem, error) {
	args := m.Called(ctx, user, table)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TableOrderItem), args.Error(1)
}

func (m *MockTableService) TransferTable(ctx context.Context, user, oldTable, newTable string) (bool, error) {
	args := m.Called(ctx, user, oldTable, newTable)
	return args.Bool(0), args.Error(1)
}

type MockKOTService struct {
	mock.Mock
}

func (m *MockKOTService) CreateKOT(ctx context.Context, user, table string, items []models.KOTItemInput, customerName string) (string, error) {
	args := m.Called(ctx, user, table, items, customerName)
	return args.String(0), args.Error(1)
}

type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) CreateInvoice(ctx context.Context, user, table string, req services.InvoiceRequest) (string, error) {
	args := m.Called(ctx, user, table, req)
	return args.String(0), args.Error(1)
}
