package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"restopos-api/internal/models"
)

type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) GetUserByToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockProfiles struct {
	mock.Mock
}

func (m *MockProfiles) GetAssignedProfileName(ctx context.Context, user string) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockProfiles) GetProfile(ctx context.Context, name string) (*models.POSProfile, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.POSProfile), args.Error(1)
}

func (m *MockProfiles) IsUserAssigned(ctx context.Context, profile, user string) (bool, error) {
	args := m.Called(ctx, profile, user)
	return args.Bool(0), args.Error(1)
}

func (m *MockProfiles) GetModeOfPaymentAccount(ctx context.Context, mode, company string) (string, error) {
	args := m.Called(ctx, mode, company)
	return args.String(0), args.Error(1)
}

type MockShifts struct {
	mock.Mock
}

func (m *MockShifts) FindOpenEntry(ctx context.Context, profile, user string) (string, error) {
	args := m.Called(ctx, profile, user)
	return args.String(0), args.Error(1)
}

func (m *MockShifts) CreateOpeningEntry(ctx context.Context, entry *models.OpeningEntry) (string, error) {
	args := m.Called(ctx, entry)
	return args.String(0), args.Error(1)
}

func (m *MockShifts) GetOpeningEntry(ctx context.Context, name string) (*models.OpeningEntry, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OpeningEntry), args.Error(1)
}

func (m *MockShifts) GetShiftSummary(ctx context.Context, openingEntry string) (*models.ShiftSummary, error) {
	args := m.Called(ctx, openingEntry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShiftSummary), args.Error(1)
}

type MockClosings struct {
	mock.Mock
}

func (m *MockClosings) ListSubmittedInvoices(ctx context.Context, openingEntry string) ([]models.InvoiceSummary, error) {
	args := m.Called(ctx, openingEntry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InvoiceSummary), args.Error(1)
}

func (m *MockClosings) SumPaymentsByMode(ctx context.Context, openingEntry string) ([]models.ModeTotal, error) {
	args := m.Called(ctx, openingEntry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ModeTotal), args.Error(1)
}

func (m *MockClosings) CreateClosingEntry(ctx context.Context, closing *models.ClosingEntry) (string, error) {
	args := m.Called(ctx, closing)
	return args.String(0), args.Error(1)
}

type MockMenu struct {
	mock.Mock
}

func (m *MockMenu) ListSalesItems(ctx context.Context, priceList string) ([]models.Item, error) {
	args := m.Called(ctx, priceList)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockMenu) GetItem(ctx context.Context, itemCode, priceList string) (*models.Item, error) {
	args := m.Called(ctx, itemCode, priceList)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockMenu) FindItemCodeByBarcode(ctx context.Context, barcode string) (string, error) {
	args := m.Called(ctx, barcode)
	return args.String(0), args.Error(1)
}

type MockTables struct {
	mock.Mock
}

func (m *MockTables) ListTables(ctx context.Context, company string) ([]models.RestaurantTable, error) {
	args := m.Called(ctx, company)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RestaurantTable), args.Error(1)
}

func (m *MockTables) GetTable(ctx context.Context, name string) (*models.RestaurantTable, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RestaurantTable), args.Error(1)
}

func (m *MockTables) UpdateStatus(ctx context.Context, name, status string) error {
	args := m.Called(ctx, name, status)
	return args.Error(0)
}

func (m *MockTables) TransferOrders(ctx context.Context, company, oldTable, newTable string) (int64, error) {
	args := m.Called(ctx, company, oldTable, newTable)
	return args.Get(0).(int64), args.Error(1)
}

type MockCustomers struct {
	mock.Mock
}

func (m *MockCustomers) Exists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomers) Create(ctx context.Context, c *models.Customer) (string, error) {
	args := m.Called(ctx, c)
	return args.String(0), args.Error(1)
}

type MockKOTs struct {
	mock.Mock
}

func (m *MockKOTs) CreateKOT(ctx context.Context, kot *models.KOT) (string, error) {
	args := m.Called(ctx, kot)
	return args.String(0), args.Error(1)
}

func (m *MockKOTs) ListTableOrderItems(ctx context.Context, table, company string) ([]models.TableOrderItem, error) {
	args := m.Called(ctx, table, company)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TableOrderItem), args.Error(1)
}

func (m *MockKOTs) ListDraftKOTs(ctx context.Context, table, company string) ([]models.KOTRef, error) {
	args := m.Called(ctx, table, company)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.KOTRef), args.Error(1)
}

func (m *MockKOTs) ListKOTItems(ctx context.Context, kotNames []string) ([]models.KOTItem, error) {
	args := m.Called(ctx, kotNames)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.KOTItem), args.Error(1)
}

type MockInvoices struct {
	mock.Mock
}

func (m *MockInvoices) CreateInvoice(ctx context.Context, inv *models.Invoice, kotNames []string) (string, error) {
	args := m.Called(ctx, inv, kotNames)
	return args.String(0), args.Error(1)
}
