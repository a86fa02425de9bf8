package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"restopos-api/internal/models"
	repoMocks "restopos-api/internal/repositories/mocks"
)

type kotMocks struct {
	profiles  *repoMocks.MockProfiles
	tables    *repoMocks.MockTables
	customers *repoMocks.MockCustomers
	kots      *repoMocks.MockKOTs
}

func newKOTService() (*KOTService, kotMocks) {
	m := kotMocks{&repoMocks.MockProfiles{}, &repoMocks.MockTables{}, &repoMocks.MockCustomers{}, &repoMocks.MockKOTs{}}
	s := NewKOTService(m.profiles, m.tables, m.customers, m.kots, nil)
	s.now = fixedClock
	return s, m
}

func cart() []models.KOTItemInput {
	return []models.KOTItemInput{
		{ItemCode: "ADOBO", ItemName: "Chicken Adobo", Qty: 2, Rate: 180, IsFired: true},
		{ItemCode: "TEA", Qty: 1, Rate: 45, DiscountPercentage: 10, Note: "less ice"},
	}
}

func TestKOTService_CreateKOT(t *testing.T) {
	s, m := newKOTService()
	expectAssigned(m.profiles, "cashier", testProfile())
	m.tables.On("GetTable", ctx, "T1").Return(&models.RestaurantTable{Name: "T1", Company: "Farm Fresh"}, nil)
	m.customers.On("Exists", ctx, models.WalkInCustomer).Return(false, nil)
	m.customers.On("Create", ctx, mock.MatchedBy(func(c *models.Customer) bool {
		return c.CustomerName == models.WalkInCustomer && c.CustomerGroup == "Individual" && c.Territory == "All Territories"
	})).Return(models.WalkInCustomer, nil)
	m.kots.On("CreateKOT", ctx, mock.MatchedBy(func(k *models.KOT) bool {
		return k.Table == "T1" && k.Company == "Farm Fresh" && k.CustomerName == models.WalkInCustomer &&
			k.OrderTime.Equal(fixedNow) && len(k.Items) == 1 &&
			k.Items[0] == models.KOTItem{ItemCode: "TEA", ItemName: "TEA", Qty: 1, Rate: 45, DiscountPercentage: 10, Description: "less ice"}
	})).Return("KOT-2026-00001", nil)

	name, err := s.CreateKOT(ctx, "cashier", "T1", cart(), "")
	require.NoError(t, err)
	assert.Equal(t, "KOT-2026-00001", name)
	m.customers.AssertExpectations(t)
	m.kots.AssertExpectations(t)
}

func TestKOTService_CreateKOT_ExistingCustomer(t *testing.T) {
	s, m := newKOTService()
	expectAssigned(m.profiles, "cashier", testProfile())
	m.tables.On("GetTable", ctx, "T1").Return(&models.RestaurantTable{Name: "T1", Company: "Farm Fresh"}, nil)
	m.customers.On("Exists", ctx, "Maria Santos").Return(true, nil)
	m.kots.On("CreateKOT", ctx, mock.Anything).Return("KOT-2026-00002", nil)

	_, err := s.CreateKOT(ctx, "cashier", "T1", cart(), "Maria Santos")
	require.NoError(t, err)
	m.customers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestKOTService_CreateKOT_Errors(t *testing.T) {
	tests := []struct {
		name     string
		items    []models.KOTItemInput
		customer string
		setup    func(m kotMocks)
		wantErr  error
		wantMsg  string
	}{
		{
			name:    "everything already fired",
			items:   []models.KOTItemInput{{ItemCode: "ADOBO", Qty: 1, IsFired: true}},
			setup:   func(m kotMocks) {},
			wantErr: ErrNoNewItems,
			wantMsg: "No new items to fire",
		},
		{
			name:    "empty cart",
			setup:   func(m kotMocks) {},
			wantErr: ErrNoNewItems,
		},
		{
			name:    "missing item code",
			items:   []models.KOTItemInput{{Qty: 1}},
			setup:   func(m kotMocks) {},
			wantErr: ErrInvalidItem,
			wantMsg: "Row 1: item_code is required.",
		},
		{
			name:    "zero qty",
			items:   []models.KOTItemInput{{ItemCode: "TEA", Qty: 1, IsFired: true}, {ItemCode: "TEA", Qty: 0}},
			setup:   func(m kotMocks) {},
			wantErr: ErrInvalidItem,
			wantMsg: "Row 2: qty for TEA must be greater than zero.",
		},
		{
			name:    "negative rate",
			items:   []models.KOTItemInput{{ItemCode: "TEA", Qty: 1, Rate: -1}},
			setup:   func(m kotMocks) {},
			wantErr: ErrInvalidItem,
		},
		{
			name:    "discount over 100",
			items:   []models.KOTItemInput{{ItemCode: "TEA", Qty: 1, DiscountPercentage: 120}},
			setup:   func(m kotMocks) {},
			wantErr: ErrInvalidItem,
		},
		{
			name:  "unknown table",
			items: cart(),
			setup: func(m kotMocks) {
				m.tables.On("GetTable", ctx, "T1").Return(&models.RestaurantTable{Name: "T1", Company: "Other Co"}, nil)
			},
			wantErr: ErrTableNotFound,
		},
		{
			name:     "unknown customer",
			items:    cart(),
			customer: "Juan",
			setup: func(m kotMocks) {
				m.tables.On("GetTable", ctx, "T1").Return(&models.RestaurantTable{Name: "T1", Company: "Farm Fresh"}, nil)
				m.customers.On("Exists", ctx, "Juan").Return(false, nil)
			},
			wantErr: ErrCustomerNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := newKOTService()
			expectAssigned(m.profiles, "cashier", testProfile())
			tt.setup(m)

			_, err := s.CreateKOT(ctx, "cashier", "T1", tt.items, tt.customer)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.EqualError(t, err, tt.wantMsg)
			}
			m.kots.AssertNotCalled(t, "CreateKOT", mock.Anything, mock.Anything)
			m.customers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}
