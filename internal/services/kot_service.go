package services

import (
	"context"
	"fmt"
	"time"

	"restopos-api/internal/metrics"
	"restopos-api/internal/models"
	"restopos-api/internal/repositories"
)

const (
	walkInCustomerGroup = "Individual"
	walkInTerritory     = "All Territories"
)

type KOTService struct {
	profiles  repositories.Profiles
	tables    repositories.Tables
	customers repositories.Customers
	kots      repositories.KOTs
	metrics   *metrics.POS
	now       func() time.Time
}

func NewKOTService(p repositories.Profiles, t repositories.Tables, c repositories.Customers, k repositories.KOTs, m *metrics.POS) *KOTService {
	return &KOTService{profiles: p, tables: t, customers: c, kots: k, metrics: m, now: time.Now}
}

// CreateKOT fires the cart lines not yet sent to the kitchen as one draft
// ticket. ErrNoNewItems means every line was already fired.
func (s *KOTService) CreateKOT(ctx context.Context, user, table string, items []models.KOTItemInput, customerName string) (string, error) {
	profile, err := assignedProfile(ctx, s.profiles, user)
	if err != nil {
		return "", err
	}

	lines, err := newKOTLines(items)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", failf(ErrNoNewItems, "No new items to fire")
	}

	t, err := loadTable(ctx, s.tables, table)
	if err != nil {
		return "", err
	}
	if t.Company != profile.Company {
		return "", failf(ErrTableNotFound, "Restaurant Table %s not found.", table)
	}

	if customerName == "" {
		customerName = models.WalkInCustomer
	}
	if err := s.ensureCustomer(ctx, customerName); err != nil {
		return "", err
	}

	kot := &models.KOT{
		Table:        table,
		Company:      profile.Company,
		CustomerName: customerName,
		OrderTime:    s.now(),
		Items:        lines,
	}
	name, err := s.kots.CreateKOT(ctx, kot)
	if err != nil {
		return "", fmt.Errorf("create kot: %w", err)
	}
	s.metrics.KOTFired(len(lines))
	return name, nil
}

func (s *KOTService) ensureCustomer(ctx context.Context, name string) error {
	ok, err := s.customers.Exists(ctx, name)
	if err != nil {
		return fmt.Errorf("check customer: %w", err)
	}
	if ok {
		return nil
	}
	if name != models.WalkInCustomer {
		return failf(ErrCustomerNotFound, "Customer %s not found.", name)
	}

	_, err = s.customers.Create(ctx, &models.Customer{
		CustomerName:  models.WalkInCustomer,
		CustomerGroup: walkInCustomerGroup,
		Territory:     walkInTerritory,
	})
	if err != nil {
		return fmt.Errorf("create walk-in customer: %w", err)
	}
	return nil
}

// newKOTLines drops fired lines and validates the rest. Row numbers in
// errors are 1-based positions in the posted cart.
func newKOTLines(items []models.KOTItemInput) ([]models.KOTItem, error) {
	lines := make([]models.KOTItem, 0, len(items))
	for i, it := range items {
		if it.IsFired {
			continue
		}
		row := i + 1
		switch {
		case it.ItemCode == "":
			return nil, failf(ErrInvalidItem, "Row %d: item_code is required.", row)
		case it.Qty <= 0:
			return nil, failf(ErrInvalidItem, "Row %d: qty for %s must be greater than zero.", row, it.ItemCode)
		case it.Rate < 0:
			return nil, failf(ErrInvalidItem, "Row %d: rate for %s cannot be negative.", row, it.ItemCode)
		case it.DiscountPercentage < 0 || it.DiscountPercentage > 100:
			return nil, failf(ErrInvalidItem, "Row %d: discount for %s must be between 0 and 100.", row, it.ItemCode)
		}

		name := it.ItemName
		if name == "" {
			name = it.ItemCode
		}
		lines = append(lines, models.KOTItem{
			ItemCode:           it.ItemCode,
			ItemName:           name,
			Qty:                it.Qty,
			Rate:               it.Rate,
			DiscountPercentage: it.DiscountPercentage,
			Description:        it.Note,
		})
	}
	return lines, nil
}
