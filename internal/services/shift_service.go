package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"restopos-api/internal/metrics"
	"restopos-api/internal/models"
	"restopos-api/internal/repositories"
)

type ShiftService struct {
	profiles repositories.Profiles
	shifts   repositories.Shifts
	closings repositories.Closings
	metrics  *metrics.POS
	now      func() time.Time
}

func NewShiftService(p repositories.Profiles, s repositories.Shifts, c repositories.Closings, m *metrics.POS) *ShiftService {
	return &ShiftService{profiles: p, shifts: s, closings: c, metrics: m, now: time.Now}
}

// CheckPOSOpening reports the user's open shift on their assigned profile, if any.
func (s *ShiftService) CheckPOSOpening(ctx context.Context, user string) (*models.OpeningStatus, error) {
	profile, err := assignedProfile(ctx, s.profiles, user)
	if err != nil {
		return nil, err
	}

	name, err := s.shifts.FindOpenEntry(ctx, profile.Name, user)
	if err != nil {
		return nil, fmt.Errorf("find open entry: %w", err)
	}

	status := &models.OpeningStatus{POSProfile: profile.Name, Company: profile.Company}
	if name != "" {
		status.OpeningEntry = &name
	}
	return status, nil
}

// CreateOpeningEntry opens a shift on posProfile, or on the assigned profile
// when posProfile is empty. amount is the float for the default payment mode.
func (s *ShiftService) CreateOpeningEntry(ctx context.Context, user, posProfile string, amount float64) (string, error) {
	if !finite(amount) {
		return "", failf(ErrInvalidAmount, "Opening amount must be a number.")
	}
	if amount < 0 {
		return "", failf(ErrNegativeAmount, "Opening amount cannot be negative.")
	}

	var profile *models.POSProfile
	var err error
	if posProfile == "" {
		profile, err = assignedProfile(ctx, s.profiles, user)
	} else {
		profile, err = loadProfile(ctx, s.profiles, posProfile)
	}
	if err != nil {
		return "", err
	}
	if profile.Disabled {
		return "", failf(ErrProfileDisabled, "POS Profile %s is disabled.", profile.Name)
	}

	assigned, err := s.profiles.IsUserAssigned(ctx, profile.Name, user)
	if err != nil {
		return "", fmt.Errorf("check profile user: %w", err)
	}
	if !assigned {
		return "", failf(ErrUserNotAssigned, "User %s is not assigned to POS Profile %s.", user, profile.Name)
	}

	open, err := s.shifts.FindOpenEntry(ctx, profile.Name, user)
	if err != nil {
		return "", fmt.Errorf("find open entry: %w", err)
	}
	if open != "" {
		return "", failf(ErrShiftAlreadyOpen, "Shift %s is already open for %s. Close it before opening a new one.", open, user)
	}

	entry := &models.OpeningEntry{
		POSProfile:      profile.Name,
		User:            user,
		Company:         profile.Company,
		PeriodStartDate: s.now(),
		BalanceDetails:  []models.BalanceDetail{},
	}
	if pay, ok := profile.DefaultPayment(); ok {
		entry.BalanceDetails = append(entry.BalanceDetails, models.BalanceDetail{
			ModeOfPayment: pay.ModeOfPayment,
			OpeningAmount: round2(amount),
		})
	}

	name, err := s.shifts.CreateOpeningEntry(ctx, entry)
	if err != nil {
		return "", fmt.Errorf("create opening entry: %w", err)
	}
	s.metrics.ShiftOpened()
	return name, nil
}

func (s *ShiftService) GetShiftSummary(ctx context.Context, user, openingEntry string) (*models.ShiftSummary, error) {
	if _, err := s.openingEntry(ctx, user, openingEntry); err != nil {
		return nil, err
	}
	summary, err := s.shifts.GetShiftSummary(ctx, openingEntry)
	if err != nil {
		return nil, fmt.Errorf("shift summary: %w", err)
	}
	summary.TotalSales = round2(summary.TotalSales)
	return summary, nil
}

// ClosePOSOpeningEntry reconciles the shift's submitted invoices against its
// opening float and submits the closing entry.
func (s *ShiftService) ClosePOSOpeningEntry(ctx context.Context, user, openingEntry string) (string, error) {
	opening, err := s.openingEntry(ctx, user, openingEntry)
	if err != nil {
		return "", err
	}
	if opening.Status != models.OpeningStatusOpen || opening.DocStatus != models.DocStatusSubmitted {
		return "", failf(ErrShiftNotOpen, "POS Opening Entry %s is not open.", openingEntry)
	}

	invoices, err := s.closings.ListSubmittedInvoices(ctx, openingEntry)
	if err != nil {
		return "", fmt.Errorf("list invoices: %w", err)
	}
	if len(invoices) == 0 {
		return "", failf(ErrNoInvoices, "No submitted invoices found for this shift.")
	}

	payments, err := s.closings.SumPaymentsByMode(ctx, openingEntry)
	if err != nil {
		return "", fmt.Errorf("sum payments: %w", err)
	}

	closing := &models.ClosingEntry{
		POSOpeningEntry: opening.Name,
		POSProfile:      opening.POSProfile,
		User:            opening.User,
		Company:         opening.Company,
		PeriodStartDate: opening.PeriodStartDate,
		PeriodEndDate:   s.now(),
		Transactions:    make([]models.ClosingTransaction, 0, len(invoices)),
		Reconciliation:  reconcile(opening, payments),
	}
	for _, inv := range invoices {
		closing.Transactions = append(closing.Transactions, models.ClosingTransaction{
			POSInvoice:  inv.Name,
			GrandTotal:  inv.GrandTotal,
			PostingDate: inv.PostingDate,
		})
		closing.GrandTotal += inv.GrandTotal
		closing.NetTotal += inv.NetTotal
		closing.TotalQuantity += inv.TotalQty
	}
	closing.GrandTotal = round2(closing.GrandTotal)
	closing.NetTotal = round2(closing.NetTotal)

	name, err := s.closings.CreateClosingEntry(ctx, closing)
	if errors.Is(err, repositories.ErrConflict) {
		return "", failf(ErrShiftNotOpen, "POS Opening Entry %s was closed by another request.", openingEntry)
	}
	if err != nil {
		return "", fmt.Errorf("create closing entry: %w", err)
	}
	s.metrics.ShiftClosed()
	return name, nil
}

// openingEntry loads name for its owner. Another cashier's shift is reported
// as not found.
func (s *ShiftService) openingEntry(ctx context.Context, user, name string) (*models.OpeningEntry, error) {
	e, err := s.shifts.GetOpeningEntry(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, failf(ErrOpeningNotFound, "POS Opening Entry %s not found.", name)
	}
	if err != nil {
		return nil, fmt.Errorf("get opening entry: %w", err)
	}
	if e.User != user {
		return nil, failf(ErrOpeningNotFound, "POS Opening Entry %s not found.", name)
	}
	return e, nil
}

// reconcile yields one row per mode that took payments, in the order given,
// followed by modes that only had an opening float. Expected and closing
// amounts are opening plus collected.
func reconcile(entry *models.OpeningEntry, payments []models.ModeTotal) []models.PaymentReconciliation {
	balances := entry.BalanceDetails
	opening := entry.OpeningAmounts()

	rows := make([]models.PaymentReconciliation, 0, len(payments)+len(balances))
	seen := make(map[string]bool, len(payments))
	for _, p := range payments {
		amt := round2(opening[p.ModeOfPayment] + p.TotalAmount)
		rows = append(rows, models.PaymentReconciliation{
			ModeOfPayment:  p.ModeOfPayment,
			OpeningAmount:  opening[p.ModeOfPayment],
			ExpectedAmount: amt,
			ClosingAmount:  amt,
		})
		seen[p.ModeOfPayment] = true
	}
	for _, b := range balances {
		if seen[b.ModeOfPayment] {
			continue
		}
		seen[b.ModeOfPayment] = true
		amt := opening[b.ModeOfPayment]
		rows = append(rows, models.PaymentReconciliation{
			ModeOfPayment:  b.ModeOfPayment,
			OpeningAmount:  amt,
			ExpectedAmount: amt,
			ClosingAmount:  amt,
		})
	}
	return rows
}
