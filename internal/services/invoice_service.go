package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restopos-api/internal/metrics"
	"restopos-api/internal/models"
	"restopos-api/internal/repositories"
)

const defaultModeOfPayment = "Cash"

type InvoiceRequest struct {
	ModeOfPayment string
	AmountPaid    float64
	Customer      string
}

type InvoiceService struct {
	profiles repositories.Profiles
	shifts   repositories.Shifts
	kots     repositories.KOTs
	invoices repositories.Invoices
	metrics  *metrics.POS
	now      func() time.Time
}

func NewInvoiceService(p repositories.Profiles, s repositories.Shifts, k repositories.KOTs, i repositories.Invoices, m *metrics.POS) *InvoiceService {
	return &InvoiceService{profiles: p, shifts: s, kots: k, invoices: i, metrics: m, now: time.Now}
}

// CreateInvoice bills every draft KOT of the table against the user's open
// shift, then frees the table.
func (s *InvoiceService) CreateInvoice(ctx context.Context, user, table string, req InvoiceRequest) (string, error) {
	if !finite(req.AmountPaid) {
		return "", failf(ErrInvalidAmount, "Amount paid must be a number.")
	}

	profile, err := assignedProfile(ctx, s.profiles, user)
	if err != nil {
		return "", err
	}

	opening, err := s.shifts.FindOpenEntry(ctx, profile.Name, user)
	if err != nil {
		return "", fmt.Errorf("find open entry: %w", err)
	}
	if opening == "" {
		return "", failf(ErrNoOpenShift, "No open POS Opening Entry found.")
	}

	kots, err := s.kots.ListDraftKOTs(ctx, table, profile.Company)
	if err != nil {
		return "", fmt.Errorf("list kots: %w", err)
	}
	if len(kots) == 0 {
		return "", failf(ErrNoActiveOrders, "No active orders found for this table.")
	}

	mode := req.ModeOfPayment
	if mode == "" {
		mode = defaultModeOfPayment
	}
	account, err := s.paymentAccount(ctx, profile, mode)
	if err != nil {
		return "", err
	}

	names := make([]string, 0, len(kots))
	for _, k := range kots {
		names = append(names, k.Name)
	}
	lines, err := s.kots.ListKOTItems(ctx, names)
	if err != nil {
		return "", fmt.Errorf("list kot items: %w", err)
	}

	inv := &models.Invoice{
		POSOpeningEntry: opening,
		POSProfile:      profile.Name,
		Customer:        invoiceCustomer(req.Customer, kots),
		Company:         profile.Company,
		RestaurantTable: table,
		PostingDate:     s.now(),
		UpdateStock:     true,
		Items:           make([]models.InvoiceItem, 0, len(lines)),
	}
	for _, l := range lines {
		name := l.ItemName
		if name == "" {
			name = l.ItemCode
		}
		inv.Items = append(inv.Items, models.InvoiceItem{
			ItemCode:           l.ItemCode,
			ItemName:           name,
			Qty:                l.Qty,
			PriceListRate:      l.Rate,
			DiscountPercentage: l.DiscountPercentage,
			Warehouse:          profile.Warehouse,
			CostCenter:         profile.CostCenter,
		})
	}
	calculateTotals(inv)

	paid := round2(req.AmountPaid)
	if paid < inv.GrandTotal {
		return "", failf(ErrInsufficientPayment, "Amount paid %.2f is less than the grand total %.2f.", paid, inv.GrandTotal)
	}
	inv.PaidAmount = paid
	inv.ChangeAmount = round2(paid - inv.GrandTotal)
	inv.Payments = []models.InvoicePayment{{
		ModeOfPayment: mode,
		Account:       account,
		Amount:        round2(paid - inv.ChangeAmount),
	}}

	name, err := s.invoices.CreateInvoice(ctx, inv, names)
	if errors.Is(err, repositories.ErrConflict) {
		return "", failf(ErrNoActiveOrders, "Orders for table %s were billed by another request.", table)
	}
	if err != nil {
		return "", fmt.Errorf("create invoice: %w", err)
	}
	s.metrics.InvoiceCreated(mode, inv.Payments[0].Amount)
	return name, nil
}

// paymentAccount prefers the profile's account for the mode, then the
// company account configured on the mode itself.
func (s *InvoiceService) paymentAccount(ctx context.Context, profile *models.POSProfile, mode string) (string, error) {
	pay, ok := profile.Payment(mode)
	if !ok {
		return "", failf(ErrPaymentModeNotAllowed, "Mode of payment %s is not enabled on POS Profile %s.", mode, profile.Name)
	}
	if pay.DefaultAccount != "" {
		return pay.DefaultAccount, nil
	}

	account, err := s.profiles.GetModeOfPaymentAccount(ctx, mode, profile.Company)
	if err != nil {
		return "", fmt.Errorf("mode of payment account: %w", err)
	}
	return account, nil
}

func invoiceCustomer(requested string, kots []models.KOTRef) string {
	if requested != "" {
		return requested
	}
	if c := kots[0].CustomerName; c != nil && *c != "" {
		return *c
	}
	return models.WalkInCustomer
}

func calculateTotals(inv *models.Invoice) {
	var qty, total float64
	for i := range inv.Items {
		it := &inv.Items[i]
		it.Rate = round2(it.PriceListRate * (1 - it.DiscountPercentage/100))
		it.Amount = round2(it.Rate * it.Qty)
		qty += it.Qty
		total += it.Amount
	}
	inv.TotalQty = qty
	inv.NetTotal = round2(total)
	inv.GrandTotal = inv.NetTotal
}
