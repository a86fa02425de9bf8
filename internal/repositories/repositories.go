package repositories

import (
	"context"
	"errors"

	"restopos-api/internal/models"
)

// ErrConflict is returned when a guarded write touched fewer rows than
// expected, i.e. another request changed the record first.
var ErrConflict = errors.New("record was modified concurrently")

type Users interface {
	// GetUserByToken returns nil, nil when no enabled user owns the token.
	GetUserByToken(ctx context.Context, token string) (*models.User, error)
}

type Profiles interface {
	GetAssignedProfileName(ctx context.Context, user string) (string, error)
	GetProfile(ctx context.Context, name string) (*models.POSProfile, error)
	IsUserAssigned(ctx context.Context, profile, user string) (bool, error)
	GetModeOfPaymentAccount(ctx context.Context, mode, company string) (string, error)
}

type Shifts interface {
	// FindOpenEntry returns "" when the user has no submitted, open entry.
	FindOpenEntry(ctx context.Context, profile, user string) (string, error)
	CreateOpeningEntry(ctx context.Context, entry *models.OpeningEntry) (string, error)
	GetOpeningEntry(ctx context.Context, name string) (*models.OpeningEntry, error)
	GetShiftSummary(ctx context.Context, openingEntry string) (*models.ShiftSummary, error)
}

type Closings interface {
	ListSubmittedInvoices(ctx context.Context, openingEntry string) ([]models.InvoiceSummary, error)
	SumPaymentsByMode(ctx context.Context, openingEntry string) ([]models.ModeTotal, error)
	CreateClosingEntry(ctx context.Context, closing *models.ClosingEntry) (string, error)
}

type Menu interface {
	ListSalesItems(ctx context.Context, priceList string) ([]models.Item, error)
	// GetItem returns nil, nil when the item does not exist.
	GetItem(ctx context.Context, itemCode, priceList string) (*models.Item, error)
	FindItemCodeByBarcode(ctx context.Context, barcode string) (string, error)
}

type Tables interface {
	ListTables(ctx context.Context, company string) ([]models.RestaurantTable, error)
	GetTable(ctx context.Context, name string) (*models.RestaurantTable, error)
	UpdateStatus(ctx context.Context, name, status string) error
	TransferOrders(ctx context.Context, company, oldTable, newTable string) (int64, error)
}

type Customers interface {
	Exists(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, c *models.Customer) (string, error)
}

type KOTs interface {
	CreateKOT(ctx context.Context, kot *models.KOT) (string, error)
	ListTableOrderItems(ctx context.Context, table, company string) ([]models.TableOrderItem, error)
	ListDraftKOTs(ctx context.Context, table, company string) ([]models.KOTRef, error)
	ListKOTItems(ctx context.Context, kotNames []string) ([]models.KOTItem, error)
}

type Invoices interface {
	// CreateInvoice stores a submitted invoice and consumes the given draft KOTs.
	CreateInvoice(ctx context.Context, inv *models.Invoice, kotNames []string) (string, error)
}
