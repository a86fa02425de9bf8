package handlers

import (
	"context"

	"restopos-api/internal/models"
	"restopos-api/internal/services"
)

type ShiftService interface {
	CheckPOSOpening(ctx context.Context, user string) (*models.OpeningStatus, error)
	CreateOpeningEntry(ctx context.Context, user, posProfile string, amount float64) (string, error)
	GetShiftSummary(ctx context.Context, user, openingEntry string) (*models.ShiftSummary, error)
	ClosePOSOpeningEntry(ctx context.Context, user, openingEntry string) (string, error)
}

type MenuService interface {
	GetPOSData(ctx context.Context, user string) (*models.POSData, error)
	GetItemByBarcode(ctx context.Context, user, barcode string) (*models.Item, error)
}

type TableService interface {
	UpdateTableStatus(ctx context.Context, table, status string) (bool, error)
	GetTableOrders(ctx context.Context, user, table string) ([]models.TableOrderItem, error)
	TransferTable(ctx context.Context, user, oldTable, newTable string) (bool, error)
}

type KOTService interface {
	CreateKOT(ctx context.Context, user, table string, items []models.KOTItemInput, customerName string) (string, error)
}

type InvoiceService interface {
	CreateInvoice(ctx context.Context, user, table string, req services.InvoiceRequest) (string, error)
}

var (
	_ ShiftService   = (*services.ShiftService)(nil)
	_ MenuService    = (*services.MenuService)(nil)
	_ TableService   = (*services.TableService)(nil)
	_ KOTService     = (*services.KOTService)(nil)
	_ InvoiceService = (*services.InvoiceService)(nil)
)
