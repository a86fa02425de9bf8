package models

import "time"

const (
	OpeningStatusOpen   = "Open"
	OpeningStatusClosed = "Closed"
)

type OpeningEntry struct {
	Name            string
	POSProfile      string
	User            string
	Company         string
	PeriodStartDate time.Time
	Status          string
	POSClosingEntry *string
	DocStatus       int
	BalanceDetails  []BalanceDetail
}

// OpeningAmounts maps payment mode -> opening float.
func (e *OpeningEntry) OpeningAmounts() map[string]float64 {
	out := make(map[string]float64, len(e.BalanceDetails))
	for _, d := range e.BalanceDetails {
		out[d.ModeOfPayment] += d.OpeningAmount
	}
	return out
}

type BalanceDetail struct {
	ModeOfPayment string  `json:"mode_of_payment"`
	OpeningAmount float64 `json:"opening_amount"`
}

// OpeningStatus is the answer to "does this user have a shift open".
type OpeningStatus struct {
	OpeningEntry *string `json:"opening_entry"`
	POSProfile   string  `json:"pos_profile"`
	Company      string  `json:"company"`
}

type ShiftSummary struct {
	OpeningEntry string  `json:"opening_entry"`
	TotalSales   float64 `json:"total_sales"`
	Count        int     `json:"count"`
}

type ClosingEntry struct {
	Name            string
	POSOpeningEntry string
	POSProfile      string
	User            string
	Company         string
	PeriodStartDate time.Time
	PeriodEndDate   time.Time
	GrandTotal      float64
	NetTotal        float64
	TotalQuantity   float64
	Transactions    []ClosingTransaction
	Reconciliation  []PaymentReconciliation
}

type ClosingTransaction struct {
	POSInvoice  string
	GrandTotal  float64
	PostingDate time.Time
}

type PaymentReconciliation struct {
	ModeOfPayment  string
	OpeningAmount  float64
	ExpectedAmount float64
	ClosingAmount  float64
}

// InvoiceSummary is the slice of a submitted invoice a closing entry needs.
type InvoiceSummary struct {
	Name        string    `db:"name"`
	GrandTotal  float64   `db:"grand_total"`
	NetTotal    float64   `db:"net_total"`
	TotalQty    float64   `db:"total_qty"`
	PostingDate time.Time `db:"posting_date"`
}

type ModeTotal struct {
	ModeOfPayment string  `db:"mode_of_payment"`
	TotalAmount   float64 `db:"total_amount"`
}
