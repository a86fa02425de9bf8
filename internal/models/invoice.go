package models

import "time"

type Invoice struct {
	Name            string
	POSOpeningEntry string
	POSProfile      string
	Customer        string
	Company         string
	RestaurantTable string
	PostingDate     time.Time
	UpdateStock     bool
	TotalQty        float64
	NetTotal        float64
	GrandTotal      float64
	PaidAmount      float64
	ChangeAmount    float64
	Items           []InvoiceItem
	Payments        []InvoicePayment
}

type InvoiceItem struct {
	ItemCode           string
	ItemName           string
	Qty                float64
	PriceListRate      float64
	DiscountPercentage float64
	Rate               float64
	Amount             float64
	Warehouse          string
	CostCenter         string
}

type InvoicePayment struct {
	ModeOfPayment string
	Account       string
	Amount        float64
}
