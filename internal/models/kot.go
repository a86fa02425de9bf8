package models

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

const WalkInCustomer = "Walk-in"

type Customer struct {
	Name          string
	CustomerName  string
	CustomerGroup string
	Territory     string
}

// Flag decodes the loose truthy values browser clients send (true, 1, "1").
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "null", `""`, "false", "0", `"0"`, `"false"`:
		*f = false
		return nil
	case "true", `"true"`:
		*f = true
		return nil
	}
	s := string(bytes.Trim(b, `"`))
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid flag value %s", b)
	}
	*f = n != 0
	return nil
}

// KOTItemInput is a cart line as posted by the till.
type KOTItemInput struct {
	ItemCode           string  `json:"item_code"`
	ItemName           string  `json:"item_name"`
	Qty                float64 `json:"qty"`
	Rate               float64 `json:"rate"`
	DiscountPercentage float64 `json:"discount_percentage"`
	Note               string  `json:"note"`
	IsFired            Flag    `json:"is_fired"`
}

type KOT struct {
	Name         string
	Table        string
	Company      string
	CustomerName string
	OrderTime    time.Time
	DocStatus    int
	Items        []KOTItem
}

type KOTItem struct {
	Parent             string  `db:"parent"`
	ItemCode           string  `db:"item_code"`
	ItemName           string  `db:"item_name"`
	Qty                float64 `db:"qty"`
	Rate               float64 `db:"rate"`
	DiscountPercentage float64 `db:"discount_percentage"`
	Description        string  `db:"description"`
}

// KOTRef is a draft ticket header.
type KOTRef struct {
	Name         string  `db:"name"`
	CustomerName *string `db:"customer_name"`
}

// TableOrderItem is an already fired line shown back on the till.
type TableOrderItem struct {
	ItemCode           string  `json:"item_code"`
	ItemName           string  `json:"item_name"`
	Qty                float64 `json:"qty"`
	Rate               float64 `json:"rate"`
	DiscountPercentage float64 `json:"discount_percentage"`
	Note               *string `json:"note"`
	IsFired            int     `json:"is_fired"`
}
