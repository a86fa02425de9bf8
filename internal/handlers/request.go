package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"restopos-api/internal/models"
)

// number accepts 12.5, "12.5" and "" (zero); tills post amounts either way.
type number float64

func (n *number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if string(b) == "null" {
		*n = 0
		return nil
	}
	s := string(bytes.Trim(b, `"`))
	if s == "" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("invalid number %s", b)
	}
	*n = number(v)
	return nil
}

// cartItems accepts the cart as a JSON array or as a string holding one,
// which is how form-encoded tills send it.
type cartItems []models.KOTItemInput

func (c *cartItems) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(s)
	}
	var items []models.KOTItemInput
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	*c = items
	return nil
}

type openShiftRequest struct {
	POSProfile string `json:"pos_profile"`
	Amount     number `json:"amount"`
}

type tableStatusRequest struct {
	Status string `json:"status"`
}

type createKOTRequest struct {
	Items        cartItems `json:"items"`
	CustomerName string    `json:"customer_name"`
}

type transferTableRequest struct {
	OldTable string `json:"old_table"`
	NewTable string `json:"new_table"`
}

type createInvoiceRequest struct {
	ModeOfPayment string `json:"mode_of_payment"`
	AmountPaid    number `json:"amount_paid"`
	Customer      string `json:"customer"`
}
