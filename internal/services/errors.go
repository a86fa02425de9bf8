package services

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map them to HTTP statuses with errors.Is and show
// the wrapping Error's message to the cashier.
var (
	ErrNoProfileAssigned     = errors.New("no pos profile assigned")
	ErrProfileNotFound       = errors.New("pos profile not found")
	ErrProfileDisabled       = errors.New("pos profile disabled")
	ErrUserNotAssigned       = errors.New("user not assigned to pos profile")
	ErrNegativeAmount        = errors.New("negative amount")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrShiftAlreadyOpen      = errors.New("shift already open")
	ErrOpeningNotFound       = errors.New("opening entry not found")
	ErrShiftNotOpen          = errors.New("shift not open")
	ErrNoInvoices            = errors.New("no submitted invoices")
	ErrInvalidTableStatus    = errors.New("invalid table status")
	ErrTableNotFound         = errors.New("table not found")
	ErrTableOccupied         = errors.New("table occupied")
	ErrSameTable             = errors.New("same table")
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrInvalidItem           = errors.New("invalid item")
	ErrNoNewItems            = errors.New("no new items")
	ErrNoOpenShift           = errors.New("no open shift")
	ErrNoActiveOrders        = errors.New("no active orders")
	ErrPaymentModeNotAllowed = errors.New("payment mode not allowed")
	ErrInsufficientPayment   = errors.New("insufficient payment")
)

// Error carries a cashier-facing message for one of the kinds above.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func failf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
