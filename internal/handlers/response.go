package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"restopos-api/internal/middleware"
	"restopos-api/internal/services"
)

const maxBodyBytes = 1 << 20

// errBadRequest marks malformed input caught before reaching a service.
var errBadRequest = errors.New("bad request")

type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorMapping struct {
	kind   error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{errBadRequest, http.StatusBadRequest, "BAD_REQUEST"},
	{services.ErrNegativeAmount, http.StatusBadRequest, "NEGATIVE_AMOUNT"},
	{services.ErrInvalidAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
	{services.ErrInvalidTableStatus, http.StatusBadRequest, "INVALID_TABLE_STATUS"},
	{services.ErrSameTable, http.StatusBadRequest, "SAME_TABLE"},
	{services.ErrInvalidItem, http.StatusBadRequest, "INVALID_ITEM"},

	{services.ErrProfileNotFound, http.StatusNotFound, "PROFILE_NOT_FOUND"},
	{services.ErrOpeningNotFound, http.StatusNotFound, "OPENING_ENTRY_NOT_FOUND"},
	{services.ErrTableNotFound, http.StatusNotFound, "TABLE_NOT_FOUND"},
	{services.ErrCustomerNotFound, http.StatusNotFound, "CUSTOMER_NOT_FOUND"},

	{services.ErrShiftAlreadyOpen, http.StatusConflict, "SHIFT_ALREADY_OPEN"},
	{services.ErrShiftNotOpen, http.StatusConflict, "SHIFT_NOT_OPEN"},
	{services.ErrTableOccupied, http.StatusConflict, "TABLE_OCCUPIED"},

	{services.ErrNoProfileAssigned, http.StatusUnprocessableEntity, "NO_PROFILE_ASSIGNED"},
	{services.ErrProfileDisabled, http.StatusUnprocessableEntity, "PROFILE_DISABLED"},
	{services.ErrUserNotAssigned, http.StatusUnprocessableEntity, "USER_NOT_ASSIGNED"},
	{services.ErrNoInvoices, http.StatusUnprocessableEntity, "NO_INVOICES"},
	{services.ErrNoOpenShift, http.StatusUnprocessableEntity, "NO_OPEN_SHIFT"},
	{services.ErrNoActiveOrders, http.StatusUnprocessableEntity, "NO_ACTIVE_ORDERS"},
	{services.ErrPaymentModeNotAllowed, http.StatusUnprocessableEntity, "PAYMENT_MODE_NOT_ALLOWED"},
	{services.ErrInsufficientPayment, http.StatusUnprocessableEntity, "INSUFFICIENT_PAYMENT"},
}

// writeJSON wraps result the way the till expects: {"message": result}.
func writeJSON(w http.ResponseWriter, status int, result any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(map[string]any{"message": result})
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorPayload{
		RequestID: middleware.GetRequestID(r.Context()),
		Error:     errorEnvelope{Code: code, Message: message},
	})
}

// fail maps known error kinds to their status. Anything else is logged and
// reported as a 500 without details.
func fail(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.kind) {
			writeError(w, r, m.status, m.code, err.Error())
			return
		}
	}

	log.Error("request failed",
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

func badRequest(format string, args ...any) error {
	return &services.Error{Kind: errBadRequest, Msg: fmt.Sprintf(format, args...)}
}

// decodeBody reads a JSON object into dst. An empty body leaves dst untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return badRequest("invalid JSON body: %v", err)
	}
	return nil
}

// sessionUser is set by middleware.RequireUser on every /api/pos route.
func sessionUser(r *http.Request) string {
	if u := middleware.UserFromContext(r.Context()); u != nil {
		return u.Name
	}
	return ""
}
