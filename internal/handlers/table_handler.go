package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"restopos-api/internal/services"
)

// TableHandler serves the floor: table status, orders, tickets and billing.
type TableHandler struct {
	tables   TableService
	kots     KOTService
	invoices InvoiceService
	log      *zap.Logger
}

func NewTableHandler(t TableService, k KOTService, i InvoiceService, log *zap.Logger) *TableHandler {
	return &TableHandler{tables: t, kots: k, invoices: i, log: log}
}

// PATCH /api/pos/tables/{table}/status
func (h *TableHandler) UpdateTableStatus(w http.ResponseWriter, r *http.Request) {
	var body tableStatusRequest
	if err := decodeBody(w, r, &body); err != nil {
		fail(w, r, h.log, err)
		return
	}

	ok, err := h.tables.UpdateTableStatus(r.Context(), chi.URLParam(r, "table"), body.Status)
	if err != nil {
		fail(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, ok)
}

// GET /api/pos/tables/{table}/orders
func (h *TableHandler) GetTableOrders(w http.ResponseWriter, r *http.Request) {
	items, err := h.tables.GetTableOrders(r.Context(), sessionUser(r), chi.URLParam(r, "table"))
	if err != nil {
		fail(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// POST /api/pos/tables/transfer
func (h *TableHandler) TransferTable(w http.ResponseWriter, r *http.Request) {
	var body transferTableRequest
	if err := decodeBody(w, r, &body); err != nil {
		fail(w, r, h.log, err)
		return
	}
	if body.OldTable == "" || body.NewTable == "" {
		fail(w, r, h.log, badRequest("old_table and new_table are required"))
		return
	}

	ok, err := h.tables.TransferTable(r.Context(), sessionUser(r), body.OldTable, body.NewTable)
	if err != nil {
		fail(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, ok)
}

// POST /api/pos/tables/{table}/kot
func (h *TableHandler) CreateKOT(w http.ResponseWriter, r *http.Request) {
	var body createKOTRequest
	if err := decodeBody(w, r, &body); err != nil {
		fail(w, r, h.log, err)
		return
	}

	name, err := h.kots.CreateKOT(r.Context(), sessionUser(r), chi.URLParam(r, "table"), body.Items, body.CustomerName)
	if errors.Is(err, services.ErrNoNewItems) {
		// Not a failure for the till: it re-sends the whole cart.
		writeJSON(w, http.StatusOK, err.Error())
		return
	}
	if err != nil {
		fail(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, name)
}

// POST /api/pos/tables/{table}/invoice
func (h *TableHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var body createInvoiceRequest
	if err := decodeBody(w, r, &body); err != nil {
		fail(w, r, h.log, err)
		return
	}

	name, err := h.invoices.CreateInvoice(r.Context(), sessionUser(r), chi.URLParam(r, "table"), services.InvoiceRequest{
		ModeOfPayment: body.ModeOfPayment,
		AmountPaid:    float64(body.AmountPaid),
		Customer:      body.Customer,
	})
	if err != nil {
		fail(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, name)
}
