package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ShiftHandler struct {
	service ShiftService
	log     *zap.Logger
}

func NewShiftHandler(s ShiftService, log *zap.Logger) *ShiftHandler {
	return &ShiftHandler{service: s, log: log}
}

// GET /api/pos/shift
func (h *ShiftHandler) CheckPOSOpening(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.CheckPOSOpening(r.Context(), sessionUser(r))
	if err != nil {
		fail(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// POST /api/pos/shift/open
func (h *ShiftHandler) CreateOpeningEntry(w http.ResponseWriter, r *http.Request) {
	var body openShiftRequest
	if err := decodeBody(w, r, &body); err != nil {
		fail(w, r, h.log, err)
		return
	}

	name, err := h.service.CreateOpeningEntry(r.Context(), sessionUser(r), body.POSProfile, float64(body.Amount))
	if err != nil {
		fail(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, name)
}

// GET /api/pos/shift/{opening_entry}/summary
func (h *ShiftHandler) GetShiftSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetShiftSummary(r.Context(), sessionUser(r), chi.URLParam(r, "opening_entry"))
	if err != nil {
		fail(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// POST /api/pos/shift/{opening_entry}/close
func (h *ShiftHandler) ClosePOSOpeningEntry(w http.ResponseWriter, r *http.Request) {
	name, err := h.service.ClosePOSOpeningEntry(r.Context(), sessionUser(r), chi.URLParam(r, "opening_entry"))
	if err != nil {
		fail(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, name)
}
