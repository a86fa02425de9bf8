package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MenuHandler struct {
	service MenuService
	log     *zap.Logger
}

func NewMenuHandler(s MenuService, log *zap.Logger) *MenuHandler {
	return &MenuHandler{service: s, log: log}
}

// GET /api/pos/data
func (h *MenuHandler) GetPOSData(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.GetPOSData(r.Context(), sessionUser(r))
	if err != nil {
		fail(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// GET /api/pos/items/barcode/{barcode}. An unknown code answers {"message": null}.
func (h *MenuHandler) GetItemByBarcode(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.GetItemByBarcode(r.Context(), sessionUser(r), chi.URLParam(r, "barcode"))
	if err != nil {
		fail(w, r, h.log, err)
		return
	}
	if item == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
