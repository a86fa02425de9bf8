package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handlers struct {
	Shift  *ShiftHandler
	Menu   *MenuHandler
	Table  *TableHandler
	Health *HealthHandler
}

// Mount attaches the health probes and the /api/pos routes. auth runs in
// front of every /api/pos route and must set the session user.
func Mount(r chi.Router, h Handlers, auth func(http.Handler) http.Handler) {
	r.Get("/health", h.Health.Health)
	r.Get("/healthz", h.Health.Liveness)

	r.Route("/api/pos", func(r chi.Router) {
		r.Use(auth)

		r.Route("/shift", func(r chi.Router) {
			r.Get("/", h.Shift.CheckPOSOpening)
			r.Post("/open", h.Shift.CreateOpeningEntry)
			r.Get("/{opening_entry}/summary", h.Shift.GetShiftSummary)
			r.Post("/{opening_entry}/close", h.Shift.ClosePOSOpeningEntry)
		})

		r.Get("/data", h.Menu.GetPOSData)
		r.Get("/items/barcode/{barcode}", h.Menu.GetItemByBarcode)

		r.Route("/tables", func(r chi.Router) {
			r.Post("/transfer", h.Table.TransferTable)
			r.Patch("/{table}/status", h.Table.UpdateTableStatus)
			r.Get("/{table}/orders", h.Table.GetTableOrders)
			r.Post("/{table}/kot", h.Table.CreateKOT)
			r.Post("/{table}/invoice", h.Table.CreateInvoice)
		})
	})
}
