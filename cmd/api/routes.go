package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"restopos-api/internal/config"
	"restopos-api/internal/handlers"
	"restopos-api/internal/metrics"
	"restopos-api/internal/middleware"
	"restopos-api/internal/repositories"
	"restopos-api/internal/services"
	"restopos-api/internal/storage"
)

func SetupRoutes(log *zap.Logger, db *sqlx.DB, cfg config.Config, images storage.ImageSigner, reg *prometheus.Registry) (*chi.Mux, error) {
	posMetrics, err := metrics.NewPOS(reg)
	if err != nil {
		return nil, err
	}
	httpMetrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(httpMetrics.Handler)

	// --- Repositories ---
	userRepo := repositories.NewUserRepository(db)
	profileRepo := repositories.NewProfileRepository(db, log)
	shiftRepo := repositories.NewShiftRepository(db, log)
	closingRepo := repositories.NewClosingRepository(db, log)
	menuRepo := repositories.NewMenuRepository(db, log)
	tableRepo := repositories.NewTableRepository(db, log)
	customerRepo := repositories.NewCustomerRepository(db, log)
	kotRepo := repositories.NewKOTRepository(db, log)
	invoiceRepo := repositories.NewInvoiceRepository(db, log)

	// --- Services ---
	shiftService := services.NewShiftService(profileRepo, shiftRepo, closingRepo, posMetrics)
	menuService := services.NewMenuService(profileRepo, menuRepo, tableRepo, images, cfg.MinIO.ImageURLExpiry, log)
	tableService := services.NewTableService(profileRepo, tableRepo, kotRepo, posMetrics)
	kotService := services.NewKOTService(profileRepo, tableRepo, customerRepo, kotRepo, posMetrics)
	invoiceService := services.NewInvoiceService(profileRepo, shiftRepo, kotRepo, invoiceRepo, posMetrics)

	// --- Handlers ---
	h := handlers.Handlers{
		Shift:  handlers.NewShiftHandler(shiftService, log),
		Menu:   handlers.NewMenuHandler(menuService, log),
		Table:  handlers.NewTableHandler(tableService, kotService, invoiceService, log),
		Health: handlers.NewHealthHandler(db, log),
	}

	// --- Routes ---
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	requireUser := middleware.RequireUser(userRepo, log)
	handlers.Mount(r, h, func(next http.Handler) http.Handler {
		return middleware.ExtractToken(requireUser(next))
	})

	return r, nil
}
