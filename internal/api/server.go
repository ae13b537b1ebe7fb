// Package api implements the REST handlers for the back office.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/orcana-hub/backoffice/internal/service"
	"github.com/orcana-hub/backoffice/internal/storage"
)

// Server holds all dependencies for the REST API handlers.
type Server struct {
	quoteSvc     service.QuoteService
	bookingSvc   service.BookingService
	inventorySvc service.InventoryService
	notifSvc     service.NotificationService
	dashboardSvc service.DashboardService
	templates    storage.TemplateStore
	users        storage.UserStore
	logger       *slog.Logger
}

// New creates a new API Server backed by the provided services.
func New(
	quoteSvc service.QuoteService,
	bookingSvc service.BookingService,
	inventorySvc service.InventoryService,
	notifSvc service.NotificationService,
	dashboardSvc service.DashboardService,
	templates storage.TemplateStore,
	users storage.UserStore,
	logger *slog.Logger,
) *Server {
	return &Server{
		quoteSvc:     quoteSvc,
		bookingSvc:   bookingSvc,
		inventorySvc: inventorySvc,
		notifSvc:     notifSvc,
		dashboardSvc: dashboardSvc,
		templates:    templates,
		users:        users,
		logger:       logger,
	}
}

// Mount registers all API routes under the given router.
func (s *Server) Mount(r chi.Router) {
	// Quotes
	r.Get("/quotes", s.handleListQuotes)
	r.Post("/quotes", s.handleCreateQuote)
	r.Get("/quotes/{code}", s.handleGetQuote)
	r.Put("/quotes/{code}/answer", s.handleAnswerQuote)
	r.Put("/quotes/{code}/status", s.handleUpdateQuoteStatus)

	// Bookings
	r.Get("/bookings", s.handleListBookings)
	r.Post("/bookings", s.handleCreateBooking)
	r.Get("/bookings/{id}", s.handleGetBooking)
	r.Put("/bookings/{id}/status", s.handleUpdateBookingStatus)
	r.Post("/bookings/{id}/cancel", s.handleCancelBooking)
	r.Put("/bookings/{id}/quote", s.handleReassignQuote)
	r.Delete("/bookings/{id}", s.handleDeleteBooking)

	// Inventory
	r.Get("/materials", s.handleListMaterials)
	r.Post("/materials", s.handleCreateMaterial)
	r.Put("/materials/{id}", s.handleUpdateMaterial)
	r.Put("/materials/{id}/quantity", s.handleUpdateQuantity)
	r.Delete("/materials/{id}", s.handleDeleteMaterial)
	r.Get("/materials/low-stock", s.handleListBelowMinimum)

	// Users
	r.Get("/users", s.handleListUsers)
	r.Post("/users", s.handleCreateUser)

	// E-mail templates
	r.Get("/templates", s.handleListTemplates)
	r.Get("/templates/{name}", s.handleGetTemplate)
	r.Put("/templates/{name}", s.handleUpsertTemplate)

	// Dashboard
	r.Get("/dashboard", s.handleDashboard)
	r.Get("/dashboard/revenue", s.handleDashboardRevenue)

	// Notifications
	r.Post("/notifications/test", s.handleTestNotification)
	r.Get("/notifications/log", s.handleNotificationLog)
}

// ─── Shared helpers ───────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps the service error taxonomy onto HTTP status codes.
func (s *Server) writeServiceError(w http.ResponseWriter, err error, op string) {
	var ve *service.ValidationError
	var nfe *service.NotFoundError
	var ce *service.ConflictError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error())
	case errors.As(err, &nfe):
		writeError(w, http.StatusNotFound, nfe.Error())
	case errors.As(err, &ce):
		writeError(w, http.StatusConflict, ce.Error())
	default:
		s.logger.Error(op+" failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to "+op)
	}
}
