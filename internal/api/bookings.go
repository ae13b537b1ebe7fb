package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/orcana-hub/backoffice/internal/event"
	"github.com/orcana-hub/backoffice/internal/service"
)

func (s *Server) bookingID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return 0, false
	}
	return id, true
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	var err error
	var bookings any

	switch {
	case r.URL.Query().Get("status") != "":
		bookings, err = s.bookingSvc.ListBookingsByStatus(r.Context(), r.URL.Query().Get("status"))
	case r.URL.Query().Get("customer_id") != "":
		var customerID int64
		customerID, err = strconv.ParseInt(r.URL.Query().Get("customer_id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid customer_id")
			return
		}
		bookings, err = s.bookingSvc.ListBookingsByCustomer(r.Context(), customerID)
	default:
		bookings, err = s.bookingSvc.ListBookings(r.Context())
	}
	if err != nil {
		s.logger.Error("list bookings failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list bookings")
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req service.CreateBookingInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	created, err := s.bookingSvc.CreateBooking(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, err, "create booking")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := s.bookingID(w, r)
	if !ok {
		return
	}
	booking, err := s.bookingSvc.GetBooking(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err, "get booking")
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) handleUpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := s.bookingID(w, r)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	updated, err := s.bookingSvc.UpdateBookingStatus(r.Context(), id, event.BookingStatus(req.Status))
	if err != nil {
		s.writeServiceError(w, err, "update booking status")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := s.bookingID(w, r)
	if !ok {
		return
	}
	cancelled, err := s.bookingSvc.CancelBooking(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err, "cancel booking")
		return
	}
	writeJSON(w, http.StatusOK, cancelled)
}

func (s *Server) handleReassignQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := s.bookingID(w, r)
	if !ok {
		return
	}

	var req struct {
		QuoteCode string `json:"quote_code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	updated, err := s.bookingSvc.ReassignQuote(r.Context(), id, req.QuoteCode)
	if err != nil {
		s.writeServiceError(w, err, "reassign quote")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := s.bookingID(w, r)
	if !ok {
		return
	}
	if err := s.bookingSvc.DeleteBooking(r.Context(), id); err != nil {
		s.writeServiceError(w, err, "delete booking")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
