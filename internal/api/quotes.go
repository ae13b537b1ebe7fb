package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/orcana-hub/backoffice/internal/service"
)

func (s *Server) handleListQuotes(w http.ResponseWriter, r *http.Request) {
	quotes, err := s.quoteSvc.ListQuotes(r.Context())
	if err != nil {
		s.logger.Error("list quotes failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list quotes")
		return
	}
	writeJSON(w, http.StatusOK, quotes)
}

func (s *Server) handleCreateQuote(w http.ResponseWriter, r *http.Request) {
	var req service.CreateQuoteInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	created, err := s.quoteSvc.CreateQuote(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, err, "create quote")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetQuote(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	quote, err := s.quoteSvc.GetQuote(r.Context(), code)
	if err != nil {
		s.writeServiceError(w, err, "get quote")
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (s *Server) handleAnswerQuote(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var req struct {
		Price float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	answered, err := s.quoteSvc.AnswerQuote(r.Context(), code, req.Price)
	if err != nil {
		s.writeServiceError(w, err, "answer quote")
		return
	}
	writeJSON(w, http.StatusOK, answered)
}

func (s *Server) handleUpdateQuoteStatus(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	updated, err := s.quoteSvc.UpdateQuoteStatus(r.Context(), code, req.Status)
	if err != nil {
		s.writeServiceError(w, err, "update quote status")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
