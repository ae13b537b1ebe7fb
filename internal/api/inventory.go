package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/orcana-hub/backoffice/internal/storage"
)

type materialRequest struct {
	Name     string   `json:"name"`
	Quantity float64  `json:"quantity"`
	Unit     string   `json:"unit"`
	MinAlert *float64 `json:"min_alert"`
}

func (s *Server) materialID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid material id")
		return 0, false
	}
	return id, true
}

func (s *Server) handleListMaterials(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("name"); name != "" {
		materials, err := s.inventorySvc.FindMaterial(r.Context(), name)
		if err != nil {
			s.writeServiceError(w, err, "find materials")
			return
		}
		writeJSON(w, http.StatusOK, materials)
		return
	}

	materials, err := s.inventorySvc.ListMaterials(r.Context())
	if err != nil {
		s.logger.Error("list materials failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list materials")
		return
	}
	writeJSON(w, http.StatusOK, materials)
}

func (s *Server) handleCreateMaterial(w http.ResponseWriter, r *http.Request) {
	var req materialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	created, err := s.inventorySvc.CreateMaterial(r.Context(), &storage.Material{
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		MinAlert: req.MinAlert,
	})
	if err != nil {
		s.writeServiceError(w, err, "create material")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := s.materialID(w, r)
	if !ok {
		return
	}

	var req materialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	updated, err := s.inventorySvc.UpdateMaterial(r.Context(), &storage.Material{
		ID:       id,
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		MinAlert: req.MinAlert,
	})
	if err != nil {
		s.writeServiceError(w, err, "update material")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := s.materialID(w, r)
	if !ok {
		return
	}

	var req struct {
		Quantity float64 `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	updated, err := s.inventorySvc.UpdateQuantity(r.Context(), id, req.Quantity)
	if err != nil {
		s.writeServiceError(w, err, "update quantity")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := s.materialID(w, r)
	if !ok {
		return
	}
	if err := s.inventorySvc.DeleteMaterial(r.Context(), id); err != nil {
		s.writeServiceError(w, err, "delete material")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListBelowMinimum(w http.ResponseWriter, r *http.Request) {
	materials, err := s.inventorySvc.ListBelowMinimum(r.Context())
	if err != nil {
		s.logger.Error("list low stock failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list low stock")
		return
	}
	writeJSON(w, http.StatusOK, materials)
}
