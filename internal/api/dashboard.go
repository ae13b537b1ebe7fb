package api

import "net/http"

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	over, err := s.dashboardSvc.Overview(r.Context())
	if err != nil {
		s.logger.Error("dashboard overview failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute dashboard")
		return
	}
	writeJSON(w, http.StatusOK, over)
}

func (s *Server) handleDashboardRevenue(w http.ResponseWriter, r *http.Request) {
	months, err := s.dashboardSvc.Revenue(r.Context())
	if err != nil {
		s.logger.Error("dashboard revenue failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute revenue")
		return
	}
	writeJSON(w, http.StatusOK, months)
}
