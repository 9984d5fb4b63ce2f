package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	dashboarderrors "brandlink/contexts/internal-ops/admin-dashboard-service/domain/errors"
	dashboardhttp "brandlink/contexts/internal-ops/admin-dashboard-service/transport/http"
)

func (s *Server) registerDashboardRoutes() {
	s.mux.HandleFunc("GET /api/v1/admin/statistics/brand", s.handleBrandStatistics)
	s.mux.HandleFunc("GET /api/v1/admin/statistics/influencer", s.handleInfluencerStatistics)
	s.mux.HandleFunc("GET /api/v1/admin/earnings/monthly", s.handleMonthlyEarnings)
	s.mux.HandleFunc("POST /api/v1/admin/actions", s.handleRecordAdminAction)
	s.mux.HandleFunc("GET /api/v1/admin/actions", s.handleListAuditLogs)
}

func writeDashboardDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dashboarderrors.ErrInvalidInput),
		errors.Is(err, dashboarderrors.ErrIdempotencyRequired):
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "invalid_request", Message: err.Error()})
	case errors.Is(err, dashboarderrors.ErrIdempotencyConflict):
		writeJSON(w, http.StatusConflict, errorBody{Code: "idempotency_conflict", Message: err.Error()})
	case errors.Is(err, dashboarderrors.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorBody{Code: "unauthorized", Message: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody{Code: "internal_error", Message: "internal server error"})
	}
}

func requireDashboardAdmin(w http.ResponseWriter, r *http.Request) (string, bool) {
	adminID := strings.TrimSpace(r.Header.Get("X-Admin-Id"))
	if adminID == "" {
		writeJSON(w, http.StatusUnauthorized, errorBody{Code: "missing_admin", Message: "X-Admin-Id header is required"})
		return "", false
	}
	return adminID, true
}

func (s *Server) handleBrandStatistics(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireDashboardAdmin(w, r); !ok {
		return
	}

	resp, err := s.modules.Dashboard.Handler.BrandStatisticsHandler(r.Context())
	if err != nil {
		writeDashboardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleInfluencerStatistics(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireDashboardAdmin(w, r); !ok {
		return
	}

	resp, err := s.modules.Dashboard.Handler.InfluencerStatisticsHandler(r.Context())
	if err != nil {
		writeDashboardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMonthlyEarnings(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireDashboardAdmin(w, r); !ok {
		return
	}

	resp, err := s.modules.Dashboard.Handler.MonthlyEarningsHandler(r.Context(), queryInt(r, "months"))
	if err != nil {
		writeDashboardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRecordAdminAction(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireDashboardAdmin(w, r)
	if !ok {
		return
	}

	var req dashboardhttp.RecordAdminActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "invalid_json", Message: "request body must be valid JSON"})
		return
	}

	resp, err := s.modules.Dashboard.Handler.RecordAdminActionHandler(r.Context(), adminID, r.Header.Get("Idempotency-Key"), req)
	if err != nil {
		writeDashboardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListAuditLogs(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireDashboardAdmin(w, r); !ok {
		return
	}

	resp, err := s.modules.Dashboard.Handler.ListAuditLogsHandler(r.Context(), queryInt(r, "limit"))
	if err != nil {
		writeDashboardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
