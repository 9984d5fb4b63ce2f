package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	campaignerrors "brandlink/contexts/marketplace/campaign-service/domain/errors"
	campaignhttp "brandlink/contexts/marketplace/campaign-service/transport/http"
)

func (s *Server) registerCampaignRoutes() {
	s.mux.HandleFunc("POST /api/v1/campaigns", s.handleCreateCampaign)
	s.mux.HandleFunc("GET /api/v1/campaigns", s.handleListCampaigns)
	s.mux.HandleFunc("GET /api/v1/campaigns/{campaign_id}", s.handleGetCampaign)
	s.mux.HandleFunc("PATCH /api/v1/campaigns/{campaign_id}", s.handleUpdateCampaign)
	s.mux.HandleFunc("DELETE /api/v1/campaigns/{campaign_id}", s.handleDeleteCampaign)
	s.mux.HandleFunc("POST /api/v1/campaigns/{campaign_id}/moderate", s.handleModerateCampaign)
}

func writeCampaignError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, campaignhttp.ErrorResponse{Code: code, Message: message})
}

func writeCampaignDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, campaignerrors.ErrCampaignNotFound):
		writeCampaignError(w, http.StatusNotFound, "campaign_not_found", err.Error())
	case errors.Is(err, campaignerrors.ErrInvalidCampaignInput),
		errors.Is(err, campaignerrors.ErrInvalidApprovalStatus):
		writeCampaignError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, campaignerrors.ErrCampaignNotActive):
		writeCampaignError(w, http.StatusConflict, "campaign_not_active", err.Error())
	case errors.Is(err, campaignerrors.ErrCampaignNotOwned):
		writeCampaignError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, campaignerrors.ErrCampaignQuotaExceeded):
		writeCampaignError(w, http.StatusBadRequest, "quota_exceeded", err.Error())
	case errors.Is(err, campaignerrors.ErrPackageLimitUnresolved):
		writeCampaignError(w, http.StatusInternalServerError, "configuration_error", err.Error())
	default:
		writeCampaignError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireBrand(w http.ResponseWriter, r *http.Request) (string, bool) {
	brandID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if brandID == "" {
		writeCampaignError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	return brandID, true
}

func requireAdmin(w http.ResponseWriter, r *http.Request) (string, bool) {
	adminID := strings.TrimSpace(r.Header.Get("X-Admin-Id"))
	if adminID == "" {
		writeCampaignError(w, http.StatusUnauthorized, "missing_admin", "X-Admin-Id header is required")
		return "", false
	}
	return adminID, true
}

func (s *Server) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	brandID, ok := requireBrand(w, r)
	if !ok {
		return
	}

	var req campaignhttp.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Campaigns.Handler.CreateCampaignHandler(r.Context(), brandID, req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.modules.Campaigns.Handler.ListCampaignsHandler(
		r.Context(),
		query.Get("brand_id"),
		query.Get("category"),
		queryInt(r, "page"),
		queryInt(r, "limit"),
	)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Campaigns.Handler.GetCampaignHandler(r.Context(), r.PathValue("campaign_id"))
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	brandID, ok := requireBrand(w, r)
	if !ok {
		return
	}

	var req campaignhttp.UpdateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Campaigns.Handler.UpdateCampaignHandler(r.Context(), brandID, r.PathValue("campaign_id"), req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	brandID, ok := requireBrand(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Campaigns.Handler.DeleteCampaignHandler(r.Context(), brandID, r.PathValue("campaign_id"))
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleModerateCampaign(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	var req campaignhttp.ModerateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Campaigns.Handler.ModerateCampaignHandler(r.Context(), r.PathValue("campaign_id"), req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
