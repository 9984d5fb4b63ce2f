package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"brandlink/contexts/marketplace/collaboration-service/application/queries"
	"brandlink/contexts/marketplace/collaboration-service/domain/entities"
	collaborationerrors "brandlink/contexts/marketplace/collaboration-service/domain/errors"
	collaborationhttp "brandlink/contexts/marketplace/collaboration-service/transport/http"
)

func (s *Server) registerCollaborationRoutes() {
	s.mux.HandleFunc("POST /api/v1/campaigns/{campaign_id}/invites", s.handleInviteInfluencer)
	s.mux.HandleFunc("POST /api/v1/campaigns/{campaign_id}/interests", s.handleShowInterest)
	s.mux.HandleFunc("POST /api/v1/collaborations/{collaboration_id}/respond", s.handleRespond)
	s.mux.HandleFunc("POST /api/v1/collaborations/{collaboration_id}/proof", s.handleSubmitProof)
	s.mux.HandleFunc("POST /api/v1/collaborations/{collaboration_id}/complete", s.handleCompleteCollaboration)
	s.mux.HandleFunc("POST /api/v1/collaborations/{collaboration_id}/cancel", s.handleCancelCollaboration)
	s.mux.HandleFunc("GET /api/v1/collaborations", s.handleListCollaborations)
	s.mux.HandleFunc("GET /api/v1/collaborations/{collaboration_id}", s.handleGetCollaboration)
	s.mux.HandleFunc("GET /api/v1/proofs", s.handleListProofs)
}

func writeCollaborationError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, collaborationhttp.ErrorResponse{Code: code, Message: message})
}

func writeCollaborationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, collaborationerrors.ErrCollaborationNotFound),
		errors.Is(err, collaborationerrors.ErrProofNotFound),
		errors.Is(err, collaborationerrors.ErrCampaignNotFound):
		writeCollaborationError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, collaborationerrors.ErrInvalidInput),
		errors.Is(err, collaborationerrors.ErrQuotaExceeded),
		errors.Is(err, collaborationerrors.ErrApprovalRequired),
		errors.Is(err, collaborationerrors.ErrCampaignRejected),
		errors.Is(err, collaborationerrors.ErrProofRequired):
		writeCollaborationError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, collaborationerrors.ErrAlreadyInvited),
		errors.Is(err, collaborationerrors.ErrDuplicateSubmission):
		writeCollaborationError(w, http.StatusConflict, "duplicate", err.Error())
	case errors.Is(err, collaborationerrors.ErrInvalidStatusTransition),
		errors.Is(err, collaborationerrors.ErrAlreadyFinalized),
		errors.Is(err, collaborationerrors.ErrCollaborationNotAccepted):
		writeCollaborationError(w, http.StatusConflict, "invalid_state", err.Error())
	case errors.Is(err, collaborationerrors.ErrForbidden):
		writeCollaborationError(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		writeCollaborationError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireActor(w http.ResponseWriter, r *http.Request) (string, bool) {
	actorID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if actorID == "" {
		writeCollaborationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	return actorID, true
}

func (s *Server) handleInviteInfluencer(w http.ResponseWriter, r *http.Request) {
	brandID, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req collaborationhttp.InviteInfluencerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCollaborationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	req.CampaignID = r.PathValue("campaign_id")

	resp, err := s.modules.Collaborations.Handler.InviteInfluencerHandler(r.Context(), brandID, req)
	if err != nil {
		writeCollaborationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleShowInterest(w http.ResponseWriter, r *http.Request) {
	influencerID, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req collaborationhttp.ShowInterestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCollaborationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	req.CampaignID = r.PathValue("campaign_id")

	resp, err := s.modules.Collaborations.Handler.ShowInterestHandler(r.Context(), influencerID, req)
	if err != nil {
		writeCollaborationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleRespond(w http.ResponseWriter, r *http.Request) {
	brandID, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req collaborationhttp.RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCollaborationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Collaborations.Handler.RespondHandler(r.Context(), brandID, r.PathValue("collaboration_id"), req)
	if err != nil {
		writeCollaborationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitProof(w http.ResponseWriter, r *http.Request) {
	influencerID, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req collaborationhttp.SubmitProofRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCollaborationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Collaborations.Handler.SubmitProofHandler(r.Context(), influencerID, r.PathValue("collaboration_id"), req)
	if err != nil {
		writeCollaborationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleCompleteCollaboration(w http.ResponseWriter, r *http.Request) {
	brandID, ok := requireActor(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Collaborations.Handler.CompleteHandler(r.Context(), brandID, r.PathValue("collaboration_id"))
	if err != nil {
		writeCollaborationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCancelCollaboration(w http.ResponseWriter, r *http.Request) {
	brandID, ok := requireActor(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Collaborations.Handler.CancelHandler(r.Context(), brandID, r.PathValue("collaboration_id"))
	if err != nil {
		writeCollaborationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListCollaborations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.modules.Collaborations.Handler.ListCollaborationsHandler(r.Context(), queries.ListCollaborationsQuery{
		CampaignID:   query.Get("campaign_id"),
		BrandID:      query.Get("brand_id"),
		InfluencerID: query.Get("influencer_id"),
		Origin:       entities.Origin(query.Get("origin")),
		Status:       entities.Status(query.Get("status")),
		Page:         queryInt(r, "page"),
		Limit:        queryInt(r, "limit"),
	})
	if err != nil {
		writeCollaborationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCollaboration(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Collaborations.Handler.GetCollaborationHandler(r.Context(), r.PathValue("collaboration_id"))
	if err != nil {
		writeCollaborationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListProofs(w http.ResponseWriter, r *http.Request) {
	var campaignIDs []string
	if raw := strings.TrimSpace(r.URL.Query().Get("campaign_ids")); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(id); trimmed != "" {
				campaignIDs = append(campaignIDs, trimmed)
			}
		}
	}

	resp, err := s.modules.Collaborations.Handler.ListProofsHandler(r.Context(), campaignIDs)
	if err != nil {
		writeCollaborationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
