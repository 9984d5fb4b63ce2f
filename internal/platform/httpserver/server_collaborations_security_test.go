package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	collaborationhttp "brandlink/contexts/marketplace/collaboration-service/transport/http"
	"brandlink/contexts/marketplace/collaboration-service/ports"
)

func seedApprovedCampaign(server *Server, campaignID, brandID string) {
	server.modules.Collaborations.Store.SeedCampaign(ports.CampaignSnapshot{
		CampaignID:         campaignID,
		BrandID:            brandID,
		Name:               "Summer Launch",
		CollaborationLimit: 5,
		ApprovalStatus:     "Approved",
		Active:             true,
	})
}

func TestInviteRequiresUserHeader(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"influencer_id":"influencer-1","message":"join us"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/campaign-1/invites", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestInviteUnknownCampaignReturnsNotFound(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"influencer_id":"influencer-1","message":"join us"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/missing/invites", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "brand-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestInviteRespondProofCompleteFlow(t *testing.T) {
	server := newTestServer()
	seedApprovedCampaign(server, "campaign-1", "brand-1")

	inviteBody := []byte(`{"influencer_id":"influencer-1","message":"join us"}`)
	inviteReq := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/campaign-1/invites", bytes.NewReader(inviteBody))
	inviteReq.Header.Set("Content-Type", "application/json")
	inviteReq.Header.Set("X-User-Id", "brand-1")
	inviteRR := httptest.NewRecorder()
	server.mux.ServeHTTP(inviteRR, inviteReq)
	if inviteRR.Code != http.StatusCreated {
		t.Fatalf("invite: expected 201, got %d body=%s", inviteRR.Code, inviteRR.Body.String())
	}
	var invited collaborationhttp.CollaborationResponse
	if err := json.Unmarshal(inviteRR.Body.Bytes(), &invited); err != nil {
		t.Fatalf("decode invite response: %v", err)
	}
	collaborationID := invited.Collaboration.CollaborationID

	respondBody := []byte(`{"action":"accept"}`)
	respondReq := httptest.NewRequest(http.MethodPost, "/api/v1/collaborations/"+collaborationID+"/respond", bytes.NewReader(respondBody))
	respondReq.Header.Set("Content-Type", "application/json")
	respondReq.Header.Set("X-User-Id", "brand-1")
	respondRR := httptest.NewRecorder()
	server.mux.ServeHTTP(respondRR, respondReq)
	if respondRR.Code != http.StatusOK {
		t.Fatalf("respond: expected 200, got %d body=%s", respondRR.Code, respondRR.Body.String())
	}

	proofBody := []byte(`{"images":["https://cdn.example.com/post.png"],"social_links":["https://instagram.com/p/1"]}`)
	proofReq := httptest.NewRequest(http.MethodPost, "/api/v1/collaborations/"+collaborationID+"/proof", bytes.NewReader(proofBody))
	proofReq.Header.Set("Content-Type", "application/json")
	proofReq.Header.Set("X-User-Id", "influencer-1")
	proofRR := httptest.NewRecorder()
	server.mux.ServeHTTP(proofRR, proofReq)
	if proofRR.Code != http.StatusCreated {
		t.Fatalf("proof: expected 201, got %d body=%s", proofRR.Code, proofRR.Body.String())
	}

	completeReq := httptest.NewRequest(http.MethodPost, "/api/v1/collaborations/"+collaborationID+"/complete", nil)
	completeReq.Header.Set("X-User-Id", "brand-1")
	completeRR := httptest.NewRecorder()
	server.mux.ServeHTTP(completeRR, completeReq)
	if completeRR.Code != http.StatusOK {
		t.Fatalf("complete: expected 200, got %d body=%s", completeRR.Code, completeRR.Body.String())
	}
	var completed collaborationhttp.CollaborationResponse
	if err := json.Unmarshal(completeRR.Body.Bytes(), &completed); err != nil {
		t.Fatalf("decode complete response: %v", err)
	}
	if completed.Collaboration.Status != "Completed" {
		t.Fatalf("expected Completed status, got %q", completed.Collaboration.Status)
	}
}

func TestDuplicateInviteReturnsConflict(t *testing.T) {
	server := newTestServer()
	seedApprovedCampaign(server, "campaign-1", "brand-1")

	for i, want := range []int{http.StatusCreated, http.StatusConflict} {
		body := []byte(`{"influencer_id":"influencer-1","message":"join us"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/campaign-1/invites", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-User-Id", "brand-1")

		rr := httptest.NewRecorder()
		server.mux.ServeHTTP(rr, req)
		if rr.Code != want {
			t.Fatalf("attempt %d: expected %d, got %d body=%s", i+1, want, rr.Code, rr.Body.String())
		}
	}
}

func TestCompleteWithoutProofReturnsBadRequest(t *testing.T) {
	server := newTestServer()
	seedApprovedCampaign(server, "campaign-1", "brand-1")

	inviteBody := []byte(`{"influencer_id":"influencer-1","message":"join us"}`)
	inviteReq := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/campaign-1/invites", bytes.NewReader(inviteBody))
	inviteReq.Header.Set("Content-Type", "application/json")
	inviteReq.Header.Set("X-User-Id", "brand-1")
	inviteRR := httptest.NewRecorder()
	server.mux.ServeHTTP(inviteRR, inviteReq)
	if inviteRR.Code != http.StatusCreated {
		t.Fatalf("invite: expected 201, got %d body=%s", inviteRR.Code, inviteRR.Body.String())
	}
	var invited collaborationhttp.CollaborationResponse
	if err := json.Unmarshal(inviteRR.Body.Bytes(), &invited); err != nil {
		t.Fatalf("decode invite response: %v", err)
	}
	collaborationID := invited.Collaboration.CollaborationID

	respondBody := []byte(`{"action":"accept"}`)
	respondReq := httptest.NewRequest(http.MethodPost, "/api/v1/collaborations/"+collaborationID+"/respond", bytes.NewReader(respondBody))
	respondReq.Header.Set("Content-Type", "application/json")
	respondReq.Header.Set("X-User-Id", "brand-1")
	respondRR := httptest.NewRecorder()
	server.mux.ServeHTTP(respondRR, respondReq)
	if respondRR.Code != http.StatusOK {
		t.Fatalf("respond: expected 200, got %d body=%s", respondRR.Code, respondRR.Body.String())
	}

	completeReq := httptest.NewRequest(http.MethodPost, "/api/v1/collaborations/"+collaborationID+"/complete", nil)
	completeReq.Header.Set("X-User-Id", "brand-1")
	completeRR := httptest.NewRecorder()
	server.mux.ServeHTTP(completeRR, completeReq)
	if completeRR.Code != http.StatusBadRequest {
		t.Fatalf("complete: expected 400, got %d body=%s", completeRR.Code, completeRR.Body.String())
	}
}
