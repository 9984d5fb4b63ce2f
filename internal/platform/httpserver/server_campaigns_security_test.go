package httpserver

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	subscriptionservice "brandlink/contexts/billing/subscription-service"
	notificationservice "brandlink/contexts/engagement/notification-service"
	admindashboardservice "brandlink/contexts/internal-ops/admin-dashboard-service"
	campaignservice "brandlink/contexts/marketplace/campaign-service"
	campaignhttp "brandlink/contexts/marketplace/campaign-service/transport/http"
	collaborationservice "brandlink/contexts/marketplace/collaboration-service"
)

func newTestServer() *Server {
	logger := slog.Default()
	subscriptions := subscriptionservice.NewInMemoryModule(nil, logger)
	return New(Modules{
		Campaigns:      campaignservice.NewInMemoryModule(subscriptions.Queries, nil, logger),
		Collaborations: collaborationservice.NewInMemoryModule(nil, nil, logger),
		Subscriptions:  subscriptions,
		Notifications:  notificationservice.NewInMemoryModule(logger),
		Dashboard:      admindashboardservice.NewInMemoryModule(),
	}, logger, ":0", 0, 0)
}

func TestCampaignCreateRequiresUserHeader(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"name":"Summer Launch","category":"fashion","collaboration_limit":3}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCampaignCreateSuccess(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"name":"Summer Launch","image":"https://cdn.example.com/summer.png","description":"UGC push","category":"fashion","collaboration_limit":3}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "brand-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp campaignhttp.CreateCampaignResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Campaign.CampaignID == "" {
		t.Fatal("expected a campaign id")
	}
	if resp.Campaign.ApprovalStatus != "Pending" {
		t.Fatalf("expected Pending approval, got %q", resp.Campaign.ApprovalStatus)
	}
	if resp.MonthlyCount != 1 {
		t.Fatalf("expected monthly count 1, got %d", resp.MonthlyCount)
	}
}

func TestCampaignGetUnknownReturnsNotFound(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/missing", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCampaignModerateRequiresAdminHeader(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"approval_status":"Approved"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/campaign-1/moderate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "brand-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCampaignUpdateByAnotherBrandIsForbidden(t *testing.T) {
	server := newTestServer()

	createBody := []byte(`{"name":"Summer Launch","category":"fashion","collaboration_limit":3}`)
	createReq := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns", bytes.NewReader(createBody))
	createReq.Header.Set("Content-Type", "application/json")
	createReq.Header.Set("X-User-Id", "brand-1")
	createRR := httptest.NewRecorder()
	server.mux.ServeHTTP(createRR, createReq)
	if createRR.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", createRR.Code, createRR.Body.String())
	}
	var created campaignhttp.CreateCampaignResponse
	if err := json.Unmarshal(createRR.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	updateBody := []byte(`{"name":"Hijacked"}`)
	updateReq := httptest.NewRequest(http.MethodPatch, "/api/v1/campaigns/"+created.Campaign.CampaignID, bytes.NewReader(updateBody))
	updateReq.Header.Set("Content-Type", "application/json")
	updateReq.Header.Set("X-User-Id", "brand-2")
	updateRR := httptest.NewRecorder()
	server.mux.ServeHTTP(updateRR, updateReq)
	if updateRR.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", updateRR.Code, updateRR.Body.String())
	}
}
