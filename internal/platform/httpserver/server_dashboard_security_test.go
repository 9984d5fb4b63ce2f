package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	dashboardhttp "brandlink/contexts/internal-ops/admin-dashboard-service/transport/http"
)

func TestBrandStatisticsRequiresAdminHeader(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/statistics/brand", nil)
	req.Header.Set("X-User-Id", "user-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestBrandStatisticsEmptyPlatform(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/statistics/brand", nil)
	req.Header.Set("X-Admin-Id", "admin-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp dashboardhttp.BrandStatisticsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalCampaigns != 0 || resp.TotalBrands != 0 {
		t.Fatalf("expected zero counts, got %+v", resp)
	}
}

func TestRecordAdminActionRequiresIdempotencyKey(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"action":"campaign.approve","target_id":"campaign-1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/actions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Id", "admin-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestRecordAdminActionIsIdempotentOverHTTP(t *testing.T) {
	server := newTestServer()
	body := `{"action":"campaign.approve","target_id":"campaign-1","justification":"meets guidelines"}`

	var first dashboardhttp.RecordAdminActionResponse
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/actions", bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Admin-Id", "admin-1")
		req.Header.Set("Idempotency-Key", "moderate-1")

		rr := httptest.NewRecorder()
		server.mux.ServeHTTP(rr, req)
		if rr.Code != http.StatusCreated {
			t.Fatalf("attempt %d: expected 201, got %d body=%s", i+1, rr.Code, rr.Body.String())
		}

		var resp dashboardhttp.RecordAdminActionResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if i == 0 {
			first = resp
		} else if resp.AuditID != first.AuditID {
			t.Fatalf("expected replayed audit id %q, got %q", first.AuditID, resp.AuditID)
		}
	}

	listReq := httptest.NewRequest(http.MethodGet, "/api/v1/admin/actions", nil)
	listReq.Header.Set("X-Admin-Id", "admin-1")
	listRR := httptest.NewRecorder()
	server.mux.ServeHTTP(listRR, listReq)
	if listRR.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", listRR.Code, listRR.Body.String())
	}

	var list dashboardhttp.ListAuditLogsResponse
	if err := json.Unmarshal(listRR.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(list.Logs) != 1 {
		t.Fatalf("expected a single audit entry, got %d", len(list.Logs))
	}
}
