package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	subscriptionhttp "brandlink/contexts/billing/subscription-service/transport/http"
)

func TestPackageCreateRequiresAdminHeader(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"title":"Gold","duration":"Monthly","limit":5,"price_cents":4999}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/packages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "user-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestPackageCreateRejectsUnknownTitle(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"title":"Platinum","duration":"Monthly","limit":5,"price_cents":4999}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/packages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Id", "admin-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func createTestPackage(t *testing.T, server *Server) subscriptionhttp.PackageView {
	t.Helper()
	body := []byte(`{"title":"Gold","duration":"Monthly","limit":5,"price_cents":4999,"features":["priority support"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/packages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Id", "admin-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp subscriptionhttp.PackageResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.Package
}

func TestSubscribeRequiresUserHeader(t *testing.T) {
	server := newTestServer()
	pkg := createTestPackage(t, server)

	body := []byte(`{"package_id":"` + pkg.PackageID + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/subscriptions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestSubscribeThenAccountShowsSubscribed(t *testing.T) {
	server := newTestServer()
	pkg := createTestPackage(t, server)

	body := []byte(`{"package_id":"` + pkg.PackageID + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/subscriptions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "brand-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	accountReq := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/me", nil)
	accountReq.Header.Set("X-User-Id", "brand-1")
	accountRR := httptest.NewRecorder()
	server.mux.ServeHTTP(accountRR, accountReq)
	if accountRR.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", accountRR.Code, accountRR.Body.String())
	}

	var account subscriptionhttp.AccountResponse
	if err := json.Unmarshal(accountRR.Body.Bytes(), &account); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !account.Account.Subscribed {
		t.Fatal("expected account to be subscribed")
	}
	if account.Account.Title != "Gold" {
		t.Fatalf("expected Gold package title, got %q", account.Account.Title)
	}
}

func TestSecondSubscriptionIsRejected(t *testing.T) {
	server := newTestServer()
	pkg := createTestPackage(t, server)

	for i, want := range []int{http.StatusCreated, http.StatusConflict} {
		body := []byte(`{"package_id":"` + pkg.PackageID + `"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/subscriptions", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-User-Id", "brand-1")

		rr := httptest.NewRecorder()
		server.mux.ServeHTTP(rr, req)
		if rr.Code != want {
			t.Fatalf("attempt %d: expected %d, got %d body=%s", i+1, want, rr.Code, rr.Body.String())
		}
	}
}

func TestSubscriptionListRequiresAdminHeader(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/subscriptions", nil)
	req.Header.Set("X-User-Id", "user-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}
