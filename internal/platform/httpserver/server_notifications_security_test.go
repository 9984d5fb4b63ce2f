package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"brandlink/contexts/engagement/notification-service/application/commands"
	notificationhttp "brandlink/contexts/engagement/notification-service/transport/http"
)

func TestNotificationFeedRequiresUserHeader(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestNotificationFeedAndMarkRead(t *testing.T) {
	server := newTestServer()
	if _, err := server.modules.Notifications.Send.Execute(context.Background(), commands.SendCommand{
		Text:       "You were invited to Summer Launch",
		ReceiverID: "influencer-1",
	}); err != nil {
		t.Fatalf("seed notification: %v", err)
	}

	feedReq := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	feedReq.Header.Set("X-User-Id", "influencer-1")
	feedRR := httptest.NewRecorder()
	server.mux.ServeHTTP(feedRR, feedReq)
	if feedRR.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", feedRR.Code, feedRR.Body.String())
	}

	var feed notificationhttp.FeedResponse
	if err := json.Unmarshal(feedRR.Body.Bytes(), &feed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(feed.Notifications) != 1 || feed.Unread != 1 {
		t.Fatalf("expected 1 unread notification, got %d/%d", len(feed.Notifications), feed.Unread)
	}

	markReq := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/read", nil)
	markReq.Header.Set("X-User-Id", "influencer-1")
	markRR := httptest.NewRecorder()
	server.mux.ServeHTTP(markRR, markReq)
	if markRR.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", markRR.Code, markRR.Body.String())
	}

	var marked notificationhttp.MarkReadResponse
	if err := json.Unmarshal(markRR.Body.Bytes(), &marked); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if marked.Marked != 1 {
		t.Fatalf("expected 1 marked, got %d", marked.Marked)
	}
}

func TestAdminNotificationFeedRequiresAdminHeader(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/notifications", nil)
	req.Header.Set("X-User-Id", "user-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestMarkUnknownAdminNotificationReturnsNotFound(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/notifications/missing/read", nil)
	req.Header.Set("X-Admin-Id", "admin-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}
