package httpserver

import (
	"errors"
	"net/http"
	"strings"

	notificationerrors "brandlink/contexts/engagement/notification-service/domain/errors"
)

func (s *Server) registerNotificationRoutes() {
	s.mux.HandleFunc("GET /api/v1/notifications", s.handleNotificationFeed)
	s.mux.HandleFunc("POST /api/v1/notifications/read", s.handleMarkNotificationsRead)
	s.mux.HandleFunc("GET /api/v1/admin/notifications", s.handleAdminNotificationFeed)
	s.mux.HandleFunc("POST /api/v1/admin/notifications/{notification_id}/read", s.handleMarkAdminNotificationRead)
}

func writeNotificationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, notificationerrors.ErrNotificationNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Code: "not_found", Message: err.Error()})
	case errors.Is(err, notificationerrors.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "invalid_request", Message: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody{Code: "internal_error", Message: "internal server error"})
	}
}

func (s *Server) handleNotificationFeed(w http.ResponseWriter, r *http.Request) {
	receiverID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if receiverID == "" {
		writeJSON(w, http.StatusUnauthorized, errorBody{Code: "missing_user", Message: "X-User-Id header is required"})
		return
	}

	resp, err := s.modules.Notifications.Handler.FeedHandler(r.Context(), receiverID)
	if err != nil {
		writeNotificationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMarkNotificationsRead(w http.ResponseWriter, r *http.Request) {
	receiverID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if receiverID == "" {
		writeJSON(w, http.StatusUnauthorized, errorBody{Code: "missing_user", Message: "X-User-Id header is required"})
		return
	}

	resp, err := s.modules.Notifications.Handler.MarkAllReadHandler(r.Context(), receiverID)
	if err != nil {
		writeNotificationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAdminNotificationFeed(w http.ResponseWriter, r *http.Request) {
	if strings.TrimSpace(r.Header.Get("X-Admin-Id")) == "" {
		writeJSON(w, http.StatusUnauthorized, errorBody{Code: "missing_admin", Message: "X-Admin-Id header is required"})
		return
	}

	resp, err := s.modules.Notifications.Handler.AdminFeedHandler(r.Context())
	if err != nil {
		writeNotificationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMarkAdminNotificationRead(w http.ResponseWriter, r *http.Request) {
	if strings.TrimSpace(r.Header.Get("X-Admin-Id")) == "" {
		writeJSON(w, http.StatusUnauthorized, errorBody{Code: "missing_admin", Message: "X-Admin-Id header is required"})
		return
	}

	if err := s.modules.Notifications.Handler.MarkAdminReadHandler(r.Context(), r.PathValue("notification_id")); err != nil {
		writeNotificationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
	}{Status: "ok"})
}
