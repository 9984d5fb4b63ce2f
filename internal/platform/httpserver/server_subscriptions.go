package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	subscriptionerrors "brandlink/contexts/billing/subscription-service/domain/errors"
	subscriptionhttp "brandlink/contexts/billing/subscription-service/transport/http"
)

func (s *Server) registerSubscriptionRoutes() {
	s.mux.HandleFunc("POST /api/v1/packages", s.handleCreatePackage)
	s.mux.HandleFunc("PATCH /api/v1/packages/{package_id}", s.handleUpdatePackage)
	s.mux.HandleFunc("GET /api/v1/packages", s.handleListPackages)
	s.mux.HandleFunc("POST /api/v1/subscriptions", s.handleSubscribe)
	s.mux.HandleFunc("POST /api/v1/subscriptions/{subscription_id}/cancel", s.handleCancelSubscription)
	s.mux.HandleFunc("POST /api/v1/subscriptions/{subscription_id}/renew", s.handleRenewSubscription)
	s.mux.HandleFunc("GET /api/v1/subscriptions", s.handleListSubscriptions)
	s.mux.HandleFunc("GET /api/v1/accounts/me", s.handleGetAccount)
}

func writeSubscriptionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, subscriptionhttp.ErrorResponse{Code: code, Message: message})
}

func writeSubscriptionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, subscriptionerrors.ErrPackageNotFound),
		errors.Is(err, subscriptionerrors.ErrSubscriptionNotFound):
		writeSubscriptionError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, subscriptionerrors.ErrInvalidPackageInput),
		errors.Is(err, subscriptionerrors.ErrInvalidInput):
		writeSubscriptionError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, subscriptionerrors.ErrSubscriptionExists),
		errors.Is(err, subscriptionerrors.ErrSubscriptionNotExpired):
		writeSubscriptionError(w, http.StatusConflict, "invalid_state", err.Error())
	case errors.Is(err, subscriptionerrors.ErrPaymentFailed):
		writeSubscriptionError(w, http.StatusPaymentRequired, "payment_failed", err.Error())
	case errors.Is(err, subscriptionerrors.ErrConfiguration):
		writeSubscriptionError(w, http.StatusInternalServerError, "configuration_error", err.Error())
	default:
		writeSubscriptionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireSubscriptionUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeSubscriptionError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	return userID, true
}

func requireBillingAdmin(w http.ResponseWriter, r *http.Request) bool {
	if strings.TrimSpace(r.Header.Get("X-Admin-Id")) == "" {
		writeSubscriptionError(w, http.StatusUnauthorized, "missing_admin", "X-Admin-Id header is required")
		return false
	}
	return true
}

func (s *Server) handleCreatePackage(w http.ResponseWriter, r *http.Request) {
	if !requireBillingAdmin(w, r) {
		return
	}

	var req subscriptionhttp.CreatePackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSubscriptionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Subscriptions.Handler.CreatePackageHandler(r.Context(), req)
	if err != nil {
		writeSubscriptionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdatePackage(w http.ResponseWriter, r *http.Request) {
	if !requireBillingAdmin(w, r) {
		return
	}

	var req subscriptionhttp.UpdatePackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSubscriptionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Subscriptions.Handler.UpdatePackageHandler(r.Context(), r.PathValue("package_id"), req)
	if err != nil {
		writeSubscriptionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListPackages(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Subscriptions.Handler.ListPackagesHandler(r.Context())
	if err != nil {
		writeSubscriptionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireSubscriptionUser(w, r)
	if !ok {
		return
	}

	var req subscriptionhttp.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSubscriptionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Subscriptions.Handler.SubscribeHandler(r.Context(), userID, req)
	if err != nil {
		writeSubscriptionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleCancelSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireSubscriptionUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Subscriptions.Handler.CancelHandler(r.Context(), userID, r.PathValue("subscription_id"))
	if err != nil {
		writeSubscriptionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRenewSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireSubscriptionUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Subscriptions.Handler.RenewHandler(r.Context(), userID, r.PathValue("subscription_id"))
	if err != nil {
		writeSubscriptionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	if !requireBillingAdmin(w, r) {
		return
	}

	resp, err := s.modules.Subscriptions.Handler.ListSubscriptionsHandler(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeSubscriptionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireSubscriptionUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Subscriptions.Handler.GetAccountHandler(r.Context(), userID)
	if err != nil {
		writeSubscriptionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
