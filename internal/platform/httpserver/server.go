package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	subscriptionservice "brandlink/contexts/billing/subscription-service"
	notificationservice "brandlink/contexts/engagement/notification-service"
	admindashboardservice "brandlink/contexts/internal-ops/admin-dashboard-service"
	campaignservice "brandlink/contexts/marketplace/campaign-service"
	collaborationservice "brandlink/contexts/marketplace/collaboration-service"
	"brandlink/internal/platform/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	_ "brandlink/internal/platform/httpserver/docs"
)

// Modules bundles the context modules the API serves.
type Modules struct {
	Campaigns      campaignservice.Module
	Collaborations collaborationservice.Module
	Subscriptions  subscriptionservice.Module
	Notifications  notificationservice.Module
	Dashboard      admindashboardservice.Module
}

type Server struct {
	mux     *http.ServeMux
	handler http.Handler
	logger  *slog.Logger
	addr    string
	modules Modules
	limiter *rate.Limiter
}

func New(modules Modules, logger *slog.Logger, addr string, requestsPerSecond int, burst int) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 50
	}
	if burst <= 0 {
		burst = requestsPerSecond * 2
	}

	s := &Server{
		mux:     http.NewServeMux(),
		logger:  logger,
		addr:    addr,
		modules: modules,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
	s.registerRoutes()
	s.handler = s.rateLimit(s.instrument(s.mux))
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.handler)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.Handle("GET /metrics", promhttp.Handler())

	s.registerCampaignRoutes()
	s.registerCollaborationRoutes()
	s.registerSubscriptionRoutes()
	s.registerNotificationRoutes()
	s.registerDashboardRoutes()
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			metrics.HTTPRequestsThrottled.Inc()
			writeJSON(w, http.StatusTooManyRequests, errorBody{
				Code:    "rate_limited",
				Message: "too many requests",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(recorder.status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func queryInt(r *http.Request, name string) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
