package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/polygonid/wallet-mediator/internal/config"
	"github.com/polygonid/wallet-mediator/internal/core/ports"
	"github.com/polygonid/wallet-mediator/internal/health"
	"github.com/polygonid/wallet-mediator/internal/log"
	"github.com/polygonid/wallet-mediator/internal/metrics"
)

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen -generate types,chi-server,strict-server -package api -o api.gen.go ../../api/api.yaml

const (
	headerAPIKey   = "X-API-KEY"
	headerWalletID = "X-WALLET-ID"
)

// Server implements the mediator http api
type Server struct {
	cfg           *config.Configuration
	wallets       ports.WalletService
	webhooks      ports.WebhookService
	notifications ports.NotificationService
	credentials   ports.CredentialsService
	scanner       ports.ScannerService
	broadcaster   ports.Broadcaster
	sessions      ports.SessionRepository
	health        *health.Status
	metrics       *metrics.Metrics
	gatherer      prometheus.Gatherer
}

// NewServer is a Server constructor
func NewServer(
	cfg *config.Configuration,
	wallets ports.WalletService,
	webhooks ports.WebhookService,
	notifications ports.NotificationService,
	credentials ports.CredentialsService,
	scanner ports.ScannerService,
	broadcaster ports.Broadcaster,
	sessions ports.SessionRepository,
	healthStatus *health.Status,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
) *Server {
	return &Server{
		cfg:           cfg,
		wallets:       wallets,
		webhooks:      webhooks,
		notifications: notifications,
		credentials:   credentials,
		scanner:       scanner,
		broadcaster:   broadcaster,
		sessions:      sessions,
		health:        healthStatus,
		metrics:       m,
		gatherer:      gatherer,
	}
}

// Handler returns the router of the api with the common middlewares installed
func (s *Server) Handler(ctx context.Context) http.Handler {
	mux := chi.NewRouter()
	mux.Use(
		chiMiddleware.RequestID,
		log.ChiMiddleware(ctx, "/health", "/metrics"),
		chiMiddleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.Cors.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type", headerAPIKey, headerWalletID},
			AllowCredentials: true,
		}),
		chiMiddleware.NoCache,
		chiMiddleware.StripSlashes,
	)
	s.RegisterRoutes(ctx, mux)
	return mux
}

// RegisterRoutes adds the api endpoints to mux
func (s *Server) RegisterRoutes(ctx context.Context, mux chi.Router) {
	if s.gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	HandlerWithOptions(
		NewStrictHandlerWithOptions(
			s,
			s.middlewares(ctx),
			StrictHTTPServerOptions{
				RequestErrorHandlerFunc:  RequestErrorHandlerFunc,
				ResponseErrorHandlerFunc: ResponseErrorHandlerFunc,
			}),
		ChiServerOptions{
			BaseRouter:       mux,
			ErrorHandlerFunc: ErrorHandlerFunc,
		},
	)
}

// middlewares run innermost first, the request logger wraps everything else
func (s *Server) middlewares(ctx context.Context) []StrictMiddlewareFunc {
	return []StrictMiddlewareFunc{
		s.LatencyMiddleware(),
		s.SessionMiddleware(),
		LogMiddleware(ctx),
	}
}

// Health returns the status of the storage and the cache
func (s *Server) Health(ctx context.Context, _ HealthRequestObject) (HealthResponseObject, error) {
	status := HealthResponse{}
	if s.health != nil {
		status = s.health.Status(ctx)
	}
	return Health200JSONResponse(status), nil
}
