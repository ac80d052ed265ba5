// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	corslib "github.com/rs/cors"

	"github.com/okian/nsl/internal/adapters/http/swagger"
	service "github.com/okian/nsl/internal/app"
	"github.com/okian/nsl/internal/domain/league"
	"github.com/okian/nsl/internal/domain/model"
	"github.com/okian/nsl/internal/domain/scoring"
	"github.com/okian/nsl/internal/domain/squad"
	"github.com/okian/nsl/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	StatsProvider

	// Reference data and roster lookups.
	Positions() []service.PositionInfo
	Teams() []league.Team
	Team(id string) (league.Team, error)
	FindPlayers(ctx context.Context, q service.PlayerQuery) ([]model.Player, error)

	// Recommend ranks the roster for a position without touching any squad.
	Recommend(ctx context.Context, position, q1, q2 string) ([]scoring.Candidate, error)

	// Authenticate checks a customer's PIN before squad edits.
	Authenticate(ctx context.Context, customerID, pin string) (model.Customer, error)

	// Squad operations. Changes stay in a draft until Finalize.
	Squad(ctx context.Context, customerID string) (*squad.Squad, error)
	AssignPosition(ctx context.Context, customerID, position, q1, q2 string) (*squad.Squad, []scoring.Candidate, error)
	Finalize(ctx context.Context, customerID string) (*squad.Squad, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	deps Dependencies

	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	catalogHandler *CatalogHandler
	squadHandler   *SquadHandler

	corsOrigins []string
	rateLimit   int
	rateWindow  time.Duration
	mcpPath     string
	mcpHandler  http.Handler
	logger      logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithCORSOrigins sets the allowed CORS origins.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.corsOrigins = origins
		}
	}
}

// WithRateLimit limits each client IP to requests per window. Zero disables.
func WithRateLimit(requests int, window time.Duration) Option {
	return func(s *Server) {
		if requests > 0 && window > 0 {
			s.rateLimit = requests
			s.rateWindow = window
		}
	}
}

// WithMCPHandler mounts h at path.
func WithMCPHandler(path string, h http.Handler) Option {
	return func(s *Server) {
		if path != "" && h != nil {
			s.mcpPath = path
			s.mcpHandler = h
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		deps:           deps,
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(deps),
		catalogHandler: NewCatalogHandler(deps),
		squadHandler:   NewSquadHandler(deps),
		corsOrigins:    []string{"*"},
		logger:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the chi router with middleware and every route.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(RequestLogger(s.logger))
	r.Use(corslib.New(corslib.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Mcp-Session-Id", PINHeader},
		ExposedHeaders: []string{"X-Request-ID", "Mcp-Session-Id"},
	}).Handler)
	if s.rateLimit > 0 {
		r.Use(RateLimitMiddleware(s.rateLimit, s.rateWindow))
	}

	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	swagger.Register(r)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/positions", MetricsMiddleware(s.catalogHandler.HandlePositions, "positions"))
		r.Get("/teams", MetricsMiddleware(s.catalogHandler.HandleTeams, "teams"))
		r.Get("/teams/{id}", MetricsMiddleware(s.catalogHandler.HandleTeam, "team"))
		r.Get("/players", MetricsMiddleware(s.catalogHandler.HandlePlayers, "players"))
		r.Get("/recommendations", MetricsMiddleware(s.catalogHandler.HandleRecommendations, "recommendations"))

		r.Get("/squads/{customerID}", MetricsMiddleware(s.squadHandler.HandleGetSquad, "squad"))
		r.Put("/squads/{customerID}/positions/{position}", MetricsMiddleware(s.squadHandler.HandleAssignPosition, "assign_position"))
		r.Post("/squads/{customerID}/finalize", MetricsMiddleware(s.squadHandler.HandleFinalize, "finalize"))
	})

	if s.mcpHandler != nil {
		r.Handle(s.mcpPath, s.mcpHandler)
	}
	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError writes err with the status statusFor picks.
func writeDomainError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	writeError(w, status, code, err)
}
