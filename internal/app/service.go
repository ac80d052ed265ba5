// Package service wires the league reference data, the roster, the stores
// and the squad assembler behind one API used by the console, HTTP and MCP
// adapters.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/nsl/internal/adapters/repository"
	"github.com/okian/nsl/internal/domain/league"
	"github.com/okian/nsl/internal/domain/model"
	"github.com/okian/nsl/internal/domain/scoring"
	"github.com/okian/nsl/internal/domain/squad"
	"github.com/okian/nsl/pkg/logger"
	"github.com/okian/nsl/pkg/metrics"
)

// Service implements the operations shared by every front end.
type Service struct {
	mu sync.RWMutex

	// Core components
	league    *league.League
	ranker    scoring.Ranker
	roster    repository.Roster
	squads    repository.SquadStore
	customers repository.CustomerStore
	assembler *squad.Assembler

	// State
	started bool
	pool    []model.Player
	// drafts holds squads edited through the API and not yet finalized.
	drafts map[string]*squad.Squad

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLeague replaces the default league reference data.
func WithLeague(l *league.League) Option {
	return func(s *Service) {
		if l != nil {
			s.league = l
		}
	}
}

// WithRanker replaces the default similarity scorer.
func WithRanker(r scoring.Ranker) Option {
	return func(s *Service) {
		if r != nil {
			s.ranker = r
		}
	}
}

// WithRoster sets the player pool source.
func WithRoster(r repository.Roster) Option {
	return func(s *Service) {
		if r != nil {
			s.roster = r
		}
	}
}

// WithSquadStore sets the squad store.
func WithSquadStore(st repository.SquadStore) Option {
	return func(s *Service) {
		if st != nil {
			s.squads = st
		}
	}
}

// WithCustomerStore sets the customer store.
func WithCustomerStore(st repository.CustomerStore) Option {
	return func(s *Service) {
		if st != nil {
			s.customers = st
		}
	}
}

// New constructs a Service. Roster and stores must be supplied through
// options before Start.
func New(opts ...Option) *Service {
	s := &Service{
		league: league.Default(),
		drafts: make(map[string]*squad.Squad),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.ranker == nil {
		s.ranker = scoring.NewSimilarityScorer(scoring.WithLogger(s.logger))
	}
	s.assembler = squad.NewAssembler(s.league,
		squad.WithRanker(s.ranker),
		squad.WithLogger(s.logger),
	)
	return s
}

// Start loads the roster. Calling it twice is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.roster == nil || s.squads == nil || s.customers == nil {
		return fmt.Errorf("%w: roster, squad store and customer store are required", ErrNotConfigured)
	}

	s.logger.Info(ctx, "starting squad service...")
	pool, err := s.roster.Players(ctx)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}
	s.pool = pool
	for _, p := range model.Positions {
		eligible := len(scoring.Eligible(pool, p))
		metrics.UpdateRosterPlayers(p.String(), eligible, countAt(pool, p)-eligible)
	}

	s.started = true
	s.logger.Info(ctx, "squad service started", logger.Int("players", len(pool)))
	return nil
}

// Stop drops unsaved drafts and marks the service stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if n := len(s.drafts); n > 0 {
		s.logger.Warn(context.Background(), "discarding unsaved squads", logger.Int("drafts", n))
	}
	s.drafts = make(map[string]*squad.Squad)
	s.started = false
	s.logger.Info(context.Background(), "squad service stopped")
}

// Started reports whether Start has completed.
func (s *Service) Started() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// League returns the reference data.
func (s *Service) League() *league.League { return s.league }

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"started": s.started,
		"players": len(s.pool),
		"drafts":  len(s.drafts),
		"teams":   len(s.league.Teams()),
	}
}

func (s *Service) players() ([]model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.pool, nil
}

func countAt(pool []model.Player, p model.Position) int {
	n := 0
	for _, pl := range pool {
		if pl.PlaysAt(p) {
			n++
		}
	}
	return n
}
