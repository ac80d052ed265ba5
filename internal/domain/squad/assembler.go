package squad

import (
	"context"

	"github.com/okian/nsl/internal/domain/league"
	"github.com/okian/nsl/internal/domain/model"
	"github.com/okian/nsl/internal/domain/scoring"
	"github.com/okian/nsl/pkg/logger"
	"github.com/okian/nsl/pkg/metrics"
)

// Assembler fills squad positions from rankings, capped at each position's
// quota.
type Assembler struct {
	league *league.League
	ranker scoring.Ranker
	logger logger.Logger
}

// Option applies a configuration option to the Assembler.
type Option func(*Assembler)

// WithLogger sets the assembler logger.
func WithLogger(l logger.Logger) Option {
	return func(a *Assembler) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithRanker replaces the default similarity scorer.
func WithRanker(r scoring.Ranker) Option {
	return func(a *Assembler) {
		if r != nil {
			a.ranker = r
		}
	}
}

// NewAssembler creates an assembler over the given league reference data.
func NewAssembler(l *league.League, opts ...Option) *Assembler {
	a := &Assembler{
		league: l,
		ranker: scoring.NewSimilarityScorer(),
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// League returns the reference data the assembler works with.
func (a *Assembler) League() *league.League { return a.league }

// Rank returns the best candidates for p from pool, at most quota(p).
func (a *Assembler) Rank(ctx context.Context, p model.Position, d model.Descriptor, pool []model.Player) ([]scoring.Candidate, error) {
	ranked, err := a.ranker.Rank(ctx, scoring.Request{
		Position:   p,
		Descriptor: d,
		Candidates: pool,
		TopN:       a.league.Quota(p),
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordRecommendation(p.String(), len(ranked) == 0)
	return ranked, nil
}

// AssignPosition ranks pool for p and, when anything comes back, replaces
// every slot at p with the ranked players. An empty ranking leaves sq
// untouched and returns an empty slice.
func (a *Assembler) AssignPosition(ctx context.Context, sq *Squad, p model.Position, d model.Descriptor, pool []model.Player) ([]scoring.Candidate, error) {
	ranked, err := a.Rank(ctx, p, d, pool)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		a.logger.Info(ctx, "no matching players",
			logger.String("customer_id", sq.CustomerID()),
			logger.String("position", p.String()),
			logger.String("qualities", d.String()),
		)
		return nil, nil
	}

	names := make([]string, len(ranked))
	for i, c := range ranked {
		names[i] = c.Name
	}
	sq.ReplacePosition(p, d, names)
	metrics.RecordSlotsReplaced(p.String(), len(names))

	a.logger.Info(ctx, "position assigned",
		logger.String("customer_id", sq.CustomerID()),
		logger.String("position", p.String()),
		logger.String("qualities", d.String()),
		logger.Int("players", len(names)),
	)
	return ranked, nil
}
