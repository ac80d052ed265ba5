// Package scoring ranks roster candidates against a requested pair of
// qualities using cosine similarity over attribute token counts.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/okian/nsl/internal/domain/model"
	"github.com/okian/nsl/internal/domain/vectorize"
	"github.com/okian/nsl/pkg/logger"
	"github.com/okian/nsl/pkg/metrics"
)

// Request describes one ranking.
type Request struct {
	Position   model.Position
	Descriptor model.Descriptor
	// Candidates may hold the whole roster; only players at Position with
	// attributes take part.
	Candidates []model.Player
	TopN       int
}

// Candidate is one ranked row.
type Candidate struct {
	Rank       int     `json:"rank"`
	Name       string  `json:"name"`
	Team       string  `json:"team"`
	Position   string  `json:"position"`
	Attributes string  `json:"attributes"`
	Similarity float64 `json:"similarity"`
}

// Ranker orders candidates by how well they match a request.
type Ranker interface {
	// Rank returns at most req.TopN candidates, best first. An empty result
	// means no ranking was possible; it is not an error.
	Rank(ctx context.Context, req Request) ([]Candidate, error)
}

// Option applies a configuration option to the SimilarityScorer.
type Option func(*SimilarityScorer)

// WithLogger sets the logger used for debug traces.
func WithLogger(l logger.Logger) Option {
	return func(s *SimilarityScorer) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSeparator overrides the attribute token separator.
func WithSeparator(sep string) Option {
	return func(s *SimilarityScorer) {
		if sep != "" {
			s.sep = sep
		}
	}
}

// SimilarityScorer implements Ranker. It holds no state between calls.
type SimilarityScorer struct {
	sep    string
	logger logger.Logger
}

// NewSimilarityScorer creates a scorer with configuration options.
func NewSimilarityScorer(opts ...Option) *SimilarityScorer {
	s := &SimilarityScorer{
		sep:    model.AttributeSeparator,
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rank scores every eligible candidate and returns the top req.TopN. Ties keep
// roster order.
func (s *SimilarityScorer) Rank(ctx context.Context, req Request) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}
	start := time.Now()
	defer func() {
		metrics.RecordRankingLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	if req.TopN <= 0 {
		return nil, nil
	}

	pool := Eligible(req.Candidates, req.Position)
	if len(pool) == 0 {
		s.logger.Debug(ctx, "no eligible candidates", logger.String("position", req.Position.String()))
		return nil, nil
	}

	docs := make([]string, len(pool))
	for i, p := range pool {
		docs[i] = p.Attributes
	}
	vec, err := vectorize.Fit(docs, vectorize.WithSeparator(s.sep))
	if errors.Is(err, vectorize.ErrEmptyVocabulary) {
		s.logger.Debug(ctx, "empty vocabulary", logger.String("position", req.Position.String()))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	desired := vec.Transform(req.Descriptor.Query())
	scored := make([]Candidate, len(pool))
	for i, p := range pool {
		scored[i] = Candidate{
			Name:       p.Name,
			Team:       p.Team,
			Position:   p.Position,
			Attributes: p.Attributes,
			Similarity: vectorize.Cosine(desired, vec.Transform(p.Attributes)),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	if len(scored) > req.TopN {
		scored = scored[:req.TopN]
	}
	for i := range scored {
		scored[i].Rank = i + 1
	}

	s.logger.Debug(ctx, "ranked candidates",
		logger.String("position", req.Position.String()),
		logger.String("qualities", req.Descriptor.Query()),
		logger.Int("eligible", len(pool)),
		logger.Int("returned", len(scored)),
	)
	return scored, nil
}

// Eligible filters players to those at pos that carry attributes, keeping
// roster order.
func Eligible(players []model.Player, pos model.Position) []model.Player {
	out := make([]model.Player, 0, len(players))
	for _, p := range players {
		if p.PlaysAt(pos) && p.HasAttributes() {
			out = append(out, p)
		}
	}
	return out
}
