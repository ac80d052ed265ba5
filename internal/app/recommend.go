package service

import (
	"context"
	"fmt"

	"github.com/okian/nsl/internal/domain/model"
	"github.com/okian/nsl/internal/domain/scoring"
)

// Descriptor validates a pair of qualities against the vocabulary of p.
func (s *Service) Descriptor(p model.Position, q1, q2 string) (model.Descriptor, error) {
	for _, q := range []string{q1, q2} {
		if !s.league.HasQuality(p, q) {
			return model.Descriptor{}, fmt.Errorf("%w: %q for %s", ErrUnknownQuality, q, p)
		}
	}
	return model.Descriptor{First: q1, Second: q2}, nil
}

// Recommend ranks the roster for position against q1 and q2, returning at
// most the position quota. An empty result is not an error.
func (s *Service) Recommend(ctx context.Context, position, q1, q2 string) ([]scoring.Candidate, error) {
	p, err := model.ParsePosition(position)
	if err != nil {
		return nil, err
	}
	d, err := s.Descriptor(p, q1, q2)
	if err != nil {
		return nil, err
	}
	pool, err := s.players()
	if err != nil {
		return nil, err
	}
	return s.assembler.Rank(ctx, p, d, pool)
}
