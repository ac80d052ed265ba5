package service

import (
	"context"
	"errors"

	"github.com/okian/nsl/internal/domain/model"
	"github.com/okian/nsl/internal/domain/scoring"
	"github.com/okian/nsl/internal/domain/squad"
	"github.com/okian/nsl/pkg/logger"
	"github.com/okian/nsl/pkg/metrics"
)

// Squad returns the customer's squad: the unsaved draft when one exists,
// otherwise the stored rows. Reading never creates a draft.
func (s *Service) Squad(ctx context.Context, customerID string) (*squad.Squad, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.accountLocked(ctx, customerID); err != nil {
		return nil, err
	}
	if sq, ok := s.drafts[customerID]; ok {
		return squad.FromSlots(customerID, sq.Slots()), nil
	}
	rows, err := s.squads.Load(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return squad.FromSlots(customerID, rows), nil
}

// AssignPosition fills position for the customer's draft from a fresh
// ranking. The draft is persisted only by Finalize.
func (s *Service) AssignPosition(ctx context.Context, customerID, position, q1, q2 string) (*squad.Squad, []scoring.Candidate, error) {
	p, err := model.ParsePosition(position)
	if err != nil {
		return nil, nil, err
	}
	d, err := s.Descriptor(p, q1, q2)
	if err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.accountLocked(ctx, customerID); err != nil {
		return nil, nil, err
	}
	sq, ok := s.drafts[customerID]
	if !ok {
		rows, err := s.squads.Load(ctx, customerID)
		if err != nil {
			return nil, nil, err
		}
		sq = squad.FromSlots(customerID, rows)
	}
	ranked, err := s.assembler.AssignPosition(ctx, sq, p, d, s.pool)
	if err != nil {
		return nil, nil, err
	}
	s.drafts[customerID] = sq
	return squad.FromSlots(customerID, sq.Slots()), ranked, nil
}

// Finalize saves the customer's squad, replacing earlier stored rows.
// Returns squad.ErrEmptySquad when nothing is assigned.
func (s *Service) Finalize(ctx context.Context, customerID string) (*squad.Squad, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.accountLocked(ctx, customerID); err != nil {
		return nil, err
	}
	sq, ok := s.drafts[customerID]
	if !ok {
		rows, err := s.squads.Load(ctx, customerID)
		if err != nil {
			return nil, err
		}
		sq = squad.FromSlots(customerID, rows)
	}
	slots, err := sq.Finalize()
	if errors.Is(err, squad.ErrEmptySquad) {
		metrics.RecordFinalizeRejected()
		return nil, err
	}
	if err := s.squads.Save(ctx, customerID, slots); err != nil {
		metrics.RecordSquadSaveError()
		s.logger.Error(ctx, "save squad failed", logger.String("customer_id", customerID), logger.Error(err))
		return nil, err
	}
	metrics.RecordSquadSaved()
	delete(s.drafts, customerID)
	s.logger.Info(ctx, "squad finalized",
		logger.String("customer_id", customerID),
		logger.Int("slots", len(slots)),
	)
	return squad.FromSlots(customerID, slots), nil
}

// NewSession opens an interactive builder session over the stored squad.
func (s *Service) NewSession(ctx context.Context, customerID string) (*squad.Session, error) {
	pool, err := s.players()
	if err != nil {
		return nil, err
	}
	rows, err := s.squads.Load(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return squad.NewSession(
		squad.FromSlots(customerID, rows),
		s.assembler,
		pool,
		s.squads,
		squad.WithSessionLogger(s.logger),
	), nil
}

// accountLocked fails unless the service is started and customerID names
// an existing account.
func (s *Service) accountLocked(ctx context.Context, customerID string) error {
	if !s.started {
		return ErrNotStarted
	}
	_, err := s.customer(ctx, customerID)
	return err
}
