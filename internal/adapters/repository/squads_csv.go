package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/nsl/internal/domain/model"
	"github.com/okian/nsl/pkg/logger"
)

var squadHeader = []string{"customer_id", "position", "playername", "qualities"}

// CSVSquadStore keeps every customer's squad in one CSV file. Save rewrites
// the whole file.
type CSVSquadStore struct {
	path string
	opts options
	mu   sync.Mutex
}

// NewCSVSquadStore creates a squad store over path.
func NewCSVSquadStore(path string, opts ...Option) *CSVSquadStore {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &CSVSquadStore{path: path, opts: o}
}

// Load implements SquadStore.
func (s *CSVSquadStore) Load(ctx context.Context, customerID string) ([]model.SquadSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.SquadSlot
	for _, sl := range all {
		if sl.CustomerID == customerID {
			out = append(out, sl)
		}
	}
	return out, nil
}

// Save implements SquadStore.
func (s *CSVSquadStore) Save(ctx context.Context, customerID string, slots []model.SquadSlot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(all)+len(slots))
	for _, sl := range all {
		if sl.CustomerID != customerID {
			rows = append(rows, slotRow(sl))
		}
	}
	for _, sl := range slots {
		sl.CustomerID = customerID
		rows = append(rows, slotRow(sl))
	}
	if err := writeTable(s.path, squadHeader, rows); err != nil {
		return fmt.Errorf("save squads: %w", err)
	}
	s.opts.logger.Debug(ctx, "squads written",
		logger.String("path", s.path),
		logger.String("customer_id", customerID),
		logger.Int("rows", len(rows)),
	)
	return nil
}

func (s *CSVSquadStore) readAll(ctx context.Context) ([]model.SquadSlot, error) {
	t, err := readTable(s.path, s.opts.encoding, squadHeader...)
	if isNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load squads: %w", err)
	}
	out := make([]model.SquadSlot, 0, len(t.rows))
	for i := range t.rows {
		pos, err := model.ParsePosition(t.get(i, "position"))
		if err != nil {
			s.opts.logger.Warn(ctx, "skipping squad row", logger.Int("row", i+2), logger.Error(err))
			continue
		}
		out = append(out, model.SquadSlot{
			CustomerID: t.get(i, "customer_id"),
			Position:   pos,
			PlayerName: t.get(i, "playername"),
			Qualities:  t.get(i, "qualities"),
		})
	}
	return out, nil
}

func slotRow(sl model.SquadSlot) []string {
	return []string{sl.CustomerID, sl.Position.String(), sl.PlayerName, sl.Qualities}
}
