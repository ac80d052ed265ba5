package repository

import (
	"context"
	"sync"

	"github.com/okian/nsl/internal/domain/model"
	"github.com/okian/nsl/pkg/logger"
)

// CSVRoster reads the player pool from a CSV file once and caches it.
type CSVRoster struct {
	path string
	opts options

	once    sync.Once
	players []model.Player
	err     error
}

// NewCSVRoster creates a roster over path. Use WithEncoding for latin-1
// sources.
func NewCSVRoster(path string, opts ...Option) *CSVRoster {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &CSVRoster{path: path, opts: o}
}

// Players implements Roster. A missing or malformed file yields an empty
// pool and a warning.
func (r *CSVRoster) Players(ctx context.Context) ([]model.Player, error) {
	r.once.Do(func() { r.players, r.err = r.load(ctx) })
	if r.err != nil {
		return nil, r.err
	}
	return append([]model.Player(nil), r.players...), nil
}

func (r *CSVRoster) load(ctx context.Context) ([]model.Player, error) {
	t, err := readTable(r.path, r.opts.encoding, "name", "position")
	if isNotExist(err) {
		r.opts.logger.Warn(ctx, "roster file not found", logger.String("path", r.path))
		return nil, nil
	}
	if err != nil {
		// An unreadable roster behaves like an empty one.
		r.opts.logger.Warn(ctx, "roster unreadable, using an empty pool",
			logger.String("path", r.path),
			logger.Error(err),
		)
		return nil, nil
	}

	players := make([]model.Player, 0, len(t.rows))
	for i := range t.rows {
		var attrs *string
		if a := t.get(i, "attributes"); a != "" {
			attrs = &a
		}
		players = append(players, model.NewPlayer(
			t.get(i, "name"),
			t.get(i, "team"),
			t.get(i, "position"),
			t.get(i, "nationality"),
			attrs,
		))
	}
	r.opts.logger.Info(ctx, "roster loaded",
		logger.String("path", r.path),
		logger.Int("players", len(players)),
	)
	return players, nil
}
