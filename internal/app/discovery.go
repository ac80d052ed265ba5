package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/okian/nsl/internal/domain/league"
	"github.com/okian/nsl/internal/domain/model"
)

// PositionInfo describes one position for listings.
type PositionInfo struct {
	Name      string   `json:"name"`
	Quota     int      `json:"quota"`
	Qualities []string `json:"qualities"`
}

// PlayerQuery filters the roster. Empty fields match everything.
type PlayerQuery struct {
	// Name matches exactly.
	Name string
	// Position matches the roster position string exactly.
	Position string
	// Nationality matches after trimming and case folding.
	Nationality string
}

// NationalityCount is one row of the per-country summary.
type NationalityCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// Positions lists every position with its quota and vocabulary.
func (s *Service) Positions() []PositionInfo {
	out := make([]PositionInfo, 0, len(model.Positions))
	for _, p := range model.Positions {
		out = append(out, PositionInfo{
			Name:      p.String(),
			Quota:     s.league.Quota(p),
			Qualities: s.league.Qualities(p),
		})
	}
	return out
}

// Teams returns the league teams in menu order.
func (s *Service) Teams() []league.Team { return s.league.Teams() }

// Team returns the team with the given menu id.
func (s *Service) Team(id string) (league.Team, error) {
	t, ok := s.league.Team(id)
	if !ok {
		return league.Team{}, fmt.Errorf("%w: %s", ErrTeamNotFound, id)
	}
	return t, nil
}

// FindPlayers returns the roster rows matching q in roster order.
func (s *Service) FindPlayers(_ context.Context, q PlayerQuery) ([]model.Player, error) {
	pool, err := s.players()
	if err != nil {
		return nil, err
	}
	nat := normalizeCountry(q.Nationality)
	var out []model.Player
	for _, p := range pool {
		if q.Name != "" && p.Name != q.Name {
			continue
		}
		if q.Position != "" && p.Position != q.Position {
			continue
		}
		if nat != "" && normalizeCountry(p.Nationality) != nat {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// NationalityCounts counts roster players per country, most common first.
// Countries are reported trimmed and lower-cased.
func (s *Service) NationalityCounts(_ context.Context) ([]NationalityCount, error) {
	pool, err := s.players()
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, p := range pool {
		if c := normalizeCountry(p.Nationality); c != "" {
			counts[c]++
		}
	}
	out := make([]NationalityCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, NationalityCount{Country: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Country < out[j].Country
	})
	return out, nil
}

func normalizeCountry(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
