// Package league holds the fixed reference data of the Northern Super League:
// team profiles, per-position quality vocabularies and squad quotas. A League
// is built once at startup and passed to whoever needs it; nothing in it is
// mutated after construction.
package league

import (
	"fmt"
	"strings"

	"github.com/okian/nsl/internal/domain/model"
)

// Team is a club profile.
type Team struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Founded     int    `json:"founded"`
	HomeCity    string `json:"home_city"`
	HomeStadium string `json:"home_stadium"`
	Colors      string `json:"colors"`
	Motto       string `json:"motto"`
	HeadCoach   string `json:"head_coach"`
}

// ShortName drops the " FC" suffix used in menu listings.
func (t Team) ShortName() string {
	name, _, _ := strings.Cut(t.Name, " FC")
	return name
}

// League is the immutable reference data set.
type League struct {
	teams     []Team
	qualities map[model.Position][]string
	quotas    map[model.Position]int
}

// Default returns the league as shipped.
func Default() *League {
	return &League{
		teams: []Team{
			{ID: "1", Name: "Montreal Roses", Founded: 2023, HomeCity: "Laval (Montreal area), Quebec", HomeStadium: "Stade Boréale (Laval)", Colors: "Black, blue, gold, red, white", Motto: "Making the impossible, possible.", HeadCoach: "Robert Rositoiu"},
			{ID: "2", Name: "Vancouver Rise FC", Founded: 2022, HomeCity: "Burnaby, British Columbia", HomeStadium: "Swangard Stadium", Colors: "Teal, black, gold", Motto: "Rise to the occasion.", HeadCoach: "Anja Heiner-Møller"},
			{ID: "3", Name: "Calgary Wild FC", Founded: 2024, HomeCity: "Calgary, Alberta", HomeStadium: "McMahon Stadium", Colors: "Red and violet", Motto: "She shoots, she soars!", HeadCoach: "Lydia Bedford"},
			{ID: "4", Name: "AFC Toronto", Founded: 2023, HomeCity: "Toronto, Ontario", HomeStadium: "York Lions Stadium", Colors: "Maroon and vermillion", Motto: "Rise up!", HeadCoach: "Marko Milanović"},
			{ID: "5", Name: "Halifax Tides FC", Founded: 2024, HomeCity: "Halifax, Nova Scotia", HomeStadium: "Wanderers Grounds", Colors: "Ocean cyan, marine purple, ship grey", Motto: "Rise Together", HeadCoach: "Stephen Hart (interim, as of June 2025)"},
			{ID: "6", Name: "Ottawa Rapid FC", Founded: 2024, HomeCity: "Ottawa, Ontario", HomeStadium: "TD Place Stadium", Colors: "Light blue (primary), orange accent, white", Motto: "Rapid Change. Enduring Legacy.", HeadCoach: "Katrine Pedersen"},
		},
		qualities: map[model.Position][]string{
			model.Goalkeeper: {"Shot-Stopping", "Handling", "Commanding the Box", "Distribution", "Resilience", "Decision-Making"},
			model.Defender:   {"Tackling", "Interception", "Marking", "Clearances", "Positioning", "Communication"},
			model.Midfielder: {"Passing", "Dribbling", "Ball control", "Shooting", "Tackling & Interceptions", "Crossing"},
			model.Forward:    {"Finishing", "Ball Control", "Dribbling", "Shooting Power", "Movement Off the Ball", "Stamina"},
		},
		quotas: map[model.Position]int{
			model.Goalkeeper: 1,
			model.Defender:   4,
			model.Midfielder: 3,
			model.Forward:    3,
		},
	}
}

// Teams returns the team profiles in menu order.
func (l *League) Teams() []Team {
	return append([]Team(nil), l.teams...)
}

// Team looks a team up by its menu id.
func (l *League) Team(id string) (Team, bool) {
	for _, t := range l.teams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}

// Qualities returns the vocabulary of p in menu order.
func (l *League) Qualities(p model.Position) []string {
	return append([]string(nil), l.qualities[p]...)
}

// Quality returns the 1-based n-th quality of p.
func (l *League) Quality(p model.Position, n int) (string, error) {
	qs := l.qualities[p]
	if n < 1 || n > len(qs) {
		return "", fmt.Errorf("%w: %d not in 1..%d", ErrQualityOutOfRange, n, len(qs))
	}
	return qs[n-1], nil
}

// HasQuality reports whether q belongs to the vocabulary of p.
func (l *League) HasQuality(p model.Position, q string) bool {
	for _, v := range l.qualities[p] {
		if v == q {
			return true
		}
	}
	return false
}

// Quota is the number of squad slots for p. Unknown positions get zero.
func (l *League) Quota(p model.Position) int {
	return l.quotas[p]
}

// SquadSize is the sum of all quotas.
func (l *League) SquadSize() int {
	total := 0
	for _, q := range l.quotas {
		total += q
	}
	return total
}
