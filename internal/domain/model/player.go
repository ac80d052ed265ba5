// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
)

// Position is one of the four squad positions.
type Position int

// Positions in menu order.
const (
	Goalkeeper Position = iota + 1
	Defender
	Midfielder
	Forward
)

// Positions lists every valid position in menu order.
var Positions = []Position{Goalkeeper, Defender, Midfielder, Forward}

var positionNames = map[Position]string{
	Goalkeeper: "Goalkeeper",
	Defender:   "Defender",
	Midfielder: "Midfielder",
	Forward:    "Forward",
}

// String returns the roster spelling of p.
func (p Position) String() string {
	if name, ok := positionNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Position(%d)", int(p))
}

// Valid reports whether p is one of the four positions.
func (p Position) Valid() bool {
	_, ok := positionNames[p]
	return ok
}

// ParsePosition matches the roster spelling exactly (case-sensitive).
func ParsePosition(s string) (Position, error) {
	for p, name := range positionNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPosition, s)
}

// AttributeSeparator splits attribute tokens in roster and query form.
const AttributeSeparator = "|"

// Player is a roster entry. Attributes holds the raw pipe-delimited value;
// a player without one is kept for lookups but excluded from ranking.
type Player struct {
	Name        string
	Team        string
	Position    string
	Nationality string
	Attributes  string

	hasAttributes bool
}

// NewPlayer builds a Player. attributes is nil when the roster cell is absent.
func NewPlayer(name, team, position, nationality string, attributes *string) Player {
	p := Player{
		Name:        name,
		Team:        team,
		Position:    position,
		Nationality: nationality,
	}
	if attributes != nil && *attributes != "" {
		p.Attributes = *attributes
		p.hasAttributes = true
	}
	return p
}

// HasAttributes reports whether the player can take part in ranking.
func (p Player) HasAttributes() bool { return p.hasAttributes }

// AttributeTokens returns the attribute tokens in roster order.
func (p Player) AttributeTokens() []string {
	if !p.hasAttributes {
		return nil
	}
	return strings.Split(p.Attributes, AttributeSeparator)
}

// PlaysAt reports whether the player's roster position is exactly pos.
func (p Player) PlaysAt(pos Position) bool {
	return p.Position == pos.String()
}
