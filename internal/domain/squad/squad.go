// Package squad maintains a customer's fantasy squad: the owned slot set, the
// assembler that fills a position from a ranking, and the interactive session
// state machine that drives it.
package squad

import (
	"github.com/okian/nsl/internal/domain/model"
)

// Squad is the slot set of one customer, kept in insertion order. Use
// ByPosition to group for display.
type Squad struct {
	customerID string
	slots      []model.SquadSlot
}

// New returns an empty squad for customerID.
func New(customerID string) *Squad {
	return &Squad{customerID: customerID}
}

// FromSlots rebuilds a squad from stored rows. Rows for other customers are
// ignored.
func FromSlots(customerID string, rows []model.SquadSlot) *Squad {
	s := New(customerID)
	for _, r := range rows {
		if r.CustomerID == customerID {
			s.slots = append(s.slots, r)
		}
	}
	return s
}

// CustomerID returns the owner of the squad.
func (s *Squad) CustomerID() string { return s.customerID }

// Slots returns a copy of every slot in insertion order.
func (s *Squad) Slots() []model.SquadSlot {
	return append([]model.SquadSlot(nil), s.slots...)
}

// Len is the total number of slots.
func (s *Squad) Len() int { return len(s.slots) }

// IsEmpty reports whether the squad has no slots.
func (s *Squad) IsEmpty() bool { return len(s.slots) == 0 }

// Count returns the number of slots at p.
func (s *Squad) Count(p model.Position) int {
	n := 0
	for _, sl := range s.slots {
		if sl.Position == p {
			n++
		}
	}
	return n
}

// ByPosition returns the slots at p in insertion order.
func (s *Squad) ByPosition(p model.Position) []model.SquadSlot {
	var out []model.SquadSlot
	for _, sl := range s.slots {
		if sl.Position == p {
			out = append(out, sl)
		}
	}
	return out
}

// ReplacePosition drops every slot at p and appends one slot per player name
// carrying the descriptor in persisted form.
func (s *Squad) ReplacePosition(p model.Position, d model.Descriptor, players []string) {
	kept := s.slots[:0]
	for _, sl := range s.slots {
		if sl.Position != p {
			kept = append(kept, sl)
		}
	}
	s.slots = kept
	for _, name := range players {
		s.slots = append(s.slots, model.SquadSlot{
			CustomerID: s.customerID,
			Position:   p,
			PlayerName: name,
			Qualities:  d.String(),
		})
	}
}

// Finalize checks that the squad can be saved. Only an empty squad is
// rejected; missing positions are allowed.
func (s *Squad) Finalize() ([]model.SquadSlot, error) {
	if s.IsEmpty() {
		return nil, ErrEmptySquad
	}
	return s.Slots(), nil
}
