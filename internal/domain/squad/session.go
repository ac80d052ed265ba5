package squad

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/nsl/internal/domain/model"
	"github.com/okian/nsl/internal/domain/scoring"
	"github.com/okian/nsl/pkg/logger"
	"github.com/okian/nsl/pkg/metrics"
)

// State is where a builder session currently sits.
type State int

const (
	StateIdle State = iota
	StateSelectingQualities
	StateRanking
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelectingQualities:
		return "selecting_qualities"
	case StateRanking:
		return "ranking"
	case StateFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// MenuChoice is an entry of the squad builder menu.
type MenuChoice int

const (
	ChooseGoalkeeper MenuChoice = iota + 1
	ChooseDefender
	ChooseMidfielder
	ChooseForward
	ChooseFinish
)

// MenuChoices lists the builder menu in display order.
var MenuChoices = []MenuChoice{ChooseGoalkeeper, ChooseDefender, ChooseMidfielder, ChooseForward, ChooseFinish}

// Label is the menu text shown for c.
func (c MenuChoice) Label() string {
	if p, ok := c.Position(); ok {
		return p.String()
	}
	if c == ChooseFinish {
		return "Finish and save squad"
	}
	return ""
}

// Position maps a position entry to its position. The finish entry has none.
func (c MenuChoice) Position() (model.Position, bool) {
	switch c {
	case ChooseGoalkeeper:
		return model.Goalkeeper, true
	case ChooseDefender:
		return model.Defender, true
	case ChooseMidfielder:
		return model.Midfielder, true
	case ChooseForward:
		return model.Forward, true
	}
	return 0, false
}

// ParseMenuChoice reads a menu entry typed by the customer ("1".."5").
func ParseMenuChoice(s string) (MenuChoice, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < int(ChooseGoalkeeper) || n > int(ChooseFinish) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidChoice, s)
	}
	return MenuChoice(n), nil
}

// OutcomeKind tells the caller what a session step produced.
type OutcomeKind int

const (
	// OutcomeAwaitingQuality: the session wants quality pick number Pick.
	OutcomeAwaitingQuality OutcomeKind = iota + 1
	OutcomeAssigned
	OutcomeNoMatch
	OutcomeFinalized
	OutcomeEmptySquad
)

// Outcome is the result of one accepted input.
type Outcome struct {
	Kind       OutcomeKind
	Position   model.Position
	Pick       int
	Descriptor model.Descriptor
	Ranked     []scoring.Candidate
}

// Store persists a finalized squad, replacing any earlier rows of the same
// customer.
type Store interface {
	Save(ctx context.Context, customerID string, slots []model.SquadSlot) error
}

// Session drives one customer through the squad builder. It is not safe for
// concurrent use; the owner serializes input.
type Session struct {
	squad     *Squad
	assembler *Assembler
	pool      []model.Player
	store     Store
	logger    logger.Logger

	state    State
	position model.Position
	picks    []string

	handlers map[MenuChoice]func(context.Context) (Outcome, error)
}

// SessionOption applies a configuration option to the Session.
type SessionOption func(*Session)

// WithSessionLogger sets the session logger.
func WithSessionLogger(l logger.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession starts a builder session over sq. pool is the roster the
// rankings draw from.
func NewSession(sq *Squad, asm *Assembler, pool []model.Player, store Store, opts ...SessionOption) *Session {
	s := &Session{
		squad:     sq,
		assembler: asm,
		pool:      pool,
		store:     store,
		logger:    logger.Nop(),
		state:     StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.handlers = map[MenuChoice]func(context.Context) (Outcome, error){
		ChooseGoalkeeper: s.selectPosition(model.Goalkeeper),
		ChooseDefender:   s.selectPosition(model.Defender),
		ChooseMidfielder: s.selectPosition(model.Midfielder),
		ChooseForward:    s.selectPosition(model.Forward),
		ChooseFinish:     s.finalize,
	}
	return s
}

// State returns the current session state.
func (s *Session) State() State { return s.state }

// Position returns the position being filled while qualities are selected.
func (s *Session) Position() model.Position { return s.position }

// Squad returns the squad the session mutates.
func (s *Session) Squad() *Squad { return s.squad }

// Qualities returns the vocabulary offered for the position being filled.
func (s *Session) Qualities() []string {
	return s.assembler.League().Qualities(s.position)
}

// Choose handles a main menu entry. Input errors leave the state untouched.
func (s *Session) Choose(ctx context.Context, input string) (Outcome, error) {
	switch s.state {
	case StateFinalized:
		return Outcome{}, ErrFinalized
	case StateIdle:
	default:
		return Outcome{}, fmt.Errorf("%w: menu choice in state %s", ErrUnexpectedInput, s.state)
	}
	choice, err := ParseMenuChoice(input)
	if err != nil {
		return Outcome{}, err
	}
	return s.handlers[choice](ctx)
}

// PickQuality handles a 1-based quality number. An invalid pick only repeats
// that pick; an earlier valid pick is kept.
func (s *Session) PickQuality(ctx context.Context, input string) (Outcome, error) {
	switch s.state {
	case StateFinalized:
		return Outcome{}, ErrFinalized
	case StateSelectingQualities:
	default:
		return Outcome{}, fmt.Errorf("%w: quality pick in state %s", ErrUnexpectedInput, s.state)
	}

	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %q", ErrInvalidQuality, input)
	}
	quality, err := s.assembler.League().Quality(s.position, n)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", ErrInvalidQuality, err)
	}
	s.picks = append(s.picks, quality)
	if len(s.picks) < 2 {
		return Outcome{Kind: OutcomeAwaitingQuality, Position: s.position, Pick: len(s.picks) + 1}, nil
	}

	d := model.Descriptor{First: s.picks[0], Second: s.picks[1]}
	p := s.position
	s.state = StateRanking
	ranked, err := s.assembler.AssignPosition(ctx, s.squad, p, d, s.pool)
	s.reset()
	if err != nil {
		return Outcome{}, err
	}
	if len(ranked) == 0 {
		return Outcome{Kind: OutcomeNoMatch, Position: p, Descriptor: d}, nil
	}
	return Outcome{Kind: OutcomeAssigned, Position: p, Descriptor: d, Ranked: ranked}, nil
}

// Cancel abandons a quality selection in progress.
func (s *Session) Cancel() {
	if s.state != StateFinalized {
		s.reset()
	}
}

func (s *Session) reset() {
	s.state = StateIdle
	s.position = 0
	s.picks = nil
}

func (s *Session) selectPosition(p model.Position) func(context.Context) (Outcome, error) {
	return func(context.Context) (Outcome, error) {
		s.state = StateSelectingQualities
		s.position = p
		s.picks = nil
		return Outcome{Kind: OutcomeAwaitingQuality, Position: p, Pick: 1}, nil
	}
}

func (s *Session) finalize(ctx context.Context) (Outcome, error) {
	slots, err := s.squad.Finalize()
	if err != nil {
		metrics.RecordFinalizeRejected()
		return Outcome{Kind: OutcomeEmptySquad}, nil
	}
	s.state = StateFinalized
	if s.store != nil {
		if err := s.store.Save(ctx, s.squad.CustomerID(), slots); err != nil {
			metrics.RecordSquadSaveError()
			s.logger.Error(ctx, "save squad failed",
				logger.String("customer_id", s.squad.CustomerID()),
				logger.Error(err),
			)
			return Outcome{Kind: OutcomeFinalized}, fmt.Errorf("save squad: %w", err)
		}
	}
	metrics.RecordSquadSaved()
	s.logger.Info(ctx, "squad finalized",
		logger.String("customer_id", s.squad.CustomerID()),
		logger.Int("slots", len(slots)),
	)
	return Outcome{Kind: OutcomeFinalized}, nil
}
