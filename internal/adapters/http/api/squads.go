package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okian/nsl/internal/domain/model"
	"github.com/okian/nsl/internal/domain/scoring"
	"github.com/okian/nsl/internal/domain/squad"
)

// PINHeader carries the customer's PIN on squad edits.
const PINHeader = "X-Customer-PIN"

// SquadHandler serves squad reads and edits.
type SquadHandler struct {
	deps Dependencies
}

// NewSquadHandler creates a new squad handler.
func NewSquadHandler(deps Dependencies) *SquadHandler {
	return &SquadHandler{deps: deps}
}

type slotResponse struct {
	Position   string `json:"position"`
	PlayerName string `json:"player_name"`
	Qualities  string `json:"qualities"`
}

type squadResponse struct {
	CustomerID string         `json:"customer_id"`
	Size       int            `json:"size"`
	Slots      []slotResponse `json:"slots"`
}

type assignRequest struct {
	Qualities []string `json:"qualities"`
}

type assignResponse struct {
	Squad  squadResponse       `json:"squad"`
	Ranked []scoring.Candidate `json:"ranked"`
}

// HandleGetSquad handles GET /api/v1/squads/{customerID}.
func (h *SquadHandler) HandleGetSquad(w http.ResponseWriter, r *http.Request) {
	sq, err := h.deps.Squad(r.Context(), chi.URLParam(r, "customerID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSquadResponse(sq))
}

// HandleAssignPosition handles PUT /api/v1/squads/{customerID}/positions/{position}.
// An empty ranking leaves the squad unchanged and returns an empty list.
func (h *SquadHandler) HandleAssignPosition(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if len(req.Qualities) != 2 {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: exactly two qualities required", ErrBadRequest))
		return
	}
	customerID := chi.URLParam(r, "customerID")
	if err := h.authenticate(r, customerID); err != nil {
		writeDomainError(w, err)
		return
	}
	sq, ranked, err := h.deps.AssignPosition(r.Context(),
		customerID,
		chi.URLParam(r, "position"),
		req.Qualities[0], req.Qualities[1],
	)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if ranked == nil {
		ranked = []scoring.Candidate{}
	}
	writeJSON(w, http.StatusOK, assignResponse{Squad: toSquadResponse(sq), Ranked: ranked})
}

// HandleFinalize handles POST /api/v1/squads/{customerID}/finalize.
func (h *SquadHandler) HandleFinalize(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerID")
	if err := h.authenticate(r, customerID); err != nil {
		writeDomainError(w, err)
		return
	}
	sq, err := h.deps.Finalize(r.Context(), customerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSquadResponse(sq))
}

// authenticate checks the PIN header against the customer's account.
func (h *SquadHandler) authenticate(r *http.Request, customerID string) error {
	pin := r.Header.Get(PINHeader)
	if pin == "" {
		return ErrUnauthorized
	}
	_, err := h.deps.Authenticate(r.Context(), customerID, pin)
	return err
}

func toSquadResponse(sq *squad.Squad) squadResponse {
	resp := squadResponse{CustomerID: sq.CustomerID(), Size: sq.Len(), Slots: []slotResponse{}}
	for _, p := range model.Positions {
		for _, sl := range sq.ByPosition(p) {
			resp.Slots = append(resp.Slots, slotResponse{
				Position:   p.String(),
				PlayerName: sl.PlayerName,
				Qualities:  sl.Qualities,
			})
		}
	}
	return resp
}
