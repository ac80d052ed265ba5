package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	service "github.com/okian/nsl/internal/app"
	"github.com/okian/nsl/internal/domain/model"
)

// CatalogHandler serves reference data, roster lookups and rankings.
type CatalogHandler struct {
	deps Dependencies
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps Dependencies) *CatalogHandler {
	return &CatalogHandler{deps: deps}
}

type playerResponse struct {
	Name        string `json:"name"`
	Team        string `json:"team"`
	Position    string `json:"position"`
	Nationality string `json:"nationality"`
	Attributes  string `json:"attributes,omitempty"`
}

// HandlePositions handles GET /api/v1/positions.
func (h *CatalogHandler) HandlePositions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Positions())
}

// HandleTeams handles GET /api/v1/teams.
func (h *CatalogHandler) HandleTeams(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Teams())
}

// HandleTeam handles GET /api/v1/teams/{id}.
func (h *CatalogHandler) HandleTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.deps.Team(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

// HandlePlayers handles GET /api/v1/players?position=&nationality=&name=.
func (h *CatalogHandler) HandlePlayers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	players, err := h.deps.FindPlayers(r.Context(), service.PlayerQuery{
		Name:        q.Get("name"),
		Position:    q.Get("position"),
		Nationality: q.Get("nationality"),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPlayerResponses(players))
}

// HandleRecommendations handles GET /api/v1/recommendations?position=&q1=&q2=.
func (h *CatalogHandler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	position, q1, q2 := q.Get("position"), q.Get("q1"), q.Get("q2")
	if position == "" || q1 == "" || q2 == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	ranked, err := h.deps.Recommend(r.Context(), position, q1, q2)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ranked)
}

func toPlayerResponses(ps []model.Player) []playerResponse {
	out := make([]playerResponse, len(ps))
	for i, p := range ps {
		out[i] = playerResponse{
			Name:        p.Name,
			Team:        p.Team,
			Position:    p.Position,
			Nationality: p.Nationality,
			Attributes:  p.Attributes,
		}
	}
	return out
}
