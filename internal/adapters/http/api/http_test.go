package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/nsl/internal/adapters/http/api"
	"github.com/okian/nsl/internal/adapters/repository"
	service "github.com/okian/nsl/internal/app"
	"github.com/okian/nsl/internal/domain/model"
	"github.com/okian/nsl/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type staticRoster []model.Player

func (r staticRoster) Players(context.Context) ([]model.Player, error) { return r, nil }

func player(name, position, nationality, attrs string) model.Player {
	if attrs == "" {
		return model.NewPlayer(name, "Halifax Tides FC", position, nationality, nil)
	}
	return model.NewPlayer(name, "Halifax Tides FC", position, nationality, &attrs)
}

func newTestServer(t *testing.T, opts ...api.Option) http.Handler {
	dir := t.TempDir()
	svc := service.New(
		service.WithLogger(logger.Nop()),
		service.WithRoster(staticRoster{
			player("Ana", "Defender", "Canada", "Tackling|Marking"),
			player("Bea", "Defender", "USA", "Clearances|Positioning"),
			player("Cat", "Defender", "Canada", "Tackling|Interception"),
			player("Mid", "Midfielder", "Canada", ""),
		}),
		service.WithSquadStore(repository.NewCSVSquadStore(filepath.Join(dir, "created_teams.csv"))),
		service.WithCustomerStore(repository.NewCSVCustomerStore(filepath.Join(dir, "customer_database.csv"))),
	)
	ctx := context.Background()
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(svc.Stop)
	// customer1 and customer2, both with pin 1234.
	for _, email := range []string{"ada@example.com", "bo@example.com"} {
		if _, err := svc.Register(ctx, "Ada", email, testPIN); err != nil {
			t.Fatalf("register: %v", err)
		}
	}
	return api.NewServer(svc, opts...).Router()
}

const testPIN = "1234"

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	return doWithPIN(h, method, target, body, "")
}

func doWithPIN(h http.Handler, method, target, body, pin string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if pin != "" {
		req.Header.Set(api.PINHeader, pin)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(rec *httptest.ResponseRecorder, v any) error {
	return json.Unmarshal(rec.Body.Bytes(), v)
}

func TestCatalogEndpoints(t *testing.T) {
	Convey("Given the HTTP API", t, func() {
		h := newTestServer(t)

		Convey("When positions are listed", func() {
			rec := do(h, http.MethodGet, "/api/v1/positions", "")
			var got []service.PositionInfo
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(decode(rec, &got), ShouldBeNil)
			So(got, ShouldHaveLength, 4)
			So(got[3].Name, ShouldEqual, "Forward")
			So(got[3].Quota, ShouldEqual, 3)
		})

		Convey("When a team is fetched", func() {
			rec := do(h, http.MethodGet, "/api/v1/teams/4", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "AFC Toronto")
			So(rec.Header().Get("X-Request-ID"), ShouldNotBeEmpty)
		})

		Convey("When an unknown team is fetched", func() {
			rec := do(h, http.MethodGet, "/api/v1/teams/99", "")
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When players are filtered by nationality", func() {
			rec := do(h, http.MethodGet, "/api/v1/players?nationality=canada", "")
			var got []map[string]any
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(decode(rec, &got), ShouldBeNil)
			So(got, ShouldHaveLength, 3)
		})

		Convey("When recommendations are requested", func() {
			rec := do(h, http.MethodGet, "/api/v1/recommendations?position=Defender&q1=Tackling&q2=Marking", "")
			var got []map[string]any
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(decode(rec, &got), ShouldBeNil)
			So(got, ShouldHaveLength, 3)
			So(got[0]["name"], ShouldEqual, "Ana")
			So(got[0]["similarity"], ShouldEqual, 1.0)
		})

		Convey("When recommendations miss a parameter", func() {
			rec := do(h, http.MethodGet, "/api/v1/recommendations?position=Defender&q1=Tackling", "")
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the position is unknown", func() {
			rec := do(h, http.MethodGet, "/api/v1/recommendations?position=Libero&q1=Tackling&q2=Marking", "")
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When metrics are scraped", func() {
			rec := do(h, http.MethodGet, "/healthz", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "nsl_fantasy_")
		})

		Convey("When stats are read", func() {
			rec := do(h, http.MethodGet, "/stats", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `"players":4`)
		})

		Convey("When the API reference is requested", func() {
			rec := do(h, http.MethodGet, "/openapi.yaml", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "openapi: 3.0.3")
		})
	})
}

func TestSquadEndpoints(t *testing.T) {
	Convey("Given the HTTP API", t, func() {
		h := newTestServer(t)

		Convey("When an empty squad is finalized", func() {
			rec := doWithPIN(h, http.MethodPost, "/api/v1/squads/customer1/finalize", "", testPIN)
			So(rec.Code, ShouldEqual, http.StatusUnprocessableEntity)
		})

		Convey("When defenders are assigned and the squad finalized", func() {
			rec := doWithPIN(h, http.MethodPut, "/api/v1/squads/customer1/positions/Defender", `{"qualities":["Tackling","Marking"]}`, testPIN)
			So(rec.Code, ShouldEqual, http.StatusOK)
			var assigned struct {
				Squad struct {
					Size  int `json:"size"`
					Slots []struct {
						PlayerName string `json:"player_name"`
						Qualities  string `json:"qualities"`
					} `json:"slots"`
				} `json:"squad"`
				Ranked []map[string]any `json:"ranked"`
			}
			So(decode(rec, &assigned), ShouldBeNil)
			So(assigned.Squad.Size, ShouldEqual, 3)
			So(assigned.Ranked, ShouldHaveLength, 3)
			So(assigned.Squad.Slots[0].Qualities, ShouldEqual, "Tackling | Marking")

			rec = doWithPIN(h, http.MethodPost, "/api/v1/squads/customer1/finalize", "", testPIN)
			So(rec.Code, ShouldEqual, http.StatusOK)

			rec = do(h, http.MethodGet, "/api/v1/squads/customer1", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `"size":3`)
		})

		Convey("When a position has no eligible players", func() {
			rec := doWithPIN(h, http.MethodPut, "/api/v1/squads/customer2/positions/Midfielder", `{"qualities":["Passing","Crossing"]}`, testPIN)
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `"ranked":[]`)
			So(rec.Body.String(), ShouldContainSubstring, `"size":0`)
		})

		Convey("When the body is malformed", func() {
			rec := doWithPIN(h, http.MethodPut, "/api/v1/squads/customer1/positions/Defender", `{"qualities":["Tackling"]}`, testPIN)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
			rec = doWithPIN(h, http.MethodPut, "/api/v1/squads/customer1/positions/Defender", `not json`, testPIN)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When a quality is outside the vocabulary", func() {
			rec := doWithPIN(h, http.MethodPut, "/api/v1/squads/customer1/positions/Defender", `{"qualities":["Finishing","Marking"]}`, testPIN)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the customer has no account", func() {
			assign := doWithPIN(h, http.MethodPut, "/api/v1/squads/customer9/positions/Defender", `{"qualities":["Tackling","Marking"]}`, testPIN)
			finalize := doWithPIN(h, http.MethodPost, "/api/v1/squads/customer9/finalize", "", testPIN)
			read := do(h, http.MethodGet, "/api/v1/squads/customer9", "")

			Convey("Then the squad routes answer not found", func() {
				So(assign.Code, ShouldEqual, http.StatusNotFound)
				So(finalize.Code, ShouldEqual, http.StatusNotFound)
				So(read.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When an edit carries no pin or the wrong pin", func() {
			missing := do(h, http.MethodPut, "/api/v1/squads/customer1/positions/Defender", `{"qualities":["Tackling","Marking"]}`)
			wrong := doWithPIN(h, http.MethodPost, "/api/v1/squads/customer1/finalize", "", "9999")

			Convey("Then the edit is unauthorized and the squad untouched", func() {
				So(missing.Code, ShouldEqual, http.StatusUnauthorized)
				So(wrong.Code, ShouldEqual, http.StatusUnauthorized)
				rec := do(h, http.MethodGet, "/api/v1/squads/customer1", "")
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, `"size":0`)
			})
		})

		Convey("When squads are only read", func() {
			for i := 0; i < 5; i++ {
				So(do(h, http.MethodGet, "/api/v1/squads/customer1", "").Code, ShouldEqual, http.StatusOK)
			}

			Convey("Then stats report no drafts", func() {
				rec := do(h, http.MethodGet, "/stats", "")
				So(rec.Body.String(), ShouldContainSubstring, `"drafts":0`)
			})
		})
	})
}

func TestRateLimit(t *testing.T) {
	Convey("Given a server limited to two requests per minute", t, func() {
		h := newTestServer(t, api.WithRateLimit(2, time.Minute))

		Convey("Then the burst is spent and the next request is refused", func() {
			So(do(h, http.MethodGet, "/api/v1/teams", "").Code, ShouldEqual, http.StatusOK)
			rec := do(h, http.MethodGet, "/api/v1/teams", "")
			So(rec.Code, ShouldEqual, http.StatusTooManyRequests)
			So(rec.Header().Get("Retry-After"), ShouldEqual, "60")
		})
	})
}
