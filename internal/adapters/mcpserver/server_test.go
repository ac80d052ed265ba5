package mcpserver

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/nsl/internal/adapters/repository"
	service "github.com/okian/nsl/internal/app"
	"github.com/okian/nsl/internal/domain/model"
	"github.com/okian/nsl/pkg/logger"
)

type staticRoster []model.Player

func (r staticRoster) Players(context.Context) ([]model.Player, error) { return r, nil }

func player(name, position, nationality, attrs string) model.Player {
	if attrs == "" {
		return model.NewPlayer(name, "Victoria Tidal FC", position, nationality, nil)
	}
	return model.NewPlayer(name, "Victoria Tidal FC", position, nationality, &attrs)
}

func newTestServer(t *testing.T) *Server {
	dir := t.TempDir()
	svc := service.New(
		service.WithLogger(logger.Nop()),
		service.WithRoster(staticRoster{
			player("Keeper One", "Goalkeeper", "Canada", "Shot-Stopping|Handling"),
			player("Ana", "Defender", "Canada", "Tackling|Marking"),
			player("Bea", "Defender", "USA", "Clearances|Positioning"),
			player("Fwd", "Forward", "Brazil", "Finishing|Stamina"),
		}),
		service.WithSquadStore(repository.NewCSVSquadStore(filepath.Join(dir, "created_teams.csv"))),
		service.WithCustomerStore(repository.NewCSVCustomerStore(filepath.Join(dir, "customer_database.csv"))),
	)
	ctx := context.Background()
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(svc.Stop)
	if _, err := svc.Register(ctx, "Ada", "ada@example.com", "1234"); err != nil {
		t.Fatalf("register: %v", err)
	}
	return NewServer(svc, "test")
}

func text(res *mcp.CallToolResult) string {
	return res.Content[0].(*mcp.TextContent).Text
}

func TestNewServer(t *testing.T) {
	Convey("Given a tool server", t, func() {
		s := newTestServer(t)

		Convey("Then every tool is registered", func() {
			names := make([]string, 0, 5)
			for _, ti := range s.Tools() {
				names = append(names, ti.Name)
			}
			So(names, ShouldResemble, []string{"list_positions", "recommend_players", "get_squad", "assign_position", "lookup_player"})
			So(s.MCP(), ShouldNotBeNil)
			So(s.HTTPHandler(), ShouldNotBeNil)
		})
	})
}

func TestTools(t *testing.T) {
	Convey("Given a tool server over a small roster", t, func() {
		s := newTestServer(t)
		ctx := context.Background()

		Convey("When positions are listed", func() {
			res, _, err := s.listPositions(ctx, nil, struct{}{})
			So(err, ShouldBeNil)
			So(res.IsError, ShouldBeFalse)

			var body struct {
				Positions []service.PositionInfo `json:"positions"`
			}
			So(json.Unmarshal([]byte(text(res)), &body), ShouldBeNil)

			Convey("Then all four positions come back with quotas", func() {
				So(body.Positions, ShouldHaveLength, 4)
				So(body.Positions[1].Name, ShouldEqual, "Defender")
				So(body.Positions[1].Quota, ShouldEqual, 4)
			})
		})

		Convey("When defenders are recommended", func() {
			res, _, err := s.recommendPlayers(ctx, nil, RecommendArgs{Position: "Defender", Q1: "Tackling", Q2: "Marking"})
			So(err, ShouldBeNil)

			Convey("Then the best match is first", func() {
				So(res.IsError, ShouldBeFalse)
				So(text(res), ShouldContainSubstring, `"qualities": "Tackling | Marking"`)
				var body struct {
					Ranked []struct {
						Name string `json:"name"`
					} `json:"ranked"`
				}
				So(json.Unmarshal([]byte(text(res)), &body), ShouldBeNil)
				So(body.Ranked[0].Name, ShouldEqual, "Ana")
			})
		})

		Convey("When a quality is outside the vocabulary", func() {
			res, _, err := s.recommendPlayers(ctx, nil, RecommendArgs{Position: "Defender", Q1: "Flying", Q2: "Marking"})

			Convey("Then the tool reports an error result", func() {
				So(err, ShouldBeNil)
				So(res.IsError, ShouldBeTrue)
				So(text(res), ShouldStartWith, "error: ")
			})
		})

		Convey("When arguments are missing", func() {
			res, _, _ := s.recommendPlayers(ctx, nil, RecommendArgs{Position: "Defender"})
			So(res.IsError, ShouldBeTrue)
			res, _, _ = s.getSquad(ctx, nil, SquadArgs{})
			So(res.IsError, ShouldBeTrue)
			res, _, _ = s.assignPosition(ctx, nil, AssignArgs{CustomerID: "customer1", PIN: "1234", Position: "Forward", Qualities: []string{"Finishing"}})
			So(res.IsError, ShouldBeTrue)
			res, _, _ = s.assignPosition(ctx, nil, AssignArgs{CustomerID: "customer1", Position: "Forward", Qualities: []string{"Finishing", "Stamina"}})
			So(res.IsError, ShouldBeTrue)
			res, _, _ = s.lookupPlayer(ctx, nil, LookupArgs{})
			So(res.IsError, ShouldBeTrue)
		})

		Convey("When a forward is assigned to a draft", func() {
			res, _, err := s.assignPosition(ctx, nil, AssignArgs{
				CustomerID: "customer1",
				PIN:        "1234",
				Position:   "Forward",
				Qualities:  []string{"Finishing", "Stamina"},
			})
			So(err, ShouldBeNil)
			So(res.IsError, ShouldBeFalse)

			Convey("Then get_squad shows the draft", func() {
				res, _, err := s.getSquad(ctx, nil, SquadArgs{CustomerID: "customer1"})
				So(err, ShouldBeNil)
				var body squadView
				So(json.Unmarshal([]byte(text(res)), &body), ShouldBeNil)
				So(body.Size, ShouldEqual, 1)
				So(body.Slots[0].PlayerName, ShouldEqual, "Fwd")
				So(body.Slots[0].Qualities, ShouldEqual, "Finishing | Stamina")
			})
		})

		Convey("When the pin is wrong or the account unknown", func() {
			wrong, _, err := s.assignPosition(ctx, nil, AssignArgs{
				CustomerID: "customer1",
				PIN:        "9999",
				Position:   "Forward",
				Qualities:  []string{"Finishing", "Stamina"},
			})
			So(err, ShouldBeNil)
			unknown, _, err := s.assignPosition(ctx, nil, AssignArgs{
				CustomerID: "customer7",
				PIN:        "1234",
				Position:   "Forward",
				Qualities:  []string{"Finishing", "Stamina"},
			})
			So(err, ShouldBeNil)

			Convey("Then both calls fail and the squad stays empty", func() {
				So(wrong.IsError, ShouldBeTrue)
				So(text(wrong), ShouldContainSubstring, "wrong pin")
				So(unknown.IsError, ShouldBeTrue)
				So(text(unknown), ShouldContainSubstring, "customer not found")

				res, _, _ := s.getSquad(ctx, nil, SquadArgs{CustomerID: "customer1"})
				var body squadView
				So(json.Unmarshal([]byte(text(res)), &body), ShouldBeNil)
				So(body.Size, ShouldEqual, 0)
			})
		})

		Convey("When players are looked up by nationality", func() {
			res, _, err := s.lookupPlayer(ctx, nil, LookupArgs{Nationality: "canada"})
			So(err, ShouldBeNil)
			var body struct {
				Players []playerView `json:"players"`
			}
			So(json.Unmarshal([]byte(text(res)), &body), ShouldBeNil)

			Convey("Then the match ignores case", func() {
				So(body.Players, ShouldHaveLength, 2)
			})
		})
	})
}
