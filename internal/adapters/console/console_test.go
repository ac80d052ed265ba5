package console_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/nsl/internal/adapters/console"
	"github.com/okian/nsl/internal/adapters/repository"
	service "github.com/okian/nsl/internal/app"
	"github.com/okian/nsl/internal/domain/model"
	"github.com/okian/nsl/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type staticRoster []model.Player

func (r staticRoster) Players(context.Context) ([]model.Player, error) { return r, nil }

func player(name, position, nationality, attrs string) model.Player {
	return model.NewPlayer(name, "Calgary Wild FC", position, nationality, &attrs)
}

func startService(t *testing.T) *service.Service {
	dir := t.TempDir()
	svc := service.New(
		service.WithLogger(logger.Nop()),
		service.WithRoster(staticRoster{
			player("Ana", "Defender", "Canada", "Tackling|Marking"),
			player("Bea", "Defender", "USA", "Clearances|Positioning"),
			player("Cat", "Defender", "usa", "Tackling|Interception"),
			player("Keeper One", "Goalkeeper", "Canada", "Shot-Stopping|Handling"),
		}),
		service.WithSquadStore(repository.NewCSVSquadStore(filepath.Join(dir, "created_teams.csv"))),
		service.WithCustomerStore(repository.NewCSVCustomerStore(filepath.Join(dir, "customer_database.csv"))),
	)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	return svc
}

func script(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func run(svc *service.Service, lines ...string) (string, error) {
	var out bytes.Buffer
	c := console.New(svc, script(lines...), console.WithOutput(&out))
	err := c.Run(context.Background())
	return out.String(), err
}

func TestConsole_DiscoverTeams(t *testing.T) {
	Convey("Given a customer browsing teams", t, func() {
		svc := startService(t)
		out, err := run(svc, "Sam", "1", "1", "9", "2", "maybe", "no", "2")

		Convey("Then the team list, profile and goodbye are shown", func() {
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "Fantastic Sam!")
			So(out, ShouldContainSubstring, "2. Vancouver Rise\n")
			So(out, ShouldContainSubstring, "1. Montreal Roses\n")
			So(out, ShouldContainSubstring, "Invalid team selection")
			So(out, ShouldContainSubstring, "Team profile of Vancouver Rise FC")
			So(out, ShouldContainSubstring, "Swangard Stadium")
			So(out, ShouldContainSubstring, "Please enter 'yes' or 'no'.")
			So(out, ShouldContainSubstring, "Thank you for using the team information tool!")
			So(out, ShouldContainSubstring, "Thank you, Goodbye!")
		})
	})
}

func TestConsole_DiscoverPlayers(t *testing.T) {
	Convey("Given a customer searching players by name and position", t, func() {
		svc := startService(t)
		out, err := run(svc, "Sam", "1", "2", "1", "ana", "yes", "defender", "yes", "nobody", "keeper one", "no", "1")

		Convey("Then input is title-cased before matching", func() {
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "- Name: Ana")
			So(out, ShouldContainSubstring, "| All Players with the position: Defender |")
			So(out, ShouldContainSubstring, "Name: Cat, Team: Calgary Wild FC")
			So(out, ShouldContainSubstring, "Sorry, that's not a valid player name or position.")
			So(out, ShouldContainSubstring, "- Name: Keeper One")
		})

		Convey("Then input running out ends the chat cleanly", func() {
			So(out, ShouldEndWith, "Thank you, Goodbye!\n")
		})
	})

	Convey("Given a customer searching by country", t, func() {
		svc := startService(t)
		out, err := run(svc, "Sam", "1", "2", "2", "france", " USA ", "no", "2")

		Convey("Then counts and matches are shown", func() {
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "Spread of NSL Players by Country")
			So(out, ShouldContainSubstring, "No players found from 'France'")
			So(out, ShouldContainSubstring, "| All Players from Usa |")
			So(out, ShouldContainSubstring, "Name: Bea")
			So(out, ShouldContainSubstring, "Name: Cat")
		})
	})
}

func TestConsole_Fantasy(t *testing.T) {
	Convey("Given a new customer building a squad", t, func() {
		svc := startService(t)
		out, err := run(svc,
			"Sam", "2", "sam@example.com",
			"12", "1234", // registration pin, first one invalid
			"9", // invalid menu entry
			"5", // empty squad cannot be finalized
			"2", "8", "1", "3", // defenders: Tackling + Marking
			"5", "2",
		)

		Convey("Then the squad is assigned, finalized and saved", func() {
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "Invalid PIN. Please enter a 4 digit pin.")
			So(out, ShouldContainSubstring, "Your pin has been created. Thank you")
			So(out, ShouldContainSubstring, "Invalid input. Please choose a number from 1 to 5.")
			So(out, ShouldContainSubstring, "Looks like you don't have a team yet, please create one")
			So(out, ShouldContainSubstring, "Invalid selection. Try again.")
			So(out, ShouldContainSubstring, "Top Defenders for Tackling | Marking:")
			So(out, ShouldContainSubstring, "\nWhich position would you like to fill / modify?\n\n1. Goalkeeper")
			So(out, ShouldContainSubstring, "\nTeam finalized:\n\n")

			sess, err := svc.NewSession(context.Background(), "customer1")
			So(err, ShouldBeNil)
			So(sess.Squad().Count(model.Defender), ShouldEqual, 3)
		})
	})

	Convey("Given a returning customer who forgets the pin", t, func() {
		svc := startService(t)
		_, err := svc.Register(context.Background(), "Ada", "ada@example.com", "4321")
		So(err, ShouldBeNil)

		out, err := run(svc, "Ada", "2", "ADA@example.com", "0000", "1111", "2222", "2")

		Convey("Then three wrong pins lock the login out", func() {
			So(err, ShouldBeNil)
			So(strings.Count(out, "Invalid PIN. Please try again"), ShouldEqual, 2)
			So(out, ShouldContainSubstring, "locked out")
			So(out, ShouldNotContainSubstring, "WELCOME TO TEAM BUILDER")
		})
	})

	Convey("Given a returning customer with a saved squad", t, func() {
		svc := startService(t)
		ctx := context.Background()
		_, err := svc.Register(ctx, "Ada", "ada@example.com", "4321")
		So(err, ShouldBeNil)
		_, _, err = svc.AssignPosition(ctx, "customer1", "Goalkeeper", "Shot-Stopping", "Handling")
		So(err, ShouldBeNil)
		_, err = svc.Finalize(ctx, "customer1")
		So(err, ShouldBeNil)

		out, err := run(svc, "Ada", "2", "ada@example.com", "4321", "5", "1")

		Convey("Then the current team is shown on entry and can be finalized as is", func() {
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "Welcome, Ada!")
			So(out, ShouldContainSubstring, "Current Team:")
			So(out, ShouldContainSubstring, "Keeper One")
			So(out, ShouldContainSubstring, "Team finalized:")
		})
	})
}
