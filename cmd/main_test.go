package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

const testRoster = `name,team,position,nationality,attributes
Keeper One,AFC Toronto,Goalkeeper,Canada,Shot-Stopping|Handling
Ana,Calgary Wild FC,Defender,Canada,Tackling|Marking
Bea,Calgary Wild FC,Defender,USA,Clearances|Positioning
Cat,Ottawa Rapid FC,Defender,Canada,Tackling|Interception
Mid,Montreal Roses,Midfielder,Canada,
`

// withDataDir points configuration at a fresh directory holding a UTF-8
// roster.
func withDataDir(t *testing.T) string {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "all_players.csv"), []byte(testRoster), 0o600); err != nil {
		t.Fatalf("write roster: %v", err)
	}
	t.Setenv("NSL_DATA_DIR", dir)
	t.Setenv("NSL_ROSTER_ENCODING", "utf-8")
	return dir
}

func run(args []string, stdin string) (stdout string, err error) {
	cmd := newRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	convey.Convey("Given the version command", t, func() {
		out, err := run([]string{"version"}, "")

		convey.Convey("Then the build info is printed", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "nsl dev")
			convey.So(out, convey.ShouldContainSubstring, "commit: none")
		})
	})
}

func TestRecommendCmd(t *testing.T) {
	convey.Convey("Given a data directory with a roster", t, func() {
		withDataDir(t)

		convey.Convey("When defenders are recommended", func() {
			out, err := run([]string{"recommend", "--position", "Defender", "--q1", "Tackling", "--q2", "Marking"}, "")

			convey.Convey("Then the ranking table lists the best match first", func() {
				convey.So(err, convey.ShouldBeNil)
				lines := strings.Split(strings.TrimSpace(out), "\n")
				convey.So(lines[0], convey.ShouldStartWith, "RANK")
				convey.So(lines, convey.ShouldHaveLength, 4)
				convey.So(lines[1], convey.ShouldContainSubstring, "Ana")
			})
		})

		convey.Convey("When a quality is outside the vocabulary", func() {
			_, err := run([]string{"recommend", "--position", "Defender", "--q1", "Flying", "--q2", "Marking"}, "")

			convey.Convey("Then the command fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When no midfielder has attributes", func() {
			out, err := run([]string{"recommend", "--position", "Midfielder", "--q1", "Passing", "--q2", "Crossing"}, "")

			convey.Convey("Then a no-match line is printed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "No Midfielder matches")
			})
		})

		convey.Convey("When a flag is missing", func() {
			_, err := run([]string{"recommend", "--position", "Defender"}, "")
			convey.So(err, convey.ShouldNotBeNil)
		})
	})

	convey.Convey("Given the sqlite store driver", t, func() {
		dir := withDataDir(t)
		t.Setenv("NSL_STORE_DRIVER", "sqlite")

		convey.Convey("When a recommendation runs", func() {
			_, err := run([]string{"recommend", "-p", "Goalkeeper", "--q1", "Handling", "--q2", "Resilience"}, "")

			convey.Convey("Then the database is created in the data directory", func() {
				convey.So(err, convey.ShouldBeNil)
				_, statErr := os.Stat(filepath.Join(dir, "nsl.db"))
				convey.So(statErr, convey.ShouldBeNil)
			})
		})
	})
}

func TestChatCmd(t *testing.T) {
	convey.Convey("Given the bare binary with no input", t, func() {
		withDataDir(t)
		out, err := run([]string{}, "")

		convey.Convey("Then the chatbot greets and says goodbye", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "Thank you, Goodbye!")
		})
	})

	convey.Convey("Given only a name", t, func() {
		withDataDir(t)
		out, err := run([]string{"chat"}, "Sam\n")

		convey.Convey("Then the customer is greeted by name", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "Fantastic Sam!")
		})
	})

	convey.Convey("Given an invalid configuration", t, func() {
		withDataDir(t)
		t.Setenv("NSL_STORE_DRIVER", "postgres")
		_, err := run([]string{"chat"}, "")

		convey.Convey("Then the command fails before the console starts", func() {
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}
