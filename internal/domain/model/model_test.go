package model_test

import (
	"errors"
	"testing"

	"github.com/okian/nsl/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPosition(t *testing.T) {
	Convey("Given the roster spelling of a position", t, func() {
		Convey("When it matches exactly", func() {
			p, err := model.ParsePosition("Midfielder")
			So(err, ShouldBeNil)
			So(p, ShouldEqual, model.Midfielder)
			So(p.String(), ShouldEqual, "Midfielder")
			So(p.Valid(), ShouldBeTrue)
		})

		Convey("When the case differs", func() {
			_, err := model.ParsePosition("midfielder")
			So(errors.Is(err, model.ErrUnknownPosition), ShouldBeTrue)
		})

		Convey("When the value is out of range", func() {
			So(model.Position(9).Valid(), ShouldBeFalse)
			So(model.Position(9).String(), ShouldEqual, "Position(9)")
		})
	})
}

func TestPlayer(t *testing.T) {
	Convey("Given roster rows", t, func() {
		attrs := "Tackling|Marking"
		with := model.NewPlayer("Ana", "AFC Toronto", "Defender", "Canada", &attrs)
		without := model.NewPlayer("Bea", "AFC Toronto", "Defender", "Canada", nil)
		blank := ""
		empty := model.NewPlayer("Cat", "AFC Toronto", "Defender", "Canada", &blank)

		Convey("Then attribute presence is explicit", func() {
			So(with.HasAttributes(), ShouldBeTrue)
			So(with.AttributeTokens(), ShouldResemble, []string{"Tackling", "Marking"})
			So(without.HasAttributes(), ShouldBeFalse)
			So(without.AttributeTokens(), ShouldBeNil)
			So(empty.HasAttributes(), ShouldBeFalse)
		})

		Convey("Then position matching is exact", func() {
			So(with.PlaysAt(model.Defender), ShouldBeTrue)
			So(with.PlaysAt(model.Forward), ShouldBeFalse)
		})
	})
}

func TestDescriptor(t *testing.T) {
	Convey("Given a two-quality descriptor", t, func() {
		d := model.Descriptor{First: "Tackling", Second: "Marking"}

		Convey("Then the query form uses a bare pipe", func() {
			So(d.Query(), ShouldEqual, "Tackling|Marking")
		})

		Convey("Then the persisted form uses a spaced pipe", func() {
			So(d.String(), ShouldEqual, "Tackling | Marking")
		})

		Convey("Then the persisted form parses back", func() {
			So(model.ParseDescriptor(d.String()), ShouldResemble, d)
			So(model.ParseDescriptor("Tackling"), ShouldResemble, model.Descriptor{First: "Tackling"})
		})
	})
}
