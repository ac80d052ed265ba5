package vectorize_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/nsl/internal/domain/vectorize"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFit(t *testing.T) {
	Convey("Given a pool of attribute strings", t, func() {
		docs := []string{"Tackling|Marking", "Clearances|Positioning", "Tackling|Interception"}

		Convey("When fitting", func() {
			v, err := vectorize.Fit(docs)

			Convey("Then the vocabulary is in first-seen order", func() {
				So(err, ShouldBeNil)
				So(v.Vocabulary(), ShouldResemble, []string{"tackling", "marking", "clearances", "positioning", "interception"})
			})

			Convey("Then lookups are case-insensitive", func() {
				i, ok := v.Index("MARKING")
				So(ok, ShouldBeTrue)
				So(i, ShouldEqual, 1)
			})
		})

		Convey("When tokens contain spaces", func() {
			v, err := vectorize.Fit([]string{"Commanding the Box|Shot-Stopping", " Handling"})
			So(err, ShouldBeNil)

			Convey("Then they stay atomic and untrimmed", func() {
				So(v.Vocabulary(), ShouldResemble, []string{"commanding the box", "shot-stopping", " handling"})
			})
		})
	})

	Convey("Given an empty pool", t, func() {
		_, err := vectorize.Fit(nil)
		So(errors.Is(err, vectorize.ErrEmptyVocabulary), ShouldBeTrue)
	})

	Convey("Given a pool with only empty values", t, func() {
		_, err := vectorize.Fit([]string{"", ""})
		So(errors.Is(err, vectorize.ErrEmptyVocabulary), ShouldBeTrue)
	})

	Convey("Given adjacent or trailing separators", t, func() {
		v, err := vectorize.Fit([]string{"Tackling||Marking", "Pace|"})
		So(err, ShouldBeNil)

		Convey("Then the empty token is kept as a term", func() {
			So(v.Vocabulary(), ShouldResemble, []string{"tackling", "", "marking", "pace"})
			So(v.Transform("Tackling||Marking"), ShouldResemble, vectorize.Vector{1, 1, 1, 0})
		})

		Convey("Then it lowers the match against a clean descriptor", func() {
			got := vectorize.Cosine(v.Transform("Tackling|Marking"), v.Transform("Tackling||Marking"))
			So(got, ShouldAlmostEqual, 2/math.Sqrt(6), 1e-12)
		})
	})

	Convey("Given a custom separator", t, func() {
		v, err := vectorize.Fit([]string{"a;b"}, vectorize.WithSeparator(";"))
		So(err, ShouldBeNil)
		So(v.Vocabulary(), ShouldResemble, []string{"a", "b"})
	})
}

func TestTransform(t *testing.T) {
	Convey("Given a fitted vectorizer", t, func() {
		v, err := vectorize.Fit([]string{"Passing|Dribbling", "Shooting|Passing"})
		So(err, ShouldBeNil)

		Convey("When transforming a known descriptor", func() {
			vec := v.Transform("Passing|Shooting")
			So(vec, ShouldResemble, vectorize.Vector{1, 0, 1})
		})

		Convey("When a token repeats", func() {
			vec := v.Transform("Passing|Passing")
			So(vec, ShouldResemble, vectorize.Vector{2, 0, 0})
		})

		Convey("When tokens are unknown", func() {
			vec := v.Transform("Crossing|Ball control")
			So(vec, ShouldResemble, vectorize.Vector{0, 0, 0})
		})

		Convey("When transforming many docs", func() {
			vecs := v.TransformAll([]string{"Dribbling", ""})
			So(vecs, ShouldResemble, []vectorize.Vector{{0, 1, 0}, {0, 0, 0}})
		})
	})
}

func TestCosine(t *testing.T) {
	Convey("Given count vectors", t, func() {
		Convey("Then identical vectors score exactly one", func() {
			So(vectorize.Cosine(vectorize.Vector{1, 1, 0}, vectorize.Vector{1, 1, 0}), ShouldEqual, 1.0)
		})

		Convey("Then disjoint vectors score zero", func() {
			So(vectorize.Cosine(vectorize.Vector{1, 1, 0, 0}, vectorize.Vector{0, 0, 1, 1}), ShouldEqual, 0.0)
		})

		Convey("Then one shared token out of two scores one half", func() {
			So(vectorize.Cosine(vectorize.Vector{1, 1, 0}, vectorize.Vector{1, 0, 1}), ShouldAlmostEqual, 0.5, 1e-12)
		})

		Convey("Then a zero vector scores zero instead of dividing by zero", func() {
			So(vectorize.Cosine(vectorize.Vector{0, 0}, vectorize.Vector{1, 1}), ShouldEqual, 0.0)
			So(vectorize.Cosine(vectorize.Vector{1, 1}, vectorize.Vector{0, 0}), ShouldEqual, 0.0)
		})
	})
}
