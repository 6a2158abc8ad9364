package gearset

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBeatsIsStrictPartialOrder(t *testing.T) {
	Convey("Given three solutions a <= b <= c on every axis", t, func() {
		a := Solution{Cms: 10, Ctrl: 10, CP: 10}
		b := Solution{Cms: 20, Ctrl: 20, CP: 20}
		c := Solution{Cms: 30, Ctrl: 30, CP: 30}

		Convey("Beats is irreflexive", func() {
			So(Beats(a, a), ShouldBeFalse)
		})

		Convey("Beats is antisymmetric", func() {
			So(Beats(a, b), ShouldBeTrue)
			So(Beats(b, a), ShouldBeFalse)
		})

		Convey("Beats is transitive", func() {
			So(Beats(a, b), ShouldBeTrue)
			So(Beats(b, c), ShouldBeTrue)
			So(Beats(a, c), ShouldBeTrue)
		})
	})

	Convey("Given a specialist-only solution and a non-specialist one on equal stats", t, func() {
		has := Solution{Cms: 10, Ctrl: 10, CP: 10, UsesHas: true}
		noHas := Solution{Cms: 10, Ctrl: 10, CP: 10, UsesHas: false}

		Convey("the non-specialist solution beats the specialist one but not vice versa", func() {
			So(Beats(noHas, has), ShouldBeTrue)
			So(Beats(has, noHas), ShouldBeFalse)
		})
	})
}

func TestParetoSetInsertDropsBeaten(t *testing.T) {
	Convey("Given a Pareto set containing a dominated point", t, func() {
		p := NewParetoSet()
		p.Insert(Solution{Cms: 30, Ctrl: 30, CP: 30})

		Convey("inserting a point that beats it replaces it", func() {
			p.Insert(Solution{Cms: 10, Ctrl: 10, CP: 10})
			members := p.Members()
			So(members, ShouldHaveLength, 1)
			So(members[0].Cms, ShouldEqual, 10)
		})
	})

	Convey("Given a Pareto set with an incomparable point", t, func() {
		p := NewParetoSet()
		p.Insert(Solution{Cms: 10, Ctrl: 30, CP: 10})
		p.Insert(Solution{Cms: 30, Ctrl: 10, CP: 10})

		Convey("neither point is dropped", func() {
			So(p.Members(), ShouldHaveLength, 2)
		})
	})

	Convey("Given a Pareto set", t, func() {
		p := NewParetoSet()
		p.Insert(Solution{Cms: 10, Ctrl: 10, CP: 10})

		Convey("inserting a strictly worse point is a no-op", func() {
			p.Insert(Solution{Cms: 20, Ctrl: 20, CP: 20})
			So(p.Members(), ShouldHaveLength, 1)
			So(p.Members()[0].Cms, ShouldEqual, 10)
		})
	})
}
