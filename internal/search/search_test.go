package search

import (
	"testing"

	"craftsolve/internal/config"
	"craftsolve/internal/progress"

	. "github.com/smartystreets/goconvey/convey"
)

func TestComputeScalingsGating(t *testing.T) {
	Convey("Given rlvl below 580", t, func() {
		s := ComputeScalings(3000, 3000, 560, config.ScalingModeRlvlGate)

		Convey("the 100% modifier applies", func() {
			expectedProg := (3000*10/130 + 2) * 100 / 100
			So(s.ProgUnit, ShouldEqual, expectedProg)
		})
	})

	Convey("Given rlvl at or above 580", t, func() {
		s := ComputeScalings(3000, 3000, 580, config.ScalingModeRlvlGate)

		Convey("the reduced modifier applies", func() {
			expectedProg := (3000*10/130 + 2) * 80 / 100
			expectedQual := (3000*10/115 + 35) * 70 / 100
			So(s.ProgUnit, ShouldEqual, expectedProg)
			So(s.QualUnit, ShouldEqual, expectedQual)
		})
	})
}

func TestConvertFailsWhenOverBudget(t *testing.T) {
	Convey("Given a finisher that costs more CP than the opener left", t, func() {
		recipe := &config.Recipe{CP: 100, Dur: 40}
		pst := progress.State{CP: 5, Durability: 8}
		fin := progress.Finisher{CP: 50, Progress: 1000}

		Convey("Convert fails", func() {
			_, ok := Convert(pst, fin, recipe, Scalings{ProgUnit: 100, QualUnit: 100}, false, 0)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestConvertSucceedsAndSetsMinDurability(t *testing.T) {
	Convey("Given a feasible opener residual and finisher", t, func() {
		recipe := &config.Recipe{CP: 300, Dur: 40, Prog: 100}
		pst := progress.State{CP: 200, Durability: 8, InnerQuiet: 3}
		fin := progress.Finisher{CP: 20, Durability: 3, Progress: 2000}

		Convey("Convert succeeds and reserves fin.Durability-1", func() {
			qs, ok := Convert(pst, fin, recipe, Scalings{ProgUnit: 100, QualUnit: 100}, false, 0)
			So(ok, ShouldBeTrue)
			So(qs.MinDurability, ShouldEqual, 2)
			So(qs.CP, ShouldEqual, 180)
			So(qs.InnerQuiet, ShouldEqual, 3)
		})
	})
}

func TestDriverSearchFindsRotation(t *testing.T) {
	Convey("Given a modest recipe", t, func() {
		recipe := &config.Recipe{
			CP: 300, Cms: 3000, Ctrl: 3000, Rlvl: 560,
			Dur: 40, Prog: 400, Qual: 1000,
		}
		driver := NewDriver(recipe, config.ScalingModeRlvlGate, false)

		Convey("Search returns a candidate with positive delivered quality", func() {
			cand := driver.Search(0)
			So(cand, ShouldNotBeNil)
			So(cand.DeliveredQuality, ShouldBeGreaterThan, 0)
		})
	})
}
