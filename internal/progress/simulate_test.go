package progress

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const testMaxDur = 80

func TestApplyActionSkipsWhenInfeasible(t *testing.T) {
	Convey("Given a state with no CP", t, func() {
		s := State{CP: 0, Durability: 80}

		Convey("Careful Synthesis (cp_cost=7) is silently skipped", func() {
			out := applyAction(s, Get('c'), testMaxDur)
			So(out, ShouldResemble, s)
		})
	})
}

func TestWasteNotHalvesDurabilityCost(t *testing.T) {
	Convey("Given a state with Waste Not active and ample resources", t, func() {
		s := State{CP: 100, Durability: 80, WasteNot: 4}

		Convey("Basic Synthesis (raw_dur_cost=2) only consumes 1 durability", func() {
			out := applyAction(s, Get('b'), testMaxDur)
			So(s.Durability-out.Durability, ShouldEqual, 1)
		})
	})
}

func TestManipulationRegenExcludesItself(t *testing.T) {
	Convey("Given Manipulation already active", t, func() {
		s := State{CP: 200, Durability: 76, Manipulation: 4}

		Convey("casting Manipulation again does not regenerate durability this step", func() {
			out := applyAction(s, Get('m'), testMaxDur)
			So(out.Durability, ShouldEqual, s.Durability)
			So(out.Manipulation, ShouldEqual, maxManipulation)
		})

		Convey("casting an unrelated action regenerates 1 durability", func() {
			out := applyAction(s, Get('b'), testMaxDur)
			// -2 from Basic Synthesis's raw cost, +1 from Manipulation's regen
			So(int(out.Durability)-int(s.Durability), ShouldEqual, -1)
		})
	})
}

func TestMuscleMemoryDoublesFirstProgressAction(t *testing.T) {
	Convey("Given a fresh state", t, func() {
		s := State{CP: 100, Durability: 80}

		Convey("Muscle Memory grants no self-bonus but sets the buff", func() {
			out := applyAction(s, Get('M'), testMaxDur)
			So(out.Progress, ShouldEqual, 300)
			So(out.MuscleMemory, ShouldEqual, maxMuscleMemory)
		})

		Convey("a following Basic Synthesis doubles under the buff and consumes it", func() {
			afterM := applyAction(s, Get('M'), testMaxDur)
			out := applyAction(afterM, Get('b'), testMaxDur)
			So(out.Progress-afterM.Progress, ShouldEqual, 240)
			So(out.MuscleMemory, ShouldEqual, 0)
		})
	})
}

func TestReflectOnlyAppliesAsFirstAction(t *testing.T) {
	Convey("Given a state that already has progress", t, func() {
		s := State{CP: 100, Durability: 80, Progress: 120}

		Convey("Reflect is skipped", func() {
			out := applyReflect(s, testMaxDur)
			So(out, ShouldResemble, s)
		})
	})

	Convey("Given a fresh state", t, func() {
		s := State{CP: 100, Durability: 80}

		Convey("Reflect grants +2 inner quiet and sets reflect", func() {
			out := applyReflect(s, testMaxDur)
			So(out.InnerQuiet, ShouldEqual, 2)
			So(out.Reflect, ShouldBeTrue)
			So(out.CP, ShouldEqual, 82)
			So(out.Durability, ShouldEqual, 78)
		})
	})
}

func TestSimulateSkipsUnrecognisedLetters(t *testing.T) {
	Convey("Given an opener plus a space-delimited extra placeholder", t, func() {
		s := State{CP: 300, Durability: 80}

		Convey("the space is ignored", func() {
			withSpace := Simulate(s, testMaxDur, "Mv ")
			withoutSpace := Simulate(s, testMaxDur, "Mv")
			So(withSpace, ShouldResemble, withoutSpace)
		})
	})
}

func TestInnerQuietSaturatesAtMax(t *testing.T) {
	Convey("Given inner_quiet already at 9", t, func() {
		s := State{CP: 100, Durability: 80, InnerQuiet: 9}

		Convey("Reflect's +2 saturates at 10, not 11", func() {
			out := applyReflect(s, testMaxDur)
			So(out.InnerQuiet, ShouldEqual, 10)
		})
	})
}
