package macro

import (
	"testing"

	"craftsolve/internal/action"
	"craftsolve/internal/dp"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLineFormatsWaitByActionKind(t *testing.T) {
	Convey("A quality touch waits 3", t, func() {
		So(Line("Basic Touch"), ShouldEqual, `/ac "Basic Touch" <wait.3>`)
	})

	Convey("A buff action waits 2", t, func() {
		So(Line("Innovation"), ShouldEqual, `/ac "Innovation" <wait.2>`)
	})
}

func TestProgressLinesSkipsUnrecognisedLetters(t *testing.T) {
	Convey("Given an opener with a trailing space extra", t, func() {
		lines := ProgressLines("Mv ")

		Convey("only Muscle Memory and Veneration are emitted", func() {
			So(lines, ShouldHaveLength, 2)
			So(lines[0], ShouldEqual, `/ac "Muscle Memory" <wait.3>`)
			So(lines[1], ShouldEqual, `/ac "Veneration" <wait.2>`)
		})
	})
}

func TestQualityLinesExpandsComboChain(t *testing.T) {
	Convey("Given a backtrace step choosing Advanced Touch", t, func() {
		steps := []dp.Step{{ActionID: action.AdvancedTouch}}

		Convey("the macro expands to the full three-step combo", func() {
			lines := QualityLines(steps)
			So(lines, ShouldHaveLength, 3)
			So(lines[0], ShouldEqual, `/ac "Basic Touch" <wait.3>`)
			So(lines[2], ShouldEqual, `/ac "Advanced Touch" <wait.3>`)
		})
	})
}
