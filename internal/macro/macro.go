// Package macro emits the in-game command sequence realising a winning
// rotation (spec.md §6): one "/ac" line per atomic crafting step, with
// combo action ids expanded to their constituent atomic commands.
package macro

import (
	"fmt"

	"craftsolve/internal/action"
	"craftsolve/internal/dp"
	"craftsolve/internal/progress"
)

// waitOverride carries the handful of atomic names whose wait time differs
// from the default (3 for quality/progress touches, 2 for buffs), per
// spec.md §6.
var waitOverride = map[string]int{
	"Observe":            2,
	"Heart and Soul":     2,
	"Great Strides":      2,
	"Innovation":         2,
	"Manipulation":       2,
	"Waste Not":          2,
	"Waste Not II":       2,
	"Trained Perfection": 2,
	"Veneration":         2,
}

const defaultWait = 3

func waitFor(name string) int {
	if w, ok := waitOverride[name]; ok {
		return w
	}
	return defaultWait
}

// Line is one formatted "/ac" macro command.
func Line(name string) string {
	return fmt.Sprintf("/ac %q <wait.%d>", name, waitFor(name))
}

// ProgressLines expands an opener/finisher letter string into macro lines
// (spec.md §4.3's letter catalogue); unrecognised letters (the driver's
// space "extra" placeholder) are skipped.
func ProgressLines(letters string) []string {
	var lines []string
	for i := 0; i < len(letters); i++ {
		l := letters[i]
		switch {
		case l == 'R':
			lines = append(lines, Line("Reflect"))
		case progress.Get(l) != nil:
			lines = append(lines, Line(progress.Get(l).Name))
		}
	}
	return lines
}

// QualityLines expands a DP backtrace's steps into macro lines, with each
// combo action expanded via its action.Chain().
func QualityLines(steps []dp.Step) []string {
	var lines []string
	for _, step := range steps {
		a := action.Get(step.ActionID)
		if a == nil {
			continue
		}
		for _, name := range a.Chain() {
			lines = append(lines, Line(name))
		}
	}
	return lines
}

// Full assembles the complete macro for a winning candidate: opener, extra,
// the quality-phase DP chain, then the finisher that completes the craft.
func Full(opener, extra, finisher string, steps []dp.Step) []string {
	var lines []string
	lines = append(lines, ProgressLines(opener+extra)...)
	lines = append(lines, QualityLines(steps)...)
	lines = append(lines, ProgressLines(finisher)...)
	return lines
}
