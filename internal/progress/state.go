// Package progress implements the deterministic forward Progress Simulator
// (spec.md §4.3): an interpreter of opener/finisher action-letter strings
// over a progress-phase state, distinct from and never memoised like the
// packed quality.State the DP engine searches.
package progress

import "craftsolve/internal/qualstate"

// State is the progress-phase state (spec.md §3's "Progress state" table).
// Unlike qualstate.State it is never packed into a cache key: the Progress
// Simulator is a plain forward interpreter, run once per opener/finisher
// candidate.
type State struct {
	CP         uint16
	Durability uint8 // 5-point units
	InnerQuiet uint8

	Manipulation uint8
	WasteNot     uint8
	Veneration   uint8
	MuscleMemory uint8

	Progress uint32

	// HeartAndSoul is whether the buff is available to spend (mirrors
	// recipe.has at the start of the opener); HeartAndSoulUsed is whether an
	// action in this progress phase has already spent it -- this is the
	// "pst.has" spec.md §4.5 checks at conversion time.
	HeartAndSoul     bool
	HeartAndSoulUsed bool

	TrainedPerfection qualstate.TrainedPerfection
	Reflect           bool
}

const (
	maxWasteNot     = 8
	maxManipulation = 8
	maxVeneration   = 4
	maxMuscleMemory = 5
	maxInnerQuiet   = 10
)

func satSub(v, delta uint8) uint8 {
	if int(v) <= int(delta) {
		return 0
	}
	return v - delta
}

func satAdd(v, delta, max uint8) uint8 {
	sum := int(v) + int(delta)
	if sum > int(max) {
		return max
	}
	return uint8(sum)
}
