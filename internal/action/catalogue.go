// Package action holds the static catalogue of quality/buff/repair actions
// the Quality DP Engine chooses among (spec.md §4.1). The catalogue is data,
// not control flow: internal/dp's generic formSuccessor/totalDeltaQuality
// pair interprets each descriptor's StepCount/Delay/PostEffect rather than one switch-branch per
// action (spec.md §9 design note), with one narrow exception: Byregot's
// Blessing's QualValueFn, since its base efficiency is a function of inner
// quiet rather than a constant (spec.md §9).
package action

import "craftsolve/internal/qualstate"

// Action ids. 0 is the terminal "finished" sentinel (spec.md §3); 16
// (Observe) is reserved and unused by the present catalogue so a future
// addition doesn't shift the persisted cache encoding (spec.md §9).
const (
	Terminal          = 0
	BasicTouch        = 1
	StandardTouch     = 2
	AdvancedTouch     = 3
	PrudentTouch      = 4
	PreparatoryTouch  = 5
	TrainedFinesse    = 6
	PreciseTouch      = 7
	FocusedTouch      = 8
	ByregotsBlessing  = 9
	HeartAndSoulID    = 10
	GreatStridesID    = 11
	InnovationID      = 12
	ManipulationID    = 13
	WasteNotID        = 14
	WasteNotIIID      = 15
	Observe           = 16 // reserved, unused
	TrainedPerfection = 17
)

// Mutable is the subset of qualstate.State an Action's PostEffect may touch.
// Kept separate from qualstate.State so post-effects can't accidentally
// reach into CP/durability bookkeeping, which internal/dp's formSuccessor
// owns exclusively.
type Mutable struct {
	WasteNot          uint8
	Innovation        uint8
	GreatStrides      uint8
	Manipulation      uint8
	InnerQuiet        uint8
	TrainedPerfection qualstate.TrainedPerfection
	HeartAndSoul      bool
}

// Action describes one catalogue entry (spec.md §4.1).
type Action struct {
	ID   int
	Name string

	RawDurCost int // 0, 1, 2 or 4
	StepCount  int // 1..3 discrete crafting steps
	Delay      int // non-touching "observe" steps preceding the touch
	CPCost     int
	IQStacks   uint8 // inner-quiet stacks gained on success
	TimeCost   int
	QualValue  int // base efficiency, UNIT=400 == 100%
	Scaling    int // per-step efficiency increment for combos

	// QualValueFn, when set, replaces QualValue for an action whose base
	// efficiency is itself a function of the state it's cast from rather
	// than a constant (spec.md §9's "Byregot's inner-quiet scaling" special
	// case — the one action the generic per-step QualValue/Scaling table
	// can't express). Called with the step's inner quiet (pre-tick, same as
	// QualValue's step view).
	QualValueFn func(iq uint8) int

	// Precondition reports whether the action may be applied in s. Failures
	// here are static preconditions checked before durability/CP/time
	// (spec.md §4.1): Prudent Touch vs waste_not, Trained Finesse vs IQ=10,
	// Precise Touch vs heart_and_soul, Trained Perfection vs already-used.
	Precondition func(s qualstate.State) bool

	// PostEffect sets whichever timed status or one-shot buff this action
	// grants, applied after the generic status-tick decrement in
	// internal/dp's formSuccessor.
	PostEffect func(m Mutable) Mutable

	// ProducesQuality is true for actions that produce quality and so
	// consume a Great Strides charge (spec.md §4.2 step 3d).
	ProducesQuality bool

	// ComboChain is the ordered list of atomic macro command names this
	// catalogue entry expands to (spec.md §6 "combo action ids expand to
	// their constituent atomic commands"): Focused Touch expands to its
	// leading Observe, and the multi-step touches expand to the real combo
	// chain they represent. A single-step action's chain is just its own
	// name.
	ComboChain []string
}

func always(qualstate.State) bool { return true }

// Catalogue is the fixed ordered list of actions, indexed by ID (nil at
// reserved/unused ids 0 and 16).
var Catalogue = buildCatalogue()

func buildCatalogue() []*Action {
	cat := make([]*Action, TrainedPerfection+1)

	cat[BasicTouch] = &Action{
		ID: BasicTouch, Name: "Basic Touch",
		RawDurCost: 2, StepCount: 1, CPCost: 18, IQStacks: 1, TimeCost: 3,
		QualValue: 400, Precondition: always, ProducesQuality: true,
	}
	cat[StandardTouch] = &Action{
		ID: StandardTouch, Name: "Standard Touch",
		RawDurCost: 2, StepCount: 2, CPCost: 32, IQStacks: 1, TimeCost: 3,
		QualValue: 400, Scaling: 125, Precondition: always, ProducesQuality: true,
		ComboChain: []string{"Basic Touch", "Standard Touch"},
	}
	cat[AdvancedTouch] = &Action{
		ID: AdvancedTouch, Name: "Advanced Touch",
		RawDurCost: 2, StepCount: 3, CPCost: 46, IQStacks: 1, TimeCost: 3,
		QualValue: 400, Scaling: 150, Precondition: always, ProducesQuality: true,
		ComboChain: []string{"Basic Touch", "Standard Touch", "Advanced Touch"},
	}
	cat[PrudentTouch] = &Action{
		ID: PrudentTouch, Name: "Prudent Touch",
		RawDurCost: 1, StepCount: 1, CPCost: 25, IQStacks: 1, TimeCost: 3,
		QualValue: 400, ProducesQuality: true,
		Precondition: func(s qualstate.State) bool { return s.WasteNot == 0 },
	}
	cat[PreparatoryTouch] = &Action{
		ID: PreparatoryTouch, Name: "Preparatory Touch",
		RawDurCost: 4, StepCount: 1, CPCost: 40, IQStacks: 2, TimeCost: 3,
		QualValue: 400, ProducesQuality: true, Precondition: always,
	}
	cat[TrainedFinesse] = &Action{
		ID: TrainedFinesse, Name: "Trained Finesse",
		RawDurCost: 0, StepCount: 1, CPCost: 32, IQStacks: 0, TimeCost: 3,
		QualValue: 400, ProducesQuality: true,
		Precondition: func(s qualstate.State) bool { return s.InnerQuiet == qualstate.MaxInnerQuiet },
	}
	cat[PreciseTouch] = &Action{
		ID: PreciseTouch, Name: "Precise Touch",
		RawDurCost: 2, StepCount: 1, CPCost: 18, IQStacks: 2, TimeCost: 3,
		QualValue: 800, ProducesQuality: true, // 200% efficiency
		Precondition: func(s qualstate.State) bool { return s.HeartAndSoul },
		PostEffect:   func(m Mutable) Mutable { m.HeartAndSoul = false; return m },
	}
	cat[FocusedTouch] = &Action{
		ID: FocusedTouch, Name: "Focused Touch",
		RawDurCost: 2, StepCount: 2, Delay: 1, CPCost: 18, IQStacks: 1, TimeCost: 3,
		QualValue: 400, ProducesQuality: true, Precondition: always,
		ComboChain: []string{"Observe", "Focused Touch"},
	}
	cat[ByregotsBlessing] = &Action{
		ID: ByregotsBlessing, Name: "Byregot's Blessing",
		RawDurCost: 2, StepCount: 1, CPCost: 24, IQStacks: 0, TimeCost: 3,
		QualValueFn:     func(iq uint8) int { return 400 * (10 + 2*int(iq)) / 10 },
		ProducesQuality: true, Precondition: always,
		// Consumes the inner-quiet stacks its own value was just computed
		// from.
		PostEffect: func(m Mutable) Mutable { m.InnerQuiet = 0; return m },
	}
	cat[HeartAndSoulID] = &Action{
		ID: HeartAndSoulID, Name: "Heart and Soul",
		RawDurCost: 0, StepCount: 1, CPCost: 0, TimeCost: 2,
		Precondition: func(s qualstate.State) bool { return !s.HeartAndSoul },
		PostEffect:   func(m Mutable) Mutable { m.HeartAndSoul = true; return m },
	}
	cat[GreatStridesID] = &Action{
		ID: GreatStridesID, Name: "Great Strides",
		RawDurCost: 0, StepCount: 1, CPCost: 32, TimeCost: 2, Precondition: always,
		PostEffect: func(m Mutable) Mutable { m.GreatStrides = 3; return m },
	}
	cat[InnovationID] = &Action{
		ID: InnovationID, Name: "Innovation",
		RawDurCost: 0, StepCount: 1, CPCost: 18, TimeCost: 2, Precondition: always,
		PostEffect: func(m Mutable) Mutable { m.Innovation = 4; return m },
	}
	cat[ManipulationID] = &Action{
		ID: ManipulationID, Name: "Manipulation",
		RawDurCost: 0, StepCount: 1, CPCost: 96, TimeCost: 2, Precondition: always,
		PostEffect: func(m Mutable) Mutable { m.Manipulation = 8; return m },
	}
	cat[WasteNotID] = &Action{
		ID: WasteNotID, Name: "Waste Not",
		RawDurCost: 0, StepCount: 1, CPCost: 56, TimeCost: 2, Precondition: always,
		PostEffect: func(m Mutable) Mutable { m.WasteNot = 4; return m },
	}
	cat[WasteNotIIID] = &Action{
		ID: WasteNotIIID, Name: "Waste Not II",
		RawDurCost: 0, StepCount: 1, CPCost: 98, TimeCost: 2, Precondition: always,
		PostEffect: func(m Mutable) Mutable { m.WasteNot = 8; return m },
	}
	cat[TrainedPerfection] = &Action{
		ID: TrainedPerfection, Name: "Trained Perfection",
		RawDurCost: 0, StepCount: 1, CPCost: 0, TimeCost: 2,
		Precondition: func(s qualstate.State) bool { return s.TrainedPerfection == qualstate.TPNone },
		PostEffect:   func(m Mutable) Mutable { m.TrainedPerfection = qualstate.TPArmed; return m },
	}

	return cat
}

// Get returns the catalogue entry for id, or nil for 0/16/out-of-range.
func Get(id int) *Action {
	if id < 0 || id >= len(Catalogue) {
		return nil
	}
	return Catalogue[id]
}

// Chain returns a's macro expansion (spec.md §6): its declared ComboChain,
// or just its own name for a single-step action.
func (a *Action) Chain() []string {
	if len(a.ComboChain) > 0 {
		return a.ComboChain
	}
	return []string{a.Name}
}

// All returns every non-reserved action in catalogue order, for iteration by
// the DP engine (spec.md §4.2 step 3).
func All() []*Action {
	out := make([]*Action, 0, len(Catalogue))
	for _, a := range Catalogue {
		if a != nil {
			out = append(out, a)
		}
	}
	return out
}
