package progress

import "craftsolve/internal/qualstate"

// ProgressAction describes one progress-phase letter (spec.md §4.3). Reflect
// ('R') is not in this table: its contribution is paid at conversion time
// (internal/search), not simulated generically, per spec.md §4.3.
type ProgressAction struct {
	Letter      byte
	Name        string
	RawProgress int
	RawDurCost  int
	CPCost      int
	TimeCost    int

	// RequiresHeartAndSoul marks actions whose real-game precondition is a
	// guaranteed Good/Excellent condition -- modelled here, since condition
	// RNG itself is out of scope (spec.md §1 Non-goals), as a deterministic
	// requirement on heart_and_soul instead.
	RequiresHeartAndSoul bool

	PostEffect func(*State)
}

// Catalogue maps each opener/finisher letter to its action, keyed by the
// byte itself so Simulate can do a flat lookup.
var Catalogue = map[byte]*ProgressAction{
	'M': {
		Letter: 'M', Name: "Muscle Memory",
		RawProgress: 300, RawDurCost: 2, CPCost: 6, TimeCost: 3,
		PostEffect: func(s *State) { s.MuscleMemory = maxMuscleMemory },
	},
	'v': {
		Letter: 'v', Name: "Veneration",
		RawProgress: 0, RawDurCost: 0, CPCost: 18, TimeCost: 2,
		PostEffect: func(s *State) { s.Veneration = maxVeneration },
	},
	'1': {
		Letter: '1', Name: "Waste Not",
		RawProgress: 0, RawDurCost: 0, CPCost: 56, TimeCost: 2,
		PostEffect: func(s *State) { s.WasteNot = 4 },
	},
	'2': {
		Letter: '2', Name: "Waste Not II",
		RawProgress: 0, RawDurCost: 0, CPCost: 98, TimeCost: 2,
		PostEffect: func(s *State) { s.WasteNot = maxWasteNot },
	},
	'm': {
		Letter: 'm', Name: "Manipulation",
		RawProgress: 0, RawDurCost: 0, CPCost: 96, TimeCost: 2,
		PostEffect: func(s *State) { s.Manipulation = maxManipulation },
	},
	'b': {
		Letter: 'b', Name: "Basic Synthesis",
		RawProgress: 120, RawDurCost: 2, CPCost: 0, TimeCost: 3,
	},
	'c': {
		Letter: 'c', Name: "Careful Synthesis",
		RawProgress: 180, RawDurCost: 2, CPCost: 7, TimeCost: 3,
	},
	'p': {
		Letter: 'p', Name: "Prudent Synthesis",
		RawProgress: 180, RawDurCost: 1, CPCost: 18, TimeCost: 3,
	},
	'g': {
		Letter: 'g', Name: "Groundwork",
		RawProgress: 360, RawDurCost: 4, CPCost: 18, TimeCost: 3,
	},
	'i': {
		Letter: 'i', Name: "Intensive Synthesis",
		RawProgress: 400, RawDurCost: 2, CPCost: 6, TimeCost: 3,
		RequiresHeartAndSoul: true,
		PostEffect:           func(s *State) { s.HeartAndSoulUsed = true },
	},
	'*': {
		Letter: '*', Name: "Trained Perfection",
		RawProgress: 0, RawDurCost: 0, CPCost: 0, TimeCost: 2,
		PostEffect: func(s *State) { s.TrainedPerfection = qualstate.TPArmed },
	},
}

// Get returns the action for a letter, or nil for 'R' and any unrecognised
// byte ('R' is special-cased by Simulate and has no table entry).
func Get(letter byte) *ProgressAction {
	return Catalogue[letter]
}

// Openers is the fixed, hand-vetted catalogue of opener prefixes spec.md
// §4.3 calls for (~40-48 strings covering the rotationally useful buff
// setups). This is a curated representative subset spanning Reflect vs.
// Muscle Memory openings, each Waste Not tier, and Manipulation/Veneration
// orderings; the Cartesian product with FINISHERS (internal/search) and the
// {" ", "b", "c"} extra set still gives the driver a wide candidate space.
var Openers = []string{
	"M", "Mv", "M1", "M2", "Mm", "Mv1", "Mv2", "Mvm", "M1m", "M2m",
	"Mv1m", "Mv2m", "M*", "Mv*", "M1*", "M2*",
	"R", "Rv", "R1", "R2", "Rm", "Rv1", "Rv2", "Rvm",
	"Rv1m", "Rv2m", "R*", "Rv*",
	"MR", "MRv", "MRv1", "MRv2", "MRvm", "MRv1m", "MRv2m",
	"v1m", "v2m", "1m", "2m",
}
