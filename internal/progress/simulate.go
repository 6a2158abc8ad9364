package progress

import "craftsolve/internal/qualstate"

// ceilHalf computes ceil(v/2), used for Waste Not's durability halving.
func ceilHalf(v int) int {
	return (v + 1) / 2
}

// effectiveDurCost applies Waste Not halving / Trained Perfection zeroing to
// an action's raw durability cost (spec.md §4.3).
func effectiveDurCost(raw int, wasteNot uint8, tpArmed bool) int {
	if tpArmed {
		return 0
	}
	if wasteNot > 0 {
		return ceilHalf(raw)
	}
	return raw
}

// applyReflect is Reflect's special-cased application (spec.md §4.3): it is
// not routed through the generic Catalogue applicator because its quality
// contribution is paid at conversion time, not here. It is only meaningful
// as the opener's first action.
func applyReflect(s State, maxDur uint8) State {
	const cpCost = 18
	const durCost = 2
	if s.Progress != 0 || s.CP < cpCost || s.Durability < durCost {
		return s
	}
	s.CP -= cpCost
	s.Durability -= durCost
	s.InnerQuiet = satAdd(s.InnerQuiet, 2, maxInnerQuiet)
	s.Reflect = true
	s = tick(s, nil, maxDur)
	return s
}

// tick advances every timed status by one step (spec.md §4.3), applying
// Manipulation's durability regen before the action's own post-effect (if
// any) overwrites a status it just set.
func tick(s State, self *ProgressAction, maxDur uint8) State {
	manipulationWasActive := s.Manipulation > 0

	s.Manipulation = satSub(s.Manipulation, 1)
	s.WasteNot = satSub(s.WasteNot, 1)
	s.Veneration = satSub(s.Veneration, 1)
	s.MuscleMemory = satSub(s.MuscleMemory, 1)

	isManipulation := self != nil && self.Letter == 'm'
	if manipulationWasActive && !isManipulation {
		s.Durability = satAdd(s.Durability, 1, maxDur)
	}

	if self != nil && self.PostEffect != nil {
		self.PostEffect(&s)
	}

	return s
}

// applyAction applies one catalogue action (letters other than 'R') to s,
// per spec.md §4.3's per-action application rules; infeasible actions leave
// s unchanged (silently skipped). maxDur caps Manipulation's durability
// regen at the recipe's initial durability.
func applyAction(s State, a *ProgressAction, maxDur uint8) State {
	if a.RequiresHeartAndSoul && (!s.HeartAndSoul || s.HeartAndSoulUsed) {
		return s
	}

	tpArmed := s.TrainedPerfection == qualstate.TPArmed
	durCost := effectiveDurCost(a.RawDurCost, s.WasteNot, tpArmed)
	if s.CP < uint16(a.CPCost) || s.Durability < uint8(durCost) {
		return s
	}

	s.CP -= uint16(a.CPCost)
	s.Durability -= uint8(durCost)
	if tpArmed {
		s.TrainedPerfection = qualstate.TPSpent
	}

	p := a.RawProgress
	if s.Veneration > 0 {
		p += a.RawProgress / 2
	}
	if s.MuscleMemory > 0 {
		p += a.RawProgress
		s.MuscleMemory = 0
	}
	s.Progress += uint32(p)

	return tick(s, a, maxDur)
}

// Simulate forward-interprets an opener or finisher letter string starting
// from start, returning the resulting progress state (spec.md §4.3).
// Unrecognised letters (including whitespace used as the driver's "extra"
// placeholder) are skipped without effect. maxDur is the durability cap
// Manipulation's regen saturates at; Finishers are built against a
// generously high cap since their cost is read off independent of any
// particular recipe (see Finisher).
func Simulate(start State, maxDur uint8, letters string) State {
	s := start
	for i := 0; i < len(letters); i++ {
		letter := letters[i]
		if letter == 'R' {
			s = applyReflect(s, maxDur)
			continue
		}
		if a := Get(letter); a != nil {
			s = applyAction(s, a, maxDur)
		}
	}
	return s
}
