package action

// EffectiveDurCost computes the durability an action actually consumes when
// considered from a state with the given waste_not/manipulation ticks and
// Trained Perfection status (spec.md §4.1).
func (a *Action) EffectiveDurCost(wasteNot, manipulation uint8, tpArmed bool) int {
	delay := a.Delay
	steps := a.StepCount
	if tpArmed && a.RawDurCost > 0 {
		// Trained Perfection zeroes the cost of the action's first
		// damaging step (the touch in a delay=1 combo like Focused Touch,
		// or the only step otherwise); folding that into steps accounts for
		// "dur_cost = 0 for that step only" without a separate branch. Pure
		// buff actions (RawDurCost=0) have no damaging step to zero, so
		// Trained Perfection being armed doesn't change their cost (it is
		// still consumed by the generic "any next action spends it" rule
		// in the engine, per real-game semantics).
		steps--
	}

	wnPrime := int(wasteNot)
	if delay > wnPrime {
		wnPrime = delay
	}
	wnPrime -= delay

	minWN := wnPrime
	if steps < minWN {
		minWN = steps
	}

	manCap := steps + delay - 1
	manApplied := int(manipulation)
	if manCap < manApplied {
		manApplied = manCap
	}
	if manApplied < 0 {
		manApplied = 0
	}

	cost := a.RawDurCost*steps - manApplied - (minWN*a.RawDurCost)/2
	if cost < 0 {
		cost = 0
	}
	return cost
}
