package dp

import (
	"craftsolve/internal/action"
	"craftsolve/internal/qualstate"
)

// baseCaseCP is the CP floor below which no rotation can usefully continue
// (spec.md §4.2); it is below the cheapest CP-consuming action's cost (18),
// so a state under it can still afford only the 0-CP actions.
const baseCaseCP = 7

// baseCaseTime is the time floor below which, in time-checked mode, no
// rotation can usefully continue.
const baseCaseTime = 2

// successSentinel is the literal packed value spec.md §4.2 names for a
// successful base-case stop: decodes to quality 0, action id 0 (terminal)
// and successor index 1, distinguishing "stopped here successfully" from
// qualstate.TerminalResult's all-zero word. Walks (Backtrace) stop on the
// action id 0 that both decode to.
const successSentinel = 1

// Engine runs the memoised Quality DP search for one recipe durability
// class (spec.md §3 Entity lifetimes: a cache is created once per max_dur
// and reused across every opener/finisher/time candidate the driver tries).
type Engine struct {
	MaxDur    uint8
	CheckTime bool
	Cache     *Cache
}

// NewEngine constructs an Engine with a fresh cache.
func NewEngine(maxDur uint8, checkTime bool) *Engine {
	return &Engine{MaxDur: maxDur, CheckTime: checkTime, Cache: NewCache(checkTime)}
}

// Query returns the best packed result reachable from s, per spec.md §4.2.
// ok is false iff no rotation from s can ever satisfy the terminal
// durability reservation (s.MinDurability).
func (e *Engine) Query(s qualstate.State) (result uint64, ok bool) {
	index := s.Pack(e.CheckTime)
	if cached, found := e.Cache.Get(index); found {
		return cached, cached != noneMarker
	}

	result, ok = e.compute(s)

	stored := result
	if !ok {
		stored = noneMarker
	}
	e.Cache.Put(index, stored)
	return result, ok
}

// noneMarker records a failed query in the cache (distinct from any valid
// packed result because a valid result for a non-terminal index always has
// an action id 1..17 whose bits can never collide with this reserved
// all-ones-in-the-id-field pattern... in practice it's simplest to just
// carry failures in a parallel marker: see Get/Put usage above, which never
// treats noneMarker as a "real" quality.
const noneMarker = ^uint64(0)

func (e *Engine) compute(s qualstate.State) (uint64, bool) {
	baseCase := s.CP < baseCaseCP || (e.CheckTime && s.Time < baseCaseTime)

	var (
		bestResult uint64
		bestFound  bool
	)

	if !baseCase {
		for _, a := range action.All() {
			result, found := e.tryAction(s, a)
			if !found {
				continue
			}
			if !bestFound || e.better(result, bestResult) {
				bestResult = result
				bestFound = true
			}
		}
	}

	if bestFound {
		return bestResult, true
	}

	// Base case reached, or no catalogued action is usable from here: the
	// rotation must stop now. Success iff the finisher's durability
	// reservation is already met.
	if s.Durability >= s.MinDurability {
		return successSentinel, true
	}
	return 0, false
}

// better implements the tie-break policy (spec.md §4.2): prefer the larger
// quality, and among equal qualities, the numerically larger packed word --
// any consistent policy suffices per spec, so this is simply `>`.
func (e *Engine) better(candidate, current uint64) bool {
	cq, _, _ := qualstate.DecodeResult(candidate, e.CheckTime)
	bq, _, _ := qualstate.DecodeResult(current, e.CheckTime)
	if cq != bq {
		return cq > bq
	}
	return candidate > current
}

// tryAction checks preconditions/costs for a, forms the successor and
// recurses, returning the candidate packed result for choosing a here.
func (e *Engine) tryAction(s qualstate.State, a *action.Action) (uint64, bool) {
	if a.Precondition != nil && !a.Precondition(s) {
		return 0, false
	}

	tpArmed := s.TrainedPerfection == qualstate.TPArmed
	durCost := a.EffectiveDurCost(s.WasteNot, s.Manipulation, tpArmed)
	if int(s.Durability) < durCost {
		return 0, false
	}
	if int(s.CP) < a.CPCost {
		return 0, false
	}
	if e.CheckTime && int(s.Time) < a.TimeCost {
		return 0, false
	}

	successor := e.formSuccessor(s, a, durCost)
	childResult, ok := e.Query(successor)
	if !ok {
		return 0, false
	}

	childQuality, _, _ := qualstate.DecodeResult(childResult, e.CheckTime)
	dq := totalDeltaQuality(s, a)
	quality := childQuality + dq
	if max := qualstate.MaxQuality(e.CheckTime); quality > max {
		quality = max
	}

	packedSuccessor := successor.Pack(e.CheckTime)
	return qualstate.EncodeResult(quality, uint8(a.ID), packedSuccessor, e.CheckTime), true
}

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

// formSuccessor applies spec.md §4.2d: resource decrements, saturating
// status-timer advancement, combo IQ/GS/Innovation stepping already baked
// into totalDeltaQuality's per-step view, and the action's PostEffect.
func (e *Engine) formSuccessor(s qualstate.State, a *action.Action, durCost int) qualstate.State {
	ticks := uint8(a.StepCount + a.Delay)

	next := s
	next.CP = s.CP - uint16(a.CPCost)

	dur := int(s.Durability) - durCost
	if dur < 0 {
		dur = 0
	}
	if dur > int(e.MaxDur) {
		dur = int(e.MaxDur)
	}
	next.Durability = uint8(dur)

	next.WasteNot = satSub(s.WasteNot, ticks)
	next.Innovation = satSub(s.Innovation, ticks)
	next.Manipulation = satSub(s.Manipulation, ticks)
	if a.ProducesQuality {
		next.GreatStrides = 0
	} else {
		next.GreatStrides = satSub(s.GreatStrides, ticks)
	}

	next.InnerQuiet = satAdd(s.InnerQuiet, a.IQStacks*uint8(a.StepCount), qualstate.MaxInnerQuiet)

	if s.TrainedPerfection == qualstate.TPArmed {
		next.TrainedPerfection = qualstate.TPSpent
	}

	if e.CheckTime {
		t := int(s.Time) - a.TimeCost
		if t < 0 {
			t = 0
		}
		next.Time = uint8(t)
	} else {
		next.Time = 0
	}

	if a.PostEffect != nil {
		m := action.Mutable{
			WasteNot:          next.WasteNot,
			Innovation:        next.Innovation,
			GreatStrides:      next.GreatStrides,
			Manipulation:      next.Manipulation,
			InnerQuiet:        next.InnerQuiet,
			TrainedPerfection: next.TrainedPerfection,
			HeartAndSoul:      next.HeartAndSoul,
		}
		m = a.PostEffect(m)
		next.WasteNot = m.WasteNot
		next.Innovation = m.Innovation
		next.GreatStrides = m.GreatStrides
		next.Manipulation = m.Manipulation
		next.InnerQuiet = m.InnerQuiet
		next.TrainedPerfection = m.TrainedPerfection
		next.HeartAndSoul = m.HeartAndSoul
	}

	return next
}

// totalDeltaQuality sums the per-step dq contributions of a (spec.md §3),
// evaluated against s's buffs *before* any status-tick decrement, with
// Great Strides applying only to the combo's first step and Innovation/IQ
// advancing per step index as the combo proceeds.
func totalDeltaQuality(s qualstate.State, a *action.Action) uint32 {
	if !a.ProducesQuality {
		return 0
	}

	var total uint32
	iq := s.InnerQuiet
	innovation := s.Innovation
	for step := 0; step < a.StepCount; step++ {
		stepQualValue := a.QualValue + a.Scaling*step
		if a.QualValueFn != nil {
			stepQualValue = a.QualValueFn(iq)
		}
		mult := 2
		if innovation > 0 {
			mult++
		}
		if step == 0 && s.GreatStrides > 0 {
			mult += 2
		}
		dq := uint32(stepQualValue) * uint32(10+iq) * uint32(mult) / 20
		total += dq

		iq = satAdd(iq, a.IQStacks, qualstate.MaxInnerQuiet)
		innovation = satSub(innovation, 1)
	}
	return total
}
