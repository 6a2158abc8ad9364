package dp

import "craftsolve/internal/qualstate"

// Step is one link of a winning chain: the action chosen at a state, and
// the state it was chosen from (useful for re-deriving per-step quality
// deltas when printing a macro).
type Step struct {
	ActionID int
	From     qualstate.State
}

// Backtrace walks the cache from start following each state's winning
// action until it hits the terminal sentinel (action id 0), per spec.md
// §4.2's print_macro. Requires start (and its descendants) to already be
// cached, i.e. Query(start) must have been called first.
func (e *Engine) Backtrace(start qualstate.State) (steps []Step, endState qualstate.State) {
	cur := start
	for {
		idx := cur.Pack(e.CheckTime)
		result, ok := e.Cache.Get(idx)
		if !ok || result == noneMarker {
			panic("dp: backtrace reached an unqueried or failed state")
		}

		_, actionID, successorIdx := qualstate.DecodeResult(result, e.CheckTime)
		if actionID == 0 {
			return steps, cur
		}

		steps = append(steps, Step{ActionID: int(actionID), From: cur})
		cur = qualstate.Unpack(successorIdx, e.CheckTime)
	}
}

// CheckEndstate returns only the terminal state of the winning chain from
// start (spec.md §4.2), used by the driver to test whether the winning
// rotation actually consumed a one-shot buff like Heart and Soul.
func (e *Engine) CheckEndstate(start qualstate.State) qualstate.State {
	_, end := e.Backtrace(start)
	return end
}
