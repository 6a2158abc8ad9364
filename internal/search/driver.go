package search

import (
	"craftsolve/internal/config"
	"craftsolve/internal/dp"
	"craftsolve/internal/progress"
	"craftsolve/internal/qualstate"
)

// Candidate identifies one winning (opener, extra, finisher) triple and the
// quality chain the DP found from its converted state.
type Candidate struct {
	Opener   string
	Extra    string
	Finisher string

	QualState   qualstate.State
	DeliveredQuality uint32 // in recipe units, after qual_unit rescaling
	Steps       []dp.Step
	EndState    qualstate.State
}

// extras is spec.md §4.3's opener Cartesian-product set.
var extras = []string{" ", "b", "c"}

// Driver runs the Rotation Search Driver (spec.md §4.4) against a shared DP
// engine, reusing its cache across every candidate it tries.
type Driver struct {
	Recipe      *config.Recipe
	ScalingMode string
	Engine      *dp.Engine
	Scalings    Scalings

	// Progress, if set, is called once per opener after its extra/finisher
	// combinations have all been tried (internal/watch's optional dashboard
	// hook; spec.md §9 design note). openersTried counts openers completed
	// so far out of len(progress.Openers); bestQuality is the best delivered
	// quality found so far, or 0 if none.
	Progress func(openersTried int, bestQuality uint32)
}

// NewDriver builds a Driver with a fresh DP engine sized to the recipe's
// durability class.
func NewDriver(recipe *config.Recipe, scalingMode string, checkTime bool) *Driver {
	scal := ComputeScalings(recipe.Cms, recipe.Ctrl, recipe.Rlvl, scalingMode)
	return &Driver{
		Recipe:      recipe,
		ScalingMode: scalingMode,
		Engine:      dp.NewEngine(recipe.MaxDurUnits(), checkTime),
		Scalings:    scal,
	}
}

// goodFinishers returns the finishers from progress.Finishers that, added to
// opener's progress, complete the craft, after dropping any finisher beaten
// by another good finisher (spec.md §4.4 steps 2-3).
func goodFinishers(openerProgress uint32, progUnit int, requiredProg uint32) []progress.Finisher {
	var good []progress.Finisher
	for _, f := range progress.Finishers {
		total := (int(openerProgress) + f.Progress) * progUnit
		if total >= int(requiredProg)*10 {
			good = append(good, f)
		}
	}

	var surviving []progress.Finisher
	for _, f := range good {
		dominated := false
		for _, other := range good {
			if progress.Beats(other, f) {
				dominated = true
				break
			}
		}
		if !dominated {
			surviving = append(surviving, f)
		}
	}
	return surviving
}

// Search runs the full opener x extra x finisher enumeration at a fixed time
// budget (spec.md §4.4 step 1-5); timeBudget is ignored when the driver's
// engine is untimed.
func (d *Driver) Search(timeBudget uint8) *Candidate {
	var best *Candidate

	for openerIdx, opener := range progress.Openers {
		for _, extra := range extras {
			letters := opener + extra
			start := progress.State{
				CP:           d.Recipe.CP,
				Durability:   d.Recipe.MaxDurUnits(),
				HeartAndSoul: d.Recipe.HeartAndSoul,
			}
			pst := progress.Simulate(start, d.Recipe.MaxDurUnits(), letters)

			if int(pst.Progress)*d.Scalings.ProgUnit >= int(d.Recipe.Prog)*10 {
				// Opener alone already finishes the craft; spec.md §4.4 step 1
				// discards these since there's no quality phase to optimise.
				continue
			}

			for _, fin := range goodFinishers(pst.Progress, d.Scalings.ProgUnit, d.Recipe.Prog) {
				qs, ok := Convert(pst, fin, d.Recipe, d.Scalings, d.Engine.CheckTime, timeBudget)
				if !ok {
					continue
				}

				result, ok := d.Engine.Query(qs)
				if !ok {
					continue
				}

				quality, _, _ := qualstate.DecodeResult(result, d.Engine.CheckTime)
				quality += ReflectBonus(pst)
				if max := qualstate.MaxQuality(d.Engine.CheckTime); quality > max {
					quality = max
				}
				delivered := quality * uint32(d.Scalings.QualUnit) / qualstate.UNIT

				if best != nil && delivered <= best.DeliveredQuality {
					continue
				}

				steps, end := d.Engine.Backtrace(qs)
				best = &Candidate{
					Opener:           opener,
					Extra:            extra,
					Finisher:         fin.Letters,
					QualState:        qs,
					DeliveredQuality: delivered,
					Steps:            steps,
					EndState:         end,
				}
			}
		}

		if d.Progress != nil {
			delivered := uint32(0)
			if best != nil {
				delivered = best.DeliveredQuality
			}
			d.Progress(openerIdx+1, delivered)
		}
	}

	return best
}

// SearchTimeBound implements spec.md §4.4's time-bounded variant: binary
// search over t in [lo, hi] for the smallest time budget that still meets
// required quality, reusing the same DP cache across iterations (sound
// because it is keyed on time).
func (d *Driver) SearchTimeBound(lo, hi uint8) *Candidate {
	var best *Candidate
	for lo <= hi {
		mid := lo + (hi-lo)/2
		cand := d.Search(mid)
		if cand != nil && cand.DeliveredQuality >= d.Recipe.TargetQuality() {
			best = cand
			if mid == 0 {
				break
			}
			hi = mid - 1
		} else {
			if cand != nil && (best == nil || cand.DeliveredQuality > best.DeliveredQuality) {
				best = cand
			}
			lo = mid + 1
		}
	}
	return best
}
