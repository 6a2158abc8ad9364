package gearset

import (
	"math"

	"craftsolve/internal/config"
	"craftsolve/internal/dp"
	"craftsolve/internal/progress"
	"craftsolve/internal/qualstate"
	"craftsolve/internal/search"
)

// Bounds is the crafter-stat search space (spec.md §4.6).
type Bounds struct {
	CmsLo, CmsHi   uint16
	CtrlLo, CtrlHi uint16
	CPLo, CPHi     uint16
}

// Target is the recipe shape gearset mode solves against, independent of
// any particular crafter's cms/ctrl/cp (those are exactly what's being
// solved for).
type Target struct {
	Rlvl            uint16
	Dur             uint8
	RequiredProg    uint32
	RequiredQual    uint32
	GrantsHeartSoul bool
	ScalingMode     string
}

// ceilDiv computes ceil(a/b) for positive floats.
func ceilDiv(a, b float64) float64 {
	return math.Ceil(a / b)
}

// minCraftsmanship implements spec.md §4.6's min_cms formula.
func minCraftsmanship(requiredProgress uint32, p float64) int {
	if p <= 0 {
		return math.MaxInt32
	}
	v := 13 * (ceilDiv(float64(requiredProgress), p)*1.25 - 2)
	return int(math.Ceil(v))
}

// minControl implements spec.md §4.6's min_ctrl formula.
func minControl(requiredQuality uint32, q float64) int {
	if q <= 0 {
		return math.MaxInt32
	}
	v := 11.5 * (ceilDiv(float64(requiredQuality), q)*10.0/7.0 - 35)
	return int(math.Ceil(v))
}

// Solve sweeps cp_target across bounds.CPLo..CPHi and, for every
// (opener, extra, finisher) combination, computes the minimal stats needed
// and folds the result into a Pareto-minimal set (spec.md §4.6). Heart and
// Soul is available exactly when target.GrantsHeartSoul is set; the sweep
// does not also try the other has_flag value. report, if non-nil, is called once per cp_target swept with the
// frontier accumulated so far (internal/watch's optional dashboard hook).
func Solve(recipe *config.Recipe, target Target, bounds Bounds, report func(cpTarget, cpHi uint16, frontier []Solution)) []Solution {
	pareto := NewParetoSet()

	maxScal := search.ComputeScalings(bounds.CmsHi, bounds.CtrlHi, target.Rlvl, target.ScalingMode)
	minProgScal := search.ComputeScalings(bounds.CmsLo, bounds.CtrlLo, target.Rlvl, target.ScalingMode)

	maxDurUnits := recipe.MaxDurUnits()
	engine := dp.NewEngine(maxDurUnits, false)

	for cpTarget := bounds.CPLo; cpTarget <= bounds.CPHi; cpTarget++ {
		for _, opener := range progress.Openers {
			for _, extra := range []string{" ", "b", "c"} {
				letters := opener + extra
				start := progress.State{
					CP:           cpTarget,
					Durability:   maxDurUnits,
					HeartAndSoul: target.GrantsHeartSoul,
				}
				pst := progress.Simulate(start, maxDurUnits, letters)

				for _, fin := range progress.Finishers {
					p := float64(int(pst.Progress)+fin.Progress) / 10
					if p <= 0 {
						continue
					}

					recipeForConvert := &config.Recipe{
						CP: cpTarget, Dur: recipe.Dur,
						Prog: target.RequiredProg, Qual: target.RequiredQual,
						HeartAndSoul: target.GrantsHeartSoul,
					}
					qs, ok := search.Convert(pst, fin, recipeForConvert, maxScal, false, 0)
					if !ok {
						continue
					}

					result, ok := engine.Query(qs)
					if !ok {
						continue
					}
					quality, _, _ := qualstate.DecodeResult(result, false)
					quality += search.ReflectBonus(pst)

					q := float64(quality) / float64(qualstate.UNIT)
					if q <= 0 {
						continue
					}

					minCms := minCraftsmanship(target.RequiredProg, p)
					minCtrl := minControl(target.RequiredQual, q)
					if minCms < 0 {
						minCms = 0
					}
					if minCtrl < 0 {
						minCtrl = 0
					}
					if minCms > int(bounds.CmsHi) || minCtrl > int(bounds.CtrlHi) {
						continue
					}

					achieved := search.ComputeScalings(uint16(minCms), uint16(minCtrl), target.Rlvl, target.ScalingMode)
					if achieved.ProgUnit < minProgScal.ProgUnit || achieved.QualUnit < minProgScal.QualUnit {
						continue
					}

					end := engine.CheckEndstate(qs)
					pareto.Insert(Solution{
						Cms:     minCms,
						Ctrl:    minCtrl,
						CP:      int(cpTarget),
						UsesHas: end.HeartAndSoul,
					})
				}
			}
		}

		if report != nil {
			report(cpTarget, bounds.CPHi, pareto.Members())
		}
	}

	return pareto.Members()
}
