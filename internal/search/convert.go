package search

import (
	"craftsolve/internal/config"
	"craftsolve/internal/progress"
	"craftsolve/internal/qualstate"
)

// Convert implements spec.md §4.5: given the progress-phase residual state
// left by an opener, a candidate finisher, and the recipe, it either
// produces the quality.State the DP should be queried with, or reports that
// the combination can't complete the craft or double-spends a one-shot
// buff.
func Convert(pst progress.State, fin progress.Finisher, recipe *config.Recipe, scal Scalings, checkTime bool, timeBudget uint8) (qualstate.State, bool) {
	totalProgress := (int(pst.Progress) + fin.Progress) * scal.ProgUnit
	if totalProgress < int(recipe.Prog)*10 {
		return qualstate.State{}, false
	}

	totalCP := int(pst.CP) + fin.CP
	if totalCP > int(recipe.CP) || fin.CP > int(pst.CP) {
		return qualstate.State{}, false
	}

	// fin.Durability is how much durability the finisher itself costs to
	// run; it must fit within what the opener left remaining, and the
	// opener's own remaining durability must still fit the recipe's budget.
	if pst.Durability > recipe.MaxDurUnits() || fin.Durability > int(pst.Durability) {
		return qualstate.State{}, false
	}

	finHas := fin.HeartAndSoul
	if !recipe.HeartAndSoul && (pst.HeartAndSoulUsed || finHas) {
		return qualstate.State{}, false
	}
	if pst.HeartAndSoulUsed && finHas {
		return qualstate.State{}, false
	}
	if pst.TrainedPerfection == qualstate.TPSpent && fin.UsesTrainedPerfection {
		return qualstate.State{}, false
	}

	tp := pst.TrainedPerfection
	if fin.UsesTrainedPerfection {
		tp = qualstate.TPSpent
	}

	minDur := uint8(0)
	if fin.Durability > 0 {
		minDur = uint8(fin.Durability - 1)
	}

	qs := qualstate.State{
		HeartAndSoul:      recipe.HeartAndSoul && !pst.HeartAndSoulUsed && !finHas,
		TrainedPerfection: tp,
		MinDurability:     minDur,
		InnerQuiet:        pst.InnerQuiet,
		Durability:        pst.Durability,
		Manipulation:      pst.Manipulation,
		WasteNot:          pst.WasteNot,
		CP:                uint16(int(pst.CP) - fin.CP),
		GreatStrides:      0,
		Innovation:        0,
	}
	if checkTime {
		qs.Time = timeBudget
	}

	return qs, true
}

// ReflectBonus is spec.md §4.4's incremental quality bonus for an opener
// that began with Reflect, in internal UNIT=400 terms. Grounded on
// `_examples/original_source/src/main.rs:139` (`bonus_qual = if reflect
// {qual::UNIT} else {0}`): a flat one-UNIT bonus, not scaled by step count.
func ReflectBonus(pst progress.State) uint32 {
	if pst.Reflect {
		return qualstate.UNIT
	}
	return 0
}
