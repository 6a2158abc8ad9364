// Package search implements the Rotation Search Driver (spec.md §4.4): the
// outer loop over opener/extra/finisher candidates that converts each to a
// quality state and asks the shared DP cache for the best achievable
// quality.
package search

import "craftsolve/internal/config"

// Scalings is the per-crafter (progress_unit, quality_unit) pair spec.md
// §4.4 derives from cms/ctrl/rlvl, the per-100-efficiency yields the DP's
// internal UNIT=400 values are rescaled by.
type Scalings struct {
	ProgUnit int
	QualUnit int
}

// gate580 resolves whether the rlvl>=580 scaling modifier applies, per
// SPEC_FULL.md §4's resolution of spec.md §9's open question: rlvlGate
// compares rlvl directly against 580; clvlGate instead compares rlvl's
// recipe-level-table-derived clvl, so two rlvls sharing a clvl plateau gate
// identically.
func gate580(rlvl uint16, scalingMode string) bool {
	if scalingMode == config.ScalingModeClvlGate {
		return config.Clvl(rlvl) >= 580
	}
	return rlvl >= 580
}

// ComputeScalings implements spec.md §4.4's derived-scalings formulas.
func ComputeScalings(cms, ctrl, rlvl uint16, scalingMode string) Scalings {
	gated := gate580(rlvl, scalingMode)

	progM := 100
	if gated {
		progM = 80
	}
	qualM := 100
	if gated {
		qualM = 70
	}

	progUnit := (int(cms)*10/130 + 2) * progM / 100
	qualUnit := (int(ctrl)*10/115 + 35) * qualM / 100

	return Scalings{ProgUnit: progUnit, QualUnit: qualUnit}
}
