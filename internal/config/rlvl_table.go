package config

// RecipeLevelTable maps a recipe's rlvl to its clvl (spec.md §9's "open
// question: scaling constants"; resolved in SPEC_FULL.md §4). Crafter level
// and recipe level track together below the level-sync plateaus introduced
// by later FFXIV expansions, where several rlvls compress onto one clvl;
// this is a representative subset of those known divergence points, not an
// exhaustive game data table.
var RecipeLevelTable = map[uint16]uint16{
	560: 560, 570: 570, 580: 580, 590: 590,
	610: 600, 615: 600, 620: 610, 625: 610,
	640: 630, 641: 630, 642: 630,
	665: 650, 670: 650,
}

// Clvl returns rlvl's crafter-level equivalent, falling back to rlvl itself
// when it isn't a known divergence point.
func Clvl(rlvl uint16) uint16 {
	if clvl, ok := RecipeLevelTable[rlvl]; ok {
		return clvl
	}
	return rlvl
}
