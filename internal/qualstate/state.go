// Package qualstate defines the packed quality-phase state used as the
// Quality DP Engine's cache key, and the result word the engine stores for
// each state (quality | action id | successor index, all in one uint64).
package qualstate

// TrainedPerfection tracks the one-shot "free durability" buff. It is
// monotone: None -> Armed -> Spent, never back (spec.md §3 invariants).
type TrainedPerfection uint8

const (
	TPNone TrainedPerfection = iota
	TPArmed
	TPSpent
)

// UNIT is the internal efficiency-unit constant; 400 is 100% efficiency.
const UNIT = 400

// Domain maxima, per spec.md §3.
const (
	MaxGreatStrides = 3
	MaxInnovation   = 4
	MaxWasteNot     = 8
	MaxManipulation = 8
	MaxInnerQuiet   = 10
	MaxTime         = 89
)

// State is the unpacked quality-phase state: the DP's decision point.
// MinDurability is packed in (rather than carried as an engine-level
// constant) because distinct finishers within the same search reserve
// distinct minimum durabilities; two states identical except for
// MinDurability are not interchangeable cache entries (spec.md §3).
type State struct {
	HeartAndSoul      bool
	TrainedPerfection TrainedPerfection
	MinDurability     uint8 // 0..3
	GreatStrides      uint8
	Innovation        uint8
	WasteNot          uint8
	Manipulation      uint8
	Durability        uint8
	CP                uint16
	InnerQuiet        uint8
	Time              uint8 // only meaningful when the engine checks time
}

// Field widths for the per-state index, LSB first. Kept as named consts so
// the offsets below are self-documenting and so a future field never
// silently shifts the persisted encoding (spec.md §9).
const (
	wHeartAndSoul      = 1
	wTrainedPerfection = 2
	wMinDurability     = 2
	wGreatStrides      = 2
	wInnovation        = 3
	wWasteNot          = 4
	wManipulation      = 4
	wDurability        = 5
	wCP                = 10
	wInnerQuiet        = 4
	wTime              = 8

	oHeartAndSoul      = 0
	oTrainedPerfection = oHeartAndSoul + wHeartAndSoul
	oMinDurability     = oTrainedPerfection + wTrainedPerfection
	oGreatStrides      = oMinDurability + wMinDurability
	oInnovation        = oGreatStrides + wGreatStrides
	oWasteNot          = oInnovation + wInnovation
	oManipulation      = oWasteNot + wWasteNot
	oDurability        = oManipulation + wManipulation
	oCP                = oDurability + wDurability
	oInnerQuiet        = oCP + wCP
	// untimedIndexBits is the number of bits the untimed fields occupy.
	untimedIndexBits = oInnerQuiet + wInnerQuiet // 37
	// untimedIndexWidth is the width of the per-state index when the engine
	// does not check time: spec.md §3's documented "low 40 bits" layout,
	// with 3 spare/reserved bits (37..39).
	untimedIndexWidth = 40
	oTime             = untimedIndexBits
	// timedIndexBits widens the index past 40 to fit the time field; per
	// spec.md §9's own "open question" on time accounting, the untimed mode
	// is authoritative and this spec-literal 40/8/16 split is only exact for
	// it. The timed variant necessarily narrows the quality field (to 11
	// bits, 0..2047) to stay inside one uint64 -- see DESIGN.md.
	timedIndexBits = oTime + wTime // 45

	actionIDBits = 8
)

func mask(width uint) uint64 { return (uint64(1) << width) - 1 }

func sat(v, max uint8) uint8 {
	if v > max {
		return max
	}
	return v
}

// indexBits returns the width of the per-state index for a given time mode.
func indexBits(checkTime bool) uint {
	if checkTime {
		return timedIndexBits
	}
	return untimedIndexWidth
}

// Pack encodes the state into its cache-key index (40 or 45 bits, per
// checkTime). The status fields (great strides, innovation, waste not,
// manipulation, inner quiet, time) are saturated at their declared maxima
// before packing, matching the invariant that underflow/overflow is
// impossible, only saturating decrements (spec.md §3). Durability and CP are
// packed as given and must fit their 5- and 10-bit fields.
func (s State) Pack(checkTime bool) uint64 {
	tp := uint64(s.TrainedPerfection) & mask(wTrainedPerfection)
	var has uint64
	if s.HeartAndSoul {
		has = 1
	}
	idx := has<<oHeartAndSoul |
		tp<<oTrainedPerfection |
		(uint64(s.MinDurability)&mask(wMinDurability))<<oMinDurability |
		uint64(sat(s.GreatStrides, MaxGreatStrides))<<oGreatStrides |
		uint64(sat(s.Innovation, MaxInnovation))<<oInnovation |
		uint64(sat(s.WasteNot, MaxWasteNot))<<oWasteNot |
		uint64(sat(s.Manipulation, MaxManipulation))<<oManipulation |
		uint64(s.Durability)<<oDurability |
		uint64(s.CP)<<oCP |
		uint64(sat(s.InnerQuiet, MaxInnerQuiet))<<oInnerQuiet
	if checkTime {
		idx |= uint64(sat(s.Time, MaxTime)) << oTime
	}
	return idx & mask(indexBits(checkTime))
}

// Unpack decodes a cache-key index back into a State. Round-trips exactly
// with Pack for every field in its declared domain (spec.md §8).
func Unpack(idx uint64, checkTime bool) State {
	s := State{
		HeartAndSoul:      (idx>>oHeartAndSoul)&mask(wHeartAndSoul) == 1,
		TrainedPerfection: TrainedPerfection((idx >> oTrainedPerfection) & mask(wTrainedPerfection)),
		MinDurability:     uint8((idx >> oMinDurability) & mask(wMinDurability)),
		GreatStrides:      uint8((idx >> oGreatStrides) & mask(wGreatStrides)),
		Innovation:        uint8((idx >> oInnovation) & mask(wInnovation)),
		WasteNot:          uint8((idx >> oWasteNot) & mask(wWasteNot)),
		Manipulation:      uint8((idx >> oManipulation) & mask(wManipulation)),
		Durability:        uint8((idx >> oDurability) & mask(wDurability)),
		CP:                uint16((idx >> oCP) & mask(wCP)),
		InnerQuiet:        uint8((idx >> oInnerQuiet) & mask(wInnerQuiet)),
	}
	if checkTime {
		s.Time = uint8((idx >> oTime) & mask(wTime))
	}
	return s
}

// EncodeResult packs (quality, actionID, successor index) into a single
// uint64, per spec.md §3's "result-in-key trick": the value stores both the
// optimum and a backtrace pointer. actionID 0 is the terminal sentinel.
// The quality field occupies whatever bits remain after the index and the
// action id (16 bits when untimed, 11 when timed -- see DESIGN.md).
func EncodeResult(quality uint32, actionID uint8, successor uint64, checkTime bool) uint64 {
	ib := indexBits(checkTime)
	idx := successor & mask(ib)
	aid := uint64(actionID) << ib
	q := uint64(quality) << (ib + actionIDBits)
	return q | aid | idx
}

// DecodeResult is the inverse of EncodeResult.
func DecodeResult(r uint64, checkTime bool) (quality uint32, actionID uint8, successor uint64) {
	ib := indexBits(checkTime)
	successor = r & mask(ib)
	actionID = uint8((r >> ib) & mask(actionIDBits))
	quality = uint32(r >> (ib + actionIDBits))
	return
}

// TerminalResult is the all-zero result word: action id 0, zero successor,
// zero quality. The DP's base case does not return it; it stores
// internal/dp's success sentinel (1), which also decodes to action id 0 and
// zero quality.
func TerminalResult() uint64 { return 0 }

// MaxQuality returns the largest quality value representable in the result
// word for the given time mode. Callers that might overflow this (an
// exceptionally long, heavily-buffed rotation) should saturate rather than
// wrap; the engine does so when combining dq with a recursive result.
func MaxQuality(checkTime bool) uint32 {
	ib := indexBits(checkTime)
	bits := 64 - ib - actionIDBits
	return uint32(mask(uint(bits)))
}
