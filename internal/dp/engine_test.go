package dp

import (
	"bytes"
	"testing"

	"craftsolve/internal/action"
	"craftsolve/internal/qualstate"

	. "github.com/smartystreets/goconvey/convey"
)

func baseState(cp uint16, dur uint8) qualstate.State {
	return qualstate.State{
		Durability: dur,
		CP:         cp,
		MinDurability: 0,
	}
}

func TestQueryBaseCase(t *testing.T) {
	Convey("Given a state with CP already below the base-case floor", t, func() {
		e := NewEngine(40, false)
		s := baseState(3, 40)

		Convey("Query succeeds trivially since min_durability is already met", func() {
			result, ok := e.Query(s)
			So(ok, ShouldBeTrue)
			quality, actionID, _ := qualstate.DecodeResult(result, false)
			So(actionID, ShouldEqual, 0)
			So(quality, ShouldEqual, 0)
		})
	})

	Convey("Given a state with CP below the floor but unmet min_durability", t, func() {
		e := NewEngine(40, false)
		s := baseState(3, 40)
		s.MinDurability = 2
		s.Durability = 1

		Convey("Query fails", func() {
			_, ok := e.Query(s)
			So(ok, ShouldBeFalse)
		})
	})
}

// TestChainInvariant checks spec.md §8's universal invariant: for every
// cached state, decoding its result yields either the terminal sentinel or a
// successor whose own cached quality plus this step's delta equals the
// parent's cached quality.
func TestChainInvariant(t *testing.T) {
	Convey("Given a DP engine that has searched from a small starting state", t, func() {
		e := NewEngine(60, false)
		start := baseState(200, 60)
		_, ok := e.Query(start)
		So(ok, ShouldBeTrue)

		Convey("every cached state's result decodes to a consistent chain link", func() {
			for _, shard := range e.Cache.shards {
				for index, result := range shard {
					if result == noneMarker {
						continue
					}
					quality, actionID, successorIdx := qualstate.DecodeResult(result, e.CheckTime)

					if actionID == 0 {
						continue
					}

					a := action.Get(int(actionID))
					So(a, ShouldNotBeNil)

					childResult, found := e.Cache.Get(successorIdx)
					So(found, ShouldBeTrue)
					So(childResult, ShouldNotEqual, noneMarker)

					childQuality, _, _ := qualstate.DecodeResult(childResult, e.CheckTime)
					parent := qualstate.Unpack(index, e.CheckTime)
					dq := totalDeltaQuality(parent, a)

					expected := childQuality + dq
					max := qualstate.MaxQuality(e.CheckTime)
					if expected > max {
						expected = max
					}
					So(quality, ShouldEqual, expected)
				}
			}
		})
	})
}

func TestMonotonicityInCP(t *testing.T) {
	Convey("Given two otherwise-identical states differing only in CP", t, func() {
		e := NewEngine(60, false)
		low := baseState(60, 60)
		high := baseState(200, 60)

		lowResult, lowOK := e.Query(low)
		highResult, highOK := e.Query(high)

		Convey("more CP never yields strictly worse best quality", func() {
			So(lowOK, ShouldBeTrue)
			So(highOK, ShouldBeTrue)
			lowQ, _, _ := qualstate.DecodeResult(lowResult, false)
			highQ, _, _ := qualstate.DecodeResult(highResult, false)
			So(highQ, ShouldBeGreaterThanOrEqualTo, lowQ)
		})
	})
}

func TestBacktraceWalksToTerminal(t *testing.T) {
	Convey("Given a searched state", t, func() {
		e := NewEngine(60, false)
		start := baseState(300, 60)
		_, ok := e.Query(start)
		So(ok, ShouldBeTrue)

		Convey("Backtrace terminates and CheckEndstate matches its final state", func() {
			steps, end := e.Backtrace(start)
			So(len(steps), ShouldBeGreaterThanOrEqualTo, 0)
			So(e.CheckEndstate(start), ShouldResemble, end)
		})
	})
}

func TestDumpLoadRoundTrip(t *testing.T) {
	Convey("Given a populated engine", t, func() {
		e := NewEngine(40, false)
		_, ok := e.Query(baseState(100, 40))
		So(ok, ShouldBeTrue)

		Convey("dumping and loading into a fresh engine preserves every entry", func() {
			var buf bytes.Buffer
			So(e.Dump(&buf), ShouldBeNil)

			e2 := NewEngine(40, false)
			So(e2.Load(&buf), ShouldBeNil)
			So(e2.Cache.Len(), ShouldEqual, e.Cache.Len())
		})
	})
}
