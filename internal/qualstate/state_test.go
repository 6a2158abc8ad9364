package qualstate

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	Convey("Given a state with every field at a boundary value", t, func() {
		cases := []State{
			{},
			{
				HeartAndSoul:      true,
				TrainedPerfection: TPSpent,
				MinDurability:     3,
				GreatStrides:      MaxGreatStrides,
				Innovation:        MaxInnovation,
				WasteNot:          MaxWasteNot,
				Manipulation:      MaxManipulation,
				Durability:        31,
				CP:                700,
				InnerQuiet:        MaxInnerQuiet,
				Time:              MaxTime,
			},
			{
				HeartAndSoul:      false,
				TrainedPerfection: TPArmed,
				MinDurability:     1,
				GreatStrides:      1,
				Innovation:        2,
				WasteNot:          3,
				Manipulation:      5,
				Durability:        16,
				CP:                300,
				InnerQuiet:        7,
				Time:              60,
			},
		}

		Convey("Pack then Unpack recovers every field, untimed", func() {
			for _, s := range cases {
				packed := s.Pack(false)
				got := Unpack(packed, false)
				So(got.HeartAndSoul, ShouldEqual, s.HeartAndSoul)
				So(got.TrainedPerfection, ShouldEqual, s.TrainedPerfection)
				So(got.MinDurability, ShouldEqual, s.MinDurability)
				So(got.GreatStrides, ShouldEqual, s.GreatStrides)
				So(got.Innovation, ShouldEqual, s.Innovation)
				So(got.WasteNot, ShouldEqual, s.WasteNot)
				So(got.Manipulation, ShouldEqual, s.Manipulation)
				So(got.Durability, ShouldEqual, s.Durability)
				So(got.CP, ShouldEqual, s.CP)
				So(got.InnerQuiet, ShouldEqual, s.InnerQuiet)
			}
		})

		Convey("Pack then Unpack recovers every field, including time, when timed", func() {
			for _, s := range cases {
				packed := s.Pack(true)
				got := Unpack(packed, true)
				So(got.Time, ShouldEqual, s.Time)
				So(got.CP, ShouldEqual, s.CP)
				So(got.InnerQuiet, ShouldEqual, s.InnerQuiet)
			}
		})
	})
}

func TestResultEncoding(t *testing.T) {
	Convey("Given a quality, action id and successor index", t, func() {
		successor := State{CP: 123, Durability: 4, InnerQuiet: 10}.Pack(false)

		Convey("EncodeResult/DecodeResult round-trips, untimed", func() {
			r := EncodeResult(4800, 9, successor, false)
			q, a, s := DecodeResult(r, false)
			So(q, ShouldEqual, uint32(4800))
			So(a, ShouldEqual, uint8(9))
			So(s, ShouldEqual, successor)
		})

		Convey("TerminalResult decodes to action id 0 and zero quality", func() {
			q, a, s := DecodeResult(TerminalResult(), false)
			So(q, ShouldEqual, uint32(0))
			So(a, ShouldEqual, uint8(0))
			So(s, ShouldEqual, uint64(0))
		})
	})
}

func TestMaxQualityWidth(t *testing.T) {
	Convey("Untimed mode leaves more bits for quality than timed mode", t, func() {
		So(MaxQuality(false), ShouldBeGreaterThan, MaxQuality(true))
	})
}
