package watch

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTrackerSnapshot(t *testing.T) {
	Convey("Given a fresh tracker bound to a cache accessor", t, func() {
		tracker := NewTracker(12, 5000)
		tracker.BindCache(func() int { return 42 })

		Convey("an unreported snapshot reflects the cache size and zero progress", func() {
			snap := tracker.snapshot()
			So(snap.CacheEntries, ShouldEqual, 42)
			So(snap.OpenersTried, ShouldEqual, 0)
			So(snap.OpenersTotal, ShouldEqual, 12)
			So(snap.RequiredQuality, ShouldEqual, 5000)
			So(snap.Done, ShouldBeFalse)
		})

		Convey("Report updates openers tried and best quality", func() {
			tracker.Report(3, 1200)
			snap := tracker.snapshot()
			So(snap.OpenersTried, ShouldEqual, 3)
			So(snap.BestQuality, ShouldEqual, 1200)
		})

		Convey("MarkDone is reflected in the next snapshot", func() {
			tracker.MarkDone()
			So(tracker.snapshot().Done, ShouldBeTrue)
		})
	})
}

func TestTrackerStreamEmitsAndCloses(t *testing.T) {
	Convey("Given a tracker streaming snapshots", t, func() {
		tracker := NewTracker(4, 1000)
		tracker.BindCache(func() int { return 7 })
		done := make(chan struct{})

		updates := tracker.Stream(done)

		Convey("a snapshot arrives within a few poll intervals", func() {
			select {
			case snap := <-updates:
				So(snap.CacheEntries, ShouldEqual, 7)
			case <-time.After(2 * time.Second):
				t.Fatal("timed out waiting for a snapshot")
			}
			close(done)
		})
	})
}
