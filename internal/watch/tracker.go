package watch

import (
	"sync/atomic"
	"time"

	channerics "github.com/niceyeti/channerics/channels"
)

// pollResolution is how often Stream samples the tracker and emits a fresh
// Snapshot; deliberately coarser than the client's own pubResolution, since
// cache growth between samples this close together is rarely visible.
const pollResolution = time.Millisecond * 500

// Tracker accumulates search progress emitted by search.Driver's optional
// Progress hook and the DP engine's cache size, for Stream to publish as
// periodic Snapshot values.
type Tracker struct {
	openersTotal    int
	requiredQuality uint32

	cacheLen atomic.Value // func() int

	openersTried int32
	bestQuality  uint32
	done         int32

	cpTried      int32
	cpTotal      int32
	frontierSize int32
}

// NewTracker builds a Tracker for a search over openersTotal openers
// against a recipe requiring requiredQuality.
func NewTracker(openersTotal int, requiredQuality uint32) *Tracker {
	t := &Tracker{openersTotal: openersTotal, requiredQuality: requiredQuality}
	t.cacheLen.Store(func() int { return 0 })
	return t
}

// BindCache attaches the DP engine's cache-size accessor once the driver's
// engine exists; safe to call concurrently with Stream.
func (t *Tracker) BindCache(lenFn func() int) {
	t.cacheLen.Store(lenFn)
}

// Report is passed as a search.Driver's Progress field.
func (t *Tracker) Report(openersTried int, bestQuality uint32) {
	atomic.StoreInt32(&t.openersTried, int32(openersTried))
	atomic.StoreUint32(&t.bestQuality, bestQuality)
}

// MarkDone records that the search has finished, for the final Snapshot.
func (t *Tracker) MarkDone() {
	atomic.StoreInt32(&t.done, 1)
}

// ReportGearset is passed as gearset.Solve's optional progress hook.
func (t *Tracker) ReportGearset(cpTried, cpTotal int, frontierSize int) {
	atomic.StoreInt32(&t.cpTried, int32(cpTried))
	atomic.StoreInt32(&t.cpTotal, int32(cpTotal))
	atomic.StoreInt32(&t.frontierSize, int32(frontierSize))
}

func (t *Tracker) snapshot() Snapshot {
	lenFn := t.cacheLen.Load().(func() int)
	return Snapshot{
		CacheEntries:    lenFn(),
		OpenersTried:    int(atomic.LoadInt32(&t.openersTried)),
		OpenersTotal:    t.openersTotal,
		BestQuality:     atomic.LoadUint32(&t.bestQuality),
		RequiredQuality: t.requiredQuality,
		Done:            atomic.LoadInt32(&t.done) != 0,
		CPTried:         int(atomic.LoadInt32(&t.cpTried)),
		CPTotal:         int(atomic.LoadInt32(&t.cpTotal)),
		FrontierSize:    int(atomic.LoadInt32(&t.frontierSize)),
	}
}

// Stream emits a Snapshot every pollResolution until done fires, then
// closes the returned channel.
func (t *Tracker) Stream(done <-chan struct{}) <-chan Snapshot {
	out := make(chan Snapshot)
	ticks := channerics.NewTicker(done, pollResolution)
	go func() {
		defer close(out)
		for {
			select {
			case <-done:
				return
			case _, ok := <-ticks:
				if !ok {
					return
				}
				select {
				case out <- t.snapshot():
				case <-done:
					return
				}
			}
		}
	}()
	return out
}
