package market

import (
	"sync"
	"time"

	"github.com/peermart/peermart-go/build"
)

// Snapshot is one completed aggregation. Items are never merged across
// snapshots; consumers render the latest one.
type Snapshot[T any] struct {
	Seq     uint64
	Version uint64
	Items   []T
	Report  ScanReport
	Time    time.Time
}

// Feed publishes snapshots to subscribers. A snapshot whose scan began
// before the current one (lower Seq), or under a session version the feed
// no longer accepts, is dropped.
type Feed[T any] struct {
	current func(version uint64) bool

	lk      sync.Mutex
	seq     uint64
	latest  *Snapshot[T]
	subs    map[uint64]chan Snapshot[T]
	nextSub uint64
}

// NewFeed returns a feed. accept decides whether a snapshot's session
// version is still current; nil accepts every version.
func NewFeed[T any](accept func(version uint64) bool) *Feed[T] {
	return &Feed[T]{
		current: accept,
		subs:    map[uint64]chan Snapshot[T]{},
	}
}

// Begin reserves the sequence number for a scan about to start.
func (f *Feed[T]) Begin() uint64 {
	f.lk.Lock()
	defer f.lk.Unlock()
	f.seq++
	return f.seq
}

// Publish stores s as the latest snapshot and delivers it. It reports
// whether s was accepted.
func (f *Feed[T]) Publish(s Snapshot[T]) bool {
	if f.current != nil && !f.current(s.Version) {
		log.Debugw("dropping snapshot from stale session", "seq", s.Seq, "version", s.Version)
		return false
	}
	if s.Time.IsZero() {
		s.Time = build.Clock.Now()
	}

	f.lk.Lock()
	defer f.lk.Unlock()

	if f.latest != nil && s.Seq < f.latest.Seq {
		log.Debugw("dropping out of order snapshot", "seq", s.Seq, "latest", f.latest.Seq)
		return false
	}
	f.latest = &s

	for _, ch := range f.subs {
		// keep only the newest pending snapshot per subscriber
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
	return true
}

// Clear publishes an empty snapshot that supersedes every scan begun so far.
func (f *Feed[T]) Clear(version uint64) {
	f.Publish(Snapshot[T]{Seq: f.Begin(), Version: version})
}

func (f *Feed[T]) Latest() (Snapshot[T], bool) {
	f.lk.Lock()
	defer f.lk.Unlock()
	if f.latest == nil {
		return Snapshot[T]{}, false
	}
	return *f.latest, true
}

// Items returns the items of the latest snapshot.
func (f *Feed[T]) Items() []T {
	s, _ := f.Latest()
	return s.Items
}

// Subscribe returns a channel receiving every accepted snapshot. A slow
// subscriber only sees the newest one. The current snapshot, if any, is
// delivered immediately.
func (f *Feed[T]) Subscribe() (<-chan Snapshot[T], func()) {
	ch := make(chan Snapshot[T], 1)

	f.lk.Lock()
	id := f.nextSub
	f.nextSub++
	f.subs[id] = ch
	if f.latest != nil {
		ch <- *f.latest
	}
	f.lk.Unlock()

	return ch, func() {
		f.lk.Lock()
		delete(f.subs, id)
		f.lk.Unlock()
	}
}
