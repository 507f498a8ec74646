package cache

import (
	"sort"
	"sync"

	"github.com/Trequetrum/GloomhavenTools/pkg/core"
)

// DefaultEventBuffer is the per-subscriber channel buffer used when no
// explicit size is configured.
const DefaultEventBuffer = 100

// Bus is an ordered multicast stream of life-cycle events with the current
// folded snapshot materialized alongside it. Late subscribers read the
// snapshot instead of replaying history; only the bootstrap sentinel
// {error, nil} seeds the fold so the stream head is never undefined.
//
// Concurrency model: a single mutex serializes publishes, so every
// subscriber observes events in the exact order they were published.
// Subscriber channels are buffered; a subscriber that stops draining
// backpressures publishers past its buffer rather than losing events.
type Bus struct {
	mu        sync.RWMutex
	subs      map[int]*subscriber
	nextSub   int
	snap      Snapshot
	last      core.Event
	published uint64
	buffer    int
}

type subscriber struct {
	ch   chan core.Event
	done chan struct{}
	once sync.Once
}

func (s *subscriber) cancel() {
	s.once.Do(func() { close(s.done) })
}

// NewBus creates a bus seeded with the bootstrap sentinel. A non-positive
// buffer falls back to DefaultEventBuffer.
func NewBus(buffer int) *Bus {
	if buffer <= 0 {
		buffer = DefaultEventBuffer
	}
	return &Bus{
		subs:   make(map[int]*subscriber),
		snap:   make(Snapshot),
		last:   core.NewEvent(core.ActionError, nil),
		buffer: buffer,
	}
}

// Publish folds the event into the snapshot and delivers it to every
// current subscriber, in publish order.
//
// An unrecognized action panics: it indicates a bug in a producer, not a
// runtime condition, and folding past it would corrupt the snapshot.
func (b *Bus) Publish(e core.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	next, err := Reduce(b.snap, e)
	if err != nil {
		panic("cache: " + err.Error())
	}
	b.snap = next
	b.last = e
	b.published++

	for _, sub := range b.subs {
		select {
		case sub.ch <- e:
		case <-sub.done:
			// Subscriber detached while we were blocked on its buffer.
		}
	}
}

// Subscribe attaches a new subscriber receiving every event published from
// now on. The returned cancel function detaches it; cancelling is always
// safe, including while a publish is blocked on this subscriber's buffer.
func (b *Bus) Subscribe() (<-chan core.Event, func()) {
	ch, _, cancel := b.SubscribeSnapshot()
	return ch, cancel
}

// SubscribeSnapshot attaches a new subscriber and returns the snapshot as
// of the subscription point. The two are captured atomically: no published
// event is both folded into the snapshot and delivered on the channel.
func (b *Bus) SubscribeSnapshot() (<-chan core.Event, Snapshot, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &subscriber{
		ch:   make(chan core.Event, b.buffer),
		done: make(chan struct{}),
	}
	id := b.nextSub
	b.nextSub++
	b.subs[id] = sub

	cancel := func() {
		// Close done before taking the lock so a publisher blocked on
		// this subscriber's buffer unblocks instead of deadlocking.
		sub.cancel()
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}

	return sub.ch, b.snap, cancel
}

// Snapshot returns the current folded snapshot.
func (b *Bus) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snap
}

// Get looks up one cached document by id.
func (b *Bus) Get(id string) (*core.Document, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	doc, ok := b.snap[id]
	return doc, ok
}

// Documents returns the currently cached documents, ordered by id.
func (b *Bus) Documents() []*core.Document {
	b.mu.RLock()
	defer b.mu.RUnlock()
	docs := make([]*core.Document, 0, len(b.snap))
	for _, doc := range b.snap {
		docs = append(docs, doc)
	}
	sortDocs(docs)
	return docs
}

func sortDocs(docs []*core.Document) {
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
}

// Len returns the number of cached documents.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.snap)
}

// LastEvent returns the most recently published event, or the bootstrap
// sentinel if nothing has been published yet.
func (b *Bus) LastEvent() core.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.last
}

// BusStats exposes internal counters for observability.
type BusStats struct {
	Subscribers int    `json:"subscribers"`
	Published   uint64 `json:"published"`
	Cached      int    `json:"cached"`
}

// Stats returns a point-in-time view of the bus counters.
func (b *Bus) Stats() BusStats {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return BusStats{Subscribers: len(b.subs), Published: b.published, Cached: len(b.snap)}
}
