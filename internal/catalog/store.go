package catalog

import (
	"sync"

	"go-boutique-ws/internal/events"
	"go-boutique-ws/internal/model"
)

// Store owns the live in-memory product list for the process. Open performs
// one initial fetch, then a single writer goroutine folds bus events through
// Reduce and serves forced refetches; readers get snapshot copies. Close
// releases the bus subscription — skipping it leaks the subscription and
// keeps reducing events into a detached collection.
type Store struct {
	fetcher *Fetcher
	bus     *events.Bus

	mutex   sync.RWMutex
	items   []model.Product
	loading bool
	err     error

	sub       chan model.ChangeEvent
	refetches chan struct{}
	closeOnce sync.Once
}

func NewStore(fetcher *Fetcher, bus *events.Bus) *Store {
	return &Store{
		fetcher:   fetcher,
		bus:       bus,
		refetches: make(chan struct{}, 1),
	}
}

// subscriptionBuffer absorbs event bursts while the writer is busy fetching.
const subscriptionBuffer = 64

// Open loads the catalog, subscribes to change events and starts the writer
// goroutine. Call once.
func (s *Store) Open() {
	s.sub = s.bus.Subscribe(subscriptionBuffer)

	s.mutex.Lock()
	s.loading = true
	s.mutex.Unlock()

	items, err := s.fetcher.Fetch(false)
	s.commit(items, err)

	go s.run()
}

// run is the single writer: bus events and forced refetches are serialized
// here, so items only ever changes on this goroutine after Open returns. It
// exits when the subscription channel closes, and keeps draining until then
// so a publisher blocked on a full buffer always gets unstuck.
func (s *Store) run() {
	for {
		select {
		case ev, ok := <-s.sub:
			if !ok {
				return
			}
			s.mutex.Lock()
			s.items = Reduce(s.items, ev)
			s.mutex.Unlock()

		case <-s.refetches:
			s.mutex.Lock()
			s.loading = true
			s.mutex.Unlock()

			items, err := s.fetcher.Fetch(true)
			s.commit(items, err)
		}
	}
}

// commit records a fetch outcome. On failure the collection is left alone:
// the fetcher's held snapshot predates any events reduced since the last
// successful fetch, so installing it would roll those events back.
func (s *Store) commit(items []model.Product, err error) {
	s.mutex.Lock()
	if err == nil {
		s.items = items
	}
	s.err = err
	s.loading = false
	s.mutex.Unlock()
}

// Items returns a snapshot copy of the current collection.
func (s *Store) Items() []model.Product {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]model.Product(nil), s.items...)
}

func (s *Store) Loading() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.loading
}

// Err returns the last fetch error, if any. A non-nil error can coexist with
// a stale-but-available item list.
func (s *Store) Err() error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.err
}

// Refetch queues a fetch that bypasses the freshness window. Admin flows call
// it after writing to the backend as a consistency nudge; the subscription is
// expected to deliver the same change anyway. Pending requests coalesce.
func (s *Store) Refetch() {
	select {
	case s.refetches <- struct{}{}:
	default:
	}
}

// Close releases the bus subscription, which in turn stops the writer
// goroutine once it has drained the channel.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		s.bus.Unsubscribe(s.sub)
	})
}
