package events

import (
	"sync"

	"go-boutique-ws/internal/model"
)

// Bus fans catalog change events out to in-process subscribers: the catalog
// store folds them into its collection, the websocket hub relays them to
// browser clients. Delivery is in publish order per subscriber; events are
// never dropped or reordered.
type Bus struct {
	mutex  sync.Mutex
	subs   map[chan model.ChangeEvent]bool
	closed bool
}

func NewBus() *Bus {
	return &Bus{subs: make(map[chan model.ChangeEvent]bool)}
}

// Subscribe registers a new subscriber channel with the given buffer size.
// The channel stays open until Unsubscribe or Close.
func (b *Bus) Subscribe(buffer int) chan model.ChangeEvent {
	ch := make(chan model.ChangeEvent, buffer)
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	b.subs[ch] = true
	return ch
}

// Unsubscribe removes and closes a subscriber channel. Safe to call for a
// channel that was already removed.
func (b *Bus) Unsubscribe(ch chan model.ChangeEvent) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
}

// Publish delivers ev to every subscriber. Sends happen under the lock so a
// subscriber channel cannot be closed mid-send; a full subscriber blocks the
// publisher rather than losing the event.
func (b *Bus) Publish(ev model.ChangeEvent) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if b.closed {
		return
	}
	for ch := range b.subs {
		ch <- ev
	}
}

// Close closes every subscriber channel and rejects further publishes.
func (b *Bus) Close() {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
}
