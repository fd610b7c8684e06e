package catalog

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go-boutique-ws/internal/events"
	"go-boutique-ws/internal/model"

	"github.com/stretchr/testify/require"
)

func TestStoreLoadsThenAppliesEventsInOrder(t *testing.T) {
	first := testProduct("first", time.Now())
	src := &fakeSource{products: []model.Product{first}}
	bus := events.NewBus()

	store := NewStore(NewFetcher(src), bus)
	store.Open()
	defer store.Close()

	require.False(t, store.Loading())
	require.NoError(t, store.Err())
	require.Len(t, store.Items(), 1)

	pushed := testProduct("pushed", time.Now().Add(time.Minute))
	bus.Publish(model.Inserted(&pushed))
	require.Eventually(t, func() bool {
		return len(store.Items()) == 2
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, pushed.ID, store.Items()[0].ID)

	changed := pushed
	changed.Price = 42
	bus.Publish(model.Updated(&changed))
	bus.Publish(model.Removed(first.ID))
	require.Eventually(t, func() bool {
		items := store.Items()
		return len(items) == 1 && items[0].Price == 42
	}, time.Second, 5*time.Millisecond)
}

func TestStoreRefetchBypassesFreshnessWindow(t *testing.T) {
	src := &fakeSource{}
	bus := events.NewBus()

	store := NewStore(NewFetcher(src), bus)
	store.Open()
	defer store.Close()
	require.Equal(t, 1, src.callCount())

	// well inside the freshness window, a forced refetch still queries
	store.Refetch()
	require.Eventually(t, func() bool {
		return src.callCount() == 2
	}, time.Second, 5*time.Millisecond)
}

func TestStoreKeepsStaleItemsOnRefetchError(t *testing.T) {
	src := &fakeSource{products: []model.Product{testProduct("kept", time.Now())}}
	bus := events.NewBus()

	store := NewStore(NewFetcher(src), bus)
	store.Open()
	defer store.Close()

	src.setErr(errors.New("backend down"))
	store.Refetch()

	require.Eventually(t, func() bool {
		return store.Err() != nil
	}, time.Second, 5*time.Millisecond)
	require.Len(t, store.Items(), 1, "stale data stays visible next to the error")
}

func TestStoreFailedRefetchKeepsReducedEvents(t *testing.T) {
	first := testProduct("first", time.Now())
	src := &fakeSource{products: []model.Product{first}}
	bus := events.NewBus()

	store := NewStore(NewFetcher(src), bus)
	store.Open()
	defer store.Close()

	pushed := testProduct("pushed", time.Now().Add(time.Minute))
	bus.Publish(model.Inserted(&pushed))
	require.Eventually(t, func() bool {
		return len(store.Items()) == 2
	}, time.Second, 5*time.Millisecond)

	src.setErr(errors.New("backend down"))
	store.Refetch()
	require.Eventually(t, func() bool {
		return store.Err() != nil
	}, time.Second, 5*time.Millisecond)

	require.Len(t, store.Items(), 2, "a failed refetch must not roll back applied events")
}

func TestStoreCloseUnblocksPendingPublisher(t *testing.T) {
	src := &fakeSource{}
	bus := events.NewBus()

	store := NewStore(NewFetcher(src), bus)
	store.Open()

	// park the writer inside a slow refetch so published events pile up
	gate := make(chan struct{})
	src.setGate(gate)
	store.Refetch()
	require.Eventually(t, func() bool {
		return src.callCount() == 2
	}, time.Second, 5*time.Millisecond)

	var sent atomic.Int32
	published := make(chan struct{})
	go func() {
		defer close(published)
		p := testProduct("burst", time.Now())
		for i := 0; i < subscriptionBuffer+1; i++ {
			bus.Publish(model.Inserted(&p))
			sent.Add(1)
		}
	}()

	// the buffer fills, then the final publish blocks holding the bus lock
	require.Eventually(t, func() bool {
		return sent.Load() == subscriptionBuffer
	}, time.Second, 5*time.Millisecond)

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		store.Close()
	}()

	close(gate)

	for _, ch := range []chan struct{}{published, closed} {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatal("teardown deadlocked with a publisher mid-broadcast")
		}
	}
}

func TestStoreCloseReleasesSubscription(t *testing.T) {
	src := &fakeSource{}
	bus := events.NewBus()

	store := NewStore(NewFetcher(src), bus)
	store.Open()
	store.Close()
	store.Close() // idempotent

	// a publish after close must not panic or land anywhere
	p := testProduct("late", time.Now())
	bus.Publish(model.Inserted(&p))
	require.Empty(t, store.Items())
}
