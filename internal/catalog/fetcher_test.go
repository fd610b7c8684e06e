package catalog

import (
	"errors"
	"sync"
	"testing"
	"time"

	"go-boutique-ws/internal/model"

	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mutex    sync.Mutex
	calls    int
	products []model.Product
	err      error
	gate     chan struct{}
}

func (f *fakeSource) ListNewest(limit int) ([]model.Product, error) {
	f.mutex.Lock()
	f.calls++
	gate := f.gate
	products := f.products
	err := f.err
	f.mutex.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	if len(products) > limit {
		return products[:limit], nil
	}
	return products, nil
}

// setGate makes subsequent queries block until the channel is closed.
func (f *fakeSource) setGate(gate chan struct{}) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.gate = gate
}

func (f *fakeSource) callCount() int {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.calls
}

func (f *fakeSource) setErr(err error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.err = err
}

func TestFetcherSkipsQueryInsideFreshnessWindow(t *testing.T) {
	src := &fakeSource{products: []model.Product{testProduct("a", time.Now())}}
	f := NewFetcher(src)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	f.now = func() time.Time { return now }

	_, err := f.Fetch(false)
	require.NoError(t, err)

	now = now.Add(10 * time.Second)
	items, err := f.Fetch(false)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 1, src.callCount())
}

func TestFetcherForceBypassesWindow(t *testing.T) {
	src := &fakeSource{}
	f := NewFetcher(src)

	now := time.Now()
	f.now = func() time.Time { return now }

	_, _ = f.Fetch(false)
	_, _ = f.Fetch(true)
	require.Equal(t, 2, src.callCount())
}

func TestFetcherQueriesAgainAfterWindowElapses(t *testing.T) {
	src := &fakeSource{}
	f := NewFetcher(src)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	f.now = func() time.Time { return now }

	_, _ = f.Fetch(false)
	now = now.Add(freshnessWindow + time.Second)
	_, _ = f.Fetch(false)
	require.Equal(t, 2, src.callCount())
}

func TestFetcherKeepsHeldListOnFailure(t *testing.T) {
	src := &fakeSource{products: []model.Product{testProduct("a", time.Now())}}
	f := NewFetcher(src)

	held, err := f.Fetch(true)
	require.NoError(t, err)
	require.Len(t, held, 1)

	src.setErr(errors.New("connection refused"))
	items, err := f.Fetch(true)
	require.Error(t, err)
	require.Equal(t, held, items, "stale data must survive a failed fetch")
}
