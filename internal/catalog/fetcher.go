package catalog

import (
	"time"

	"go-boutique-ws/internal/model"
)

const (
	// freshnessWindow is the minimum elapsed time before a non-forced fetch
	// issues a new query. Avoids redundant round-trips on rapid re-reads, not
	// a correctness mechanism.
	freshnessWindow = 30 * time.Second

	// fetchLimit bounds the initial catalog load, newest-first.
	fetchLimit = 100
)

// ProductSource is the bounded read the fetcher performs against the catalog
// backend.
type ProductSource interface {
	ListNewest(limit int) ([]model.Product, error)
}

// Fetcher wraps the catalog query with the freshness window. Not safe for
// concurrent use; the store's writer goroutine is the only caller.
type Fetcher struct {
	source ProductSource
	now    func() time.Time

	lastFetch time.Time
	held      []model.Product
}

func NewFetcher(source ProductSource) *Fetcher {
	return &Fetcher{source: source, now: time.Now}
}

// Fetch returns the current product list. With force unset and a successful
// fetch inside the freshness window, no query is issued and the held list is
// returned as-is. On query failure the held list survives alongside the error
// (stale-but-available).
func (f *Fetcher) Fetch(force bool) ([]model.Product, error) {
	if !force && !f.lastFetch.IsZero() && f.now().Sub(f.lastFetch) < freshnessWindow {
		return f.held, nil
	}

	products, err := f.source.ListNewest(fetchLimit)
	if err != nil {
		return f.held, err
	}

	f.held = products
	f.lastFetch = f.now()
	return f.held, nil
}
