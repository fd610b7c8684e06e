package catalog

import (
	"testing"
	"time"

	"go-boutique-ws/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testProduct(name string, created time.Time) model.Product {
	return model.Product{
		BaseModel:   model.BaseModel{ID: uuid.New(), CreatedAt: created},
		Name:        name,
		Description: name + " description",
		Price:       100,
		Category:    "Fashion",
		Stock:       5,
		Status:      model.StatusAvailable,
	}
}

func ids(items []model.Product) []uuid.UUID {
	out := make([]uuid.UUID, len(items))
	for i, p := range items {
		out[i] = p.ID
	}
	return out
}

func TestReduceInsertKeepsChronologicalOrder(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	oldest := testProduct("oldest", base)
	newest := testProduct("newest", base.Add(2*time.Hour))
	items := []model.Product{newest, oldest}

	middle := testProduct("middle", base.Add(time.Hour))
	out := Reduce(items, model.Inserted(&middle))

	require.Equal(t, []uuid.UUID{newest.ID, middle.ID, oldest.ID}, ids(out))
	// input untouched
	require.Equal(t, []uuid.UUID{newest.ID, oldest.ID}, ids(items))
}

func TestReduceInsertNewestGoesFirst(t *testing.T) {
	base := time.Now()
	a := testProduct("a", base)
	items := []model.Product{a}

	b := testProduct("b", base.Add(time.Minute))
	out := Reduce(items, model.Inserted(&b))

	require.Equal(t, []uuid.UUID{b.ID, a.ID}, ids(out))
}

func TestReduceInsertExistingIDReplaces(t *testing.T) {
	a := testProduct("a", time.Now())
	items := []model.Product{a}

	replay := a
	replay.Stock = 1
	out := Reduce(items, model.Inserted(&replay))

	require.Len(t, out, 1)
	require.Equal(t, 1, out[0].Stock)
}

func TestReduceNoDuplicateIDsUnderAnySequence(t *testing.T) {
	base := time.Now()
	a := testProduct("a", base)
	b := testProduct("b", base.Add(time.Second))
	c := testProduct("c", base.Add(2*time.Second))

	events := []model.ChangeEvent{
		model.Inserted(&a),
		model.Inserted(&b),
		model.Inserted(&a), // replay
		model.Updated(&b),
		model.Inserted(&c),
		model.Removed(b.ID),
		model.Inserted(&b),
		model.Updated(&a),
	}

	var items []model.Product
	for _, ev := range events {
		items = Reduce(items, ev)
		seen := make(map[uuid.UUID]bool)
		for _, p := range items {
			require.False(t, seen[p.ID], "duplicate id after %s event", ev.Type)
			seen[p.ID] = true
		}
	}
	require.Len(t, items, 3)
}

func TestReduceUpdateReplacesInPlace(t *testing.T) {
	base := time.Now()
	a := testProduct("a", base.Add(time.Second))
	b := testProduct("b", base)
	items := []model.Product{a, b}

	changed := b
	changed.Price = 999
	out := Reduce(items, model.Updated(&changed))

	require.Equal(t, []uuid.UUID{a.ID, b.ID}, ids(out))
	require.Equal(t, float64(999), out[1].Price)
	// previous collection value still holds the old record
	require.Equal(t, float64(100), items[1].Price)
}

func TestReduceUpdateMissIsDropped(t *testing.T) {
	a := testProduct("a", time.Now())
	items := []model.Product{a}

	ghost := testProduct("ghost", time.Now())
	out := Reduce(items, model.Updated(&ghost))

	require.Equal(t, items, out)
	require.Len(t, out, 1)
}

func TestReduceRemove(t *testing.T) {
	base := time.Now()
	a := testProduct("a", base.Add(time.Second))
	b := testProduct("b", base)
	items := []model.Product{a, b}

	out := Reduce(items, model.Removed(a.ID))
	require.Equal(t, []uuid.UUID{b.ID}, ids(out))

	// absent id is a no-op
	out = Reduce(out, model.Removed(a.ID))
	require.Equal(t, []uuid.UUID{b.ID}, ids(out))
}
