package catalog

import "go-boutique-ws/internal/model"

// Reduce folds one change event into the product list. Any change produces a
// fresh slice so holders of the previous value can rely on reference
// comparison; the input is never mutated.
//
// Semantics per event type:
//   - Inserted: placed at its descending created_at position so pushed records
//     keep the same ordering as the initial load. An existing entry with the
//     same id is replaced instead of duplicated.
//   - Updated: first id match replaced in place; silently dropped on miss.
//   - Removed: first id match deleted; no-op on miss.
func Reduce(items []model.Product, ev model.ChangeEvent) []model.Product {
	switch ev.Type {
	case model.EventInserted:
		if ev.Product == nil {
			return items
		}
		return insertOrdered(items, *ev.Product)

	case model.EventUpdated:
		if ev.Product == nil {
			return items
		}
		for i := range items {
			if items[i].ID == ev.Product.ID {
				out := append([]model.Product(nil), items...)
				out[i] = *ev.Product
				return out
			}
		}
		return items

	case model.EventRemoved:
		for i := range items {
			if items[i].ID == ev.ID {
				out := make([]model.Product, 0, len(items)-1)
				out = append(out, items[:i]...)
				out = append(out, items[i+1:]...)
				return out
			}
		}
		return items
	}
	return items
}

func insertOrdered(items []model.Product, p model.Product) []model.Product {
	for i := range items {
		if items[i].ID == p.ID {
			out := append([]model.Product(nil), items...)
			out[i] = p
			return out
		}
	}

	pos := len(items)
	for i := range items {
		if !items[i].CreatedAt.After(p.CreatedAt) {
			pos = i
			break
		}
	}

	out := make([]model.Product, 0, len(items)+1)
	out = append(out, items[:pos]...)
	out = append(out, p)
	out = append(out, items[pos:]...)
	return out
}
