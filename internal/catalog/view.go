package catalog

import (
	"sort"
	"strings"

	"go-boutique-ws/internal/model"
)

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortName      SortKey = "name"
)

// CategoryAll is the sentinel that disables category filtering.
const CategoryAll = "all"

// maxQueryLen caps search input, in runes, before matching.
const maxQueryLen = 100

// Derive maps the raw product list to the displayed order: case-insensitive
// substring search over name/description/category, exact category filter, then
// a stable sort by the given key (newest-first by default). Pure — the input
// slice is never touched; sorting happens on a copy.
func Derive(items []model.Product, query, category string, sortKey SortKey) []model.Product {
	filtered := items

	q := strings.ToLower(strings.TrimSpace(query))
	// truncate by rune, not byte, so multibyte input is never split
	if runes := []rune(q); len(runes) > maxQueryLen {
		q = string(runes[:maxQueryLen])
	}
	if q != "" {
		matched := make([]model.Product, 0, len(filtered))
		for _, p := range filtered {
			if matchesQuery(p, q) {
				matched = append(matched, p)
			}
		}
		filtered = matched
	}

	if category != "" && category != CategoryAll {
		matched := make([]model.Product, 0, len(filtered))
		for _, p := range filtered {
			if p.Category == category {
				matched = append(matched, p)
			}
		}
		filtered = matched
	}

	sorted := append([]model.Product(nil), filtered...)
	sort.SliceStable(sorted, func(i, j int) bool {
		switch sortKey {
		case SortPriceLow:
			return sorted[i].Price < sorted[j].Price
		case SortPriceHigh:
			return sorted[i].Price > sorted[j].Price
		case SortName:
			return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
		default: // SortNewest
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
	})
	return sorted
}

func matchesQuery(p model.Product, q string) bool {
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Category), q)
}

// Categories returns the sorted set of category labels present in items.
func Categories(items []model.Product) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, p := range items {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories
}
