package handler

import (
	"go-boutique-ws/internal/catalog"
	"go-boutique-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves the public storefront from the live catalog store.
type CatalogHandler struct {
	store       *catalog.Store
	products    service.ProductService
	sellerPhone string
}

func NewCatalogHandler(store *catalog.Store, products service.ProductService, sellerPhone string) *CatalogHandler {
	return &CatalogHandler{store: store, products: products, sellerPhone: sellerPhone}
}

// GetProducts derives the displayed list from the in-memory collection; no
// database round-trip on the hot path. A stale-but-available error from the
// last fetch is surfaced next to the data, never instead of it.
func (h *CatalogHandler) GetProducts(c *fiber.Ctx) error {
	query := c.Query("q")
	category := c.Query("category", catalog.CategoryAll)
	sortKey := catalog.SortKey(c.Query("sort", string(catalog.SortNewest)))

	items := catalog.Derive(h.store.Items(), query, category, sortKey)

	resp := fiber.Map{
		"products": items,
		"count":    len(items),
		"loading":  h.store.Loading(),
	}
	if err := h.store.Err(); err != nil {
		resp["error"] = err.Error()
	}
	return c.JSON(resp)
}

func (h *CatalogHandler) GetCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"categories": catalog.Categories(h.store.Items())})
}

// GetProduct is the detail view: a fresh single-record read (detail pages
// bypass the list cache), carousel frames and the messaging-channel order
// link.
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.products.GetProduct(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
	}

	carousel := catalog.NewCarousel(*product)
	return c.JSON(fiber.Map{
		"product":   product,
		"images":    carousel.Frames(),
		"available": catalog.Available(*product),
		"order_url": catalog.OrderLink(*product, h.sellerPhone),
	})
}

// Refetch forces the store past its freshness window. Admin flows hit this
// after direct writes as a belt-and-suspenders consistency nudge.
func (h *CatalogHandler) Refetch(c *fiber.Ctx) error {
	h.store.Refetch()
	return c.Status(202).JSON(fiber.Map{"message": "Catalog refetch queued"})
}
