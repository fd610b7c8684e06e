package handler

import (
	"io"

	"go-boutique-ws/internal/model"
	"go-boutique-ws/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// InventoryHandler is the admin-side product CRUD surface. Writes go straight
// to the backend; the catalog store picks them up through the change-event
// subscription rather than a local optimistic update.
type InventoryHandler struct {
	service service.ProductService
}

func NewInventoryHandler(s service.ProductService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// Helper to parse UUID path params
func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateProduct(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

func (h *InventoryHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateProduct(id, &product)
	if err != nil {
		if err == service.ErrProductNotFound {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": updated})
}

func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.DeleteProduct(id); err != nil {
		if err == service.ErrProductNotFound {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// UploadImages accepts a multipart batch under the "images" field. The batch
// is all-or-nothing: a single failed blob fails the whole request.
func (h *InventoryHandler) UploadImages(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid multipart form"})
	}

	headers := form.File["images"]
	if len(headers) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "No images provided"})
	}

	files := make([]service.ImageFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Failed to read upload"})
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Failed to read upload"})
		}
		files = append(files, service.ImageFile{Name: fh.Filename, Data: data})
	}

	urls, err := h.service.UploadImages(files)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Image upload failed"})
	}

	return c.Status(201).JSON(fiber.Map{"urls": urls})
}
