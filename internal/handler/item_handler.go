package handler

import (
	"go-storage-hub/internal/model"
	"go-storage-hub/internal/repository"
	"go-storage-hub/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ItemHandler struct {
	itemRepo repository.ItemRepository
	ledger   service.LedgerService
}

func NewItemHandler(itemRepo repository.ItemRepository, ledger service.LedgerService) *ItemHandler {
	return &ItemHandler{itemRepo: itemRepo, ledger: ledger}
}

// List returns all items with stock, sizes and images preloaded
// GET /api/v1/items
func (h *ItemHandler) List(c *fiber.Ctx) error {
	items, err := h.itemRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(items)
}

// Get returns a single item
// GET /api/v1/items/:id
func (h *ItemHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	item, err := h.itemRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Item not found"})
	}
	return c.JSON(item)
}

// GetStock returns the per-bucket stock counters of an item
// GET /api/v1/items/:id/stock
func (h *ItemHandler) GetStock(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	stock, err := h.ledger.GetStock(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stock)
}

// GetMovements returns the stock movement audit trail of an item
// GET /api/v1/items/:id/movements
func (h *ItemHandler) GetMovements(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	movements, err := h.ledger.GetMovements(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(movements)
}

type addImageRequest struct {
	URL      string `json:"url"`
	Position int    `json:"position"`
}

// AddImage attaches a photo to an item
// POST /api/v1/items/:id/images
func (h *ItemHandler) AddImage(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	var req addImageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.URL == "" {
		return c.Status(400).JSON(fiber.Map{"error": "URL is required"})
	}

	if _, err := h.itemRepo.FindByID(id); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Item not found"})
	}

	image := &model.ItemImage{
		ItemID:   id,
		URL:      req.URL,
		Position: req.Position,
	}
	image.CreatedBy = getUserID(c)
	image.UpdatedBy = getUserID(c)
	if err := h.itemRepo.CreateImage(image); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save image"})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Image added", "data": image})
}
