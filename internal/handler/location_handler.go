package handler

import (
	"go-storage-hub/internal/model"
	"go-storage-hub/internal/repository"
	"go-storage-hub/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type LocationHandler struct {
	repo repository.LocationRepository
}

func NewLocationHandler(repo repository.LocationRepository) *LocationHandler {
	return &LocationHandler{repo: repo}
}

// GET /api/v1/locations
func (h *LocationHandler) List(c *fiber.Ctx) error {
	locations, err := h.repo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch locations"})
	}
	return c.JSON(locations)
}

// POST /api/v1/locations
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var location model.Location
	if err := c.BodyParser(&location); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if errs := validator.ValidateStruct(&location); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Name is required"})
	}

	location.CreatedBy = getUserID(c)
	location.UpdatedBy = getUserID(c)
	if err := h.repo.Create(&location); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create location"})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Location created", "data": location})
}

// PUT /api/v1/locations/:id
func (h *LocationHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid location ID"})
	}

	location, err := h.repo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Location not found"})
	}

	var req model.Location
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	location.Name = req.Name
	location.Description = req.Description
	location.UpdatedBy = getUserID(c)
	if err := h.repo.Update(location); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update location"})
	}

	return c.JSON(fiber.Map{"message": "Location updated", "data": location})
}

// DELETE /api/v1/locations/:id
func (h *LocationHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid location ID"})
	}

	if err := h.repo.Delete(id); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete location"})
	}

	return c.JSON(fiber.Map{"message": "Location deleted"})
}

// GET /api/v1/boxes
func (h *LocationHandler) ListBoxes(c *fiber.Ctx) error {
	boxes, err := h.repo.FindAllBoxes()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch boxes"})
	}
	return c.JSON(boxes)
}

// POST /api/v1/boxes
func (h *LocationHandler) CreateBox(c *fiber.Ctx) error {
	var box model.Box
	if err := c.BodyParser(&box); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if errs := validator.ValidateStruct(&box); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Code and location_id are required"})
	}

	if _, err := h.repo.FindByID(box.LocationID); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Location not found"})
	}

	box.CreatedBy = getUserID(c)
	box.UpdatedBy = getUserID(c)
	if err := h.repo.CreateBox(&box); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create box"})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Box created", "data": box})
}

// PUT /api/v1/boxes/:id
func (h *LocationHandler) UpdateBox(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid box ID"})
	}

	box, err := h.repo.FindBoxByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Box not found"})
	}

	var req model.Box
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	box.Code = req.Code
	box.Capacity = req.Capacity
	box.Notes = req.Notes
	box.UpdatedBy = getUserID(c)
	if err := h.repo.UpdateBox(box); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update box"})
	}

	return c.JSON(fiber.Map{"message": "Box updated", "data": box})
}

// DELETE /api/v1/boxes/:id
func (h *LocationHandler) DeleteBox(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid box ID"})
	}

	if err := h.repo.DeleteBox(id); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete box"})
	}

	return c.JSON(fiber.Map{"message": "Box deleted"})
}
