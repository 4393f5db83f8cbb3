package handler

import (
	"go-storage-hub/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IntakeHandler struct {
	service service.IntakeService
}

func NewIntakeHandler(s service.IntakeService) *IntakeHandler {
	return &IntakeHandler{service: s}
}

// Create registers a new item pending storage approval
// POST /api/v1/item-requests
func (h *IntakeHandler) Create(c *fiber.Ctx) error {
	var req service.CreateIntakeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	request, err := h.service.Create(actorFromCtx(c), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Item request created", "data": request})
}

// List returns intake requests, optionally filtered by status
// GET /api/v1/item-requests?status=pending
func (h *IntakeHandler) List(c *fiber.Ctx) error {
	requests, err := h.service.List(actorFromCtx(c), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(requests)
}

type approveIntakeRequest struct {
	Location string `json:"location"`
}

// Approve transitions a pending intake request to approved
// POST /api/v1/item-requests/:id/approve
func (h *IntakeHandler) Approve(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request ID"})
	}

	var req approveIntakeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	request, err := h.service.Approve(actorFromCtx(c), id, req.Location)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Item request approved", "data": request})
}

type rejectIntakeRequest struct {
	Reason string `json:"reason"`
}

// Reject transitions a pending intake request to rejected and cascades
// deletion of the item and its dependents
// POST /api/v1/item-requests/:id/reject
func (h *IntakeHandler) Reject(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request ID"})
	}

	var req rejectIntakeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	request, err := h.service.Reject(actorFromCtx(c), id, req.Reason)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Item request rejected", "data": request})
}
