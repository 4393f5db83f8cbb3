package handler

import (
	"time"

	"go-storage-hub/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ClearanceHandler struct {
	service service.ClearanceService
}

func NewClearanceHandler(s service.ClearanceService) *ClearanceHandler {
	return &ClearanceHandler{service: s}
}

// Create records a disposal/seeding/damage/expiry decision against an item
// POST /api/v1/clearance
func (h *ClearanceHandler) Create(c *fiber.Ctx) error {
	var req service.CreateClearanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	clearance, err := h.service.Create(actorFromCtx(c), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Clearance recorded", "data": clearance})
}

// ListSeeding returns seeding records, filterable by status and date range
// GET /api/v1/clearance/seeding?status=active&from=2026-01-01&to=2026-02-01
func (h *ClearanceHandler) ListSeeding(c *fiber.Ctx) error {
	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid from date, use YYYY-MM-DD"})
		}
		from = &parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid to date, use YYYY-MM-DD"})
		}
		// Include the whole day
		end := parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
		to = &end
	}

	records, err := h.service.ListSeeding(actorFromCtx(c), c.Query("status"), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(records)
}

type revertSeedingRequest struct {
	RestoreQuantity bool `json:"restore_quantity"`
}

// RevertSeeding undoes a seeding clearance (superadmin only)
// POST /api/v1/clearance/seeding/:id/revert
func (h *ClearanceHandler) RevertSeeding(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid clearance ID"})
	}

	var req revertSeedingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	clearance, err := h.service.RevertSeeding(actorFromCtx(c), id, req.RestoreQuantity)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Seeding reverted", "data": clearance})
}

// RevertQuantity moves stock back from the clearance bucket to storage
// POST /api/v1/items/revert-from-clearance
func (h *ClearanceHandler) RevertQuantity(c *fiber.Ctx) error {
	var req service.RevertQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	stock, err := h.service.RevertQuantity(actorFromCtx(c), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Quantity reverted from clearance", "data": stock})
}
