package handler

import (
	"go-storage-hub/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type SettingHandler struct {
	repo repository.SettingRepository
}

func NewSettingHandler(repo repository.SettingRepository) *SettingHandler {
	return &SettingHandler{repo: repo}
}

// GET /api/v1/settings
func (h *SettingHandler) List(c *fiber.Ctx) error {
	settings, err := h.repo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch settings"})
	}
	return c.JSON(settings)
}

type updateSettingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// PUT /api/v1/settings
func (h *SettingHandler) Update(c *fiber.Ctx) error {
	var req updateSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Key == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Key is required"})
	}

	if err := h.repo.Set(req.Key, req.Value, getUserID(c)); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update setting"})
	}

	return c.JSON(fiber.Map{"message": "Setting updated"})
}
