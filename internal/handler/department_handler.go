package handler

import (
	"go-storage-hub/internal/model"
	"go-storage-hub/internal/repository"
	"go-storage-hub/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type DepartmentHandler struct {
	repo repository.DepartmentRepository
}

func NewDepartmentHandler(repo repository.DepartmentRepository) *DepartmentHandler {
	return &DepartmentHandler{repo: repo}
}

// GET /api/v1/departments
func (h *DepartmentHandler) List(c *fiber.Ctx) error {
	departments, err := h.repo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch departments"})
	}
	return c.JSON(departments)
}

// POST /api/v1/departments
func (h *DepartmentHandler) Create(c *fiber.Ctx) error {
	var department model.Department
	if err := c.BodyParser(&department); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if errs := validator.ValidateStruct(&department); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Name is required"})
	}

	existing, _ := h.repo.FindByName(department.Name)
	if existing != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Department already exists"})
	}

	department.CreatedBy = getUserID(c)
	department.UpdatedBy = getUserID(c)
	if err := h.repo.Create(&department); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create department"})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Department created", "data": department})
}

// PUT /api/v1/departments/:id
func (h *DepartmentHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid department ID"})
	}

	department, err := h.repo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Department not found"})
	}

	var req model.Department
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	department.Name = req.Name
	department.Description = req.Description
	department.UpdatedBy = getUserID(c)
	if err := h.repo.Update(department); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update department"})
	}

	return c.JSON(fiber.Map{"message": "Department updated", "data": department})
}

// DELETE /api/v1/departments/:id
func (h *DepartmentHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid department ID"})
	}

	if err := h.repo.Delete(id); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete department"})
	}

	return c.JSON(fiber.Map{"message": "Department deleted"})
}
