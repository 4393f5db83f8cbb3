package handler

import (
	"log"

	"go-storage-hub/internal/apperr"
	"go-storage-hub/internal/authz"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// actorFromCtx rebuilds the authenticated actor from the context values set
// by the auth middleware.
func actorFromCtx(c *fiber.Ctx) authz.Actor {
	actor := authz.Actor{}

	if id, ok := c.Locals("user_id").(string); ok {
		if parsed, err := uuid.Parse(id); err == nil {
			actor.UserID = parsed
		}
	}
	if role, ok := c.Locals("user_role").(string); ok {
		actor.Role = role
	}
	if dept, ok := c.Locals("user_department_id").(string); ok {
		if parsed, err := uuid.Parse(dept); err == nil {
			actor.DepartmentID = &parsed
		}
	}

	return actor
}

func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system"
	}
	return userID.(string)
}

// respondError maps a domain error to its HTTP status. Unexpected errors get
// a generic message; the original is logged server-side only.
func respondError(c *fiber.Ctx, err error) error {
	status := apperr.HTTPStatus(err)
	if status == 500 {
		log.Printf("%s %s failed: %v", c.Method(), c.Path(), err)
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// parseUUID parses a route parameter as UUID
func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}
