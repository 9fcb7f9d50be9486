package handler

import (
	"errors"

	"go-stocktrack/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals("user_id").(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// fail maps a service error to its HTTP response. Conflicts get 409 so the
// client knows the request may be retried as-is; everything else from the
// business layer is a 400 with a human-readable message.
func fail(c *fiber.Ctx, err error) error {
	status := 400
	if errors.Is(err, service.ErrConflict) {
		status = 409
	}
	return c.Status(status).JSON(fiber.Map{"message": err.Error()})
}

// notFound is used by read endpoints where a missing entity is a 404
func notFound(c *fiber.Ctx, err error) error {
	return c.Status(404).JSON(fiber.Map{"message": err.Error()})
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}
