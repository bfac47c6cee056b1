package handler

import (
	"errors"

	"go-pharmacy-stock/internal/apperr"
	"go-pharmacy-stock/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// actorFromCtx rebuilds the requester identity from the JWT context set
// by the auth middleware.
func actorFromCtx(c *fiber.Ctx) model.Actor {
	actor := model.Actor{}
	if v, ok := c.Locals("user_id").(string); ok {
		if id, err := uuid.Parse(v); err == nil {
			actor.ID = id
		}
	}
	if v, ok := c.Locals("user_name").(string); ok {
		actor.Username = v
	}
	if v, ok := c.Locals("user_role").(string); ok {
		actor.Role = model.RoleCode(v)
	}
	if v, ok := c.Locals("user_log_permission").(string); ok {
		actor.LogPermission = model.LogPermission(v)
	}
	return actor
}

// Helper untuk parse UUID dari string
func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// failErr maps the core failure taxonomy to distinct statuses so clients
// can tell "you lack permission" from "stock state no longer permits".
func failErr(c *fiber.Ctx, err error) error {
	status := 400
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		status = 404
	case errors.Is(err, apperr.ErrUnauthorized):
		status = 403
	case errors.Is(err, apperr.ErrAlreadyRevoked), errors.Is(err, apperr.ErrConflict):
		status = 409
	case errors.Is(err, apperr.ErrInsufficientStock),
		errors.Is(err, apperr.ErrNegativeStock),
		errors.Is(err, apperr.ErrReadOnlyStore):
		status = 422
	case errors.Is(err, apperr.ErrUnknownActionKind):
		status = 500
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
