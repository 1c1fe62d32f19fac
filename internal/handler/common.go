package handler

import (
	"errors"

	"go-dealer-stock/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Dealer identity is set by the RequireDealer middleware.
func getDealerID(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Locals("dealer_id")
	if raw == nil {
		return uuid.Nil, errors.New("no dealer in context")
	}
	return uuid.Parse(raw.(string))
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// serviceErrorStatus maps service errors onto HTTP status codes.
func serviceErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrBrandNotFound),
		errors.Is(err, service.ErrModelNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrBrandNameTaken),
		errors.Is(err, service.ErrModelNameTaken),
		errors.Is(err, service.ErrBrandHasModels),
		errors.Is(err, service.ErrModelHasMovements),
		errors.Is(err, service.ErrInsufficientStock):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrLockTimeout):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
