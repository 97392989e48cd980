package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/homemenu/backend/internal/services"
	"github.com/homemenu/backend/pkg/logger"
	"github.com/homemenu/backend/pkg/utils"
)

func parseUUID(value string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(value))
}

// serviceError writes the response for an error returned by the services
// package.
func serviceError(c *fiber.Ctx, userID string, action string, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrRoomNotFound):
		return utils.Error(c, fiber.StatusNotFound, "room not found or expired")
	case errors.Is(err, services.ErrItemNotFound):
		return utils.Error(c, fiber.StatusNotFound, "menu item not found")
	case errors.Is(err, services.ErrSharedMenuNotFound):
		return utils.Error(c, fiber.StatusNotFound, "shared menu not found")
	case errors.Is(err, services.ErrRoomAllocationFailed):
		logger.ErrorWithUser(userID, action, err, nil)
		return utils.Error(c, fiber.StatusServiceUnavailable, "could not allocate a room code, try again")
	case errors.Is(err, services.ErrStorageUnavailable):
		logger.ErrorWithUser(userID, action, err, nil)
		return utils.Error(c, fiber.StatusServiceUnavailable, "storage temporarily unavailable")
	default:
		logger.ErrorWithUser(userID, action, err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "internal error")
	}
}
