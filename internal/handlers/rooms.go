package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/homemenu/backend/internal/middleware"
	"github.com/homemenu/backend/internal/models"
	"github.com/homemenu/backend/internal/services"
	"github.com/homemenu/backend/pkg/utils"
)

type RoomsHandler struct {
	Manager *services.MenuManager
}

func NewRoomsHandler(manager *services.MenuManager) *RoomsHandler {
	return &RoomsHandler{Manager: manager}
}

type createRoomRequest struct {
	DurationInDays *int `json:"durationInDays"`
}

// Create shares the caller's menu. A missing duration defaults to the
// shortest room lifetime.
func (h *RoomsHandler) Create(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req createRoomRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
		}
	}

	days := models.MinRoomDurationDays
	if req.DurationInDays != nil {
		days = *req.DurationInDays
	}

	room, err := h.Manager.ShareMenu(c.UserContext(), currentUser, days)
	if err != nil {
		return serviceError(c, currentUser.ID.String(), "room_create_failed", err)
	}
	return utils.Success(c, fiber.StatusCreated, room)
}

func (h *RoomsHandler) Join(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	code := strings.TrimSpace(c.Params("code"))
	menu, err := h.Manager.JoinRoom(c.UserContext(), currentUser, code)
	if err != nil {
		return serviceError(c, currentUser.ID.String(), "room_join_failed", err)
	}
	return utils.Success(c, fiber.StatusOK, menu)
}

func (h *RoomsHandler) ListShared(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	menus, err := h.Manager.SharedMenus(c.UserContext(), currentUser)
	if err != nil {
		return serviceError(c, currentUser.ID.String(), "shared_menus_list_failed", err)
	}
	return utils.Success(c, fiber.StatusOK, menus)
}

func (h *RoomsHandler) RemoveShared(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	menuID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid menu id")
	}

	if err := h.Manager.RemoveSharedMenu(c.UserContext(), currentUser, menuID); err != nil {
		return serviceError(c, currentUser.ID.String(), "shared_menu_remove_failed", err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"deleted": true})
}
