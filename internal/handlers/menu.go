package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/homemenu/backend/internal/middleware"
	"github.com/homemenu/backend/internal/services"
	"github.com/homemenu/backend/pkg/utils"
)

type MenuHandler struct {
	Manager *services.MenuManager
}

func NewMenuHandler(manager *services.MenuManager) *MenuHandler {
	return &MenuHandler{Manager: manager}
}

func (h *MenuHandler) Get(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	menu, err := h.Manager.MyMenu(c.UserContext(), currentUser)
	if err != nil {
		return serviceError(c, currentUser.ID.String(), "menu_load_failed", err)
	}
	return utils.Success(c, fiber.StatusOK, menu)
}

type updateMenuRequest struct {
	Title string `json:"title"`
}

func (h *MenuHandler) Update(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req updateMenuRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	menu, err := h.Manager.UpdateTitle(c.UserContext(), currentUser, req.Title)
	if err != nil {
		return serviceError(c, currentUser.ID.String(), "menu_update_failed", err)
	}
	return utils.Success(c, fiber.StatusOK, menu)
}

func (h *MenuHandler) AddItem(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req services.ItemInput
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	item, err := h.Manager.AddItem(c.UserContext(), currentUser, req)
	if err != nil {
		return serviceError(c, currentUser.ID.String(), "menu_item_add_failed", err)
	}
	return utils.Success(c, fiber.StatusCreated, item)
}

func (h *MenuHandler) UpdateItem(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	itemID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid item id")
	}

	var req services.ItemInput
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	item, err := h.Manager.UpdateItem(c.UserContext(), currentUser, itemID, req)
	if err != nil {
		return serviceError(c, currentUser.ID.String(), "menu_item_update_failed", err)
	}
	return utils.Success(c, fiber.StatusOK, item)
}

func (h *MenuHandler) DeleteItem(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	itemID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid item id")
	}

	if err := h.Manager.DeleteItem(c.UserContext(), currentUser, itemID); err != nil {
		return serviceError(c, currentUser.ID.String(), "menu_item_delete_failed", err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"deleted": true})
}
