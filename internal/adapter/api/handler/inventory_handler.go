package handler

import (
	"github.com/labstack/echo/v4"

	"dailyrewards/internal/domain/entity"
	"dailyrewards/pkg/errors"
	"dailyrewards/pkg/response"
	"dailyrewards/pkg/utils"
)

type InventoryHandler struct {
	inventory InventoryService
}

func NewInventoryHandler(inventory InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

func (h *InventoryHandler) List(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	filter := entity.InventoryFilter{
		Rarity:   entity.Rarity(c.QueryParam("rarity")),
		Type:     entity.ItemType(c.QueryParam("type")),
		ShowUsed: utils.QueryBool(c, "show_used"),
	}
	if filter.Rarity != "" && !filter.Rarity.Valid() {
		return response.Error(c, errors.InvalidInput("Unknown rarity: "+string(filter.Rarity), nil))
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return response.Error(c, errors.InvalidInput("Unknown item type: "+string(filter.Type), nil))
	}

	items, total, err := h.inventory.List(c.Request().Context(), currentUser(c), filter, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, items, total, pagination.Page, pagination.PageSize)
}

func (h *InventoryHandler) GetStats(c echo.Context) error {
	stats, err := h.inventory.Stats(c.Request().Context(), currentUser(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, stats)
}

func (h *InventoryHandler) UseItem(c echo.Context) error {
	item, err := h.inventory.UseItem(c.Request().Context(), currentUser(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, item)
}

func (h *InventoryHandler) DeleteItem(c echo.Context) error {
	if err := h.inventory.DeleteItem(c.Request().Context(), currentUser(c), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Item deleted successfully",
	})
}
