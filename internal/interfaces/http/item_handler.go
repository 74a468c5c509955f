package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/depotix/depotix-api/internal/application/dto"
	"github.com/depotix/depotix-api/internal/application/inventory"
	"github.com/depotix/depotix-api/internal/domain/uom"
)

// ItemHandler maneja las peticiones HTTP de artículos (protegido).
type ItemHandler struct {
	uc            *inventory.ItemUseCase
	replenishment *inventory.ReplenishmentUseCase
	errs          errorWriter
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *inventory.ItemUseCase, replenishment *inventory.ReplenishmentUseCase, log zerolog.Logger) *ItemHandler {
	return &ItemHandler{uc: uc, replenishment: replenishment, errs: errorWriter{log: log}}
}

// Create godoc
// @Summary      Crear artículo
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "sku, name, unit_pallet_factor, unit_package_factor"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return h.errs.invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return h.errs.handle(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener artículo (incluye available_qty)
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return h.errs.handle(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar artículos
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo de resultados (1-100)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.ItemListResponse
// @Router       /api/inventory/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), page)
	if err != nil {
		return h.errs.handle(c, err)
	}
	return c.JSON(out)
}

// Breakdown godoc
// @Summary      Desglose palés/paquetes/unidades de una cantidad base
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id        path   string  true  "ID del artículo"
// @Param        qty_base  query  string  true  "Cantidad en unidades base"
// @Success      200  {object}  dto.BreakdownResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/breakdown [get]
func (h *ItemHandler) Breakdown(c *fiber.Ctx) error {
	qty := uom.ParseQuantity(c.Query("qty_base"))
	out, err := h.uc.Breakdown(c.UserContext(), GetCompanyID(c), c.Params("id"), qty, GetLang(c))
	if err != nil {
		return h.errs.handle(c, err)
	}
	return c.JSON(out)
}

// ReorderSuggestions godoc
// @Summary      Sugerencias de reposición
// @Description  Artículos con disponible bajo min_stock_level, con el pedido sugerido en paquetes completos.
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReorderSuggestionDTO
// @Router       /api/inventory/reorder-suggestions [get]
func (h *ItemHandler) ReorderSuggestions(c *fiber.Ctx) error {
	out, err := h.replenishment.GenerateReplenishmentList(c.UserContext(), GetCompanyID(c), GetLang(c))
	if err != nil {
		return h.errs.handle(c, err)
	}
	return c.JSON(out)
}
