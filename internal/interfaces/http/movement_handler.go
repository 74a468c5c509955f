package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/depotix/depotix-api/internal/application/dto"
	"github.com/depotix/depotix-api/internal/application/inventory"
)

// MovementHandler maneja las peticiones HTTP de movimientos de stock (protegido).
type MovementHandler struct {
	uc   *inventory.RegisterMovementUseCase
	errs errorWriter
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.RegisterMovementUseCase, log zerolog.Logger) *MovementHandler {
	return &MovementHandler{uc: uc, errs: errorWriter{log: log}}
}

// Create godoc
// @Summary      Registrar movimiento de stock
// @Description  Modo PPU (qty_pallets/qty_packages/qty_singles, qty_base opcional y verificado) o modo total (qty_base).
// @Description  Una idempotency_key repetida devuelve el movimiento existente con 200.
// @Tags         stock-movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return h.errs.invalidBody(c)
	}
	res, err := h.uc.Register(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return h.errs.handle(c, err)
	}
	status := fiber.StatusCreated
	if res.Replayed {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(res.Movement)
}

// Preview godoc
// @Summary      Vista previa de un movimiento (consultiva)
// @Tags         stock-movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "Movimiento"
// @Success      200   {object}  dto.MovementPreviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-movements/preview [post]
func (h *MovementHandler) Preview(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return h.errs.invalidBody(c)
	}
	out, err := h.uc.Preview(c.UserContext(), GetCompanyID(c), in, GetLang(c))
	if err != nil {
		return h.errs.handle(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Historial de movimientos de un artículo
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        item    query  string  true   "ID del artículo"
// @Param        limit   query  int     false  "Máximo de resultados (1-100)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListByItem(c.UserContext(), GetCompanyID(c), c.Query("item"), page)
	if err != nil {
		return h.errs.handle(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return h.errs.handle(c, err)
	}
	return c.JSON(out)
}
