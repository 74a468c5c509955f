package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/depotix/depotix-api/internal/application/dto"
	"github.com/depotix/depotix-api/internal/application/inventory"
	"github.com/depotix/depotix-api/internal/domain"
	"github.com/depotix/depotix-api/internal/domain/uom"
	"github.com/depotix/depotix-api/internal/i18n"
)

func writeError(c *fiber.Ctx, status int, code, message string, fields map[string][]string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: dto.ErrorBody{Code: code, Message: message, Fields: fields}})
}

// errorWriter traduce errores de aplicación al sobre {"error": {...}} con el código HTTP estable.
type errorWriter struct {
	log zerolog.Logger
}

func (w errorWriter) handle(c *fiber.Ctx, err error) error {
	tag := GetLang(c)

	var vf *inventory.ValidationFailure
	if errors.As(err, &vf) {
		fields := i18n.Fields(tag, vf.Errors)
		if fields == nil {
			fields = make(map[string][]string, len(vf.Issues))
		}
		for _, issue := range vf.Issues {
			fields[issue.Field] = append(fields[issue.Field], i18n.Text(tag, issue.Key, issue.Args...))
		}
		return writeError(c, fiber.StatusBadRequest, dto.CodeValidation, i18n.Text(tag, i18n.KeyValidationError), fields)
	}

	var stockErr *inventory.StockError
	if errors.As(err, &stockErr) {
		msg := i18n.Message(tag, stockErr.ValidationError())
		return writeError(c, fiber.StatusUnprocessableEntity, dto.CodeInsufficientStock, msg,
			map[string][]string{uom.FieldQtyBase: {msg}})
	}

	switch {
	case errors.Is(err, uom.ErrConversionMismatch):
		w.log.Warn().Err(err).Str("path", c.Path()).Msg("conversión PPU rechazada")
		return writeError(c, fiber.StatusBadRequest, dto.CodeConversion, i18n.Text(tag, i18n.KeyConversionError), nil)
	case errors.Is(err, uom.ErrInvalidFactors):
		msg := i18n.Text(tag, i18n.KeyItemMisconfigured)
		return writeError(c, fiber.StatusBadRequest, dto.CodeValidation, msg, map[string][]string{uom.FieldItem: {msg}})
	case errors.Is(err, uom.ErrQuantityOverflow), errors.Is(err, uom.ErrNegativeQuantity), errors.Is(err, uom.ErrNonPositiveTotal):
		return writeError(c, fiber.StatusBadRequest, dto.CodeValidation, i18n.Text(tag, i18n.KeyValidationError),
			map[string][]string{uom.FieldQtyBase: {err.Error()}})
	case errors.Is(err, uom.ErrInvalidMovementType):
		return writeError(c, fiber.StatusBadRequest, dto.CodeValidation, i18n.Text(tag, i18n.KeyValidationError),
			map[string][]string{uom.FieldType: {err.Error()}})
	case errors.Is(err, domain.ErrInsufficientStock), errors.Is(err, uom.ErrInsufficientStock):
		return writeError(c, fiber.StatusUnprocessableEntity, dto.CodeInsufficientStock, i18n.Text(tag, i18n.KeyInsufficientStock), nil)
	case errors.Is(err, domain.ErrInvalidInput):
		return writeError(c, fiber.StatusBadRequest, dto.CodeValidation, i18n.Text(tag, i18n.KeyValidationError), nil)
	case errors.Is(err, domain.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, dto.CodeNotFound, i18n.Text(tag, i18n.KeyNotFound), nil)
	case errors.Is(err, domain.ErrDuplicate):
		return writeError(c, fiber.StatusConflict, dto.CodeConflict, i18n.Text(tag, i18n.KeyConflict), nil)
	case errors.Is(err, domain.ErrUnauthorized):
		return writeError(c, fiber.StatusUnauthorized, dto.CodeUnauthorized, i18n.Text(tag, i18n.KeyUnauthorized), nil)
	case errors.Is(err, domain.ErrForbidden):
		return writeError(c, fiber.StatusForbidden, dto.CodeForbidden, i18n.Text(tag, i18n.KeyForbidden), nil)
	}

	w.log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	return writeError(c, fiber.StatusInternalServerError, dto.CodeInternal, i18n.Text(tag, i18n.KeyInternalError), nil)
}

func (w errorWriter) invalidBody(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, dto.CodeInvalidBody, i18n.Text(GetLang(c), i18n.KeyInvalidBody), nil)
}

// ErrorHandler respuesta de Fiber para errores no manejados (rutas inexistentes, pánicos recuperados).
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			switch fe.Code {
			case fiber.StatusNotFound:
				return writeError(c, fe.Code, dto.CodeNotFound, i18n.Text(GetLang(c), i18n.KeyNotFound), nil)
			case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
				return writeError(c, fiber.StatusBadRequest, dto.CodeInvalidBody, i18n.Text(GetLang(c), i18n.KeyInvalidBody), nil)
			}
		}
		log.Error().Err(err).Str("path", c.Path()).Msg("error no manejado")
		return writeError(c, fiber.StatusInternalServerError, dto.CodeInternal, i18n.Text(GetLang(c), i18n.KeyInternalError), nil)
	}
}
