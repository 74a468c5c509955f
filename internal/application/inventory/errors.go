package inventory

import (
	"strings"

	"github.com/depotix/depotix-api/internal/domain"
	"github.com/depotix/depotix-api/internal/domain/uom"
)

// FieldIssue error de un campo que no es de cantidades (cliente, tipo, llave); Key es la llave de i18n.
type FieldIssue struct {
	Field string
	Key   string
	Args  []any
}

// ValidationFailure agrupa todos los errores de entrada de una petición. El handler la traduce a
// VALIDATION_ERROR con el detalle por campo.
type ValidationFailure struct {
	Errors []uom.ValidationError
	Issues []FieldIssue
}

func (f *ValidationFailure) Error() string {
	parts := make([]string, 0, len(f.Errors)+len(f.Issues))
	for _, e := range f.Errors {
		parts = append(parts, e.Error())
	}
	for _, i := range f.Issues {
		parts = append(parts, i.Field+": "+i.Key)
	}
	return "validación: " + strings.Join(parts, ", ")
}

func (f *ValidationFailure) Unwrap() error {
	return domain.ErrInvalidInput
}

func (f *ValidationFailure) empty() bool {
	return len(f.Errors) == 0 && len(f.Issues) == 0
}

// StockError la verificación bajo bloqueo encontró menos stock disponible que el solicitado.
type StockError struct {
	Available int64
	Requested int64
}

func (e *StockError) Error() string {
	return "stock insuficiente: disponible " + uom.FormatQuantity(e.Available) +
		", solicitado " + uom.FormatQuantity(e.Requested)
}

func (e *StockError) Unwrap() error {
	return domain.ErrInsufficientStock
}

// ValidationError la misma violación que reporta la validación previa del formulario.
func (e *StockError) ValidationError() uom.ValidationError {
	return uom.ValidationError{
		Field:  uom.FieldQtyBase,
		Kind:   uom.KindInsufficientStock,
		Params: []int64{e.Available, e.Requested},
	}
}
