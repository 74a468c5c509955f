package uom

import (
	"errors"
	"fmt"
)

// Errores de conversión. CalculateQtyBase y VerifyConversion los devuelven envueltos en *ConversionError.
var (
	ErrInvalidFactors      = errors.New("los factores de unidad deben ser >= 1")
	ErrNegativeQuantity    = errors.New("las cantidades no pueden ser negativas")
	ErrNonPositiveTotal    = errors.New("la cantidad total debe ser > 0")
	ErrQuantityOverflow    = errors.New("la cantidad total excede el máximo admitido")
	ErrConversionMismatch  = errors.New("la conversión PPU no coincide")
	ErrInvalidMovementType = errors.New("tipo de movimiento inválido")
	ErrInsufficientStock   = errors.New("stock insuficiente")
)

// ConversionError envuelve un error sentinela con los valores que lo provocaron.
type ConversionError struct {
	Err     error
	Details string
}

func (e *ConversionError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

func conversionErr(err error, format string, args ...any) error {
	return &ConversionError{Err: err, Details: fmt.Sprintf(format, args...)}
}
