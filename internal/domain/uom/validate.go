package uom

import (
	"fmt"

	"github.com/depotix/depotix-api/internal/domain/entity"
)

// ValidatePPUInput revisa todas las reglas sin cortar en la primera falla, para que el formulario
// marque cada campo inválido de una vez. Devuelve nil si la entrada es válida.
func ValidatePPUInput(in PPUInput, f UnitFactors) []ValidationError {
	var errs []ValidationError

	if in.Pallets < 0 {
		errs = append(errs, ValidationError{Field: FieldPallets, Kind: KindQuantityInvalid})
	}
	if in.Packages < 0 {
		errs = append(errs, ValidationError{Field: FieldPackages, Kind: KindQuantityInvalid})
	}
	if in.Singles < 0 {
		errs = append(errs, ValidationError{Field: FieldSingles, Kind: KindQuantityInvalid})
	}

	if in.IsZero() {
		errs = append(errs, ValidationError{Field: FieldQtyBase, Kind: KindQuantityRequired})
	}

	// Configuración del artículo, no del usuario: un error por factor.
	if f.PalletFactor < 1 {
		errs = append(errs, ValidationError{Field: FieldItem, Kind: KindPalletFactorInvalid})
	}
	if f.PackageFactor < 1 {
		errs = append(errs, ValidationError{Field: FieldItem, Kind: KindPackageFactorInvalid})
	}

	return errs
}

// ValidateMovementType verificación optimista previa al envío: solo OUT y DEFECT dependen del stock.
// El backend hace la verificación definitiva bajo bloqueo; este resultado nunca es una garantía.
func ValidateMovementType(t entity.MovementType, qtyBase, available int64) *ValidationError {
	if t != entity.MovementTypeOUT && t != entity.MovementTypeDEFECT {
		return nil
	}
	if qtyBase > available {
		return &ValidationError{
			Field:  FieldQtyBase,
			Kind:   KindInsufficientStock,
			Params: []int64{available, qtyBase},
		}
	}
	return nil
}

// ValidateMovementData reglas del servidor antes de aplicar un movimiento (dentro de la transacción):
// cantidad > 0, OUT/DEFECT no pueden superar current y el tipo debe ser conocido.
func ValidateMovementData(t entity.MovementType, qtyBase, current int64) error {
	if qtyBase <= 0 {
		return conversionErr(ErrNonPositiveTotal, "recibido: %d", qtyBase)
	}
	if (t == entity.MovementTypeOUT || t == entity.MovementTypeDEFECT) && qtyBase > current {
		return conversionErr(ErrInsufficientStock,
			"disponible: %s, solicitado: %s", FormatQuantity(current), FormatQuantity(qtyBase))
	}
	if !t.Valid() {
		return invalidTypeErr(t)
	}
	return nil
}

// CalculateDelta cambio a aplicar sobre la cantidad actual según el tipo.
// ADJUST fija la cantidad absoluta, por eso depende de current.
func CalculateDelta(t entity.MovementType, qtyBase, current int64) (int64, error) {
	switch t {
	case entity.MovementTypeIN, entity.MovementTypeRETURN:
		return qtyBase, nil
	case entity.MovementTypeOUT, entity.MovementTypeDEFECT:
		return -qtyBase, nil
	case entity.MovementTypeADJUST:
		return qtyBase - current, nil
	}
	return 0, invalidTypeErr(t)
}

func invalidTypeErr(t entity.MovementType) error {
	return conversionErr(ErrInvalidMovementType, "%q, permitidos: %v", string(t), entity.MovementTypes)
}

// StockAfter cantidad proyectada tras aplicar el movimiento (para la vista previa).
func StockAfter(t entity.MovementType, qtyBase, current int64) (int64, error) {
	delta, err := CalculateDelta(t, qtyBase, current)
	if err != nil {
		return 0, fmt.Errorf("proyectar stock: %w", err)
	}
	return current + delta, nil
}
