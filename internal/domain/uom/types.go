// Package uom contiene el motor de conversión de unidades (palé → paquete → unidad) y la validación
// de movimientos de stock. Son funciones puras: el cliente (formularios, CLI) y el servidor (API)
// usan exactamente este código para que el cálculo de qty_base coincida bit a bit.
package uom

// MaxQty es la mayor cantidad base admitida (2^53-1): el mayor entero que los clientes JavaScript
// y los consumidores JSON representan sin pérdida.
const MaxQty int64 = 1<<53 - 1

// UnitFactors configuración de empaque de un artículo.
// PalletFactor = paquetes por palé; PackageFactor = unidades base por paquete. Un factor 1 colapsa el nivel.
type UnitFactors struct {
	PalletFactor  int64 `json:"unit_pallet_factor"`
	PackageFactor int64 `json:"unit_package_factor"`
}

// UnitsPerPallet devuelve pallet×package y false si el producto no cabe en MaxQty.
func (f UnitFactors) UnitsPerPallet() (int64, bool) {
	return mulChecked(f.PalletFactor, f.PackageFactor)
}

// Valid indica si ambos factores son >= 1.
func (f UnitFactors) Valid() bool {
	return f.PalletFactor >= 1 && f.PackageFactor >= 1
}

// PPUInput cantidad ingresada en los tres niveles (Pallet/Package/Unit). Transitoria, nunca se persiste tal cual.
type PPUInput struct {
	Pallets  int64 `json:"qty_pallets"`
	Packages int64 `json:"qty_packages"`
	Singles  int64 `json:"qty_singles"`
}

// IsZero indica si los tres niveles son exactamente cero.
func (in PPUInput) IsZero() bool {
	return in.Pallets == 0 && in.Packages == 0 && in.Singles == 0
}

// Campos a los que se asocian los errores de validación (mismos nombres que el cuerpo JSON).
const (
	FieldPallets  = "qty_pallets"
	FieldPackages = "qty_packages"
	FieldSingles  = "qty_singles"
	FieldQtyBase  = "qty_base"
	FieldItem     = "item"
	FieldType     = "type"
)

// Kind identifica el tipo de violación; el texto para el usuario lo arma internal/i18n.
type Kind string

const (
	KindQuantityInvalid      Kind = "quantity_invalid"       // nivel negativo
	KindQuantityRequired     Kind = "quantity_required"      // los tres niveles en cero
	KindPalletFactorInvalid  Kind = "pallet_factor_invalid"  // configuración del artículo
	KindPackageFactorInvalid Kind = "package_factor_invalid" // configuración del artículo
	KindInsufficientStock    Kind = "insufficient_stock"     // Params: disponible, solicitado
)

// ValidationError una violación de regla asociada a un campo del formulario.
// Params lleva los valores numéricos que necesita el mensaje (p. ej. disponible y solicitado).
type ValidationError struct {
	Field  string  `json:"field"`
	Kind   Kind    `json:"kind"`
	Params []int64 `json:"params,omitempty"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + string(e.Kind)
}

func mulChecked(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a < 0 || b < 0 || a > MaxQty/b {
		return 0, false
	}
	return a * b, true
}

func addChecked(a, b int64) (int64, bool) {
	if a > MaxQty-b {
		return 0, false
	}
	return a + b, true
}
