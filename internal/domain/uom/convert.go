package uom

// CalculateQtyBase convierte una entrada PPU a unidades base:
//
//	pallets × pallet_factor × package_factor + packages × package_factor + singles
//
// Falla sin resultado parcial si los factores son < 1, algún nivel es negativo, el total
// no cabe en MaxQty o el total es <= 0.
func CalculateQtyBase(in PPUInput, f UnitFactors) (int64, error) {
	if !f.Valid() {
		return 0, conversionErr(ErrInvalidFactors,
			"factor palé: %d, factor paquete: %d", f.PalletFactor, f.PackageFactor)
	}
	if in.Pallets < 0 || in.Packages < 0 || in.Singles < 0 {
		return 0, conversionErr(ErrNegativeQuantity,
			"palés: %d, paquetes: %d, unidades: %d", in.Pallets, in.Packages, in.Singles)
	}

	total, ok := sumTiers(in, f)
	if !ok {
		return 0, conversionErr(ErrQuantityOverflow,
			"palés: %d, paquetes: %d, unidades: %d, máximo: %d", in.Pallets, in.Packages, in.Singles, MaxQty)
	}
	if total <= 0 {
		return 0, conversionErr(ErrNonPositiveTotal, "calculado: %d", total)
	}
	return total, nil
}

func sumTiers(in PPUInput, f UnitFactors) (int64, bool) {
	perPallet, ok := f.UnitsPerPallet()
	if !ok && in.Pallets > 0 {
		return 0, false
	}
	fromPallets, ok := mulChecked(in.Pallets, perPallet)
	if !ok {
		return 0, false
	}
	fromPackages, ok := mulChecked(in.Packages, f.PackageFactor)
	if !ok {
		return 0, false
	}
	total, ok := addChecked(fromPallets, fromPackages)
	if !ok {
		return 0, false
	}
	return addChecked(total, in.Singles)
}

// ConvertFromBase descompone una cantidad base en palés, paquetes y unidades por división entera:
// primero el máximo de palés completos, luego paquetes del resto y lo que sobra en unidades.
// La descomposición es única. Factores < 1 se tratan como 1; bases <= 0 dan el valor cero.
func ConvertFromBase(base int64, f UnitFactors) PPUInput {
	if base <= 0 {
		return PPUInput{}
	}
	packageFactor := max(f.PackageFactor, 1)
	palletFactor := max(f.PalletFactor, 1)

	var out PPUInput
	remainder := base
	if perPallet, ok := mulChecked(palletFactor, packageFactor); ok {
		out.Pallets = remainder / perPallet
		remainder %= perPallet
	}
	out.Packages = remainder / packageFactor
	out.Singles = remainder % packageFactor
	return out
}

// VerifyConversion recalcula qty_base en el servidor y lo compara con el valor que envió el cliente.
func VerifyConversion(in PPUInput, f UnitFactors, received int64) error {
	calculated, err := CalculateQtyBase(in, f)
	if err != nil {
		return err
	}
	if calculated != received {
		return conversionErr(ErrConversionMismatch,
			"calculado: %d, recibido: %d (palés: %d, paquetes: %d, unidades: %d)",
			calculated, received, in.Pallets, in.Packages, in.Singles)
	}
	return nil
}
