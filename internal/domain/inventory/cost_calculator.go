package inventory

import "github.com/shopspring/decimal"

// CostCalculator costo promedio ponderado tras una entrada (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Las cantidades van en unidades base; el costo es por unidad base.
func CostCalculator(stockActual int64, costoActual decimal.Decimal, cantEntrada int64, costoEntrada decimal.Decimal) decimal.Decimal {
	actual := decimal.NewFromInt(max(stockActual, 0))
	entrada := decimal.NewFromInt(cantEntrada)
	sum := actual.Add(entrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := actual.Mul(costoActual).Add(entrada.Mul(costoEntrada))
	return num.Div(sum).Round(4)
}
