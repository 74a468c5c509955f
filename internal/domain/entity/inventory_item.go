package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades base admitidas para un artículo.
const (
	UnitPiece  = "PIECE"
	UnitBottle = "BOTTLE"
	UnitCan    = "CAN"
	UnitKg     = "KG"
	UnitLiter  = "LITER"
)

// InventoryItem artículo de inventario con su jerarquía de empaque (palé → paquete → unidad).
// Quantity y DefectiveQty están siempre en unidades base; solo los movimientos las modifican.
type InventoryItem struct {
	ID                string
	CompanyID         string
	SKU               string
	Name              string
	UnitBase          string
	UnitPalletFactor  int64 // paquetes por palé (>= 1)
	UnitPackageFactor int64 // unidades base por paquete (>= 1)
	Quantity          int64
	DefectiveQty      int64
	MinStockLevel     int64
	Price             decimal.Decimal // precio de venta CHF
	Cost              decimal.Decimal // costo promedio ponderado CHF
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// AvailableQty cantidad disponible = total - defectuosa.
func (i *InventoryItem) AvailableQty() int64 {
	return i.Quantity - i.DefectiveQty
}

// Apply devuelve cantidad total y defectuosa tras un movimiento cuyo delta sobre el disponible ya
// se calculó. DEFECT traspasa unidades a defectuosas sin cambiar el total; el resto mueve el total.
func (i *InventoryItem) Apply(t MovementType, delta int64) (quantity, defective int64) {
	if t == MovementTypeDEFECT {
		return i.Quantity, i.DefectiveQty - delta
	}
	return i.Quantity + delta, i.DefectiveQty
}

// IsLowStock indica si el disponible está en o por debajo del mínimo.
func (i *InventoryItem) IsLowStock() bool {
	return i.AvailableQty() <= i.MinStockLevel
}
