package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento de stock.
type MovementType string

const (
	MovementTypeIN     MovementType = "IN"     // entrada de proveedor
	MovementTypeOUT    MovementType = "OUT"    // salida a cliente
	MovementTypeRETURN MovementType = "RETURN" // devolución de cliente
	MovementTypeDEFECT MovementType = "DEFECT" // baja por defecto
	MovementTypeADJUST MovementType = "ADJUST" // ajuste: fija la cantidad absoluta
)

// MovementTypes todos los tipos válidos, en orden de presentación.
var MovementTypes = []MovementType{
	MovementTypeIN, MovementTypeOUT, MovementTypeRETURN, MovementTypeDEFECT, MovementTypeADJUST,
}

// Valid indica si t es uno de los tipos conocidos.
func (t MovementType) Valid() bool {
	for _, mt := range MovementTypes {
		if t == mt {
			return true
		}
	}
	return false
}

// StockMovement movimiento de stock en unidades base, con el desglose PPU que ingresó el usuario.
// IdempotencyKey es única por empresa: un reintento con la misma llave devuelve este registro.
type StockMovement struct {
	ID             string
	CompanyID      string
	ItemID         string
	Type           MovementType
	QtyBase        int64
	QtyPallets     int64
	QtyPackages    int64
	QtySingles     int64
	Delta          int64 // cambio del disponible (Quantity - DefectiveQty) del artículo
	SupplierID     string
	CustomerID     string
	Note           string
	UnitCost       *decimal.Decimal
	IdempotencyKey string
	CreatedAt      time.Time
	CreatedBy      string
}
