package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/inventory/items.
type CreateItemRequest struct {
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	UnitBase          string          `json:"unit_base,omitempty"`
	UnitPalletFactor  int64           `json:"unit_pallet_factor"`
	UnitPackageFactor int64           `json:"unit_package_factor"`
	MinStockLevel     int64           `json:"min_stock_level"`
	Price             decimal.Decimal `json:"price"`
}

// ItemResponse artículo con su stock en unidades base.
type ItemResponse struct {
	ID                string          `json:"id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	UnitBase          string          `json:"unit_base"`
	UnitPalletFactor  int64           `json:"unit_pallet_factor"`
	UnitPackageFactor int64           `json:"unit_package_factor"`
	Quantity          int64           `json:"quantity"`
	DefectiveQty      int64           `json:"defective_qty"`
	AvailableQty      int64           `json:"available_qty"`
	MinStockLevel     int64           `json:"min_stock_level"`
	LowStock          bool            `json:"low_stock"`
	Price             decimal.Decimal `json:"price"`
	Cost              decimal.Decimal `json:"cost"`
	CreatedAt         time.Time       `json:"created_at"`
}

// ItemListResponse listado paginado de artículos.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// BreakdownResponse desglose de una cantidad base en palés/paquetes/unidades.
type BreakdownResponse struct {
	ItemID      string `json:"item"`
	QtyBase     int64  `json:"qty_base"`
	QtyPallets  int64  `json:"qty_pallets"`
	QtyPackages int64  `json:"qty_packages"`
	QtySingles  int64  `json:"qty_singles"`
	Formatted   string `json:"formatted"`
	Text        string `json:"text"`
}

// CreateMovementRequest body para POST /api/inventory/stock-movements (y /preview).
// Modo PPU: alguno de qty_pallets/qty_packages/qty_singles presente; qty_base, si viene, se verifica.
// Modo total: solo qty_base.
type CreateMovementRequest struct {
	ItemID         string           `json:"item"`
	Type           string           `json:"type"`
	QtyBase        *int64           `json:"qty_base,omitempty"`
	QtyPallets     *int64           `json:"qty_pallets,omitempty"`
	QtyPackages    *int64           `json:"qty_packages,omitempty"`
	QtySingles     *int64           `json:"qty_singles,omitempty"`
	SupplierID     string           `json:"supplier,omitempty"`
	CustomerID     string           `json:"customer,omitempty"`
	Note           string           `json:"note,omitempty"`
	UnitCost       *decimal.Decimal `json:"unit_cost,omitempty"`
	IdempotencyKey string           `json:"idempotency_key"`
}

// PPUMode indica si la petición trae desglose por niveles.
func (r CreateMovementRequest) PPUMode() bool {
	return r.QtyPallets != nil || r.QtyPackages != nil || r.QtySingles != nil
}

// MovementResponse movimiento registrado.
type MovementResponse struct {
	ID             string           `json:"id"`
	ItemID         string           `json:"item"`
	Type           string           `json:"type"`
	QtyBase        int64            `json:"qty_base"`
	QtyPallets     int64            `json:"qty_pallets"`
	QtyPackages    int64            `json:"qty_packages"`
	QtySingles     int64            `json:"qty_singles"`
	Delta          int64            `json:"delta"`
	SupplierID     string           `json:"supplier,omitempty"`
	CustomerID     string           `json:"customer,omitempty"`
	Note           string           `json:"note,omitempty"`
	UnitCost       *decimal.Decimal `json:"unit_cost,omitempty"`
	IdempotencyKey string           `json:"idempotency_key"`
	CreatedAt      time.Time        `json:"created_at"`
	CreatedBy      string           `json:"created_by,omitempty"`
}

// MovementListResponse listado paginado de movimientos.
type MovementListResponse struct {
	Movements []MovementResponse `json:"movements"`
	Page      PageResponse       `json:"page"`
}

// ValidationErrorDTO error de validación ya traducido.
type ValidationErrorDTO struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// MovementPreviewResponse vista previa consultiva: no reserva stock ni garantiza el resultado.
type MovementPreviewResponse struct {
	ItemID             string               `json:"item"`
	Type               string               `json:"type"`
	QtyBase            int64                `json:"qty_base"`
	Formatted          string               `json:"formatted"`
	Breakdown          string               `json:"breakdown"`
	CurrentQty         int64                `json:"current_qty"`
	AvailableQty       int64                `json:"available_qty"`
	ProjectedQty       int64                `json:"projected_qty"`
	ProjectedAvailable int64                `json:"projected_available_qty"`
	Valid              bool                 `json:"valid"`
	Errors             []ValidationErrorDTO `json:"errors"`
}

// ReorderSuggestionDTO artículo bajo su stock mínimo con el pedido sugerido en paquetes completos.
type ReorderSuggestionDTO struct {
	ItemID            string          `json:"item"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	AvailableQty      int64           `json:"available_qty"`
	MinStockLevel     int64           `json:"min_stock_level"`
	Deficit           int64           `json:"deficit"`
	SuggestedQtyBase  int64           `json:"suggested_qty_base"`
	SuggestedPallets  int64           `json:"suggested_pallets"`
	SuggestedPackages int64           `json:"suggested_packages"`
	SuggestedSingles  int64           `json:"suggested_singles"`
	Breakdown         string          `json:"breakdown"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	EstimatedCost     decimal.Decimal `json:"estimated_cost"`
	Priority          int             `json:"priority"`
}
