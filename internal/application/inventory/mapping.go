package inventory

import (
	"github.com/depotix/depotix-api/internal/application/dto"
	"github.com/depotix/depotix-api/internal/domain/entity"
	"github.com/depotix/depotix-api/internal/domain/uom"
)

func factorsOf(item *entity.InventoryItem) uom.UnitFactors {
	return uom.UnitFactors{PalletFactor: item.UnitPalletFactor, PackageFactor: item.UnitPackageFactor}
}

func toItemResponse(item *entity.InventoryItem) dto.ItemResponse {
	return dto.ItemResponse{
		ID:                item.ID,
		SKU:               item.SKU,
		Name:              item.Name,
		UnitBase:          item.UnitBase,
		UnitPalletFactor:  item.UnitPalletFactor,
		UnitPackageFactor: item.UnitPackageFactor,
		Quantity:          item.Quantity,
		DefectiveQty:      item.DefectiveQty,
		AvailableQty:      item.AvailableQty(),
		MinStockLevel:     item.MinStockLevel,
		LowStock:          item.IsLowStock(),
		Price:             item.Price,
		Cost:              item.Cost,
		CreatedAt:         item.CreatedAt,
	}
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		ItemID:         m.ItemID,
		Type:           string(m.Type),
		QtyBase:        m.QtyBase,
		QtyPallets:     m.QtyPallets,
		QtyPackages:    m.QtyPackages,
		QtySingles:     m.QtySingles,
		Delta:          m.Delta,
		SupplierID:     m.SupplierID,
		CustomerID:     m.CustomerID,
		Note:           m.Note,
		UnitCost:       m.UnitCost,
		IdempotencyKey: m.IdempotencyKey,
		CreatedAt:      m.CreatedAt,
		CreatedBy:      m.CreatedBy,
	}
}

func derefOrZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
