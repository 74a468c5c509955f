package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/depotix/depotix-api/internal/domain/entity"
)

// InventoryItemRepository define el puerto de persistencia para artículos (DIP).
// Las cantidades solo cambian vía UpdateStock, dentro de la transacción del movimiento.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila del artículo (SELECT FOR UPDATE) hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.InventoryItem, error)
	CountByCompany(ctx context.Context, companyID string) (int, error)
	// ListBelowMinStock artículos con disponible (quantity - defective_qty) bajo min_stock_level.
	ListBelowMinStock(ctx context.Context, companyID string, limit int) ([]*entity.InventoryItem, error)
	// UpdateStock fija cantidad total, defectuosa y costo promedio.
	UpdateStock(ctx context.Context, id string, quantity, defective int64, cost decimal.Decimal) error
}
