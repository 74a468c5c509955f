package repository

import (
	"context"

	"github.com/depotix/depotix-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos de stock.
// Create devuelve domain.ErrDuplicate si la llave de idempotencia ya existe para la empresa.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	GetByIdempotencyKey(ctx context.Context, companyID, key string) (*entity.StockMovement, error)
	ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.StockMovement, error)
	CountByItem(ctx context.Context, itemID string) (int, error)
}
