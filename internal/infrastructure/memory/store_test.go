package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depotix/depotix-api/internal/domain"
	"github.com/depotix/depotix-api/internal/domain/entity"
	"github.com/depotix/depotix-api/internal/domain/repository"
	"github.com/depotix/depotix-api/internal/infrastructure/memory"
)

func TestTxRunner_RollbackRestoresState(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	s.Items().Put(entity.InventoryItem{ID: "i1", CompanyID: "c1", SKU: "A", Quantity: 10})

	boom := errors.New("boom")
	err := s.TxRunner().Run(ctx, func(items repository.InventoryItemRepository, movs repository.StockMovementRepository) error {
		require.NoError(t, items.UpdateStock(ctx, "i1", 99, 3, decimal.Zero))
		require.NoError(t, movs.Create(ctx, &entity.StockMovement{ID: "m1", CompanyID: "c1", ItemID: "i1", IdempotencyKey: "k"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	it, err := s.Items().GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), it.Quantity)
	_, err = s.Movements().GetByID(ctx, "m1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovementRepo_DuplicateKeyPerCompany(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Movements()
	require.NoError(t, repo.Create(ctx, &entity.StockMovement{ID: "m1", CompanyID: "c1", IdempotencyKey: "k"}))
	assert.ErrorIs(t, repo.Create(ctx, &entity.StockMovement{ID: "m2", CompanyID: "c1", IdempotencyKey: "k"}), domain.ErrDuplicate)
	assert.NoError(t, repo.Create(ctx, &entity.StockMovement{ID: "m3", CompanyID: "c2", IdempotencyKey: "k"}))
}

func TestItemRepo_ListBelowMinStock(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Items()
	repo.Put(entity.InventoryItem{ID: "low", CompanyID: "c1", SKU: "A", Quantity: 5, MinStockLevel: 10})
	repo.Put(entity.InventoryItem{ID: "defect", CompanyID: "c1", SKU: "B", Quantity: 12, DefectiveQty: 4, MinStockLevel: 10})
	repo.Put(entity.InventoryItem{ID: "ok", CompanyID: "c1", SKU: "C", Quantity: 10, MinStockLevel: 10})
	repo.Put(entity.InventoryItem{ID: "other", CompanyID: "c2", SKU: "D", Quantity: 0, MinStockLevel: 10})

	list, err := repo.ListBelowMinStock(ctx, "c1", 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "low", list[0].ID)
	assert.Equal(t, "defect", list[1].ID)
}

func TestMovementRepo_ListByItemSameInstantOrderedByID(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Movements()
	at := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	for _, id := range []string{"m-b", "m-c", "m-a"} {
		require.NoError(t, repo.Create(ctx, &entity.StockMovement{
			ID: id, CompanyID: "c1", ItemID: "i1", IdempotencyKey: id, CreatedAt: at,
		}))
	}
	require.NoError(t, repo.Create(ctx, &entity.StockMovement{
		ID: "m-new", CompanyID: "c1", ItemID: "i1", IdempotencyKey: "new", CreatedAt: at.Add(time.Second),
	}))

	for range 5 {
		list, err := repo.ListByItem(ctx, "i1", 10, 0)
		require.NoError(t, err)
		ids := make([]string, 0, len(list))
		for _, m := range list {
			ids = append(ids, m.ID)
		}
		assert.Equal(t, []string{"m-new", "m-c", "m-b", "m-a"}, ids)
	}

	n, err := repo.CountByItem(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestItemRepo_UpdateStockWritesDefective(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Items()
	repo.Put(entity.InventoryItem{ID: "i1", CompanyID: "c1", SKU: "A", Quantity: 10})

	require.NoError(t, repo.UpdateStock(ctx, "i1", 10, 4, decimal.Zero))
	it, err := repo.GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, int64(6), it.AvailableQty())
}
