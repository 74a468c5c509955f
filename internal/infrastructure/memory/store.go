// Package memory implementa los puertos de repositorio en memoria, para pruebas y ejecución local
// sin PostgreSQL (DB_DRIVER=memory). Una transacción toma el candado global y restaura una copia
// de los datos si la función falla.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/depotix/depotix-api/internal/domain"
	"github.com/depotix/depotix-api/internal/domain/entity"
	"github.com/depotix/depotix-api/internal/domain/repository"
)

// Store datos compartidos por los repositorios en memoria.
type Store struct {
	mu        sync.Mutex
	items     map[string]entity.InventoryItem
	movements map[string]entity.StockMovement
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		items:     make(map[string]entity.InventoryItem),
		movements: make(map[string]entity.StockMovement),
	}
}

// Items repositorio de artículos fuera de transacción.
func (s *Store) Items() *ItemRepo { return &ItemRepo{s: s} }

// Movements repositorio de movimientos fuera de transacción.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }

// TxRunner ejecutor de transacciones sobre el almacén.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

// TxRunner serializa las transacciones con el candado del almacén (equivale a SELECT FOR UPDATE).
type TxRunner struct {
	s *Store
}

// Run ejecuta fn con repositorios atados a la transacción; si fn falla se restaura el estado previo.
func (r *TxRunner) Run(_ context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	items := make(map[string]entity.InventoryItem, len(r.s.items))
	for k, v := range r.s.items {
		items[k] = v
	}
	movements := make(map[string]entity.StockMovement, len(r.s.movements))
	for k, v := range r.s.movements {
		movements[k] = v
	}

	if err := fn(&ItemRepo{s: r.s, inTx: true}, &MovementRepo{s: r.s, inTx: true}); err != nil {
		r.s.items = items
		r.s.movements = movements
		return err
	}
	return nil
}

func (s *Store) lock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// ItemRepo implementa repository.InventoryItemRepository.
type ItemRepo struct {
	s    *Store
	inTx bool
}

var _ repository.InventoryItemRepository = (*ItemRepo)(nil)

func (r *ItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	defer r.s.lock(r.inTx)()
	for _, it := range r.s.items {
		if it.CompanyID == item.CompanyID && it.SKU == item.SKU {
			return domain.ErrDuplicate
		}
	}
	r.s.items[item.ID] = *item
	return nil
}

func (r *ItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	defer r.s.lock(r.inTx)()
	it, ok := r.s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &it, nil
}

func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

func (r *ItemRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.InventoryItem, error) {
	defer r.s.lock(r.inTx)()
	var out []*entity.InventoryItem
	for _, it := range r.s.items {
		if it.CompanyID == companyID {
			it := it
			out = append(out, &it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return page(out, limit, offset), nil
}

func (r *ItemRepo) CountByCompany(_ context.Context, companyID string) (int, error) {
	defer r.s.lock(r.inTx)()
	n := 0
	for _, it := range r.s.items {
		if it.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

func (r *ItemRepo) ListBelowMinStock(_ context.Context, companyID string, limit int) ([]*entity.InventoryItem, error) {
	defer r.s.lock(r.inTx)()
	var out []*entity.InventoryItem
	for _, it := range r.s.items {
		if it.CompanyID == companyID && it.AvailableQty() < it.MinStockLevel {
			it := it
			out = append(out, &it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return page(out, limit, 0), nil
}

func (r *ItemRepo) UpdateStock(_ context.Context, id string, quantity, defective int64, cost decimal.Decimal) error {
	defer r.s.lock(r.inTx)()
	it, ok := r.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Quantity = quantity
	it.DefectiveQty = defective
	it.Cost = cost
	r.s.items[id] = it
	return nil
}

// Put guarda un artículo tal cual, con su stock (para preparar datos).
func (r *ItemRepo) Put(item entity.InventoryItem) {
	defer r.s.lock(r.inTx)()
	r.s.items[item.ID] = item
}

// MovementRepo implementa repository.StockMovementRepository.
type MovementRepo struct {
	s    *Store
	inTx bool
}

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

func (r *MovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	defer r.s.lock(r.inTx)()
	for _, prev := range r.s.movements {
		if prev.CompanyID == m.CompanyID && prev.IdempotencyKey == m.IdempotencyKey {
			return domain.ErrDuplicate
		}
	}
	r.s.movements[m.ID] = *m
	return nil
}

func (r *MovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	defer r.s.lock(r.inTx)()
	m, ok := r.s.movements[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

func (r *MovementRepo) GetByIdempotencyKey(_ context.Context, companyID, key string) (*entity.StockMovement, error) {
	defer r.s.lock(r.inTx)()
	for _, m := range r.s.movements {
		if m.CompanyID == companyID && m.IdempotencyKey == key {
			m := m
			return &m, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MovementRepo) ListByItem(_ context.Context, itemID string, limit, offset int) ([]*entity.StockMovement, error) {
	defer r.s.lock(r.inTx)()
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ItemID == itemID {
			m := m
			out = append(out, &m)
		}
	}
	// Más recientes primero; a igual instante decide el ID, como en PostgreSQL.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return page(out, limit, offset), nil
}

func (r *MovementRepo) CountByItem(_ context.Context, itemID string) (int, error) {
	defer r.s.lock(r.inTx)()
	n := 0
	for _, m := range r.s.movements {
		if m.ItemID == itemID {
			n++
		}
	}
	return n, nil
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
