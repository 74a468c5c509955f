package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/depotix/depotix-api/internal/domain"
	"github.com/depotix/depotix-api/internal/domain/entity"
	"github.com/depotix/depotix-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de InventoryItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de artículos. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, company_id, sku, name, unit_base, unit_pallet_factor, unit_package_factor,
	quantity, defective_qty, min_stock_level, price, cost, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(
		&it.ID, &it.CompanyID, &it.SKU, &it.Name, &it.UnitBase, &it.UnitPalletFactor, &it.UnitPackageFactor,
		&it.Quantity, &it.DefectiveQty, &it.MinStockLevel, &it.Price, &it.Cost, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create inserta un artículo. SKU repetido en la empresa → domain.ErrDuplicate.
func (r *ItemRepo) Create(ctx context.Context, it *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.CompanyID, it.SKU, it.Name, it.UnitBase, it.UnitPalletFactor, it.UnitPackageFactor,
		it.Quantity, it.DefectiveQty, it.MinStockLevel, it.Price, it.Cost, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por id.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// GetForUpdate obtiene el artículo y bloquea la fila para update (SELECT FOR UPDATE).
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get item for update: %w", err)
	}
	return it, nil
}

// ListByCompany lista artículos de la empresa ordenados por SKU.
func (r *ItemRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items
		WHERE company_id = $1 ORDER BY sku LIMIT $2 OFFSET $3`
	return r.list(ctx, query, companyID, limit, offset)
}

// CountByCompany total de artículos de la empresa, para paginar.
func (r *ItemRepo) CountByCompany(ctx context.Context, companyID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM inventory_items WHERE company_id = $1`, companyID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

// ListBelowMinStock artículos cuyo disponible está bajo el mínimo.
func (r *ItemRepo) ListBelowMinStock(ctx context.Context, companyID string, limit int) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items
		WHERE company_id = $1 AND quantity - defective_qty < min_stock_level
		ORDER BY sku LIMIT $2`
	return r.list(ctx, query, companyID, limit)
}

func (r *ItemRepo) list(ctx context.Context, query string, args ...any) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var out []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// UpdateStock fija cantidades y costo promedio; solo se llama dentro de la transacción del movimiento.
func (r *ItemRepo) UpdateStock(ctx context.Context, id string, quantity, defective int64, cost decimal.Decimal) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET quantity = $2, defective_qty = $3, cost = $4, updated_at = now() WHERE id = $1`,
		id, quantity, defective, cost)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
