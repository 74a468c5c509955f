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

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación de StockMovementRepository sobre PostgreSQL.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, company_id, item_id, type, qty_base, qty_pallets, qty_packages, qty_singles,
	delta, supplier_id, customer_id, note, unit_cost, idempotency_key, created_at, created_by`

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var (
		m                             entity.StockMovement
		typ                           string
		supplier, customer, createdBy *string
		unitCost                      decimal.NullDecimal
	)
	err := row.Scan(
		&m.ID, &m.CompanyID, &m.ItemID, &typ, &m.QtyBase, &m.QtyPallets, &m.QtyPackages, &m.QtySingles,
		&m.Delta, &supplier, &customer, &m.Note, &unitCost, &m.IdempotencyKey, &m.CreatedAt, &createdBy,
	)
	if err != nil {
		return nil, err
	}
	m.Type = entity.MovementType(typ)
	if supplier != nil {
		m.SupplierID = *supplier
	}
	if customer != nil {
		m.CustomerID = *customer
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	if unitCost.Valid {
		m.UnitCost = &unitCost.Decimal
	}
	return &m, nil
}

// Create inserta el movimiento. La llave de idempotencia es única por empresa: un choque → domain.ErrDuplicate.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.CompanyID, m.ItemID, string(m.Type), m.QtyBase, m.QtyPallets, m.QtyPackages, m.QtySingles,
		m.Delta, nullIfEmpty(m.SupplierID), nullIfEmpty(m.CustomerID), m.Note, m.UnitCost,
		m.IdempotencyKey, m.CreatedAt, nullIfEmpty(m.CreatedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por id.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	return r.getOne(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE id = $1`, id)
}

// GetByIdempotencyKey busca el movimiento ya registrado con esa llave.
func (r *StockMovementRepo) GetByIdempotencyKey(ctx context.Context, companyID, key string) (*entity.StockMovement, error) {
	return r.getOne(ctx,
		`SELECT `+movementColumns+` FROM stock_movements WHERE company_id = $1 AND idempotency_key = $2`,
		companyID, key)
}

func (r *StockMovementRepo) getOne(ctx context.Context, query string, args ...any) (*entity.StockMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// CountByItem total de movimientos del artículo.
func (r *StockMovementRepo) CountByItem(ctx context.Context, itemID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM stock_movements WHERE item_id = $1`, itemID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count stock movements: %w", err)
	}
	return n, nil
}

// ListByItem historial de un artículo, más recientes primero.
func (r *StockMovementRepo) ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, `SELECT `+movementColumns+` FROM stock_movements
		WHERE item_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var out []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
