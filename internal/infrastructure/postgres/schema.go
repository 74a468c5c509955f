package postgres

import (
	"context"
	"fmt"
)

// EnsureSchema crea las tablas si no existen (DB_AUTO_MIGRATE=true). Idempotente.
func EnsureSchema(ctx context.Context, q Querier) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS inventory_items (
			id                  UUID PRIMARY KEY,
			company_id          UUID NOT NULL,
			sku                 TEXT NOT NULL,
			name                TEXT NOT NULL,
			unit_base           TEXT NOT NULL DEFAULT 'PIECE',
			unit_pallet_factor  BIGINT NOT NULL DEFAULT 1 CHECK (unit_pallet_factor >= 1),
			unit_package_factor BIGINT NOT NULL DEFAULT 1 CHECK (unit_package_factor >= 1),
			quantity            BIGINT NOT NULL DEFAULT 0 CHECK (quantity >= 0),
			defective_qty       BIGINT NOT NULL DEFAULT 0 CHECK (defective_qty >= 0),
			min_stock_level     BIGINT NOT NULL DEFAULT 0,
			price               NUMERIC(12,2) NOT NULL DEFAULT 0,
			cost                NUMERIC(14,4) NOT NULL DEFAULT 0,
			created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (company_id, sku)
		)`,
		`CREATE TABLE IF NOT EXISTS stock_movements (
			id              UUID PRIMARY KEY,
			company_id      UUID NOT NULL,
			item_id         UUID NOT NULL REFERENCES inventory_items(id),
			type            TEXT NOT NULL CHECK (type IN ('IN','OUT','RETURN','DEFECT','ADJUST')),
			qty_base        BIGINT NOT NULL CHECK (qty_base > 0),
			qty_pallets     BIGINT NOT NULL DEFAULT 0,
			qty_packages    BIGINT NOT NULL DEFAULT 0,
			qty_singles     BIGINT NOT NULL DEFAULT 0,
			delta           BIGINT NOT NULL,
			supplier_id     TEXT,
			customer_id     TEXT,
			note            TEXT NOT NULL DEFAULT '',
			unit_cost       NUMERIC(14,4),
			idempotency_key TEXT NOT NULL,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
			created_by      TEXT,
			UNIQUE (company_id, idempotency_key)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_stock_movements_item_created
			ON stock_movements (item_id, created_at DESC)`,
	}
	for _, query := range queries {
		if _, err := q.Exec(ctx, query); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
