package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/depotix/depotix-api/internal/domain/inventory"
)

func TestCostCalculator_PromedioPonderado(t *testing.T) {
	got := inventory.CostCalculator(100, decimal.RequireFromString("2.00"), 60, decimal.RequireFromString("2.80"))
	// (100*2.00 + 60*2.80) / 160 = 368 / 160 = 2.30
	assert.True(t, decimal.RequireFromString("2.30").Equal(got), "got %s", got)
}

func TestCostCalculator_SinStockPrevio(t *testing.T) {
	got := inventory.CostCalculator(0, decimal.Zero, 10, decimal.RequireFromString("1.25"))
	assert.True(t, decimal.RequireFromString("1.25").Equal(got), "got %s", got)
}

func TestCostCalculator_TotalCero(t *testing.T) {
	assert.True(t, inventory.CostCalculator(0, decimal.Zero, 0, decimal.NewFromInt(5)).IsZero())
}
