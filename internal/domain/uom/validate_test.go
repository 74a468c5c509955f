package uom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depotix/depotix-api/internal/domain/entity"
	"github.com/depotix/depotix-api/internal/domain/uom"
)

var validFactors = uom.UnitFactors{PalletFactor: 10, PackageFactor: 12}

func fields(errs []uom.ValidationError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidatePPUInput_Valid(t *testing.T) {
	errs := uom.ValidatePPUInput(uom.PPUInput{Pallets: 2, Packages: 3, Singles: 5}, validFactors)
	assert.Empty(t, errs)
}

func TestValidatePPUInput_AllNegativeReportsEveryField(t *testing.T) {
	errs := uom.ValidatePPUInput(uom.PPUInput{Pallets: -1, Packages: -2, Singles: -3}, validFactors)
	require.GreaterOrEqual(t, len(errs), 3)
	assert.Equal(t, []string{uom.FieldPallets, uom.FieldPackages, uom.FieldSingles}, fields(errs))
	for _, e := range errs {
		assert.Equal(t, uom.KindQuantityInvalid, e.Kind)
	}
}

func TestValidatePPUInput_AllZero(t *testing.T) {
	errs := uom.ValidatePPUInput(uom.PPUInput{}, validFactors)
	require.Len(t, errs, 1)
	assert.Equal(t, uom.FieldQtyBase, errs[0].Field)
	assert.Equal(t, uom.KindQuantityRequired, errs[0].Kind)
}

func TestValidatePPUInput_InvalidFactorsOnePerFactor(t *testing.T) {
	errs := uom.ValidatePPUInput(uom.PPUInput{Singles: 1}, uom.UnitFactors{})
	require.Len(t, errs, 2)
	assert.Equal(t, []string{uom.FieldItem, uom.FieldItem}, fields(errs))
	assert.Equal(t, uom.KindPalletFactorInvalid, errs[0].Kind)
	assert.Equal(t, uom.KindPackageFactorInvalid, errs[1].Kind)
}

func TestValidatePPUInput_Combined(t *testing.T) {
	errs := uom.ValidatePPUInput(uom.PPUInput{Pallets: -1}, uom.UnitFactors{PalletFactor: 0, PackageFactor: 6})
	assert.Equal(t, []string{uom.FieldPallets, uom.FieldItem}, fields(errs))
}

func TestValidateMovementType_StockGate(t *testing.T) {
	tests := []struct {
		name      string
		typ       entity.MovementType
		qtyBase   int64
		available int64
		wantErr   bool
	}{
		{"OUT exacto", entity.MovementTypeOUT, 100, 100, false},
		{"OUT excede", entity.MovementTypeOUT, 101, 100, true},
		{"DEFECT excede", entity.MovementTypeDEFECT, 5, 4, true},
		{"DEFECT dentro", entity.MovementTypeDEFECT, 4, 4, false},
		{"IN sin stock", entity.MovementTypeIN, 999999, 0, false},
		{"RETURN sin stock", entity.MovementTypeRETURN, 10, 0, false},
		{"ADJUST no se valida", entity.MovementTypeADJUST, 10, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := uom.ValidateMovementType(tc.typ, tc.qtyBase, tc.available)
			if !tc.wantErr {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, uom.FieldQtyBase, got.Field)
			assert.Equal(t, uom.KindInsufficientStock, got.Kind)
			assert.Equal(t, []int64{tc.available, tc.qtyBase}, got.Params)
		})
	}
}

func TestValidateMovementData(t *testing.T) {
	assert.NoError(t, uom.ValidateMovementData(entity.MovementTypeOUT, 50, 100))
	assert.NoError(t, uom.ValidateMovementData(entity.MovementTypeOUT, 100, 100))
	assert.ErrorIs(t, uom.ValidateMovementData(entity.MovementTypeIN, 0, 100), uom.ErrNonPositiveTotal)

	err := uom.ValidateMovementData(entity.MovementTypeOUT, 1500, 1000)
	require.ErrorIs(t, err, uom.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "1'000")
	assert.Contains(t, err.Error(), "1'500")

	assert.ErrorIs(t, uom.ValidateMovementData("MOVE", 5, 100), uom.ErrInvalidMovementType)
}

func TestCalculateDelta(t *testing.T) {
	tests := []struct {
		typ     entity.MovementType
		qty     int64
		current int64
		want    int64
	}{
		{entity.MovementTypeIN, 50, 100, 50},
		{entity.MovementTypeRETURN, 5, 100, 5},
		{entity.MovementTypeOUT, 30, 100, -30},
		{entity.MovementTypeDEFECT, 2, 100, -2},
		{entity.MovementTypeADJUST, 75, 100, -25},
		{entity.MovementTypeADJUST, 120, 100, 20},
	}
	for _, tc := range tests {
		got, err := uom.CalculateDelta(tc.typ, tc.qty, tc.current)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s %d sobre %d", tc.typ, tc.qty, tc.current)
	}

	_, err := uom.CalculateDelta("TRANSFER", 1, 1)
	assert.ErrorIs(t, err, uom.ErrInvalidMovementType)
}

func TestStockAfter(t *testing.T) {
	got, err := uom.StockAfter(entity.MovementTypeADJUST, 75, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(75), got)

	got, err = uom.StockAfter(entity.MovementTypeOUT, 30, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(70), got)
}
