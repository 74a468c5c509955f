package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/depotix/depotix-api/internal/application/dto"
	"github.com/depotix/depotix-api/internal/domain/repository"
	"github.com/depotix/depotix-api/internal/domain/uom"
	"github.com/depotix/depotix-api/internal/i18n"
)

// MaxReorderItems tope de artículos revisados por consulta.
const MaxReorderItems = 500

// ReplenishmentUseCase genera la lista de reposición de la empresa.
type ReplenishmentUseCase struct {
	itemRepo repository.InventoryItemRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(itemRepo repository.InventoryItemRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{itemRepo: itemRepo}
}

// GenerateReplenishmentList devuelve los artículos con disponible bajo el mínimo. El déficit se
// redondea hacia arriba a paquetes completos y se expresa como desglose PPU.
// Orden: mayor déficit relativo primero, luego mayor déficit absoluto.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, companyID string, tag language.Tag) ([]dto.ReorderSuggestionDTO, error) {
	items, err := uc.itemRepo.ListBelowMinStock(ctx, companyID, MaxReorderItems)
	if err != nil {
		return nil, err
	}

	suggestions := make([]dto.ReorderSuggestionDTO, 0, len(items))
	for _, item := range items {
		available := item.AvailableQty()
		deficit := item.MinStockLevel - available
		if deficit <= 0 {
			continue
		}
		f := factorsOf(item)
		suggested := roundUpToPackages(deficit, f.PackageFactor)
		ppu := uom.ConvertFromBase(suggested, f)

		suggestions = append(suggestions, dto.ReorderSuggestionDTO{
			ItemID:            item.ID,
			SKU:               item.SKU,
			Name:              item.Name,
			AvailableQty:      available,
			MinStockLevel:     item.MinStockLevel,
			Deficit:           deficit,
			SuggestedQtyBase:  suggested,
			SuggestedPallets:  ppu.Pallets,
			SuggestedPackages: ppu.Packages,
			SuggestedSingles:  ppu.Singles,
			Breakdown:         i18n.Breakdown(tag, ppu, ""),
			UnitCost:          item.Cost,
			EstimatedCost:     item.Cost.Mul(decimal.NewFromInt(suggested)).Round(2),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		// a.Deficit/a.Min > b.Deficit/b.Min sin división
		ra := decimal.NewFromInt(a.Deficit).Mul(decimal.NewFromInt(b.MinStockLevel))
		rb := decimal.NewFromInt(b.Deficit).Mul(decimal.NewFromInt(a.MinStockLevel))
		if !ra.Equal(rb) {
			return ra.GreaterThan(rb)
		}
		return a.Deficit > b.Deficit
	})

	// 1 = más urgente
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

func roundUpToPackages(qty, packageFactor int64) int64 {
	if packageFactor <= 1 {
		return qty
	}
	packs := (qty + packageFactor - 1) / packageFactor
	return packs * packageFactor
}
