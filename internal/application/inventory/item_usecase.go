package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/depotix/depotix-api/internal/application/dto"
	"github.com/depotix/depotix-api/internal/domain"
	"github.com/depotix/depotix-api/internal/domain/entity"
	"github.com/depotix/depotix-api/internal/domain/repository"
	"github.com/depotix/depotix-api/internal/domain/uom"
	"github.com/depotix/depotix-api/internal/i18n"
)

// ItemUseCase alta y consulta de artículos con su jerarquía de empaque.
type ItemUseCase struct {
	repo repository.InventoryItemRepository
	now  func() time.Time
}

// NewItemUseCase construye el caso de uso de artículos.
func NewItemUseCase(repo repository.InventoryItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo, now: time.Now}
}

// Create da de alta un artículo sin stock. Los factores deben ser >= 1.
func (uc *ItemUseCase) Create(ctx context.Context, companyID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	f := &ValidationFailure{}
	if strings.TrimSpace(in.SKU) == "" {
		f.Issues = append(f.Issues, FieldIssue{Field: "sku", Key: i18n.KeyFieldRequired})
	}
	if strings.TrimSpace(in.Name) == "" {
		f.Issues = append(f.Issues, FieldIssue{Field: "name", Key: i18n.KeyFieldRequired})
	}
	if in.UnitPalletFactor < 1 {
		f.Errors = append(f.Errors, uom.ValidationError{Field: "unit_pallet_factor", Kind: uom.KindPalletFactorInvalid})
	}
	if in.UnitPackageFactor < 1 {
		f.Errors = append(f.Errors, uom.ValidationError{Field: "unit_package_factor", Kind: uom.KindPackageFactorInvalid})
	}
	if in.MinStockLevel < 0 {
		f.Issues = append(f.Issues, FieldIssue{Field: "min_stock_level", Key: i18n.KeyNegativeValue})
	}
	if in.Price.IsNegative() {
		f.Issues = append(f.Issues, FieldIssue{Field: "price", Key: i18n.KeyNegativeValue})
	}
	if !f.empty() {
		return nil, f
	}

	unit := strings.ToUpper(strings.TrimSpace(in.UnitBase))
	if unit == "" {
		unit = entity.UnitPiece
	}
	now := uc.now()
	item := &entity.InventoryItem{
		ID:                uuid.New().String(),
		CompanyID:         companyID,
		SKU:               strings.TrimSpace(in.SKU),
		Name:              strings.TrimSpace(in.Name),
		UnitBase:          unit,
		UnitPalletFactor:  in.UnitPalletFactor,
		UnitPackageFactor: in.UnitPackageFactor,
		MinStockLevel:     in.MinStockLevel,
		Price:             in.Price,
		Cost:              decimal.Zero,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	out := toItemResponse(item)
	return &out, nil
}

// Get devuelve un artículo de la empresa.
func (uc *ItemUseCase) Get(ctx context.Context, companyID, id string) (*dto.ItemResponse, error) {
	item, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	out := toItemResponse(item)
	return &out, nil
}

func (uc *ItemUseCase) get(ctx context.Context, companyID, id string) (*entity.InventoryItem, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// List artículos de la empresa, paginados.
func (uc *ItemUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.ItemListResponse, error) {
	page.DefaultPage()
	items, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.CountByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := &dto.ItemListResponse{
		Items: make([]dto.ItemResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, it := range items {
		out.Items = append(out.Items, toItemResponse(it))
	}
	return out, nil
}

// Breakdown desglosa qtyBase en palés/paquetes/unidades con los factores del artículo.
func (uc *ItemUseCase) Breakdown(ctx context.Context, companyID, id string, qtyBase int64, tag language.Tag) (*dto.BreakdownResponse, error) {
	item, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if qtyBase < 0 {
		return nil, &ValidationFailure{Errors: []uom.ValidationError{{Field: uom.FieldQtyBase, Kind: uom.KindQuantityInvalid}}}
	}
	ppu := uom.ConvertFromBase(qtyBase, factorsOf(item))
	return &dto.BreakdownResponse{
		ItemID:      item.ID,
		QtyBase:     qtyBase,
		QtyPallets:  ppu.Pallets,
		QtyPackages: ppu.Packages,
		QtySingles:  ppu.Singles,
		Formatted:   uom.FormatQuantity(qtyBase),
		Text:        i18n.Breakdown(tag, ppu, ""),
	}, nil
}
