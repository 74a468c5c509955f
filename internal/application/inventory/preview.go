package inventory

import (
	"context"

	"golang.org/x/text/language"

	"github.com/depotix/depotix-api/internal/application/dto"
	"github.com/depotix/depotix-api/internal/domain"
	"github.com/depotix/depotix-api/internal/domain/entity"
	"github.com/depotix/depotix-api/internal/domain/uom"
	"github.com/depotix/depotix-api/internal/i18n"
)

// Preview calcula qty_base, valida la entrada y proyecta el stock sin bloquear ni escribir nada.
// Es solo consultivo: Register vuelve a verificar todo dentro de la transacción.
func (uc *RegisterMovementUseCase) Preview(ctx context.Context, companyID string, in dto.CreateMovementRequest, tag language.Tag) (*dto.MovementPreviewResponse, error) {
	mt := entity.MovementType(in.Type)
	if !mt.Valid() {
		return nil, &ValidationFailure{Issues: []FieldIssue{{Field: uom.FieldType, Key: i18n.KeyInvalidType, Args: []any{in.Type}}}}
	}
	item, err := uc.itemRepo.GetByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	f := factorsOf(item)
	var (
		errs []uom.ValidationError
		qty  int64
	)
	if in.PPUMode() {
		ppu := uom.PPUInput{
			Pallets:  derefOrZero(in.QtyPallets),
			Packages: derefOrZero(in.QtyPackages),
			Singles:  derefOrZero(in.QtySingles),
		}
		errs = uom.ValidatePPUInput(ppu, f)
		if len(errs) == 0 {
			if qty, err = uom.CalculateQtyBase(ppu, f); err != nil {
				return nil, err
			}
		}
	} else {
		qty = derefOrZero(in.QtyBase)
		if qty <= 0 {
			errs = append(errs, uom.ValidationError{Field: uom.FieldQtyBase, Kind: uom.KindQuantityRequired})
			qty = 0
		}
	}

	if stockErr := uom.ValidateMovementType(mt, qty, item.AvailableQty()); stockErr != nil {
		errs = append(errs, *stockErr)
	}

	projected, projectedDefective := item.Quantity, item.DefectiveQty
	if qty > 0 {
		delta, err := uom.CalculateDelta(mt, qty, item.Quantity)
		if err != nil {
			return nil, err
		}
		projected, projectedDefective = item.Apply(mt, delta)
	}

	out := &dto.MovementPreviewResponse{
		ItemID:       item.ID,
		Type:         string(mt),
		QtyBase:      qty,
		Formatted:    uom.FormatQuantity(qty),
		Breakdown:    i18n.Breakdown(tag, uom.ConvertFromBase(qty, f), ""),
		CurrentQty:   item.Quantity,
		AvailableQty: item.AvailableQty(),
		ProjectedQty: projected,
		// Disponible tras el movimiento; con DEFECT solo cambia este valor.
		ProjectedAvailable: projected - projectedDefective,
		Errors:             make([]dto.ValidationErrorDTO, 0, len(errs)+1),
	}
	for _, e := range errs {
		out.Errors = append(out.Errors, dto.ValidationErrorDTO{Field: e.Field, Message: i18n.Message(tag, e)})
	}
	if mt == entity.MovementTypeADJUST && qty > 0 && qty < item.DefectiveQty {
		out.Errors = append(out.Errors, dto.ValidationErrorDTO{
			Field:   uom.FieldQtyBase,
			Message: i18n.Text(tag, i18n.KeyAdjustBelowDefect, uom.FormatQuantity(item.DefectiveQty)),
		})
	}
	out.Valid = len(out.Errors) == 0
	return out, nil
}
