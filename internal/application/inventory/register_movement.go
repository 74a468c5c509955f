package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/depotix/depotix-api/internal/application/dto"
	"github.com/depotix/depotix-api/internal/domain"
	"github.com/depotix/depotix-api/internal/domain/entity"
	"github.com/depotix/depotix-api/internal/domain/inventory"
	"github.com/depotix/depotix-api/internal/domain/repository"
	"github.com/depotix/depotix-api/internal/domain/uom"
	"github.com/depotix/depotix-api/internal/i18n"
)

const instrumentationName = "github.com/depotix/depotix-api/internal/application/inventory"

// RegisterMovementUseCase registra movimientos de stock de forma transaccional
// (IN, OUT, RETURN, DEFECT, ADJUST) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
// Una llave de idempotencia repetida devuelve el movimiento guardado sin tocar el stock.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	itemRepo repository.InventoryItemRepository
	movRepo  repository.StockMovementRepository
	log      zerolog.Logger
	tracer   trace.Tracer
	counter  metric.Int64Counter
	now      func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso. Tracer y meter salen de los proveedores
// globales de otel (no-op si telemetría no está configurada).
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	itemRepo repository.InventoryItemRepository,
	movRepo repository.StockMovementRepository,
	log zerolog.Logger,
) *RegisterMovementUseCase {
	counter, err := otel.Meter(instrumentationName).Int64Counter(
		"depotix.stock_movements",
		metric.WithDescription("Movimientos de stock procesados por resultado"),
	)
	if err != nil {
		counter = noop.Int64Counter{}
	}
	return &RegisterMovementUseCase{
		txRunner: txRunner,
		itemRepo: itemRepo,
		movRepo:  movRepo,
		log:      log,
		tracer:   otel.Tracer(instrumentationName),
		counter:  counter,
		now:      time.Now,
	}
}

// RegisterResult movimiento resultante; Replayed indica que la llave ya existía (HTTP 200 en vez de 201).
type RegisterResult struct {
	Movement dto.MovementResponse
	Replayed bool
}

// Register valida la petición, bloquea el artículo, re-verifica la conversión PPU y el stock,
// aplica el delta y guarda el movimiento. Todo o nada.
func (uc *RegisterMovementUseCase) Register(ctx context.Context, companyID, userID string, in dto.CreateMovementRequest) (*RegisterResult, error) {
	ctx, span := uc.tracer.Start(ctx, "inventory.RegisterMovement", trace.WithAttributes(
		attribute.String("movement.type", in.Type),
		attribute.String("movement.item", in.ItemID),
	))
	defer span.End()

	res, err := uc.register(ctx, companyID, userID, in)
	outcome := "created"
	switch {
	case err != nil:
		outcome = "rejected"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case res.Replayed:
		outcome = "replayed"
	}
	uc.counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", in.Type),
		attribute.String("outcome", outcome),
	))
	return res, err
}

func (uc *RegisterMovementUseCase) register(ctx context.Context, companyID, userID string, in dto.CreateMovementRequest) (*RegisterResult, error) {
	mt := entity.MovementType(in.Type)
	if err := checkRequest(mt, in); err != nil {
		uc.log.Debug().Err(err).Str("item", in.ItemID).Msg("movimiento rechazado en validación")
		return nil, err
	}

	// Reintento del mismo envío: devolver lo ya guardado.
	if prev, err := uc.movRepo.GetByIdempotencyKey(ctx, companyID, in.IdempotencyKey); err == nil && prev != nil {
		uc.log.Info().Str("movement", prev.ID).Str("idempotency_key", in.IdempotencyKey).Msg("movimiento repetido, se devuelve el existente")
		return &RegisterResult{Movement: toMovementResponse(prev), Replayed: true}, nil
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := uc.now()
	var saved *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(itemRepo repository.InventoryItemRepository, movRepo repository.StockMovementRepository) error {
		// Bloquea la fila del artículo para evitar condiciones de carrera entre movimientos
		item, err := itemRepo.GetForUpdate(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if item.CompanyID != companyID {
			return domain.ErrNotFound
		}

		mov, err := resolveQuantities(in, factorsOf(item))
		if err != nil {
			return err
		}

		if err := uom.ValidateMovementData(mt, mov.QtyBase, item.AvailableQty()); err != nil {
			if errors.Is(err, uom.ErrInsufficientStock) {
				return &StockError{Available: item.AvailableQty(), Requested: mov.QtyBase}
			}
			return err
		}
		// ADJUST fija la cantidad total; no puede quedar por debajo de lo ya marcado como defectuoso.
		if mt == entity.MovementTypeADJUST && mov.QtyBase < item.DefectiveQty {
			return &ValidationFailure{Issues: []FieldIssue{{
				Field: uom.FieldQtyBase, Key: i18n.KeyAdjustBelowDefect,
				Args: []any{uom.FormatQuantity(item.DefectiveQty)},
			}}}
		}
		delta, err := uom.CalculateDelta(mt, mov.QtyBase, item.Quantity)
		if err != nil {
			return err
		}

		if delta > 0 && item.Quantity > uom.MaxQty-delta {
			return &uom.ConversionError{Err: uom.ErrQuantityOverflow,
				Details: fmt.Sprintf("actual: %s, entrada: %s", uom.FormatQuantity(item.Quantity), uom.FormatQuantity(delta))}
		}

		cost := item.Cost
		if mt == entity.MovementTypeIN && in.UnitCost != nil {
			cost = inventory.CostCalculator(item.Quantity, item.Cost, mov.QtyBase, *in.UnitCost)
			mov.UnitCost = in.UnitCost
		}
		quantity, defective := item.Apply(mt, delta)
		if err := itemRepo.UpdateStock(ctx, item.ID, quantity, defective, cost); err != nil {
			return err
		}

		mov.ID = uuid.New().String()
		mov.CompanyID = companyID
		mov.ItemID = item.ID
		mov.Type = mt
		mov.Delta = delta
		mov.Note = in.Note
		mov.IdempotencyKey = in.IdempotencyKey
		mov.CreatedAt = now
		mov.CreatedBy = userID
		switch mt {
		case entity.MovementTypeIN:
			mov.SupplierID = in.SupplierID
		case entity.MovementTypeOUT, entity.MovementTypeRETURN:
			mov.CustomerID = in.CustomerID
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		saved = mov
		return nil
	})
	if errors.Is(err, domain.ErrDuplicate) {
		// Otra petición con la misma llave ganó la carrera; la transacción ya se revirtió.
		prev, gerr := uc.movRepo.GetByIdempotencyKey(ctx, companyID, in.IdempotencyKey)
		if gerr != nil {
			return nil, fmt.Errorf("movimiento duplicado no recuperable: %w", gerr)
		}
		uc.log.Info().Str("movement", prev.ID).Msg("carrera de idempotencia resuelta con el movimiento existente")
		return &RegisterResult{Movement: toMovementResponse(prev), Replayed: true}, nil
	}
	if err != nil {
		uc.log.Warn().Err(err).Str("item", in.ItemID).Str("type", in.Type).Msg("movimiento revertido")
		return nil, err
	}

	uc.log.Info().
		Str("movement", saved.ID).
		Str("item", saved.ItemID).
		Str("type", string(saved.Type)).
		Int64("qty_base", saved.QtyBase).
		Int64("delta", saved.Delta).
		Msg("movimiento registrado")
	return &RegisterResult{Movement: toMovementResponse(saved)}, nil
}

// checkRequest reglas que no dependen del artículo.
func checkRequest(mt entity.MovementType, in dto.CreateMovementRequest) error {
	f := &ValidationFailure{}
	if in.ItemID == "" {
		f.Issues = append(f.Issues, FieldIssue{Field: uom.FieldItem, Key: i18n.KeyFieldRequired})
	}
	if !mt.Valid() {
		f.Issues = append(f.Issues, FieldIssue{Field: uom.FieldType, Key: i18n.KeyInvalidType, Args: []any{in.Type}})
	}
	if in.IdempotencyKey == "" {
		f.Issues = append(f.Issues, FieldIssue{Field: "idempotency_key", Key: i18n.KeyIdempotencyMissing})
	}
	note := strings.TrimSpace(in.Note)
	switch mt {
	case entity.MovementTypeRETURN:
		if in.CustomerID == "" {
			f.Issues = append(f.Issues, FieldIssue{Field: "customer", Key: i18n.KeyCustomerRequired})
		}
	case entity.MovementTypeIN:
		if strings.TrimSpace(in.SupplierID) == "" && note == "" {
			f.Issues = append(f.Issues, FieldIssue{Field: "supplier", Key: i18n.KeyInboundSource})
		}
	case entity.MovementTypeADJUST:
		if note == "" {
			f.Issues = append(f.Issues, FieldIssue{Field: "note", Key: i18n.KeyAdjustNoteRequired})
		}
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		f.Issues = append(f.Issues, FieldIssue{Field: "unit_cost", Key: i18n.KeyNegativeValue})
	}
	if f.empty() {
		return nil
	}
	return f
}

// resolveQuantities calcula qty_base desde el desglose PPU (verificando el qty_base recibido, si vino)
// o toma el total directo. Devuelve un movimiento parcial con las cantidades.
func resolveQuantities(in dto.CreateMovementRequest, f uom.UnitFactors) (*entity.StockMovement, error) {
	if !in.PPUMode() {
		qty := derefOrZero(in.QtyBase)
		if qty <= 0 {
			return nil, &ValidationFailure{Errors: []uom.ValidationError{{Field: uom.FieldQtyBase, Kind: uom.KindQuantityRequired}}}
		}
		if qty > uom.MaxQty {
			return nil, &uom.ConversionError{Err: uom.ErrQuantityOverflow, Details: uom.FormatQuantity(qty)}
		}
		// Guardar el desglose canónico para que el historial siempre muestre niveles.
		ppu := uom.ConvertFromBase(qty, f)
		return &entity.StockMovement{
			QtyBase:     qty,
			QtyPallets:  ppu.Pallets,
			QtyPackages: ppu.Packages,
			QtySingles:  ppu.Singles,
		}, nil
	}

	ppu := uom.PPUInput{
		Pallets:  derefOrZero(in.QtyPallets),
		Packages: derefOrZero(in.QtyPackages),
		Singles:  derefOrZero(in.QtySingles),
	}
	if !f.Valid() {
		return nil, &uom.ConversionError{Err: uom.ErrInvalidFactors,
			Details: fmt.Sprintf("palé=%d, paquete=%d", f.PalletFactor, f.PackageFactor)}
	}
	if errs := uom.ValidatePPUInput(ppu, f); len(errs) > 0 {
		return nil, &ValidationFailure{Errors: errs}
	}
	qty, err := uom.CalculateQtyBase(ppu, f)
	if err != nil {
		return nil, err
	}
	if in.QtyBase != nil {
		if err := uom.VerifyConversion(ppu, f, *in.QtyBase); err != nil {
			return nil, err
		}
	}
	return &entity.StockMovement{
		QtyBase:     qty,
		QtyPallets:  ppu.Pallets,
		QtyPackages: ppu.Packages,
		QtySingles:  ppu.Singles,
	}, nil
}

// Get devuelve un movimiento de la empresa.
func (uc *RegisterMovementUseCase) Get(ctx context.Context, companyID, id string) (*dto.MovementResponse, error) {
	m, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	out := toMovementResponse(m)
	return &out, nil
}

// ListByItem historial de movimientos de un artículo, más recientes primero.
func (uc *RegisterMovementUseCase) ListByItem(ctx context.Context, companyID, itemID string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	list, err := uc.movRepo.ListByItem(ctx, itemID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.movRepo.CountByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	out := &dto.MovementListResponse{
		Movements: make([]dto.MovementResponse, 0, len(list)),
		Page:      dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, m := range list {
		out.Movements = append(out.Movements, toMovementResponse(m))
	}
	return out, nil
}
