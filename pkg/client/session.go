package client

import (
	"context"
	"errors"

	"github.com/depotix/depotix-api/internal/application/dto"
	"github.com/depotix/depotix-api/internal/domain/entity"
	"github.com/depotix/depotix-api/internal/domain/uom"
)

// ErrInvalidInput la sesión tiene errores de validación; Submit no envía nada.
var ErrInvalidInput = errors.New("client: entrada inválida")

// MovementSession estado de un formulario de movimiento abierto sobre un artículo.
// La llave de idempotencia se genera al abrir y se conserva hasta un envío exitoso.
type MovementSession struct {
	c       *Client
	item    dto.ItemResponse
	typ     entity.MovementType
	ppu     *uom.PPUInput
	total   int64
	key     string
	Note    string
	Partner string // proveedor (IN) o cliente (OUT/RETURN)
}

// NewMovementSession abre una sesión para el artículo y tipo dados.
func (c *Client) NewMovementSession(item dto.ItemResponse, t entity.MovementType) *MovementSession {
	return &MovementSession{c: c, item: item, typ: t, key: uom.GenerateIdempotencyKey()}
}

// Key llave de idempotencia vigente.
func (s *MovementSession) Key() string { return s.key }

func (s *MovementSession) factors() uom.UnitFactors {
	return uom.UnitFactors{PalletFactor: s.item.UnitPalletFactor, PackageFactor: s.item.UnitPackageFactor}
}

// SetPPU modo desglose: palés/paquetes/unidades.
func (s *MovementSession) SetPPU(in uom.PPUInput) {
	s.ppu = &in
	s.total = 0
}

// SetTotal modo total directo en unidades base.
func (s *MovementSession) SetTotal(qtyBase int64) {
	s.ppu = nil
	s.total = qtyBase
}

// QtyBase cantidad en unidades base de la entrada actual (0 si no es calculable).
func (s *MovementSession) QtyBase() int64 {
	if s.ppu == nil {
		return s.total
	}
	q, err := uom.CalculateQtyBase(*s.ppu, s.factors())
	if err != nil {
		return 0
	}
	return q
}

// Validate mismas reglas que el formulario: entrada PPU (o total > 0) y stock disponible para OUT/DEFECT.
// El resultado es consultivo; el servidor decide bajo bloqueo.
func (s *MovementSession) Validate() []uom.ValidationError {
	var errs []uom.ValidationError
	if s.ppu != nil {
		errs = uom.ValidatePPUInput(*s.ppu, s.factors())
	} else if s.total <= 0 {
		errs = append(errs, uom.ValidationError{Field: uom.FieldQtyBase, Kind: uom.KindQuantityRequired})
	}
	if len(errs) > 0 {
		return errs
	}
	if e := uom.ValidateMovementType(s.typ, s.QtyBase(), s.item.AvailableQty); e != nil {
		errs = append(errs, *e)
	}
	return errs
}

// Request petición a enviar con la llave de la sesión.
func (s *MovementSession) Request() dto.CreateMovementRequest {
	qty := s.QtyBase()
	req := dto.CreateMovementRequest{
		ItemID:         s.item.ID,
		Type:           string(s.typ),
		QtyBase:        &qty,
		Note:           s.Note,
		IdempotencyKey: s.key,
	}
	if s.ppu != nil {
		p := *s.ppu
		req.QtyPallets, req.QtyPackages, req.QtySingles = &p.Pallets, &p.Packages, &p.Singles
	}
	switch s.typ {
	case entity.MovementTypeIN:
		req.SupplierID = s.Partner
	case entity.MovementTypeOUT, entity.MovementTypeRETURN:
		req.CustomerID = s.Partner
	}
	return req
}

// SubmitResult movimiento aceptado; Replayed si el servidor ya lo tenía registrado.
type SubmitResult struct {
	Movement dto.MovementResponse
	Replayed bool
}

// Submit valida y envía. Tras un envío exitoso la sesión queda lista para otro movimiento con
// llave nueva; ante un error se conserva la llave para que reenviar no duplique el movimiento.
func (s *MovementSession) Submit(ctx context.Context) (*SubmitResult, error) {
	if errs := s.Validate(); len(errs) > 0 {
		return nil, &ValidationErrors{Errors: errs}
	}
	mov, replayed, err := s.c.createMovement(ctx, s.Request())
	if err != nil {
		return nil, err
	}
	s.key = uom.GenerateIdempotencyKey()
	return &SubmitResult{Movement: *mov, Replayed: replayed}, nil
}

// ValidationErrors errores locales que impidieron el envío.
type ValidationErrors struct {
	Errors []uom.ValidationError
}

func (e *ValidationErrors) Error() string {
	msg := ErrInvalidInput.Error()
	for i, v := range e.Errors {
		if i == 0 {
			msg += ": "
		} else {
			msg += ", "
		}
		msg += v.Error()
	}
	return msg
}

func (e *ValidationErrors) Unwrap() error { return ErrInvalidInput }
