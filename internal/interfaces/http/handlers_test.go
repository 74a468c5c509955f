package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depotix/depotix-api/internal/application/dto"
	"github.com/depotix/depotix-api/internal/application/inventory"
	"github.com/depotix/depotix-api/internal/domain/entity"
	"github.com/depotix/depotix-api/internal/i18n"
	"github.com/depotix/depotix-api/internal/infrastructure/memory"
	apphttp "github.com/depotix/depotix-api/internal/interfaces/http"
	pkgjwt "github.com/depotix/depotix-api/pkg/jwt"
)

const testItemID = "item-beer"

type apiFixture struct {
	app   *fiber.App
	store *memory.Store
	token string
}

// newAPI API completa sobre el almacén en memoria con un artículo 10×12 y 1'000 unidades.
func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	store := memory.NewStore()
	store.Items().Put(entity.InventoryItem{
		ID: testItemID, CompanyID: testCompanyID, SKU: "BEER-33", Name: "Bier 33cl",
		UnitBase: entity.UnitBottle, UnitPalletFactor: 10, UnitPackageFactor: 12, Quantity: 1000,
	})

	log := zerolog.Nop()
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	apphttp.Router(app, apphttp.RouterDeps{
		ItemUC:           inventory.NewItemUseCase(store.Items()),
		RegisterMovement: inventory.NewRegisterMovementUseCase(store.TxRunner(), store.Items(), store.Movements(), log),
		Replenishment:    inventory.NewReplenishmentUseCase(store.Items()),
		JWTSecret:        testJWTSecret,
		DefaultLang:      i18n.German,
		Log:              log,
	})
	return &apiFixture{app: app, store: store, token: tokenForRole(t, pkgjwt.RoleStaff)}
}

func (f *apiFixture) do(t *testing.T, method, path string, body any, headers ...string) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", f.token)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out bytes.Buffer
	_, _ = out.ReadFrom(resp.Body)
	return resp, out.Bytes()
}

func (f *apiFixture) quantity(t *testing.T) int64 {
	t.Helper()
	it, err := f.store.Items().GetByID(context.Background(), testItemID)
	require.NoError(t, err)
	return it.Quantity
}

func decodeError(t *testing.T, body []byte) dto.ErrorBody {
	t.Helper()
	var env dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return env.Error
}

func movementBody(typ string, pallets, packages, singles, qtyBase int64, key string) map[string]any {
	return map[string]any{
		"item": testItemID, "type": typ,
		"qty_pallets": pallets, "qty_packages": packages, "qty_singles": singles,
		"qty_base": qtyBase, "idempotency_key": key, "supplier": "sup-1",
	}
}

func TestCreateMovement_CreatedThenReplayed(t *testing.T) {
	f := newAPI(t)
	body := movementBody("IN", 2, 3, 5, 281, "5d9f5c2e-1b7a-4c1e-9a51-4f0a7c9b2d10")

	resp, raw := f.do(t, http.MethodPost, "/api/inventory/stock-movements", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var first dto.MovementResponse
	require.NoError(t, json.Unmarshal(raw, &first))
	assert.Equal(t, int64(281), first.QtyBase)
	assert.Equal(t, int64(1281), f.quantity(t))

	resp, raw = f.do(t, http.MethodPost, "/api/inventory/stock-movements", body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var second dto.MovementResponse
	require.NoError(t, json.Unmarshal(raw, &second))
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(1281), f.quantity(t), "el reintento no debe tocar el stock")
}

func TestCreateMovement_ConversionMismatch(t *testing.T) {
	f := newAPI(t)
	resp, raw := f.do(t, http.MethodPost, "/api/inventory/stock-movements", movementBody("IN", 2, 3, 5, 280, "k-mismatch"))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, dto.CodeConversion, decodeError(t, raw).Code)
	assert.Equal(t, int64(1000), f.quantity(t))
}

func TestCreateMovement_InsufficientStock(t *testing.T) {
	f := newAPI(t)
	body := map[string]any{"item": testItemID, "type": "OUT", "qty_base": 1500, "idempotency_key": "k-out"}

	resp, raw := f.do(t, http.MethodPost, "/api/inventory/stock-movements", body)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	e := decodeError(t, raw)
	assert.Equal(t, dto.CodeInsufficientStock, e.Code)
	assert.Contains(t, e.Message, "Nicht genügend Lagerbestand")
	assert.Contains(t, e.Message, "1'500")
}

func TestCreateMovement_ValidationFieldsInEnglish(t *testing.T) {
	f := newAPI(t)
	resp, raw := f.do(t, http.MethodPost, "/api/inventory/stock-movements",
		movementBody("IN", -1, 0, 0, 0, "k-neg"), "Accept-Language", "en")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decodeError(t, raw)
	assert.Equal(t, dto.CodeValidation, e.Code)
	assert.Equal(t, "Validation error", e.Message)
	assert.Equal(t, []string{"Pallets must be a positive number"}, e.Fields["qty_pallets"])
}

func TestCreateMovement_AdjustWithoutNote(t *testing.T) {
	f := newAPI(t)
	body := map[string]any{"item": testItemID, "type": "ADJUST", "qty_base": 900, "idempotency_key": "k-adj-nonote"}

	resp, raw := f.do(t, http.MethodPost, "/api/inventory/stock-movements", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decodeError(t, raw)
	assert.Equal(t, dto.CodeValidation, e.Code)
	assert.Equal(t, []string{"Korrekturen benötigen eine Begründung im Notizfeld"}, e.Fields["note"])
	assert.Equal(t, int64(1000), f.quantity(t))
}

func TestCreateMovement_InvalidBody(t *testing.T) {
	f := newAPI(t)
	req := httptest.NewRequest(http.MethodPost, "/api/inventory/stock-movements", bytes.NewBufferString("{no json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", f.token)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateMovement_ViewerForbidden(t *testing.T) {
	f := newAPI(t)
	f.token = tokenForRole(t, pkgjwt.RoleViewer)
	resp, raw := f.do(t, http.MethodPost, "/api/inventory/stock-movements", movementBody("IN", 1, 0, 0, 120, "k-view"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, dto.CodeForbidden, decodeError(t, raw).Code)
}

func TestPreviewMovement(t *testing.T) {
	f := newAPI(t)
	body := map[string]any{"item": testItemID, "type": "OUT", "qty_pallets": 0, "qty_packages": 3, "qty_singles": 5}

	resp, raw := f.do(t, http.MethodPost, "/api/inventory/stock-movements/preview", body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var out dto.MovementPreviewResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.True(t, out.Valid)
	assert.Equal(t, int64(41), out.QtyBase)
	assert.Equal(t, int64(959), out.ProjectedQty)
	assert.Equal(t, "3 Pakete + 5 Stück", out.Breakdown)
}

func TestItemEndpoints(t *testing.T) {
	f := newAPI(t)

	resp, raw := f.do(t, http.MethodGet, "/api/inventory/items/"+testItemID+"/breakdown?qty_base=281", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var b dto.BreakdownResponse
	require.NoError(t, json.Unmarshal(raw, &b))
	assert.Equal(t, "2 Paletten + 3 Pakete + 5 Stück", b.Text)

	resp, raw = f.do(t, http.MethodGet, "/api/inventory/items/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, dto.CodeNotFound, decodeError(t, raw).Code)

	// Crear requiere admin.
	create := map[string]any{"sku": "WATER-50", "name": "Wasser 50cl", "unit_pallet_factor": 0, "unit_package_factor": 6}
	resp, _ = f.do(t, http.MethodPost, "/api/inventory/items", create)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	f.token = tokenForRole(t, pkgjwt.RoleAdmin)
	resp, raw = f.do(t, http.MethodPost, "/api/inventory/items", create)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeError(t, raw).Fields, "unit_pallet_factor")

	create["unit_pallet_factor"] = 40
	resp, raw = f.do(t, http.MethodPost, "/api/inventory/items", create)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = f.do(t, http.MethodGet, "/api/inventory/items", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.ItemListResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Len(t, list.Items, 2)
}

func TestMovementHistory(t *testing.T) {
	f := newAPI(t)
	resp, raw := f.do(t, http.MethodPost, "/api/inventory/stock-movements",
		map[string]any{"item": testItemID, "type": "ADJUST", "qty_base": 900, "idempotency_key": "k-adj", "note": "Inventur"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var created dto.MovementResponse
	require.NoError(t, json.Unmarshal(raw, &created))

	resp, raw = f.do(t, http.MethodGet, "/api/inventory/stock-movements?item="+testItemID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.MovementListResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list.Movements, 1)
	assert.Equal(t, int64(-100), list.Movements[0].Delta)

	resp, _ = f.do(t, http.MethodGet, "/api/inventory/stock-movements/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUnauthenticatedRequest(t *testing.T) {
	f := newAPI(t)
	f.token = ""
	resp, raw := f.do(t, http.MethodGet, "/api/inventory/items", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, dto.CodeUnauthorized, decodeError(t, raw).Code)
}
