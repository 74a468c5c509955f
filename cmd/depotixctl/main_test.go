package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depotix/depotix-api/internal/application/dto"
	"github.com/depotix/depotix-api/pkg/config"
)

func runCLI(t *testing.T, cfg config.ClientConfig, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(context.Background(), args, cli{cfg: cfg, lang: "de", out: &out, errOut: &errOut})
	return code, out.String(), errOut.String()
}

func TestConvert(t *testing.T) {
	code, out, _ := runCLI(t, config.ClientConfig{}, "convert", "-pallet-factor", "10", "-package-factor", "12",
		"-pallets", "2", "-packages", "3", "-singles", "5")
	require.Equal(t, 0, code)
	assert.Equal(t, "2 Paletten + 3 Pakete + 5 Stück = 281\n", out)
}

func TestConvert_InvalidInput(t *testing.T) {
	code, _, errOut := runCLI(t, config.ClientConfig{}, "convert", "-pallet-factor", "10", "-package-factor", "12")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Validierungsfehler")
	assert.Contains(t, errOut, "qty_base")
}

func TestBreakdown_Local(t *testing.T) {
	code, out, _ := runCLI(t, config.ClientConfig{}, "breakdown", "-pallet-factor", "10", "-package-factor", "12",
		"-qty", "1500", "-lang", "en")
	require.Equal(t, 0, code)
	assert.Equal(t, "1'500 = 12 pallets + 5 packages\n", out)
}

func TestValidate(t *testing.T) {
	code, out, _ := runCLI(t, config.ClientConfig{}, "validate", "-pallet-factor", "10", "-package-factor", "12",
		"-type", "out", "-available", "1000", "-packages", "3")
	require.Equal(t, 0, code)
	assert.Equal(t, "OK OUT 36: 1'000 -> 964\n", out)

	code, _, errOut := runCLI(t, config.ClientConfig{}, "validate", "-pallet-factor", "10", "-package-factor", "12",
		"-type", "OUT", "-available", "1000", "-pallets", "10")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "1'000")

	code, _, errOut = runCLI(t, config.ClientConfig{}, "validate", "-type", "MOVE", "-qty", "1")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "MOVE")
}

func TestMove(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(dto.ItemResponse{ID: "item-1", UnitPalletFactor: 10, UnitPackageFactor: 12, AvailableQty: 1000})
		case http.MethodPost:
			var req dto.CreateMovementRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			assert.Equal(t, "sup-1", req.SupplierID)
			assert.NotEmpty(t, req.IdempotencyKey)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(dto.MovementResponse{ID: "mov-1", Type: req.Type, QtyBase: *req.QtyBase})
		}
	}))
	defer srv.Close()
	cfg := config.ClientConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}

	code, out, errOut := runCLI(t, cfg, "move", "-item", "item-1", "-type", "IN", "-pallets", "2", "-singles", "5", "-partner", "sup-1")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "mov-1 IN 245 (creado)\n", out)
}

func TestUnknownCommand(t *testing.T) {
	code, _, _ := runCLI(t, config.ClientConfig{}, "delete")
	assert.Equal(t, 2, code)
	code, _, _ = runCLI(t, config.ClientConfig{})
	assert.Equal(t, 2, code)
}
