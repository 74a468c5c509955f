// Package client es el cliente Go de la API de Depotix (resty). MovementSession hace el papel del
// formulario de movimientos: calcula y valida con el mismo motor que el servidor y conserva una
// sola llave de idempotencia entre reintentos del mismo envío.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/depotix/depotix-api/internal/application/dto"
	"github.com/depotix/depotix-api/pkg/config"
)

// Client acceso HTTP a /api/inventory.
type Client struct {
	r    *resty.Client
	lang string
}

// New construye el cliente. Reintenta solo ante errores de red y respuestas 5xx.
func New(cfg config.ClientConfig, lang string) *Client {
	if lang == "" {
		lang = "de"
	}
	r := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(200*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil || (resp != nil && resp.StatusCode() >= http.StatusInternalServerError)
		}).
		SetHeader("Accept", "application/json").
		SetHeader("Accept-Language", lang)
	if cfg.Token != "" {
		r.SetAuthToken(cfg.Token)
	}
	return &Client{r: r, lang: lang}
}

// APIError respuesta de error de la API con su sobre {"error": {...}}.
type APIError struct {
	Status int
	Body   dto.ErrorBody
}

func (e *APIError) Error() string {
	if e.Body.Message != "" {
		return fmt.Sprintf("%s (%d): %s", e.Body.Code, e.Status, e.Body.Message)
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.r.R().SetContext(ctx).SetError(&dto.ErrorResponse{})
}

func asAPIError(resp *resty.Response) error {
	out := &APIError{Status: resp.StatusCode()}
	if env, ok := resp.Error().(*dto.ErrorResponse); ok && env != nil {
		out.Body = env.Error
	}
	return out
}

// GetItem obtiene un artículo con su stock disponible.
func (c *Client) GetItem(ctx context.Context, id string) (*dto.ItemResponse, error) {
	var out dto.ItemResponse
	resp, err := c.request(ctx).SetResult(&out).SetPathParam("id", id).Get("/api/inventory/items/{id}")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, asAPIError(resp)
	}
	return &out, nil
}

// Breakdown desglose de qtyBase calculado por el servidor.
func (c *Client) Breakdown(ctx context.Context, id string, qtyBase int64) (*dto.BreakdownResponse, error) {
	var out dto.BreakdownResponse
	resp, err := c.request(ctx).
		SetResult(&out).
		SetPathParam("id", id).
		SetQueryParam("qty_base", strconv.FormatInt(qtyBase, 10)).
		Get("/api/inventory/items/{id}/breakdown")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, asAPIError(resp)
	}
	return &out, nil
}

// Preview vista previa consultiva del servidor.
func (c *Client) Preview(ctx context.Context, in dto.CreateMovementRequest) (*dto.MovementPreviewResponse, error) {
	var out dto.MovementPreviewResponse
	resp, err := c.request(ctx).SetResult(&out).SetBody(in).Post("/api/inventory/stock-movements/preview")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, asAPIError(resp)
	}
	return &out, nil
}

// createMovement envía el movimiento tal cual; los reintentos de resty reenvían el mismo cuerpo.
func (c *Client) createMovement(ctx context.Context, in dto.CreateMovementRequest) (*dto.MovementResponse, bool, error) {
	var out dto.MovementResponse
	resp, err := c.request(ctx).SetResult(&out).SetBody(in).Post("/api/inventory/stock-movements")
	if err != nil {
		return nil, false, err
	}
	if resp.IsError() {
		return nil, false, asAPIError(resp)
	}
	return &out, resp.StatusCode() == http.StatusOK, nil
}
