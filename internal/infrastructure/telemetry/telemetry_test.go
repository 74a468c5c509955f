package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/depotix/depotix-api/internal/infrastructure/telemetry"
	"github.com/depotix/depotix-api/pkg/config"
)

func TestSetup_DisabledIsNoop(t *testing.T) {
	shutdown, err := telemetry.Setup(context.Background(), config.TelemetryConfig{ServiceName: "test"})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
	assert.Contains(t, otel.GetTextMapPropagator().Fields(), "traceparent")
}

func TestSetup_EnabledInstallsProviders(t *testing.T) {
	ctx := context.Background()
	// Los exportadores HTTP no conectan hasta el primer envío.
	shutdown, err := telemetry.Setup(ctx, config.TelemetryConfig{OTLPEndpoint: "127.0.0.1:4318", ServiceName: "depotix-test"})
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(ctx, "op")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_ = shutdown(cctx)
}
