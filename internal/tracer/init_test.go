package tracer

import (
	"context"
	"testing"

	"refund-decision-be/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTracer_DisabledIsNoop(t *testing.T) {
	shutdown := InitTracer(context.Background(), config.TracingConfig{Enabled: false, Endpoint: "collector:4318"})
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}
