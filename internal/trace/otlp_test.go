package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"layoutkit/internal/cassowary"
	"layoutkit/internal/layout"
)

func TestNewProvider_Disabled(t *testing.T) {
	p, err := NewProvider(context.Background(), Options{})
	require.NoError(t, err)
	assert.False(t, p.Enabled())
	assert.NotNil(t, p.Tracer())
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")
	t.Setenv("OTEL_SERVICE_NAME", "demo")
	opts := OptionsFromEnv()
	assert.Equal(t, "localhost:4318", opts.Endpoint)
	assert.Equal(t, "demo", opts.ServiceName)
	assert.True(t, opts.Insecure)
}

func TestNewProvider_WithEndpoint(t *testing.T) {
	p, err := NewProvider(context.Background(), Options{Endpoint: "localhost:4318", Insecure: true})
	require.NoError(t, err)
	assert.True(t, p.Enabled())
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestProvider_RecordsLayoutSpans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	p, err := NewProvider(context.Background(), Options{SpanProcessors: []sdktrace.SpanProcessor{rec}})
	require.NoError(t, err)
	defer p.Shutdown(context.Background())

	s := layout.NewSolver(layout.WithTracer(p.Tracer()))
	arena := layout.NewArena()
	n := arena.New("box")
	n.Dimensions(10, 10)
	n.Add(cassowary.NewConstraint(n.Left.Expr(), cassowary.EQ, cassowary.Constant(0), cassowary.Required))
	_, err = s.UpdateLayout(n)
	require.NoError(t, err)

	bad := arena.New("bad")
	bad.Width(1)
	bad.Width(2)
	_, err = s.UpdateLayout(bad)
	require.Error(t, err)

	spans := rec.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "layout.update", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("layoutkit.widget.name", "box"))
	assert.Contains(t, spans[0].Attributes(), attribute.Int("layoutkit.constraints.installed", 3))
	assert.Equal(t, codes.Error, spans[1].Status().Code)
}
