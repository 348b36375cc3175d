package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisabledTracingPassesParentThrough(t *testing.T) {
	assert.NoError(t, InitWithEnabled(false))
	assert.False(t, Enabled())

	ctx := context.Background()
	got, span := StartSpan(ctx, "noop")
	assert.Equal(t, ctx, got)
	assert.False(t, span.SpanContext().IsValid())

	_, _, ok := GetTraceFields(got)
	assert.False(t, ok)
}

func TestEnabledTracingProducesSpanIDs(t *testing.T) {
	assert.NoError(t, InitWithEnabled(true))
	defer func() {
		_ = Shutdown(context.Background())
		_ = InitWithEnabled(false)
	}()

	ctx, span := StartSpan(context.Background(), "cycle")
	defer span.End()

	traceID, spanID, ok := GetTraceFields(ctx)
	assert.True(t, ok)
	assert.Len(t, traceID, 32)
	assert.Len(t, spanID, 16)
}
