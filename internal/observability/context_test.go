package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithRequestID(t *testing.T) {
	ctx := context.Background()
	ctx = WithRequestID(ctx, "req-123")

	assert.Equal(t, "req-123", RequestIDFromContext(ctx))
}

func TestRequestIDFromContext_Missing(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))
}

func TestWithTraceID(t *testing.T) {
	ctx := context.Background()
	ctx = WithTraceID(ctx, "4bf92f3577b34da6a3ce929d0e0e4736")

	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", StoredTraceIDFromContext(ctx))
}

func TestStoredTraceIDFromContext_Missing(t *testing.T) {
	assert.Empty(t, StoredTraceIDFromContext(context.Background()))
}
