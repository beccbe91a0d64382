package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestStartWithoutProvider(t *testing.T) {
	ctx, span := Start(context.Background(), "category.Get", attribute.String("id", "1"))
	defer span.End()

	assert.NotNil(t, ctx)
	assert.False(t, span.SpanContext().IsSampled())
}

func TestFailReturnsError(t *testing.T) {
	_, span := Start(context.Background(), "topping.Delete")
	defer span.End()

	boom := errors.New("boom")
	assert.Same(t, boom, Fail(span, boom))
	assert.NoError(t, Fail(span, nil))
}
