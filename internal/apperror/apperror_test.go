package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusAndType(t *testing.T) {
	tests := []struct {
		err    *Error
		status int
		typ    string
	}{
		{Validation("CategoryNameRequired", "Category name is required"), http.StatusBadRequest, "BadRequestError"},
		{Unauthorized(nil), http.StatusUnauthorized, "UnauthorizedError"},
		{Forbidden(), http.StatusForbidden, "ForbiddenError"},
		{NotFound("CategoryNotFound", "Category not found"), http.StatusNotFound, "NotFoundError"},
		{Internal(errors.New("db down")), http.StatusInternalServerError, "InternalServerError"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.err.Status(), tt.err.Message)
		assert.Equal(t, tt.typ, tt.err.Type(), tt.err.Message)
	}
}

func TestForbiddenMessage(t *testing.T) {
	assert.Equal(t, "You don't have enough permissions", Forbidden().Error())
}

func TestFrom(t *testing.T) {
	nf := NotFound("ToppingNotFound", "Topping not found")
	wrapped := fmt.Errorf("handler: %w", nf)

	assert.Same(t, nf, From(wrapped))
	assert.True(t, Is(wrapped, KindNotFound))
	assert.False(t, Is(wrapped, KindForbidden))

	cause := errors.New("connection reset")
	internal := From(cause)
	assert.Equal(t, KindInternal, internal.Kind)
	assert.ErrorIs(t, internal, cause)
}
