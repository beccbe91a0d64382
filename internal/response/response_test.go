package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/pkg/i18n"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Errors, 1)
	return body
}

func TestResponderErrorMapsKinds(t *testing.T) {
	tr, err := i18n.New()
	require.NoError(t, err)
	rs := NewResponder(logger.NewNop(), tr)

	rec := httptest.NewRecorder()
	rs.Error(rec, httptest.NewRequest(http.MethodGet, "/categories/x", nil), apperror.NotFound("CategoryNotFound", "Category not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decode(t, rec)
	assert.Equal(t, "NotFoundError", body.Errors[0].Type)
	assert.Equal(t, "Category not found", body.Errors[0].Msg)
}

func TestResponderErrorLocalizes(t *testing.T) {
	tr, err := i18n.New()
	require.NoError(t, err)
	rs := NewResponder(logger.NewNop(), tr)

	req := httptest.NewRequest(http.MethodPost, "/categories", nil)
	req.Header.Set("Accept-Language", "id")
	rec := httptest.NewRecorder()
	rs.Error(rec, req, apperror.Forbidden())

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Anda tidak memiliki izin yang cukup", decode(t, rec).Errors[0].Msg)
}

func TestResponderErrorUnknownIsInternalAndLogged(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	rs := NewResponder(logger.NewFromZap(zap.New(core)), nil)

	rec := httptest.NewRecorder()
	rs.Error(rec, httptest.NewRequest(http.MethodGet, "/toppings", nil), errors.New("mongo: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Internal server error", body.Errors[0].Msg)
	assert.NotContains(t, rec.Body.String(), "connection refused")
	assert.Equal(t, 1, logs.FilterMessage("request failed").Len())
}
