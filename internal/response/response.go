package response

import (
	"encoding/json"
	"net/http"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Localizer turns a message id into text for the caller's Accept-Language.
type Localizer interface {
	Localize(acceptLanguage, id, fallback string) string
}

type ErrorItem struct {
	Type     string `json:"type"`
	Msg      string `json:"msg"`
	Path     string `json:"path"`
	Location string `json:"location"`
}

type ErrorBody struct {
	Errors []ErrorItem `json:"errors"`
}

// Responder writes JSON bodies and is the single place errors become HTTP responses.
type Responder struct {
	logger    logger.ZapLogger
	localizer Localizer
}

func NewResponder(log logger.ZapLogger, localizer Localizer) *Responder {
	return &Responder{logger: log, localizer: localizer}
}

func (rs *Responder) JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		rs.logger.Error("failed to write response", zap.Error(err))
	}
}

func (rs *Responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperror.From(err)
	status := appErr.Status()

	if status >= http.StatusInternalServerError {
		rs.logger.Error("request failed",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", chimw.GetReqID(r.Context())),
		)
	}

	msg := appErr.Message
	if rs.localizer != nil && appErr.MessageID != "" {
		msg = rs.localizer.Localize(r.Header.Get("Accept-Language"), appErr.MessageID, appErr.Message)
	}

	rs.JSON(w, status, ErrorBody{Errors: []ErrorItem{{Type: appErr.Type(), Msg: msg}}})
}
