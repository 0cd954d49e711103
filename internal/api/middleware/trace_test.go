package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/taskboard/internal/api/shared"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	l, buf := logger.GetTestLogger(t)

	var traceID string
	var requestID string
	handler := chimiddleware.RequestID(TraceMiddleware(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		requestID = logger.RequestIDFromContext(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusTeapot)
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	require.Len(t, traceID, 32)
	assert.NotEmpty(t, requestID)

	logger.AssertLogField(t, buf, "msg", "inside handler")
	logger.AssertLogField(t, buf, "trace_id", traceID)
	logger.AssertLogField(t, buf, "request_id", requestID)
	logger.AssertLogField(t, buf, "status", float64(http.StatusTeapot))
}

func TestTraceMiddlewareWithoutRequestID(t *testing.T) {
	l, buf := logger.GetTestLogger(t)

	handler := TraceMiddleware(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, shared.GetTraceID(r.Context()))
		assert.Empty(t, logger.RequestIDFromContext(r.Context()))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	logger.AssertLogField(t, buf, "status", float64(http.StatusOK))
}
