package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Temutjin2k/agro-insurance/pkg/logger"
	wrap "github.com/Temutjin2k/agro-insurance/pkg/logger/wrapper"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMiddleware() *Middleware {
	return NewMiddleware(logger.InitLogger("test", logger.LevelError))
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	m := newTestMiddleware()

	var seen string
	h := m.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lc, ok := wrap.FromContext(r.Context())
		require.True(t, ok)
		seen = lc.RequestID
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	id := rec.Header().Get(RequestIDHeader)
	assert.Equal(t, id, seen)
	_, err := uuid.FromString(id)
	assert.NoError(t, err)
}

func TestRequestID_ReusesIncoming(t *testing.T) {
	m := newTestMiddleware()

	h := m.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestRecover_ReturnsInternalError(t *testing.T) {
	m := newTestMiddleware()

	h := m.Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "close", rec.Header().Get("Connection"))
	assert.Contains(t, rec.Body.String(), "error")
}

func TestMetrics_UsesMatchedPattern(t *testing.T) {
	m := newTestMiddleware()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /points/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	var label string
	h := m.Metrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mux.ServeHTTP(w, r)
		label = routeLabel(r)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/points/42", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "/points/{id}", label)
}

func TestLogging_PassesThrough(t *testing.T) {
	m := newTestMiddleware()

	h := m.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
