package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func swapGlobal(t *testing.T, l *zap.Logger) {
	t.Helper()
	mu.RLock()
	original := log
	mu.RUnlock()
	Set(l)
	t.Cleanup(func() { Set(original) })
}

func TestNew(t *testing.T) {
	t.Run("production", func(t *testing.T) {
		l, err := New("production", "info")
		require.NoError(t, err)
		assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("development honours level", func(t *testing.T) {
		l, err := New("development", "warn")
		require.NoError(t, err)
		assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := New("development", "loud")
		assert.Error(t, err)
	})
}

func TestL_LazyInit(t *testing.T) {
	swapGlobal(t, nil)

	assert.NotNil(t, L())
	assert.NotPanics(t, Sync)
}

func TestRequestIDFrom(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", RequestIDFrom(ctx))
	assert.Equal(t, "", RequestIDFrom(context.Background()))
}

func TestFromCtx(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	swapGlobal(t, zap.New(core))

	FromCtx(WithRequestID(context.Background(), "req-abc")).Info("with id")
	FromCtx(context.Background()).Info("without id")

	logs := observed.TakeAll()
	require.Len(t, logs, 2)
	assert.Equal(t, "req-abc", logs[0].ContextMap()["request_id"])
	_, ok := logs[1].ContextMap()["request_id"]
	assert.False(t, ok)
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	t.Run("generates id when missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	})

	t.Run("preserves existing id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "given-id")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "given-id", seen)
		assert.Equal(t, "given-id", w.Header().Get(RequestIDHeader))
	})
}

func TestAccessLog(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	handler := AccessLog(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodPost, "/exchange", nil)
	req = req.WithContext(WithRequestID(req.Context(), "rid"))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	logs := observed.TakeAll()
	require.Len(t, logs, 1)
	fields := logs[0].ContextMap()
	assert.Equal(t, "POST", fields["method"])
	assert.Equal(t, "/exchange", fields["path"])
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.Equal(t, "rid", fields["request_id"])
}
