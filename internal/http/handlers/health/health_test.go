package health

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name     string
		cache    Pinger
		wantBody string
	}{
		{name: "no cache", wantBody: `{"status":"ok"}`},
		{
			name:     "cache up",
			cache:    pingerFunc(func(context.Context) error { return nil }),
			wantBody: `{"status":"ok","cache":"ok"}`,
		},
		{
			name:     "cache down",
			cache:    pingerFunc(func(context.Context) error { return errors.New("refused") }),
			wantBody: `{"status":"ok","cache":"down"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			New(newNoopLogger(), tt.cache).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
