package context

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeRequestID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		keep bool
	}{
		{name: "caller id kept", in: "trace-42", keep: true},
		{name: "empty replaced", in: ""},
		{name: "whitespace replaced", in: "trace 42"},
		{name: "control character replaced", in: "trace\n42"},
		{name: "too long replaced", in: strings.Repeat("a", maxRequestIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeRequestID(tt.in)
			if tt.keep {
				assert.Equal(t, tt.in, got)

				return
			}
			assert.NotEqual(t, tt.in, got)
			assert.Len(t, got, 36)
		})
	}
}

func TestRequestID_FallsBackToRequestContext(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest("GET", "/", nil)
	req = req.WithContext(WithRequestID(req.Context(), "from-ctx"))
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Equal(t, "from-ctx", RequestID(c))

	SetRequestID(c, "from-echo")
	assert.Equal(t, "from-echo", RequestID(c))
}

func TestScope(t *testing.T) {
	fallback := slog.Default()

	assert.Same(t, fallback, LoggerFrom(context.Background(), fallback))

	ctx, logger := Scope(context.Background(), fallback, "req-1")
	assert.Equal(t, "req-1", RequestIDFrom(ctx))
	assert.Same(t, logger, LoggerFrom(ctx, fallback))
	assert.NotSame(t, fallback, logger)
}
