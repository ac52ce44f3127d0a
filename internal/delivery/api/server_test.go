package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tastebud/config"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func testEcho(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{}
	cfg.HTTP.MaxRequestBodySize = "1KB"

	e := newEcho(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.POST("/echo", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	return e
}

func TestNewEcho_RequestIDRoundTrip(t *testing.T) {
	e := testEcho(t)

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("{}"))
	req.Header.Set(echo.HeaderXRequestID, "order-req-7")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "order-req-7", rec.Header().Get(echo.HeaderXRequestID))
}

func TestNewEcho_BodyLimit(t *testing.T) {
	e := testEcho(t)

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 4096)))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	assert.Contains(t, rec.Body.String(), `"code":"HTTP_ERROR"`)
}
