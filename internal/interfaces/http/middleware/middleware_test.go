package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ericzhangohoh/caplet/internal/infrastructure/logging"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func serve(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestErrorHandling(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	e := echo.New()
	e.Use(ErrorHandling(&ErrorHandlingOption{
		Handler: func(c echo.Context, traceID string, err error) {
			c.String(http.StatusTeapot, "handled: "+err.Error())
		},
		Logger: zap.New(core),
	}))
	e.GET("/fail", func(c echo.Context) error { return errors.New("boom") })
	e.GET("/panic", func(c echo.Context) error { panic("kaboom") })

	rec := serve(e, "/fail")
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "handled: boom", rec.Body.String())

	rec = serve(e, "/panic")
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "handled: kaboom", rec.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("kaboom").Len())
}

func TestNoRouteMatched(t *testing.T) {
	e := echo.New()
	e.Use(NoRouteMatched(func(c echo.Context) error {
		return c.String(http.StatusNotFound, "nothing here")
	}))
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(e, "/ok").Code)
	rec := serve(e, "/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "nothing here", rec.Body.String())
}

func TestLoggingAndTraceLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	base := zap.New(core)
	e := echo.New()
	e.Use(Logging(base, &LoggingConfig{
		Skipper: func(c echo.Context) bool { return c.Path() == "/healthz" },
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderXRequestID, "rid-1")
			return next(c)
		}
	})
	e.Use(SetTraceLogger(base))
	e.GET("/hello", func(c echo.Context) error {
		logging.ExtractLoggerFromContext(c.Request().Context()).Info("inside")
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/healthz", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	serve(e, "/hello")
	serve(e, "/healthz")

	inside := logs.FilterMessage("inside").All()
	if assert.Len(t, inside, 1) {
		assert.Equal(t, "rid-1", inside[0].ContextMap()["trace.id"])
	}
	access := logs.FilterField(zap.Int("http.response.status_code", http.StatusNoContent)).All()
	assert.Len(t, access, 1)
	assert.Equal(t, 0, logs.FilterField(zap.String("url.path", "/healthz")).Len())
}

func TestAbortRequest(t *testing.T) {
	e := echo.New()
	e.Use(AbortRequest(&AbortRequestOption{Timeout: 20 * time.Millisecond}))
	e.GET("/slow", func(c echo.Context) error {
		<-c.Request().Context().Done()
		if errors.Is(c.Request().Context().Err(), context.DeadlineExceeded) {
			return c.NoContent(http.StatusGatewayTimeout)
		}
		return c.NoContent(http.StatusOK)
	})
	assert.Equal(t, http.StatusGatewayTimeout, serve(e, "/slow").Code)
}
