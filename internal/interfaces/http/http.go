package http

import (
	"context"
	"expvar"
	"fmt"
	"net/http"
	"net/http/pprof"
	"strings"
	"time"

	"github.com/ericzhangohoh/caplet/internal/domain"
	infra "github.com/ericzhangohoh/caplet/internal/infrastructure"
	"github.com/ericzhangohoh/caplet/internal/infrastructure/auth"
	"github.com/ericzhangohoh/caplet/internal/infrastructure/uuid"
	"github.com/ericzhangohoh/caplet/internal/infrastructure/validate"
	"github.com/ericzhangohoh/caplet/internal/interfaces/http/middleware"
	"github.com/ericzhangohoh/caplet/internal/landing"
	"github.com/labstack/echo/v4"
	echo_middleware "github.com/labstack/echo/v4/middleware"
	"go.elastic.co/apm/module/apmechov4"
	"go.uber.org/zap"
)

// Pinger a backend checked by the liveness probe
type Pinger interface {
	Ping(ctx context.Context) error
}

type endpoint struct {
	apiVersion  string
	middlewares []echo.MiddlewareFunc
	groups      []*apiGroup
}

type apiGroup struct {
	prefix      string
	middlewares []echo.MiddlewareFunc
	routes      []*route
}

type route struct {
	method      string
	path        string
	handler     echo.HandlerFunc
	middlewares []echo.MiddlewareFunc
}

// NewServer assemble the echo app without starting it
func NewServer(
	option *infra.AppConfig,
	CourseUseCase domain.CourseUseCase,
	Content *landing.Content,
	probes []Pinger,
	logger *zap.Logger,
) (*echo.Echo, error) {
	app := echo.New()
	app.HideBanner = true
	app.HidePort = true

	renderer, err := NewTemplateRenderer()
	if err != nil {
		return nil, err
	}
	app.Renderer = renderer

	idGenerator, err := uuid.NewNanoIDGenerator(option.Security.IDLength)
	if err != nil {
		return nil, err
	}
	jwtUtil := auth.NewJWTUtil(option.Security.JWTMethod,
		option.Security.JWTSecret,
		option.Security.TokenName)
	validator := validate.NewValidator()
	websocket := infra.NewWebsocket()
	requestIDMiddleware := echo_middleware.RequestIDWithConfig(echo_middleware.RequestIDConfig{
		Generator: idGenerator.RequestID,
	})
	traceLoggerMiddleware := middleware.SetTraceLogger(logger)

	registerLivenessProbe(app, probes...)
	if option.Env == infra.EnvDevelopment {
		registerProfileEndpoints(app)
	}
	app.Use(middleware.Logging(logger, &middleware.LoggingConfig{
		Skipper: func(e echo.Context) bool {
			return strings.HasPrefix(e.Request().RequestURI, "/healthz")
		},
	}))
	app.Use(middleware.ErrorHandling(
		&middleware.ErrorHandlingOption{
			Handler: func(c echo.Context, traceID string, err error) {
				code := http.StatusInternalServerError
				detail := http.StatusText(code)
				if he, ok := err.(*echo.HTTPError); ok {
					code = he.Code
					detail = fmt.Sprint(he.Message)
				} else {
					logger.Error(err.Error(), zap.String("trace.id", traceID))
				}
				c.JSON(code, NewRESTStandardError(code, detail).SetTraceID(traceID))
			},
			Logger: logger,
		},
	))
	app.Use(middleware.NoRouteMatched(func(c echo.Context) error {
		if strings.HasPrefix(c.Request().URL.Path, "/api/") {
			return c.JSON(http.StatusNotFound,
				NewRESTStandardError(http.StatusNotFound, "no such endpoint").SetTraceID(traceIDFrom(c)))
		}
		return c.Render(http.StatusNotFound, "error", errorPage{
			Message:   "Page not found",
			BackURL:   "/courses",
			BackLabel: "Back to courses",
		})
	}))
	app.Use(echo_middleware.Secure())
	if option.DevOP.APM {
		app.Use(apmechov4.Middleware())
	}
	app.Use(echo_middleware.CORS())
	app.Use(middleware.AbortRequest(&middleware.AbortRequestOption{
		Timeout: option.RequestTimeout,
		Skipper: func(c echo.Context) bool {
			return websocketRequest(c)
		},
	}))

	CourseHandler := NewCourseHandler(CourseUseCase, jwtUtil, validator)
	LandingHandler := NewLandingHandler(CourseUseCase, Content)
	NavigateHandler := NewNavigateHandler(CourseUseCase, jwtUtil, validator, websocket)

	createEndpoint(app, pageEndpoint(
		CourseHandler,
		LandingHandler,
		requestIDMiddleware, traceLoggerMiddleware,
	))
	createEndpoint(app, v1Endpoint(
		CourseHandler,
		LandingHandler,
		NavigateHandler,
		requestIDMiddleware, traceLoggerMiddleware,
	))
	return app, nil
}

// Serve create http transport server and block until it stops
func Serve(
	option *infra.AppConfig,
	CourseUseCase domain.CourseUseCase,
	Content *landing.Content,
	probes []Pinger,
	logger *zap.Logger,
) error {
	app, err := NewServer(option, CourseUseCase, Content, probes, logger)
	if err != nil {
		return err
	}
	printRoutes(app, logger)
	addr := fmt.Sprintf("%s:%d", option.Host, option.Port)
	logger.Info("Server started", zap.String("server.address", addr))
	return app.Start(addr)
}

func websocketRequest(c echo.Context) bool {
	return strings.EqualFold(c.Request().Header.Get(echo.HeaderUpgrade), "websocket")
}

func printRoutes(app *echo.Echo, logger *zap.Logger) {
	for _, route := range app.Routes() {
		if !strings.HasPrefix(route.Name, "github.com/labstack/echo") {
			name := route.Name
			trimIndex := strings.LastIndexByte(name, '/')
			logger.Debug("Registered route", zap.String("method", route.Method), zap.String("path", route.Path), zap.String("name", string(name[trimIndex+1:])))
		}
	}
}

func registerLivenessProbe(app *echo.Echo, probes ...Pinger) {
	app.GET("/healthz", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		for _, p := range probes {
			if err := p.Ping(ctx); err != nil {
				return c.NoContent(http.StatusServiceUnavailable)
			}
		}
		return c.NoContent(http.StatusOK)
	})
}

func registerProfileEndpoints(app *echo.Echo) {
	expvarHandler := expvar.Handler()
	app.GET("/debug/vars", func(c echo.Context) error {
		expvarHandler.ServeHTTP(c.Response().Writer, c.Request())
		return nil
	})
	app.GET("/debug/pprof/", func(c echo.Context) error {
		pprof.Index(c.Response().Writer, c.Request())
		return nil
	})
	app.GET("/debug/pprof/:name", func(c echo.Context) error {
		switch c.Param("name") {
		case "cmdline":
			pprof.Cmdline(c.Response().Writer, c.Request())
		case "profile":
			pprof.Profile(c.Response().Writer, c.Request())
		case "symbol":
			pprof.Symbol(c.Response().Writer, c.Request())
		case "trace":
			pprof.Trace(c.Response().Writer, c.Request())
		default:
			pprof.Handler(c.Param("name")).ServeHTTP(c.Response().Writer, c.Request())
		}
		return nil
	})
}

// createEndpoint mount def on app, an empty apiVersion mounts at the root
func createEndpoint(app *echo.Echo, def *endpoint) {
	type RESTMethod func(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route

	var root *echo.Group
	switch {
	case def.apiVersion == "":
		root = app.Group("", def.middlewares...)
	case strings.HasPrefix(def.apiVersion, "/"):
		root = app.Group(def.apiVersion, def.middlewares...)
	default:
		root = app.Group("/"+def.apiVersion, def.middlewares...)
	}

	for _, group := range def.groups {
		echoGroup := root.Group(group.prefix, group.middlewares...)
		for _, api := range group.routes {
			var method RESTMethod
			switch api.method {
			case "GET":
				method = echoGroup.GET
			case "HEAD":
				method = echoGroup.HEAD
			default:
				panic(fmt.Errorf("createEndpoint: unknown method %s", api.method))
			}
			method(api.path, api.handler, api.middlewares...)
		}
	}
}
