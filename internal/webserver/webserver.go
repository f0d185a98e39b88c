package webserver

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/lumenlabs/webmart/internal/app"
)

// ContextAppKey is the echo context key carrying the application
// context injected by middleware.
const ContextAppKey = "webmart_app"

type WebServer struct {
	root   *echo.Echo
	appCtx app.AppContext
}

var server *WebServer

// Init builds the shared web server instance. Route registration via
// ApiGET and friends must happen after Init.
func Init(appCtx app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(requestLogger())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextAppKey, appCtx)
			return next(c)
		}
	})
	server = &WebServer{root: e, appCtx: appCtx}
	return server
}

func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			zap.L().Debug("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("elapsed", time.Since(start)))
			return err
		}
	}
}

// Listen starts the server and blocks.
func Listen() error {
	cfg := server.appCtx.Config()
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	zap.S().Infof("web server listening on %s", addr)
	return server.root.Start(addr)
}

// Shutdown stops the server gracefully.
func Shutdown(ctx context.Context) error {
	return server.root.Shutdown(ctx)
}

// Echo exposes the underlying router (used in tests).
func Echo() *echo.Echo {
	return server.root
}

func ApiGET(path string, h echo.HandlerFunc) {
	server.root.GET("/api"+path, h)
}

func ApiPOST(path string, h echo.HandlerFunc) {
	server.root.POST("/api"+path, h)
}

func ApiPUT(path string, h echo.HandlerFunc) {
	server.root.PUT("/api"+path, h)
}

func ApiDELETE(path string, h echo.HandlerFunc) {
	server.root.DELETE("/api"+path, h)
}

// GetAppContext returns the application context injected into the
// request by middleware.
func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(ContextAppKey).(app.AppContext)
}
