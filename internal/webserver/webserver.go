package webserver

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/noespetshop/storefront/config"
	"github.com/noespetshop/storefront/internal/imagestore"
	"github.com/noespetshop/storefront/internal/store"
)

// Echo context keys for the injected application handles.
const (
	ContextConfigKey  = "petshop_config"
	ContextCatalogKey = "petshop_catalog"
	ContextImagesKey  = "petshop_images"
)

// AppContext is the slice of the application the web server needs.
// *app.Application satisfies it.
type AppContext interface {
	Config() *config.AppConfig
	Catalog() store.Catalog
	Images() *imagestore.Client
}

var server *WebServer

type WebServer struct {
	root   *echo.Echo
	appctx AppContext
	authmw echo.MiddlewareFunc
}

// Init builds the singleton web server for the application context.
func Init(appctx AppContext) *WebServer {
	server = NewWebServer(appctx)
	return server
}

func Server() *WebServer {
	return server
}

func NewWebServer(appctx AppContext) *WebServer {
	ws := &WebServer{appctx: appctx}
	cfg := appctx.Config()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &payloadValidator{validate: validator.New()}

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.Web.ClientOrigin},
		AllowCredentials: true,
	}))
	e.Use(ws.injectAppContext)

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		message := "Erro interno do servidor."
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			}
		}
		if code >= http.StatusInternalServerError {
			zap.L().Error("request error",
				zap.String("path", c.Request().URL.Path), zap.Error(err))
		}
		_ = c.JSON(code, echo.Map{"message": message})
	}

	ws.root = e
	ws.authmw = ws.adminJWT()
	return ws
}

func (s *WebServer) injectAppContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(ContextConfigKey, s.appctx.Config())
		c.Set(ContextCatalogKey, s.appctx.Catalog())
		c.Set(ContextImagesKey, s.appctx.Images())
		return next(c)
	}
}

// Public route registration.

func (s *WebServer) PubGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.root.GET(path, h, m...)
}

func (s *WebServer) PubPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.root.POST(path, h, m...)
}

// Admin route registration: same paths, JWT cookie required.

func (s *WebServer) ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.root.GET(path, h, append([]echo.MiddlewareFunc{s.authmw}, m...)...)
}

func (s *WebServer) ApiPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.root.POST(path, h, append([]echo.MiddlewareFunc{s.authmw}, m...)...)
}

func (s *WebServer) ApiPUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.root.PUT(path, h, append([]echo.MiddlewareFunc{s.authmw}, m...)...)
}

func (s *WebServer) ApiDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.root.DELETE(path, h, append([]echo.MiddlewareFunc{s.authmw}, m...)...)
}

func (s *WebServer) adminJWT() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(s.appctx.Config().Web.Secret),
		TokenLookup: "cookie:" + AdminCookieName,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(AdminClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Não autenticado.")
		},
	})
}

// Echo returns the underlying router, used by handler tests.
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

func (s *WebServer) Start() error {
	addr := s.appctx.Config().GetListenAddr()
	zap.L().Info("starting web server", zap.String("listen", addr))
	s.root.Server.ReadTimeout = 30 * time.Second
	s.root.Server.WriteTimeout = 60 * time.Second
	return s.root.Start(addr)
}

func (s *WebServer) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}

type payloadValidator struct {
	validate *validator.Validate
}

func (v *payloadValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
