package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/noespetshop/storefront/config"
	"github.com/noespetshop/storefront/internal/imagestore"
	"github.com/noespetshop/storefront/internal/store"
	"github.com/noespetshop/storefront/internal/webserver"
)

// GetCatalog returns the catalog store injected by the web server.
func GetCatalog(c echo.Context) store.Catalog {
	return c.Get(webserver.ContextCatalogKey).(store.Catalog)
}

func GetImages(c echo.Context) *imagestore.Client {
	return c.Get(webserver.ContextImagesKey).(*imagestore.Client)
}

func GetConfig(c echo.Context) *config.AppConfig {
	return c.Get(webserver.ContextConfigKey).(*config.AppConfig)
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

// fail answers with the storefront's message envelope. detail is only
// logged, never returned to the client.
func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	if detail != nil {
		zap.L().Warn("request failed",
			zap.String("path", c.Request().URL.Path),
			zap.String("code", code),
			zap.Any("detail", detail))
	}
	return c.JSON(status, echo.Map{"code": code, "message": message})
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "parse id param")
	}
	return id, nil
}
