// Package adminapi wires the storefront's HTTP surface: the public
// catalog endpoints plus the cookie-authenticated admin operations.
package adminapi

import (
	"github.com/noespetshop/storefront/internal/webserver"
)

// Register attaches every route to the web server.
func Register(ws *webserver.WebServer) {
	registerAuthRoutes(ws)
	registerProductRoutes(ws)
	registerCategoryRoutes(ws)
	registerPromotionRoutes(ws)
	registerImportRoutes(ws)
	registerImageRoutes(ws)
	registerCartRoutes(ws)
}
