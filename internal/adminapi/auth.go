package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noespetshop/storefront/internal/webserver"
)

func registerAuthRoutes(ws *webserver.WebServer) {
	ws.PubPOST("/api/admin/login", loginAdmin)
	ws.PubPOST("/api/admin/logout", logoutAdmin)
	ws.ApiGET("/api/admin/me", adminMe)
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func loginAdmin(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Informe e-mail e senha.", err.Error())
	}
	if payload.Email == "" || payload.Password == "" {
		return fail(c, http.StatusBadRequest, "MISSING_CREDENTIALS", "Informe e-mail e senha.", nil)
	}

	cfg := GetConfig(c)
	if cfg.Admin.PasswordHash == "" {
		return fail(c, http.StatusInternalServerError, "AUTH_NOT_CONFIGURED", "Erro ao efetuar login.",
			"admin password hash is not configured")
	}

	if !strings.EqualFold(payload.Email, cfg.Admin.Email) ||
		bcrypt.CompareHashAndPassword([]byte(cfg.Admin.PasswordHash), []byte(payload.Password)) != nil {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Credenciais inválidas.", nil)
	}

	token, err := webserver.SignAdminToken(cfg.Admin.Email, cfg.Web.Secret)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Erro ao efetuar login.", err.Error())
	}

	production := cfg.Logger.Mode == "production"
	c.SetCookie(webserver.NewAdminCookie(token, production))
	zap.L().Info("admin login", zap.String("email", cfg.Admin.Email))
	return ok(c, echo.Map{"message": "Login realizado com sucesso."})
}

func logoutAdmin(c echo.Context) error {
	c.SetCookie(webserver.ExpiredAdminCookie())
	return ok(c, echo.Map{"message": "Logout efetuado."})
}

func adminMe(c echo.Context) error {
	claims := webserver.GetCurrentAdmin(c)
	if claims == nil {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Não autenticado.", nil)
	}
	return ok(c, echo.Map{"email": claims.Email})
}
