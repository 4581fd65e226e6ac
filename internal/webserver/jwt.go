package webserver

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// AdminCookieName holds the signed admin session token.
const AdminCookieName = "admin_token"

// AdminSessionTTL bounds the admin session.
const AdminSessionTTL = 8 * time.Hour

// AdminClaims is the JWT payload of the admin session cookie.
type AdminClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SignAdminToken issues the HS256 session token for the administrator.
func SignAdminToken(email, secret string) (string, error) {
	now := time.Now()
	claims := AdminClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AdminSessionTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// GetCurrentAdmin extracts the authenticated admin claims set by the
// JWT middleware. Returns nil on public routes.
func GetCurrentAdmin(c echo.Context) *AdminClaims {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil
	}
	claims, ok := token.Claims.(*AdminClaims)
	if !ok {
		return nil
	}
	return claims
}

// NewAdminCookie wraps a signed token in the http-only session cookie.
// Production mode ships it cross-site (SameSite=None; Secure).
func NewAdminCookie(token string, production bool) *http.Cookie {
	cookie := &http.Cookie{
		Name:     AdminCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(AdminSessionTTL / time.Second),
		SameSite: http.SameSiteLaxMode,
	}
	if production {
		cookie.SameSite = http.SameSiteNoneMode
		cookie.Secure = true
	}
	return cookie
}

// ExpiredAdminCookie clears the session cookie on logout.
func ExpiredAdminCookie() *http.Cookie {
	return &http.Cookie{
		Name:     AdminCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	}
}
