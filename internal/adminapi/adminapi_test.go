package adminapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noespetshop/storefront/config"
	"github.com/noespetshop/storefront/internal/imagestore"
	"github.com/noespetshop/storefront/internal/store"
	"github.com/noespetshop/storefront/internal/webserver"
)

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "correct-horse"
)

// testAppCtx satisfies webserver.AppContext without booting the full
// application.
type testAppCtx struct {
	cfg *config.AppConfig
	cat store.Catalog
	img *imagestore.Client
}

func (t *testAppCtx) Config() *config.AppConfig  { return t.cfg }
func (t *testAppCtx) Catalog() store.Catalog     { return t.cat }
func (t *testAppCtx) Images() *imagestore.Client { return t.img }

func newTestServer(t *testing.T) (*webserver.WebServer, *testAppCtx) {
	t.Helper()

	cat, err := store.NewFileCatalog(t.TempDir())
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.AppConfig{
		Web: config.WebConfig{
			Secret:       "test-secret",
			ClientOrigin: "http://localhost:5173",
		},
		Admin: config.AdminConfig{
			Email:        testAdminEmail,
			PasswordHash: string(hash),
		},
		Checkout: config.CheckoutConfig{
			StoreName:      "Noe's PetShop",
			WhatsappNumber: "5511999999999",
		},
	}

	appctx := &testAppCtx{
		cfg: cfg,
		cat: cat,
		img: imagestore.New(config.StorageConfig{}, cfg.Web.ClientOrigin),
	}
	ws := webserver.NewWebServer(appctx)
	Register(ws)
	return ws, appctx
}

func adminCookie(t *testing.T, cfg *config.AppConfig) *http.Cookie {
	t.Helper()
	token, err := webserver.SignAdminToken(cfg.Admin.Email, cfg.Web.Secret)
	require.NoError(t, err)
	return &http.Cookie{Name: webserver.AdminCookieName, Value: token}
}

// doJSON performs a request against the router and returns the
// recorded response.
func doJSON(ws *webserver.WebServer, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	ws.Echo().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func bodyMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	decodeBody(t, rec, &body)
	msg, _ := body["message"].(string)
	return msg
}
