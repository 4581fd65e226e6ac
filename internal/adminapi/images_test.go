package adminapi

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noespetshop/storefront/internal/imagestore"
)

func TestServeProductImageFallsBackToPlaceholder(t *testing.T) {
	ws, _ := newTestServer(t)

	rec := doJSON(ws, http.MethodGet, "/product-image/789100010001", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, imagestore.PlaceholderContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, imagestore.PlaceholderSVG, rec.Body.String())
}

// imageUpload builds the admin image upload form: a codBarras field
// plus the image file part.
func imageUpload(t *testing.T, barcode, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("codBarras", barcode))

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="foto.png"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUploadImageRequiresMatchingBarcode(t *testing.T) {
	ws, appctx := newTestServer(t)
	cookie := adminCookie(t, appctx.cfg)

	doJSON(ws, http.MethodPost, "/api/products",
		`{"name":"Ração","price":10,"codBarras":"789100010001"}`, cookie)

	body, contentType := imageUpload(t, "999999999999", "image/png", []byte("png-bytes"))
	rec := doUpload(ws, "/api/products/1/image", body, contentType, cookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "codBarras do formulário não confere com o codBarras do produto.", bodyMessage(t, rec))
}

func TestUploadImageFailsWhenStorageUnconfigured(t *testing.T) {
	ws, appctx := newTestServer(t)
	cookie := adminCookie(t, appctx.cfg)

	doJSON(ws, http.MethodPost, "/api/products",
		`{"name":"Ração","price":10,"codBarras":"789100010001"}`, cookie)

	body, contentType := imageUpload(t, "789100010001", "image/png", []byte("png-bytes"))
	rec := doUpload(ws, "/api/products/1/image", body, contentType, cookie)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Armazenamento de imagens não configurado. Verifique as variáveis R2.", bodyMessage(t, rec))
}

func TestUploadImageUnknownProduct(t *testing.T) {
	ws, appctx := newTestServer(t)

	body, contentType := imageUpload(t, "789100010001", "image/png", []byte("png-bytes"))
	rec := doUpload(ws, "/api/products/9/image", body, contentType, adminCookie(t, appctx.cfg))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Produto não encontrado.", bodyMessage(t, rec))
}
