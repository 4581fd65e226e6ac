package adminapi

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/noespetshop/storefront/internal/imagestore"
	"github.com/noespetshop/storefront/internal/store"
	"github.com/noespetshop/storefront/internal/webserver"
)

func registerImageRoutes(ws *webserver.WebServer) {
	ws.ApiPOST("/api/products/:id/image", uploadProductImage, middleware.BodyLimit("5M"))
	ws.PubGET("/product-image/:codBarras", serveProductImage)
}

func uploadProductImage(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Produto não encontrado.", nil)
	}

	barcode := c.FormValue("codBarras")
	if barcode == "" {
		return fail(c, http.StatusBadRequest, "MISSING_BARCODE", "codBarras é obrigatório para upload da imagem.", nil)
	}

	product, err := GetCatalog(c).GetProduct(id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Erro ao validar produto.", err.Error())
	}
	if product == nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Produto não encontrado.", nil)
	}
	if product.Barcode != barcode {
		return fail(c, http.StatusBadRequest, "BARCODE_MISMATCH",
			"codBarras do formulário não confere com o codBarras do produto.", nil)
	}

	images := GetImages(c)
	if !images.Configured() {
		return fail(c, http.StatusInternalServerError, "STORAGE_NOT_CONFIGURED",
			"Armazenamento de imagens não configurado. Verifique as variáveis R2.", nil)
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return fail(c, http.StatusBadRequest, "MISSING_FILE", "Arquivo de imagem é obrigatório.", nil)
	}
	contentType := fh.Header.Get("Content-Type")
	if contentType != "image/png" {
		return fail(c, http.StatusBadRequest, "INVALID_FILE_TYPE", "A imagem deve ser PNG.", contentType)
	}

	src, err := fh.Open()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "READ_ERROR", "Erro ao salvar imagem no armazenamento.", err.Error())
	}
	defer src.Close()
	body, err := io.ReadAll(src)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "READ_ERROR", "Erro ao salvar imagem no armazenamento.", err.Error())
	}

	key, err := images.Put(c.Request().Context(), barcode, contentType, fh.Filename, body)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Erro ao salvar imagem no armazenamento.", err.Error())
	}

	imageURL := images.PublicURL(key, barcode)
	updated, err := GetCatalog(c).UpdateProduct(id, store.ProductPatch{ImageURL: &imageURL})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Erro ao atualizar produto.", err.Error())
	}
	if updated == nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Produto não encontrado.", nil)
	}

	zap.L().Info("product image uploaded",
		zap.Int64("product_id", updated.ID), zap.String("key", key))
	return ok(c, echo.Map{"message": "Imagem enviada com sucesso.", "imageUrl": imageURL})
}

func serveProductImage(c echo.Context) error {
	barcode := c.Param("codBarras")

	body, contentType, err := GetImages(c).GetByBarcode(c.Request().Context(), barcode)
	if err != nil {
		return c.Blob(http.StatusOK, imagestore.PlaceholderContentType, []byte(imagestore.PlaceholderSVG))
	}
	defer body.Close()
	return c.Stream(http.StatusOK, contentType, body)
}
