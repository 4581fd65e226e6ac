package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/noespetshop/storefront/internal/importer"
	"github.com/noespetshop/storefront/internal/webserver"
)

func registerImportRoutes(ws *webserver.WebServer) {
	ws.ApiPOST("/api/products/import", importProducts, middleware.BodyLimit("10M"))
}

var allowedSheetTypes = map[string]bool{
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"text/csv": true,
}

func importProducts(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fail(c, http.StatusBadRequest, "MISSING_FILE", "Envie o arquivo da planilha.", nil)
	}

	contentType := fh.Header.Get("Content-Type")
	if !allowedSheetTypes[contentType] {
		return fail(c, http.StatusBadRequest, "INVALID_FILE_TYPE",
			"Envie uma planilha Excel (.xlsx/.xls) ou arquivo CSV.", contentType)
	}

	src, err := fh.Open()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "READ_ERROR", "Não foi possível importar a planilha.", err.Error())
	}
	defer src.Close()

	rows, err := importer.ParseFile(fh.Filename, contentType, src)
	if err != nil {
		return fail(c, http.StatusBadRequest, "PARSE_ERROR", err.Error(), nil)
	}
	if len(rows) == 0 {
		return fail(c, http.StatusBadRequest, "EMPTY_SHEET", "Nenhuma linha de dados foi encontrada.", nil)
	}

	report, err := importer.Run(GetCatalog(c), rows)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "IMPORT_ERROR", "Não foi possível importar a planilha.", err.Error())
	}

	zap.L().Info("spreadsheet import finished",
		zap.String("file", fh.Filename),
		zap.Int("rows", report.TotalRows),
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("errors", len(report.Errors)))
	return ok(c, report)
}
