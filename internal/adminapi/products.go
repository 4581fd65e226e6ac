package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/noespetshop/storefront/internal/domain"
	"github.com/noespetshop/storefront/internal/store"
	"github.com/noespetshop/storefront/internal/webserver"
)

func registerProductRoutes(ws *webserver.WebServer) {
	ws.PubGET("/api/products", listProducts)
	ws.ApiPOST("/api/products", createProduct)
	ws.ApiPUT("/api/products/bulk", bulkUpdateProducts)
	ws.ApiPUT("/api/products/:id", updateProduct)
	ws.ApiDELETE("/api/products/:id", deleteProduct)
}

type productPayload struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	CostPrice   *float64 `json:"costPrice"`
	Category    *string  `json:"category"`
	Subcategory *string  `json:"subcategory"`
	Barcode     *string  `json:"codBarras"`
	Featured    *bool    `json:"featured"`
}

func (p productPayload) toPatch() store.ProductPatch {
	return store.ProductPatch{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CostPrice:   p.CostPrice,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		Barcode:     p.Barcode,
		Featured:    p.Featured,
	}
}

// attachProductImage fills a barcode-derived image URL on products
// that have no explicit one.
func attachProductImage(c echo.Context, p domain.Product) domain.Product {
	if p.ImageURL == "" && p.Barcode != "" {
		p.ImageURL = GetImages(c).ImageBaseURL() + "/" + p.Barcode
	}
	return p
}

func listProducts(c echo.Context) error {
	featured := c.QueryParam("featured")
	filter := store.ProductFilter{
		FeaturedOnly: featured == "true" || featured == "1",
	}

	products, err := GetCatalog(c).ListProducts(filter)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Erro ao listar produtos.", err.Error())
	}
	for i := range products {
		products[i] = attachProductImage(c, products[i])
	}
	return ok(c, products)
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Não foi possível ler o produto.", err.Error())
	}
	if payload.Name == nil || strings.TrimSpace(*payload.Name) == "" || payload.Price == nil {
		return fail(c, http.StatusBadRequest, "MISSING_FIELDS", "Nome e preço são obrigatórios.", nil)
	}

	p := domain.Product{
		Name:     strings.TrimSpace(*payload.Name),
		Price:    *payload.Price,
		Featured: true,
	}
	if payload.Description != nil {
		p.Description = *payload.Description
	}
	if payload.Category != nil {
		p.Category = *payload.Category
	}
	if payload.Subcategory != nil {
		p.Subcategory = *payload.Subcategory
	}
	if payload.Barcode != nil {
		p.Barcode = strings.TrimSpace(*payload.Barcode)
	}
	if payload.CostPrice != nil {
		p.CostPrice = payload.CostPrice
	}
	if payload.Featured != nil {
		p.Featured = *payload.Featured
	}

	saved, err := GetCatalog(c).CreateProduct(p)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Erro ao criar produto.", err.Error())
	}
	return created(c, attachProductImage(c, saved))
}

func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Produto não encontrado.", nil)
	}
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Não foi possível ler o produto.", err.Error())
	}

	updated, err := GetCatalog(c).UpdateProduct(id, payload.toPatch())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Erro ao atualizar produto.", err.Error())
	}
	if updated == nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Produto não encontrado.", nil)
	}
	return ok(c, attachProductImage(c, *updated))
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Produto não encontrado.", nil)
	}
	removed, err := GetCatalog(c).DeleteProduct(id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Erro ao excluir produto.", err.Error())
	}
	if !removed {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Produto não encontrado.", nil)
	}
	return ok(c, echo.Map{"message": "Produto excluído com sucesso."})
}

type bulkProductItem struct {
	ID int64 `json:"id"`
	productPayload
}

type bulkProductResult struct {
	ID      int64           `json:"id"`
	Status  string          `json:"status"`
	Product *domain.Product `json:"product,omitempty"`
}

// bulkUpdateProducts applies a list of partial updates sequentially,
// isolating per-item failures.
func bulkUpdateProducts(c echo.Context) error {
	var items []bulkProductItem
	if err := c.Bind(&items); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Não foi possível ler os produtos.", err.Error())
	}
	if len(items) == 0 {
		return fail(c, http.StatusBadRequest, "MISSING_FIELDS", "Nenhum produto informado.", nil)
	}

	cat := GetCatalog(c)
	results := make([]bulkProductResult, 0, len(items))
	for _, item := range items {
		updated, err := cat.UpdateProduct(item.ID, item.toPatch())
		switch {
		case err != nil:
			results = append(results, bulkProductResult{ID: item.ID, Status: "error"})
		case updated == nil:
			results = append(results, bulkProductResult{ID: item.ID, Status: "not_found"})
		default:
			p := attachProductImage(c, *updated)
			results = append(results, bulkProductResult{ID: item.ID, Status: "updated", Product: &p})
		}
	}
	return ok(c, results)
}
