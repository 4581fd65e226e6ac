package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/noespetshop/storefront/internal/domain"
	"github.com/noespetshop/storefront/internal/store"
	"github.com/noespetshop/storefront/internal/webserver"
)

func registerCategoryRoutes(ws *webserver.WebServer) {
	ws.PubGET("/api/categories", listCategories)
	ws.ApiPOST("/api/categories", createCategory)
	ws.ApiPUT("/api/categories/:id", updateCategory)
	ws.ApiDELETE("/api/categories/:id", deleteCategory)
}

// categoryPayload accepts parentId as number, numeric string or empty
// string, matching what the admin form sends.
type categoryPayload struct {
	Name        *string     `json:"name"`
	Description *string     `json:"description"`
	ParentID    interface{} `json:"parentId"`
}

// resolveParentID validates a non-empty parentId against the catalog.
// Returns (nil, true) when the field is empty or absent.
func resolveParentID(c echo.Context, raw interface{}) (*int64, bool) {
	if raw == nil || raw == "" {
		return nil, true
	}
	id, err := cast.ToInt64E(raw)
	if err != nil {
		return nil, false
	}
	parent, err := GetCatalog(c).GetCategory(id)
	if err != nil || parent == nil {
		return nil, false
	}
	resolved := parent.ID
	return &resolved, true
}

func listCategories(c echo.Context) error {
	categories, err := GetCatalog(c).ListCategories()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Erro ao listar categorias.", err.Error())
	}
	return ok(c, categories)
}

func createCategory(c echo.Context) error {
	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Não foi possível ler a categoria.", err.Error())
	}
	if payload.Name == nil || strings.TrimSpace(*payload.Name) == "" {
		return fail(c, http.StatusBadRequest, "MISSING_NAME", "Nome da categoria é obrigatório.", nil)
	}

	parentID, valid := resolveParentID(c, payload.ParentID)
	if !valid {
		return fail(c, http.StatusBadRequest, "PARENT_NOT_FOUND", "Categoria pai não encontrada.", nil)
	}

	ct := domain.Category{
		Name:     strings.TrimSpace(*payload.Name),
		ParentID: parentID,
	}
	if payload.Description != nil {
		ct.Description = *payload.Description
	}

	saved, err := GetCatalog(c).CreateCategory(ct)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Erro ao criar categoria.", err.Error())
	}
	return created(c, saved)
}

func updateCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Categoria não encontrada.", nil)
	}
	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Não foi possível ler a categoria.", err.Error())
	}

	parentID, valid := resolveParentID(c, payload.ParentID)
	if !valid {
		return fail(c, http.StatusBadRequest, "PARENT_NOT_FOUND", "Categoria pai não encontrada.", nil)
	}

	// the admin form always submits the parent field, so the patch
	// always sets it: an empty value clears the parent
	patch := store.CategoryPatch{
		Name:        payload.Name,
		Description: payload.Description,
		ParentID:    &parentID,
	}

	updated, err := GetCatalog(c).UpdateCategory(id, patch)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Erro ao atualizar categoria.", err.Error())
	}
	if updated == nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Categoria não encontrada.", nil)
	}
	return ok(c, updated)
}

func deleteCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Categoria não encontrada.", nil)
	}
	removed, err := GetCatalog(c).DeleteCategory(id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Erro ao excluir categoria.", err.Error())
	}
	if !removed {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Categoria não encontrada.", nil)
	}
	return ok(c, echo.Map{"message": "Categoria (e subcategorias) excluída."})
}
