package adminapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noespetshop/storefront/internal/domain"
)

func TestCreateCategoryRequiresName(t *testing.T) {
	ws, appctx := newTestServer(t)

	rec := doJSON(ws, http.MethodPost, "/api/categories", `{"description":"sem nome"}`, adminCookie(t, appctx.cfg))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Nome da categoria é obrigatório.", bodyMessage(t, rec))
}

func TestCreateCategoryValidatesParent(t *testing.T) {
	ws, appctx := newTestServer(t)
	cookie := adminCookie(t, appctx.cfg)

	rec := doJSON(ws, http.MethodPost, "/api/categories", `{"name":"Filhotes","parentId":99}`, cookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Categoria pai não encontrada.", bodyMessage(t, rec))
}

func TestCategoryHierarchy(t *testing.T) {
	ws, appctx := newTestServer(t)
	cookie := adminCookie(t, appctx.cfg)

	rec := doJSON(ws, http.MethodPost, "/api/categories", `{"name":"Cachorros"}`, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	var parent domain.Category
	decodeBody(t, rec, &parent)
	assert.Equal(t, int64(1), parent.Cod)
	assert.Nil(t, parent.ParentID)

	// the admin form sends parentId as a string
	rec = doJSON(ws, http.MethodPost, "/api/categories", `{"name":"Rações","parentId":"1"}`, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	var child domain.Category
	decodeBody(t, rec, &child)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, parent.ID, *child.ParentID)

	// empty parentId on update clears the link
	rec = doJSON(ws, http.MethodPut, "/api/categories/2", `{"name":"Rações","parentId":""}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &child)
	assert.Nil(t, child.ParentID)
}

func TestDeleteCategoryCascadesToChildren(t *testing.T) {
	ws, appctx := newTestServer(t)
	cookie := adminCookie(t, appctx.cfg)

	doJSON(ws, http.MethodPost, "/api/categories", `{"name":"Gatos"}`, cookie)
	doJSON(ws, http.MethodPost, "/api/categories", `{"name":"Areias","parentId":1}`, cookie)
	doJSON(ws, http.MethodPost, "/api/categories", `{"name":"Aves"}`, cookie)

	rec := doJSON(ws, http.MethodDelete, "/api/categories/1", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Categoria (e subcategorias) excluída.", bodyMessage(t, rec))

	rec = doJSON(ws, http.MethodGet, "/api/categories", "", nil)
	var remaining []domain.Category
	decodeBody(t, rec, &remaining)
	require.Len(t, remaining, 1)
	assert.Equal(t, "Aves", remaining[0].Name)
}

func TestDeleteCategoryNotFound(t *testing.T) {
	ws, appctx := newTestServer(t)

	rec := doJSON(ws, http.MethodDelete, "/api/categories/7", "", adminCookie(t, appctx.cfg))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Categoria não encontrada.", bodyMessage(t, rec))
}
