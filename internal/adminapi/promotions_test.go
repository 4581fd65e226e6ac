package adminapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noespetshop/storefront/internal/domain"
)

func TestCreatePromotionRequiresProductAndType(t *testing.T) {
	ws, appctx := newTestServer(t)

	rec := doJSON(ws, http.MethodPost, "/api/promotions", `{"percent":10}`, adminCookie(t, appctx.cfg))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Produto e tipo de promoção são obrigatórios.", bodyMessage(t, rec))
}

func TestCreatePromotionRejectsUnknownProduct(t *testing.T) {
	ws, appctx := newTestServer(t)

	rec := doJSON(ws, http.MethodPost, "/api/promotions",
		`{"productId":42,"type":"percentage","percent":10}`, adminCookie(t, appctx.cfg))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Produto não encontrado.", bodyMessage(t, rec))
}

func TestCreatePromotionValidatesTypeFields(t *testing.T) {
	ws, appctx := newTestServer(t)
	cookie := adminCookie(t, appctx.cfg)
	doJSON(ws, http.MethodPost, "/api/products", `{"name":"Petisco","price":12.5}`, cookie)

	tests := []struct {
		name    string
		payload string
		message string
	}{
		{
			"percentage without percent",
			`{"productId":1,"type":"percentage"}`,
			"Percentual de desconto é obrigatório.",
		},
		{
			"takepay without quantities",
			`{"productId":1,"type":"takepay","takeQty":3}`,
			"Quantidade de levar e pagar são obrigatórias.",
		},
		{
			"above without minimum",
			`{"productId":1,"type":"above","percent":10}`,
			"Quantidade mínima e percentual de desconto são obrigatórios.",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(ws, http.MethodPost, "/api/promotions", tc.payload, cookie)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.message, bodyMessage(t, rec))
		})
	}
}

func TestPromotionCrud(t *testing.T) {
	ws, appctx := newTestServer(t)
	cookie := adminCookie(t, appctx.cfg)
	doJSON(ws, http.MethodPost, "/api/products", `{"name":"Petisco","price":12.5}`, cookie)

	rec := doJSON(ws, http.MethodPost, "/api/promotions",
		`{"productId":1,"type":"takepay","takeQty":3,"payQty":2}`, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	var pr domain.Promotion
	decodeBody(t, rec, &pr)
	assert.Equal(t, int64(1), pr.Cod)
	assert.True(t, pr.Active, "promotions start active by default")

	rec = doJSON(ws, http.MethodPut, "/api/promotions/1", `{"active":false}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &pr)
	assert.False(t, pr.Active)
	assert.Equal(t, domain.PromotionTakePay, pr.Type, "type untouched by the patch")

	rec = doJSON(ws, http.MethodDelete, "/api/promotions/1", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Promoção excluída.", bodyMessage(t, rec))

	rec = doJSON(ws, http.MethodDelete, "/api/promotions/1", "", cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
