package adminapi

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quoteBody struct {
	Items []struct {
		ProductID  int64   `json:"productId"`
		Quantity   int     `json:"quantity"`
		BaseTotal  float64 `json:"baseTotal"`
		FinalTotal float64 `json:"finalTotal"`
		Discount   float64 `json:"discount"`
	} `json:"items"`
	Totals struct {
		BaseSubtotal  float64 `json:"baseSubtotal"`
		DiscountTotal float64 `json:"discountTotal"`
		Total         float64 `json:"total"`
	} `json:"totals"`
}

func TestQuoteCartAppliesPromotions(t *testing.T) {
	ws, appctx := newTestServer(t)
	cookie := adminCookie(t, appctx.cfg)

	doJSON(ws, http.MethodPost, "/api/products", `{"name":"Ração","price":10}`, cookie)
	doJSON(ws, http.MethodPost, "/api/promotions",
		`{"productId":1,"type":"percentage","percent":10}`, cookie)

	rec := doJSON(ws, http.MethodPost, "/api/cart/quote",
		`{"items":[{"productId":1,"quantity":3}]}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var quote quoteBody
	decodeBody(t, rec, &quote)
	require.Len(t, quote.Items, 1)
	assert.Equal(t, 30.0, quote.Items[0].BaseTotal)
	assert.Equal(t, 27.0, quote.Items[0].FinalTotal)
	assert.Equal(t, 3.0, quote.Items[0].Discount)
	assert.Equal(t, 30.0, quote.Totals.BaseSubtotal)
	assert.Equal(t, 3.0, quote.Totals.DiscountTotal)
	assert.Equal(t, 27.0, quote.Totals.Total)
}

func TestQuoteCartRejectsInvalidQuantity(t *testing.T) {
	ws, appctx := newTestServer(t)
	doJSON(ws, http.MethodPost, "/api/products", `{"name":"Ração","price":10}`, adminCookie(t, appctx.cfg))

	rec := doJSON(ws, http.MethodPost, "/api/cart/quote",
		`{"items":[{"productId":1,"quantity":0}]}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Quantidade inválida.", bodyMessage(t, rec))
}

func TestQuoteCartRejectsUnknownProduct(t *testing.T) {
	ws, _ := newTestServer(t)

	rec := doJSON(ws, http.MethodPost, "/api/cart/quote",
		`{"items":[{"productId":5,"quantity":1}]}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Produto não encontrado.", bodyMessage(t, rec))
}

func TestQuoteCartRejectsEmptyCart(t *testing.T) {
	ws, _ := newTestServer(t)

	rec := doJSON(ws, http.MethodPost, "/api/cart/quote", `{"items":[]}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Seu carrinho está vazio.", bodyMessage(t, rec))
}

const checkoutCustomer = `{"name":"Maria Silva","cpf":"123.456.789-00","phone":"11988887777",` +
	`"cep":"01001-000","street":"Praça da Sé","number":"100","city":"São Paulo","state":"SP"}`

func TestCheckoutBuildsWhatsAppHandoff(t *testing.T) {
	ws, appctx := newTestServer(t)
	cookie := adminCookie(t, appctx.cfg)

	doJSON(ws, http.MethodPost, "/api/products", `{"name":"Areia Higiênica","price":25.5}`, cookie)

	rec := doJSON(ws, http.MethodPost, "/api/checkout",
		`{"items":[{"productId":1,"quantity":2}],"customer":`+checkoutCustomer+`}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Message string `json:"message"`
		URL     string `json:"url"`
		Totals  struct {
			Total float64 `json:"total"`
		} `json:"totals"`
	}
	decodeBody(t, rec, &body)

	assert.Equal(t, 51.0, body.Totals.Total)
	assert.Contains(t, body.Message, "Areia Higiênica")
	assert.Contains(t, body.Message, "Maria Silva")
	assert.True(t, strings.HasPrefix(body.URL, "https://wa.me/5511999999999?text="))
	assert.NotContains(t, body.URL, "+", "spaces must be %20-encoded")
}

func TestCheckoutRequiresCustomerFields(t *testing.T) {
	ws, appctx := newTestServer(t)
	doJSON(ws, http.MethodPost, "/api/products", `{"name":"Areia","price":25.5}`, adminCookie(t, appctx.cfg))

	rec := doJSON(ws, http.MethodPost, "/api/checkout",
		`{"items":[{"productId":1,"quantity":1}],"customer":{"name":"Maria"}}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Preencha pelo menos nome, CPF, telefone, CEP e rua.", bodyMessage(t, rec))
}

func TestCheckoutFailsWithoutStoreNumber(t *testing.T) {
	ws, appctx := newTestServer(t)
	doJSON(ws, http.MethodPost, "/api/products", `{"name":"Areia","price":25.5}`, adminCookie(t, appctx.cfg))
	appctx.cfg.Checkout.WhatsappNumber = ""

	rec := doJSON(ws, http.MethodPost, "/api/checkout",
		`{"items":[{"productId":1,"quantity":1}],"customer":`+checkoutCustomer+`}`, nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "WhatsApp da loja não configurado.", bodyMessage(t, rec))
}
