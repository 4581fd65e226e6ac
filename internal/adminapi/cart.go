package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/noespetshop/storefront/internal/checkout"
	"github.com/noespetshop/storefront/internal/domain"
	"github.com/noespetshop/storefront/internal/pricing"
	"github.com/noespetshop/storefront/internal/webserver"
)

func registerCartRoutes(ws *webserver.WebServer) {
	ws.PubPOST("/api/cart/quote", quoteCart)
	ws.PubPOST("/api/checkout", checkoutOrder)
}

type cartItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type quotePayload struct {
	Items []cartItem `json:"items"`
}

type quoteResponse struct {
	Items  []pricing.LineResult `json:"items"`
	Totals pricing.Totals       `json:"totals"`
}

// priceCart resolves cart items against the catalog and prices them.
// The returned products parallel the pricing results.
func priceCart(c echo.Context, items []cartItem) ([]domain.Product, *quoteResponse, error) {
	cat := GetCatalog(c)

	lines := make([]pricing.Line, 0, len(items))
	products := make([]domain.Product, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "Quantidade inválida.")
		}
		product, err := cat.GetProduct(item.ProductID)
		if err != nil {
			return nil, nil, echo.NewHTTPError(http.StatusInternalServerError, "Erro ao consultar produtos.")
		}
		if product == nil {
			return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "Produto não encontrado.")
		}
		products = append(products, *product)
		lines = append(lines, pricing.Line{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
	}

	promotions, err := cat.ListPromotions()
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusInternalServerError, "Erro ao consultar promoções.")
	}

	results, totals := pricing.Quote(lines, promotions)
	return products, &quoteResponse{Items: results, Totals: totals}, nil
}

func quoteCart(c echo.Context) error {
	var payload quotePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Não foi possível ler o carrinho.", err.Error())
	}
	if len(payload.Items) == 0 {
		return fail(c, http.StatusBadRequest, "EMPTY_CART", "Seu carrinho está vazio.", nil)
	}

	_, quote, err := priceCart(c, payload.Items)
	if err != nil {
		return err
	}
	return ok(c, quote)
}

type checkoutPayload struct {
	Items    []cartItem        `json:"items"`
	Customer checkout.Customer `json:"customer"`
}

func checkoutOrder(c echo.Context) error {
	var payload checkoutPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Não foi possível ler o pedido.", err.Error())
	}
	if len(payload.Items) == 0 {
		return fail(c, http.StatusBadRequest, "EMPTY_CART", "Seu carrinho está vazio.", nil)
	}
	if payload.Customer.MissingRequired() {
		return fail(c, http.StatusBadRequest, "MISSING_FIELDS",
			"Preencha pelo menos nome, CPF, telefone, CEP e rua.", nil)
	}

	cfg := GetConfig(c)
	if cfg.Checkout.WhatsappNumber == "" {
		return fail(c, http.StatusInternalServerError, "CHECKOUT_NOT_CONFIGURED",
			"WhatsApp da loja não configurado.", nil)
	}

	products, quote, err := priceCart(c, payload.Items)
	if err != nil {
		return err
	}

	items := make([]checkout.Item, 0, len(quote.Items))
	for i, line := range quote.Items {
		items = append(items, checkout.Item{
			Name:      products[i].Name,
			Quantity:  line.Quantity,
			LineTotal: line.FinalTotal,
			Promotion: line.Applied,
		})
	}

	message := checkout.BuildOrderMessage(cfg.Checkout.StoreName, items, quote.Totals.Total, payload.Customer)
	url := checkout.WhatsAppURL(cfg.Checkout.WhatsappNumber, message)

	return ok(c, echo.Map{
		"message": message,
		"url":     url,
		"totals":  quote.Totals,
	})
}
