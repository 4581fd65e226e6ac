package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/noespetshop/storefront/internal/domain"
	"github.com/noespetshop/storefront/internal/store"
	"github.com/noespetshop/storefront/internal/webserver"
)

func registerPromotionRoutes(ws *webserver.WebServer) {
	ws.PubGET("/api/promotions", listPromotions)
	ws.ApiPOST("/api/promotions", createPromotion)
	ws.ApiPUT("/api/promotions/:id", updatePromotion)
	ws.ApiDELETE("/api/promotions/:id", deletePromotion)
}

type promotionPayload struct {
	ProductID *int64   `json:"productId"`
	Type      *string  `json:"type"`
	Percent   *float64 `json:"percent"`
	TakeQty   *int     `json:"takeQty"`
	PayQty    *int     `json:"payQty"`
	MinQty    *int     `json:"minQty"`
	Active    *bool    `json:"active"`
}

// validatePromotionFields enforces the per-type required fields and
// returns the operator-facing message when one is missing.
func validatePromotionFields(typ string, p promotionPayload) string {
	switch typ {
	case domain.PromotionPercentage:
		if p.Percent == nil {
			return "Percentual de desconto é obrigatório."
		}
	case domain.PromotionTakePay:
		if p.TakeQty == nil || *p.TakeQty == 0 || p.PayQty == nil || *p.PayQty == 0 {
			return "Quantidade de levar e pagar são obrigatórias."
		}
	case domain.PromotionAbove:
		if p.MinQty == nil || *p.MinQty == 0 || p.Percent == nil || *p.Percent == 0 {
			return "Quantidade mínima e percentual de desconto são obrigatórios."
		}
	}
	return ""
}

func listPromotions(c echo.Context) error {
	promotions, err := GetCatalog(c).ListPromotions()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Erro ao listar promoções.", err.Error())
	}
	return ok(c, promotions)
}

func createPromotion(c echo.Context) error {
	var payload promotionPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Não foi possível ler a promoção.", err.Error())
	}
	if payload.ProductID == nil || payload.Type == nil || *payload.Type == "" {
		return fail(c, http.StatusBadRequest, "MISSING_FIELDS", "Produto e tipo de promoção são obrigatórios.", nil)
	}

	product, err := GetCatalog(c).GetProduct(*payload.ProductID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Erro ao criar promoção.", err.Error())
	}
	if product == nil {
		return fail(c, http.StatusBadRequest, "PRODUCT_NOT_FOUND", "Produto não encontrado.", nil)
	}

	if msg := validatePromotionFields(*payload.Type, payload); msg != "" {
		return fail(c, http.StatusBadRequest, "MISSING_FIELDS", msg, nil)
	}

	pr := domain.Promotion{
		ProductID: product.ID,
		Type:      *payload.Type,
		Percent:   payload.Percent,
		TakeQty:   payload.TakeQty,
		PayQty:    payload.PayQty,
		MinQty:    payload.MinQty,
		Active:    true,
	}
	if payload.Active != nil {
		pr.Active = *payload.Active
	}

	saved, err := GetCatalog(c).CreatePromotion(pr)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Erro ao criar promoção.", err.Error())
	}
	return created(c, saved)
}

func updatePromotion(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Promoção não encontrada.", nil)
	}
	var payload promotionPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Não foi possível ler a promoção.", err.Error())
	}

	patch := store.PromotionPatch{
		Type:    payload.Type,
		Percent: payload.Percent,
		TakeQty: payload.TakeQty,
		PayQty:  payload.PayQty,
		MinQty:  payload.MinQty,
		Active:  payload.Active,
	}

	if payload.ProductID != nil {
		product, err := GetCatalog(c).GetProduct(*payload.ProductID)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Erro ao atualizar promoção.", err.Error())
		}
		if product == nil {
			return fail(c, http.StatusBadRequest, "PRODUCT_NOT_FOUND", "Produto não encontrado.", nil)
		}
		patch.ProductID = &product.ID
	}

	updated, err := GetCatalog(c).UpdatePromotion(id, patch)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Erro ao atualizar promoção.", err.Error())
	}
	if updated == nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Promoção não encontrada.", nil)
	}
	return ok(c, updated)
}

func deletePromotion(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Promoção não encontrada.", nil)
	}
	removed, err := GetCatalog(c).DeletePromotion(id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Erro ao excluir promoção.", err.Error())
	}
	if !removed {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Promoção não encontrada.", nil)
	}
	return ok(c, echo.Map{"message": "Promoção excluída."})
}
