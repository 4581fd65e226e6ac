// Package pricing computes cart totals and picks the best promotion
// per line. All math is float64 with an explicit comparison epsilon,
// matching what the storefront displays.
package pricing

import (
	"math"

	"github.com/noespetshop/storefront/internal/domain"
)

// epsilon guards best-promotion comparison against float noise; a
// candidate must beat the current best by more than this to win.
const epsilon = 0.0001

// Line is one cart entry already resolved against the catalog.
type Line struct {
	ProductID int64
	Quantity  int
	UnitPrice float64
}

// LineResult carries the priced line. Applied is nil when no promotion
// lowered the price.
type LineResult struct {
	ProductID  int64             `json:"productId"`
	Quantity   int               `json:"quantity"`
	UnitPrice  float64           `json:"unitPrice"`
	BaseTotal  float64           `json:"baseTotal"`
	FinalTotal float64           `json:"finalTotal"`
	Discount   float64           `json:"discount"`
	Applied    *domain.Promotion `json:"appliedPromotion"`
}

type Totals struct {
	BaseSubtotal  float64 `json:"baseSubtotal"`
	DiscountTotal float64 `json:"discountTotal"`
	Total         float64 `json:"total"`
}

// Apply evaluates one promotion against a line and returns the line
// total after the discount. Promotions with missing or zero relevant
// fields leave the base total unchanged.
func Apply(promo domain.Promotion, quantity int, unitPrice, baseTotal float64) float64 {
	switch promo.Type {
	case domain.PromotionPercentage:
		if promo.Percent == nil || *promo.Percent == 0 {
			return baseTotal
		}
		return baseTotal * (1 - *promo.Percent/100)
	case domain.PromotionTakePay:
		if promo.TakeQty == nil || promo.PayQty == nil || *promo.TakeQty == 0 || *promo.PayQty == 0 {
			return baseTotal
		}
		groups := quantity / *promo.TakeQty
		rest := quantity % *promo.TakeQty
		paidUnits := groups*(*promo.PayQty) + rest
		return float64(paidUnits) * unitPrice
	case domain.PromotionAbove:
		if promo.MinQty == nil || promo.Percent == nil || *promo.MinQty == 0 || *promo.Percent == 0 {
			return baseTotal
		}
		if quantity < *promo.MinQty {
			return baseTotal
		}
		return baseTotal * (1 - *promo.Percent/100)
	default:
		return baseTotal
	}
}

// PriceLine picks the active promotion for the line's product that
// yields the strictly lowest total. Ties keep the first candidate in
// promotion order.
func PriceLine(line Line, promotions []domain.Promotion) LineResult {
	baseTotal := float64(line.Quantity) * line.UnitPrice
	result := LineResult{
		ProductID:  line.ProductID,
		Quantity:   line.Quantity,
		UnitPrice:  line.UnitPrice,
		BaseTotal:  baseTotal,
		FinalTotal: baseTotal,
	}

	for i := range promotions {
		promo := promotions[i]
		if !promo.Active || promo.ProductID != line.ProductID {
			continue
		}
		candidate := Apply(promo, line.Quantity, line.UnitPrice, baseTotal)
		if candidate < result.FinalTotal-epsilon {
			result.FinalTotal = candidate
			result.Applied = &promotions[i]
		}
	}

	result.Discount = result.BaseTotal - result.FinalTotal
	if result.Discount < 0 {
		result.Discount = 0
	}
	return result
}

// Quote prices every line independently and aggregates the totals.
func Quote(lines []Line, promotions []domain.Promotion) ([]LineResult, Totals) {
	results := make([]LineResult, 0, len(lines))
	var totals Totals
	for _, line := range lines {
		r := PriceLine(line, promotions)
		results = append(results, r)
		totals.BaseSubtotal += r.BaseTotal
		totals.DiscountTotal += r.Discount
		totals.Total += r.FinalTotal
	}
	totals.BaseSubtotal = round2(totals.BaseSubtotal)
	totals.DiscountTotal = round2(totals.DiscountTotal)
	totals.Total = round2(totals.Total)
	return results, totals
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
