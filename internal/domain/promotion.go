package domain

import "time"

// Promotion discount types.
const (
	PromotionPercentage = "percentage"
	PromotionTakePay    = "takepay"
	PromotionAbove      = "above"
)

// Promotion attaches one discount rule to one product. Only the fields
// relevant to Type are set; the others stay nil.
type Promotion struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Cod       int64     `gorm:"index" json:"cod"`
	ProductID int64     `gorm:"index" json:"productId"`
	Type      string    `gorm:"size:32" json:"type"`
	Percent   *float64  `json:"percent"`
	TakeQty   *int      `json:"takeQty"`
	PayQty    *int      `json:"payQty"`
	MinQty    *int      `json:"minQty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p Promotion) TableName() string {
	return "promotions"
}
