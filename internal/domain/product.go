package domain

import "time"

// Product is a catalog item. ID is the canonical identity; Cod is the
// sequential display code shown to the admin and kept equal to ID at
// creation. Lookups accept either value.
type Product struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Cod         int64     `gorm:"index" json:"cod"`
	Barcode     string    `gorm:"size:64;index" json:"codBarras"`
	Name        string    `gorm:"index" json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CostPrice   *float64  `json:"costPrice,omitempty"`
	Category    string    `gorm:"size:128" json:"category"`
	Subcategory string    `gorm:"size:128" json:"subcategory"`
	Featured    bool      `json:"featured"`
	ImageURL    string    `gorm:"size:1024" json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (p Product) TableName() string {
	return "products"
}
