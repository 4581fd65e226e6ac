package domain

import "time"

// Category is one level of the two-level catalog tree. A nil ParentID
// marks a top-level category; subcategories carry the parent's Cod.
type Category struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Cod         int64     `gorm:"index" json:"cod"`
	Name        string    `gorm:"size:128;index" json:"name"`
	Description string    `json:"description"`
	ParentID    *int64    `gorm:"index" json:"parentId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (c Category) TableName() string {
	return "categories"
}
