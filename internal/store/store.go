package store

import (
	"github.com/noespetshop/storefront/internal/domain"
)

// ProductFilter narrows ListProducts. Zero value lists everything.
type ProductFilter struct {
	FeaturedOnly bool
}

// ProductPatch is a partial update. Nil fields are left unchanged.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	CostPrice   *float64
	Category    *string
	Subcategory *string
	Barcode     *string
	Featured    *bool
	ImageURL    *string
}

// CategoryPatch is a partial update. ParentID uses a double pointer:
// nil leaves the parent unchanged, a pointer to nil clears it, a
// pointer to a value reparents the category.
type CategoryPatch struct {
	Name        *string
	Description *string
	ParentID    **int64
}

// PromotionPatch is a partial update. Nil fields are left unchanged.
type PromotionPatch struct {
	ProductID *int64
	Type      *string
	Percent   *float64
	TakeQty   *int
	PayQty    *int
	MinQty    *int
	Active    *bool
}

// Catalog is the storefront data store. Implementations assign
// sequential codes (max existing cod plus one, starting at 1) on
// create, resolve lookups by canonical id or display cod, and return
// (nil, nil) / (false, nil) for missing records on update and delete.
type Catalog interface {
	ListProducts(filter ProductFilter) ([]domain.Product, error)
	GetProduct(id int64) (*domain.Product, error)
	GetProductByBarcode(barcode string) (*domain.Product, error)
	CreateProduct(p domain.Product) (domain.Product, error)
	UpdateProduct(id int64, patch ProductPatch) (*domain.Product, error)
	DeleteProduct(id int64) (bool, error)

	ListCategories() ([]domain.Category, error)
	GetCategory(id int64) (*domain.Category, error)
	CreateCategory(ct domain.Category) (domain.Category, error)
	UpdateCategory(id int64, patch CategoryPatch) (*domain.Category, error)
	// DeleteCategory removes the category and its direct children.
	DeleteCategory(id int64) (bool, error)

	ListPromotions() ([]domain.Promotion, error)
	CreatePromotion(pr domain.Promotion) (domain.Promotion, error)
	UpdatePromotion(id int64, patch PromotionPatch) (*domain.Promotion, error)
	DeletePromotion(id int64) (bool, error)

	Close() error
}

func applyProductPatch(p *domain.Product, patch ProductPatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.CostPrice != nil {
		p.CostPrice = patch.CostPrice
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Subcategory != nil {
		p.Subcategory = *patch.Subcategory
	}
	if patch.Barcode != nil {
		p.Barcode = *patch.Barcode
	}
	if patch.Featured != nil {
		p.Featured = *patch.Featured
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
}

func applyCategoryPatch(ct *domain.Category, patch CategoryPatch) {
	if patch.Name != nil {
		ct.Name = *patch.Name
	}
	if patch.Description != nil {
		ct.Description = *patch.Description
	}
	if patch.ParentID != nil {
		ct.ParentID = *patch.ParentID
	}
}

func applyPromotionPatch(pr *domain.Promotion, patch PromotionPatch) {
	if patch.ProductID != nil {
		pr.ProductID = *patch.ProductID
	}
	if patch.Type != nil {
		pr.Type = *patch.Type
	}
	if patch.Percent != nil {
		pr.Percent = patch.Percent
	}
	if patch.TakeQty != nil {
		pr.TakeQty = patch.TakeQty
	}
	if patch.PayQty != nil {
		pr.PayQty = patch.PayQty
	}
	if patch.MinQty != nil {
		pr.MinQty = patch.MinQty
	}
	if patch.Active != nil {
		pr.Active = *patch.Active
	}
}
