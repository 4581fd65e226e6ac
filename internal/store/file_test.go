package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noespetshop/storefront/internal/domain"
)

func newTestCatalog(t *testing.T) *FileCatalog {
	t.Helper()
	s, err := NewFileCatalog(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestFileCatalogSequentialCods(t *testing.T) {
	s := newTestCatalog(t)

	first, err := s.CreateProduct(domain.Product{Name: "Ração Premium", Price: 129.9, Featured: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(1), first.Cod)

	second, err := s.CreateProduct(domain.Product{Name: "Shampoo Pet", Price: 24.5})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Cod)

	// deleting the highest code frees it for reuse
	deleted, err := s.DeleteProduct(2)
	require.NoError(t, err)
	assert.True(t, deleted)

	third, err := s.CreateProduct(domain.Product{Name: "Coleira", Price: 15})
	require.NoError(t, err)
	assert.Equal(t, int64(2), third.Cod)
}

func TestFileCatalogLookupByIDOrCod(t *testing.T) {
	s := newTestCatalog(t)

	p, err := s.CreateProduct(domain.Product{Name: "Areia Sanitária", Price: 32})
	require.NoError(t, err)

	byID, err := s.GetProduct(p.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)

	byCod, err := s.GetProduct(p.Cod)
	require.NoError(t, err)
	require.NotNil(t, byCod)
	assert.Equal(t, byID.Name, byCod.Name)

	missing, err := s.GetProduct(999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFileCatalogPartialUpdate(t *testing.T) {
	s := newTestCatalog(t)

	p, err := s.CreateProduct(domain.Product{
		Name:        "Brinquedo Mordedor",
		Description: "borracha atóxica",
		Price:       19.9,
		Featured:    true,
	})
	require.NoError(t, err)

	newPrice := 17.5
	updated, err := s.UpdateProduct(p.ID, ProductPatch{Price: &newPrice})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 17.5, updated.Price)
	assert.Equal(t, "Brinquedo Mordedor", updated.Name)
	assert.Equal(t, "borracha atóxica", updated.Description)
	assert.True(t, updated.Featured)
	assert.False(t, updated.UpdatedAt.IsZero())

	none, err := s.UpdateProduct(12345, ProductPatch{Price: &newPrice})
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestFileCatalogCorruptFileReadsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "products.json"), []byte("{not json"), 0644))

	s, err := NewFileCatalog(dir)
	require.NoError(t, err)

	list, err := s.ListProducts(ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	// first create after corruption restarts the sequence
	p, err := s.CreateProduct(domain.Product{Name: "Petisco", Price: 9.9})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.Cod)
}

func TestFileCatalogFeaturedFilter(t *testing.T) {
	s := newTestCatalog(t)

	_, err := s.CreateProduct(domain.Product{Name: "Destaque", Price: 10, Featured: true})
	require.NoError(t, err)
	_, err = s.CreateProduct(domain.Product{Name: "Comum", Price: 10})
	require.NoError(t, err)

	all, err := s.ListProducts(ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	featured, err := s.ListProducts(ProductFilter{FeaturedOnly: true})
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "Destaque", featured[0].Name)
}

func TestFileCatalogCategoryCascadeDelete(t *testing.T) {
	s := newTestCatalog(t)

	parent, err := s.CreateCategory(domain.Category{Name: "Cachorros"})
	require.NoError(t, err)
	child, err := s.CreateCategory(domain.Category{Name: "Rações", ParentID: &parent.ID})
	require.NoError(t, err)
	grandchild, err := s.CreateCategory(domain.Category{Name: "Rações Secas", ParentID: &child.ID})
	require.NoError(t, err)
	other, err := s.CreateCategory(domain.Category{Name: "Gatos"})
	require.NoError(t, err)

	deleted, err := s.DeleteCategory(parent.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// one level only: the grandchild survives, the direct child does not
	list, err := s.ListCategories()
	require.NoError(t, err)
	names := make([]string, 0, len(list))
	for _, ct := range list {
		names = append(names, ct.Name)
	}
	assert.ElementsMatch(t, []string{"Rações Secas", "Gatos"}, names)
	_ = grandchild
	_ = other
}

func TestFileCatalogCategoryReparent(t *testing.T) {
	s := newTestCatalog(t)

	parent, err := s.CreateCategory(domain.Category{Name: "Aves"})
	require.NoError(t, err)
	ct, err := s.CreateCategory(domain.Category{Name: "Gaiolas", ParentID: &parent.ID})
	require.NoError(t, err)

	var cleared *int64
	updated, err := s.UpdateCategory(ct.ID, CategoryPatch{ParentID: &cleared})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Nil(t, updated.ParentID)

	// nil patch field leaves the parent untouched
	name := "Gaiolas e Viveiros"
	updated, err = s.UpdateCategory(ct.ID, CategoryPatch{Name: &name})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Nil(t, updated.ParentID)
	assert.Equal(t, "Gaiolas e Viveiros", updated.Name)
}

func TestFileCatalogPromotionRoundTrip(t *testing.T) {
	s := newTestCatalog(t)

	percent := 10.0
	pr, err := s.CreatePromotion(domain.Promotion{
		ProductID: 1,
		Type:      domain.PromotionPercentage,
		Percent:   &percent,
		Active:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), pr.Cod)

	inactive := false
	updated, err := s.UpdatePromotion(pr.Cod, PromotionPatch{Active: &inactive})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.False(t, updated.Active)
	require.NotNil(t, updated.Percent)
	assert.Equal(t, 10.0, *updated.Percent)

	deleted, err := s.DeletePromotion(pr.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	list, err := s.ListPromotions()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFileCatalogBarcodeLookup(t *testing.T) {
	s := newTestCatalog(t)

	_, err := s.CreateProduct(domain.Product{Name: "Ração", Price: 100, Barcode: "7891234567890"})
	require.NoError(t, err)

	p, err := s.GetProductByBarcode("7891234567890")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Ração", p.Name)

	none, err := s.GetProductByBarcode("")
	require.NoError(t, err)
	assert.Nil(t, none)
}
