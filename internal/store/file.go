package store

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/noespetshop/storefront/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FileCatalog persists each entity as one JSON array file under dir,
// rewritten wholesale on every mutation. A missing or corrupt file
// reads as an empty list. The mutex serializes writers inside this
// process; cross-process writers are not supported.
type FileCatalog struct {
	dir string
	mu  sync.Mutex
}

var _ Catalog = (*FileCatalog)(nil)

func NewFileCatalog(dir string) (*FileCatalog, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "create data dir")
	}
	return &FileCatalog{dir: dir}, nil
}

func (s *FileCatalog) Close() error { return nil }

func (s *FileCatalog) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func readList[T any](file string) []T {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}

func writeList[T any](file string, list []T) error {
	if list == nil {
		list = []T{}
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode "+filepath.Base(file))
	}
	return errors.Wrap(os.WriteFile(file, data, 0644), "write "+filepath.Base(file))
}

func nextCod(ids []int64) int64 {
	var max int64
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return max + 1
}

// ---- products ----

func (s *FileCatalog) ListProducts(filter ProductFilter) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := readList[domain.Product](s.path("products"))
	if !filter.FeaturedOnly {
		if list == nil {
			list = []domain.Product{}
		}
		return list, nil
	}
	out := make([]domain.Product, 0, len(list))
	for _, p := range list {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *FileCatalog) GetProduct(id int64) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := readList[domain.Product](s.path("products"))
	if i := productIndex(list, id); i >= 0 {
		p := list[i]
		return &p, nil
	}
	return nil, nil
}

func (s *FileCatalog) GetProductByBarcode(barcode string) (*domain.Product, error) {
	if barcode == "" {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list := readList[domain.Product](s.path("products"))
	for i := range list {
		if list[i].Barcode == barcode {
			p := list[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (s *FileCatalog) CreateProduct(p domain.Product) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := readList[domain.Product](s.path("products"))
	ids := make([]int64, 0, len(list)*2)
	for _, it := range list {
		ids = append(ids, it.ID, it.Cod)
	}
	cod := nextCod(ids)
	p.ID = cod
	p.Cod = cod
	p.CreatedAt = time.Now()
	list = append(list, p)
	if err := writeList(s.path("products"), list); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *FileCatalog) UpdateProduct(id int64, patch ProductPatch) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := readList[domain.Product](s.path("products"))
	i := productIndex(list, id)
	if i < 0 {
		return nil, nil
	}
	applyProductPatch(&list[i], patch)
	list[i].UpdatedAt = time.Now()
	if err := writeList(s.path("products"), list); err != nil {
		return nil, err
	}
	p := list[i]
	return &p, nil
}

func (s *FileCatalog) DeleteProduct(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := readList[domain.Product](s.path("products"))
	i := productIndex(list, id)
	if i < 0 {
		return false, nil
	}
	list = append(list[:i], list[i+1:]...)
	if err := writeList(s.path("products"), list); err != nil {
		return false, err
	}
	return true, nil
}

func productIndex(list []domain.Product, id int64) int {
	for i := range list {
		if list[i].ID == id || list[i].Cod == id {
			return i
		}
	}
	return -1
}

// ---- categories ----

func (s *FileCatalog) ListCategories() ([]domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := readList[domain.Category](s.path("categories"))
	if list == nil {
		list = []domain.Category{}
	}
	return list, nil
}

func (s *FileCatalog) GetCategory(id int64) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := readList[domain.Category](s.path("categories"))
	if i := categoryIndex(list, id); i >= 0 {
		ct := list[i]
		return &ct, nil
	}
	return nil, nil
}

func (s *FileCatalog) CreateCategory(ct domain.Category) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := readList[domain.Category](s.path("categories"))
	ids := make([]int64, 0, len(list)*2)
	for _, it := range list {
		ids = append(ids, it.ID, it.Cod)
	}
	cod := nextCod(ids)
	ct.ID = cod
	ct.Cod = cod
	ct.CreatedAt = time.Now()
	list = append(list, ct)
	if err := writeList(s.path("categories"), list); err != nil {
		return domain.Category{}, err
	}
	return ct, nil
}

func (s *FileCatalog) UpdateCategory(id int64, patch CategoryPatch) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := readList[domain.Category](s.path("categories"))
	i := categoryIndex(list, id)
	if i < 0 {
		return nil, nil
	}
	applyCategoryPatch(&list[i], patch)
	list[i].UpdatedAt = time.Now()
	if err := writeList(s.path("categories"), list); err != nil {
		return nil, err
	}
	ct := list[i]
	return &ct, nil
}

func (s *FileCatalog) DeleteCategory(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := readList[domain.Category](s.path("categories"))
	i := categoryIndex(list, id)
	if i < 0 {
		return false, nil
	}
	target := list[i]
	kept := make([]domain.Category, 0, len(list))
	for _, ct := range list {
		if ct.ID == target.ID {
			continue
		}
		if ct.ParentID != nil && (*ct.ParentID == target.ID || *ct.ParentID == target.Cod) {
			continue
		}
		kept = append(kept, ct)
	}
	if err := writeList(s.path("categories"), kept); err != nil {
		return false, err
	}
	return true, nil
}

func categoryIndex(list []domain.Category, id int64) int {
	for i := range list {
		if list[i].ID == id || list[i].Cod == id {
			return i
		}
	}
	return -1
}

// ---- promotions ----

func (s *FileCatalog) ListPromotions() ([]domain.Promotion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := readList[domain.Promotion](s.path("promotions"))
	if list == nil {
		list = []domain.Promotion{}
	}
	return list, nil
}

func (s *FileCatalog) CreatePromotion(pr domain.Promotion) (domain.Promotion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := readList[domain.Promotion](s.path("promotions"))
	ids := make([]int64, 0, len(list)*2)
	for _, it := range list {
		ids = append(ids, it.ID, it.Cod)
	}
	cod := nextCod(ids)
	pr.ID = cod
	pr.Cod = cod
	pr.CreatedAt = time.Now()
	list = append(list, pr)
	if err := writeList(s.path("promotions"), list); err != nil {
		return domain.Promotion{}, err
	}
	return pr, nil
}

func (s *FileCatalog) UpdatePromotion(id int64, patch PromotionPatch) (*domain.Promotion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := readList[domain.Promotion](s.path("promotions"))
	i := promotionIndex(list, id)
	if i < 0 {
		return nil, nil
	}
	applyPromotionPatch(&list[i], patch)
	list[i].UpdatedAt = time.Now()
	if err := writeList(s.path("promotions"), list); err != nil {
		return nil, err
	}
	pr := list[i]
	return &pr, nil
}

func (s *FileCatalog) DeletePromotion(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := readList[domain.Promotion](s.path("promotions"))
	i := promotionIndex(list, id)
	if i < 0 {
		return false, nil
	}
	list = append(list[:i], list[i+1:]...)
	if err := writeList(s.path("promotions"), list); err != nil {
		return false, err
	}
	return true, nil
}

func promotionIndex(list []domain.Promotion, id int64) int {
	for i := range list {
		if list[i].ID == id || list[i].Cod == id {
			return i
		}
	}
	return -1
}
