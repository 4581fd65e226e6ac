package store

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/noespetshop/storefront/config"
	"github.com/noespetshop/storefront/internal/domain"
)

// OpenDatabase opens the gorm handle selected by cfg.Type. The sqlite
// variant keeps its database file under the workdir data directory.
func OpenDatabase(cfg config.DBConfig, workdir string) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if cfg.Debug {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Type {
	case "sqlite":
		dsn := filepath.Join(workdir, "data", cfg.Name+".db")
		db, err = gorm.Open(sqlite.Open(dsn), gormCfg)
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
			cfg.Host, cfg.User, cfg.Passwd, cfg.Name, cfg.Port)
		db, err = gorm.Open(postgres.Open(dsn), gormCfg)
	default:
		return nil, errors.Errorf("unsupported database type %q", cfg.Type)
	}
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxConn > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxConn)
	}
	if cfg.IdleConn > 0 {
		sqlDB.SetMaxIdleConns(cfg.IdleConn)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db, nil
}

// GormCatalog implements Catalog on a relational database, one table
// per entity.
type GormCatalog struct {
	db *gorm.DB
}

var _ Catalog = (*GormCatalog)(nil)

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

func (s *GormCatalog) DB() *gorm.DB { return s.db }

func (s *GormCatalog) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func nextTableCod(tx *gorm.DB, table string) (int64, error) {
	var max int64
	err := tx.Table(table).Select("COALESCE(MAX(cod), 0)").Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// ---- products ----

func (s *GormCatalog) ListProducts(filter ProductFilter) ([]domain.Product, error) {
	q := s.db.Model(&domain.Product{}).Order("cod asc")
	if filter.FeaturedOnly {
		q = q.Where("featured = ?", true)
	}
	list := []domain.Product{}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *GormCatalog) GetProduct(id int64) (*domain.Product, error) {
	var p domain.Product
	err := s.db.Where("id = ? OR cod = ?", id, id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GormCatalog) GetProductByBarcode(barcode string) (*domain.Product, error) {
	if barcode == "" {
		return nil, nil
	}
	var p domain.Product
	err := s.db.Where("barcode = ?", barcode).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GormCatalog) CreateProduct(p domain.Product) (domain.Product, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		cod, err := nextTableCod(tx, "products")
		if err != nil {
			return err
		}
		p.ID = cod
		p.Cod = cod
		p.CreatedAt = time.Now()
		return tx.Create(&p).Error
	})
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *GormCatalog) UpdateProduct(id int64, patch ProductPatch) (*domain.Product, error) {
	p, err := s.GetProduct(id)
	if err != nil || p == nil {
		return nil, err
	}
	applyProductPatch(p, patch)
	p.UpdatedAt = time.Now()
	if err := s.db.Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (s *GormCatalog) DeleteProduct(id int64) (bool, error) {
	res := s.db.Where("id = ? OR cod = ?", id, id).Delete(&domain.Product{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ---- categories ----

func (s *GormCatalog) ListCategories() ([]domain.Category, error) {
	list := []domain.Category{}
	if err := s.db.Order("cod asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *GormCatalog) GetCategory(id int64) (*domain.Category, error) {
	var ct domain.Category
	err := s.db.Where("id = ? OR cod = ?", id, id).First(&ct).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ct, nil
}

func (s *GormCatalog) CreateCategory(ct domain.Category) (domain.Category, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		cod, err := nextTableCod(tx, "categories")
		if err != nil {
			return err
		}
		ct.ID = cod
		ct.Cod = cod
		ct.CreatedAt = time.Now()
		return tx.Create(&ct).Error
	})
	if err != nil {
		return domain.Category{}, err
	}
	return ct, nil
}

func (s *GormCatalog) UpdateCategory(id int64, patch CategoryPatch) (*domain.Category, error) {
	ct, err := s.GetCategory(id)
	if err != nil || ct == nil {
		return nil, err
	}
	applyCategoryPatch(ct, patch)
	ct.UpdatedAt = time.Now()
	// Save skips nil pointer columns on some dialects, so write the
	// parent explicitly when the patch clears it.
	if err := s.db.Save(ct).Error; err != nil {
		return nil, err
	}
	if patch.ParentID != nil && *patch.ParentID == nil {
		if err := s.db.Model(&domain.Category{}).Where("id = ?", ct.ID).
			Update("parent_id", gorm.Expr("NULL")).Error; err != nil {
			return nil, err
		}
		ct.ParentID = nil
	}
	return ct, nil
}

func (s *GormCatalog) DeleteCategory(id int64) (bool, error) {
	ct, err := s.GetCategory(id)
	if err != nil {
		return false, err
	}
	if ct == nil {
		return false, nil
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ? OR parent_id = ?", ct.ID, ct.Cod).
			Delete(&domain.Category{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", ct.ID).Delete(&domain.Category{}).Error
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// ---- promotions ----

func (s *GormCatalog) ListPromotions() ([]domain.Promotion, error) {
	list := []domain.Promotion{}
	if err := s.db.Order("cod asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *GormCatalog) CreatePromotion(pr domain.Promotion) (domain.Promotion, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		cod, err := nextTableCod(tx, "promotions")
		if err != nil {
			return err
		}
		pr.ID = cod
		pr.Cod = cod
		pr.CreatedAt = time.Now()
		return tx.Create(&pr).Error
	})
	if err != nil {
		return domain.Promotion{}, err
	}
	return pr, nil
}

func (s *GormCatalog) UpdatePromotion(id int64, patch PromotionPatch) (*domain.Promotion, error) {
	var pr domain.Promotion
	err := s.db.Where("id = ? OR cod = ?", id, id).First(&pr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	applyPromotionPatch(&pr, patch)
	pr.UpdatedAt = time.Now()
	if err := s.db.Save(&pr).Error; err != nil {
		return nil, err
	}
	return &pr, nil
}

func (s *GormCatalog) DeletePromotion(id int64) (bool, error) {
	res := s.db.Where("id = ? OR cod = ?", id, id).Delete(&domain.Promotion{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
