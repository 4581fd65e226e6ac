package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/noespetshop/storefront/internal/domain"
	"github.com/noespetshop/storefront/internal/store"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// snapshotKeepDays is how long catalog backup snapshots are retained.
const snapshotKeepDays = 30

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@daily", func() {
		go a.SchedCatalogSnapshotTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		go a.SchedCleanSnapshotsTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// catalogSnapshot is the on-disk backup layout.
type catalogSnapshot struct {
	TakenAt    time.Time          `json:"takenAt"`
	Products   []domain.Product   `json:"products"`
	Categories []domain.Category  `json:"categories"`
	Promotions []domain.Promotion `json:"promotions"`
}

// SchedCatalogSnapshotTask writes a timestamped JSON snapshot of the
// whole catalog to the backup directory.
func (a *Application) SchedCatalogSnapshotTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	if err := a.RunSnapshotNow(); err != nil {
		zap.S().Errorf("catalog snapshot failed: %v", err)
	}
}

// RunSnapshotNow writes a catalog backup snapshot immediately.
func (a *Application) RunSnapshotNow() error {
	products, err := a.catalog.ListProducts(store.ProductFilter{})
	if err != nil {
		return err
	}
	categories, err := a.catalog.ListCategories()
	if err != nil {
		return err
	}
	promotions, err := a.catalog.ListPromotions()
	if err != nil {
		return err
	}

	snapshot := catalogSnapshot{
		TakenAt:    time.Now(),
		Products:   products,
		Categories: categories,
		Promotions: promotions,
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	filename := filepath.Join(a.appConfig.GetBackupDir(),
		fmt.Sprintf("catalog-%s.json", time.Now().Format("20060102-150405")))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return err
	}

	zap.L().Info("catalog snapshot written",
		zap.String("file", filename),
		zap.Int("products", len(products)),
		zap.Int("categories", len(categories)),
		zap.Int("promotions", len(promotions)))
	return nil
}

// SchedCleanSnapshotsTask removes backup snapshots older than the
// retention window.
func (a *Application) SchedCleanSnapshotsTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	cutoff := time.Now().Add(-time.Hour * 24 * snapshotKeepDays)
	entries, err := os.ReadDir(a.appConfig.GetBackupDir())
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "catalog-") {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		_ = os.Remove(filepath.Join(a.appConfig.GetBackupDir(), entry.Name()))
	}
}
