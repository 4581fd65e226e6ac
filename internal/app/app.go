package app

import (
	"os"
	"runtime/debug"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/noespetshop/storefront/config"
	"github.com/noespetshop/storefront/internal/domain"
	"github.com/noespetshop/storefront/internal/imagestore"
	"github.com/noespetshop/storefront/internal/store"
)

type Application struct {
	appConfig *config.AppConfig
	catalog   store.Catalog
	images    *imagestore.Client
	sched     *cron.Cron
}

// Ensure Application implements all interfaces
var (
	_ CatalogProvider   = (*Application)(nil)
	_ ConfigProvider    = (*Application)(nil)
	_ ImagesProvider    = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Catalog() store.Catalog {
	return a.catalog
}

func (a *Application) Images() *imagestore.Client {
	return a.images
}

// OverrideCatalog replaces the application's catalog store (used in tests).
func (a *Application) OverrideCatalog(cat store.Catalog) {
	a.catalog = cat
}

func (a *Application) Init(cfg *config.AppConfig) {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	// Build logger with file rotation if enabled
	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)

	// Open the catalog store selected by configuration
	a.catalog = openCatalog(cfg)
	zap.S().Infof("Catalog store ready, type: %s", cfg.Database.Type)

	// Ensure database schema is migrated before serving
	if err := a.MigrateDB(false); err != nil {
		zap.S().Errorf("database migration failed: %v", err)
	}

	a.checkAdminConfig()

	a.images = imagestore.New(cfg.Storage, cfg.Web.ClientOrigin)
	if !a.images.Configured() {
		zap.L().Warn("image storage not configured, product images will be served as placeholders")
	}

	a.initJob()
}

// openCatalog builds the store selected by cfg.Database.Type. The
// "file" backend (the default) keeps JSON collections under the
// workdir data directory.
func openCatalog(cfg *config.AppConfig) store.Catalog {
	switch cfg.Database.Type {
	case "", "file":
		cat, err := store.NewFileCatalog(cfg.GetDataDir())
		if err != nil {
			panic(err)
		}
		return cat
	default:
		db, err := store.OpenDatabase(cfg.Database, cfg.System.Workdir)
		if err != nil {
			panic(err)
		}
		return store.NewGormCatalog(db)
	}
}

// MigrateDB migrates the relational schema. The file store keeps no
// schema, so it is a no-op there.
func (a *Application) MigrateDB(track bool) (err error) {
	defer func() {
		if err1 := recover(); err1 != nil {
			if os.Getenv("GO_DEBUG_TRACE") != "" {
				debug.PrintStack()
			}
			err2, ok := err1.(error)
			if ok {
				err = err2
				zap.S().Error(err2.Error())
			}
		}
	}()

	gc, ok := a.catalog.(*store.GormCatalog)
	if !ok {
		return nil
	}
	if track {
		if err := gc.DB().Debug().Migrator().AutoMigrate(domain.Tables...); err != nil {
			zap.S().Error(err)
		}
	} else {
		if err := gc.DB().Migrator().AutoMigrate(domain.Tables...); err != nil {
			zap.S().Error(err)
		}
	}
	return nil
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}

	if a.catalog != nil {
		_ = a.catalog.Close()
	}

	_ = zap.L().Sync()
}
