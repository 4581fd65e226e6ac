package app

import (
	"github.com/robfig/cron/v3"

	"github.com/noespetshop/storefront/config"
	"github.com/noespetshop/storefront/internal/imagestore"
	"github.com/noespetshop/storefront/internal/store"
)

// CatalogProvider provides catalog store access
type CatalogProvider interface {
	Catalog() store.Catalog
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// ImagesProvider provides the product image storage client
type ImagesProvider interface {
	Images() *imagestore.Client
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// AppContext combines all provider interfaces for full application context
// Services should depend on specific providers or this combined interface
type AppContext interface {
	CatalogProvider
	ConfigProvider
	ImagesProvider
	SchedulerProvider

	// Application lifecycle methods
	MigrateDB(track bool) error
	// RunSnapshotNow writes a catalog backup snapshot immediately
	RunSnapshotNow() error
}
