package app

import (
	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"

	"github.com/lumenlabs/webmart/config"
	"github.com/lumenlabs/webmart/internal/admin"
	"github.com/lumenlabs/webmart/internal/catalog"
	"github.com/lumenlabs/webmart/internal/notify"
	"github.com/lumenlabs/webmart/internal/store"
)

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// StoreProvider provides catalog store access
type StoreProvider interface {
	Store() *store.CatalogStore
}

// BusProvider provides the mutation event bus
type BusProvider interface {
	Bus() EventBus.Bus
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// ControllerProvider provides the page controllers
type ControllerProvider interface {
	AdminController() *admin.Controller
	CatalogController() *catalog.Controller
}

// NotifierProvider provides the per-page popup notifiers
type NotifierProvider interface {
	AdminNotifier() *notify.Notifier
	CatalogNotifier() *notify.Notifier
}

// AppContext combines all provider interfaces for full application context
// Handlers should depend on specific providers or this combined interface
type AppContext interface {
	ConfigProvider
	StoreProvider
	BusProvider
	SchedulerProvider
	ControllerProvider
	NotifierProvider

	// BackupStore writes a consistent copy of the store to the workdir
	BackupStore() error
}
