package app

import (
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lumenlabs/webmart/config"
	"github.com/lumenlabs/webmart/internal/admin"
	"github.com/lumenlabs/webmart/internal/catalog"
	"github.com/lumenlabs/webmart/internal/notify"
	"github.com/lumenlabs/webmart/internal/store"
)

type Application struct {
	appConfig *config.AppConfig
	backend   *store.BoltBackend
	catStore  *store.CatalogStore
	bus       EventBus.Bus
	sched     *cron.Cron

	adminNotifier   *notify.Notifier
	catalogNotifier *notify.Notifier
	adminCtrl       *admin.Controller
	catalogCtrl     *catalog.Controller
}

// Ensure Application implements all interfaces
var (
	_ ConfigProvider    = (*Application)(nil)
	_ StoreProvider     = (*Application)(nil)
	_ BusProvider       = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Store() *store.CatalogStore {
	return a.catStore
}

// OverrideStore replaces the application's catalog store (used in tests).
func (a *Application) OverrideStore(s *store.CatalogStore) {
	a.catStore = s
	a.adminCtrl = admin.NewController(s, a.adminNotifier)
	a.catalogCtrl = catalog.NewController(s, a.catalogNotifier)
}

func (a *Application) Bus() EventBus.Bus {
	return a.bus
}

func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

func (a *Application) AdminController() *admin.Controller {
	return a.adminCtrl
}

func (a *Application) CatalogController() *catalog.Controller {
	return a.catalogCtrl
}

func (a *Application) AdminNotifier() *notify.Notifier {
	return a.adminNotifier
}

func (a *Application) CatalogNotifier() *notify.Notifier {
	return a.catalogNotifier
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

	zapConfig.OutputPaths = []string{"stdout"}
	if cfg.Logger.FileEnable {
		zapConfig.OutputPaths = append(zapConfig.OutputPaths, cfg.GetLogPath())
	}

	// Build logger with file rotation if enabled
	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.GetLogPath(),
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

	if err := os.MkdirAll(cfg.System.Workdir, 0o755); err != nil {
		zap.S().Errorf("create workdir failed: %v", err)
	}

	// Open the persistent key-value store
	backend, err := store.NewBoltBackend(cfg.GetStorePath())
	if err != nil {
		panic(err)
	}
	a.backend = backend
	zap.S().Infof("Store opened, path: %s", cfg.GetStorePath())

	a.bus = EventBus.New()
	a.catStore = store.NewCatalogStore(backend, a.bus)

	// Load persisted collections, seeding the catalog on first run
	if err := a.catStore.Load(); err != nil {
		zap.S().Errorf("store load failed: %v", err)
	}

	a.adminNotifier = notify.NewNotifier(notify.DefaultTTL)
	a.catalogNotifier = notify.NewNotifier(notify.DefaultTTL)
	a.adminCtrl = admin.NewController(a.catStore, a.adminNotifier)
	a.catalogCtrl = catalog.NewController(a.catStore, a.catalogNotifier)

	// The server-hosted admin view is always reachable, so its
	// controller stays mounted for live analytics refreshes.
	if err := a.adminCtrl.Mount(); err != nil {
		zap.S().Errorf("admin mount failed: %v", err)
	}

	a.initJob()
}

// BackupStore writes a timestamped copy of the bolt database under the
// workdir backup directory.
func (a *Application) BackupStore() error {
	dir := filepath.Join(a.appConfig.System.Workdir, "backup")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	dst := filepath.Join(dir, "webmart-"+time.Now().Format("20060102150405")+".db")
	if err := a.backend.Backup(dst); err != nil {
		return err
	}
	zap.L().Info("store backup written", zap.String("path", dst))
	return nil
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.adminCtrl != nil {
		a.adminCtrl.Unmount()
	}
	if a.backend != nil {
		_ = a.backend.Close()
	}
	_ = zap.L().Sync()
}
