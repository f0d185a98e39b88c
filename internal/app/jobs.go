package app

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@hourly", func() {
		a.SchedSalesSnapshotTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedStoreBackupTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedSalesSnapshotTask logs the current sales dashboard totals.
func (a *Application) SchedSalesSnapshotTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	stats := a.adminCtrl.Analytics()
	fields := []zap.Field{
		zap.Int("products", stats.ProductCount),
		zap.Float64("total_revenue", stats.TotalRevenue),
		zap.Int("total_units", stats.TotalUnits),
	}
	if stats.TopProduct != nil {
		fields = append(fields,
			zap.String("top_product", stats.TopProduct.Name),
			zap.Int("top_sold", stats.TopProduct.Sold))
	}
	zap.L().Info("sales snapshot", fields...)
}

// SchedStoreBackupTask writes the daily store backup.
func (a *Application) SchedStoreBackupTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	if err := a.BackupStore(); err != nil {
		zap.S().Errorf("store backup failed: %v", err)
	}
}
