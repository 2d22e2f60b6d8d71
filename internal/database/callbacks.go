package database

import (
	"time"

	"gorm.io/gorm"
)

// MetricsRecorder is an interface for recording database metrics
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
	UpdateDBStats(stats interface{})
}

const startTimeKey = "metrics:start_time"

// DBStatsInterval is how often StartDBStatsCollector samples the pool
var DBStatsInterval = 15 * time.Second

func markStart(db *gorm.DB) {
	db.InstanceSet(startTimeKey, time.Now())
}

func recordAs(recorder MetricsRecorder, operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(startTimeKey)
		if !ok {
			return
		}
		started, ok := v.(time.Time)
		if !ok {
			return
		}
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		recorder.RecordDBQuery(operation, table, time.Since(started), db.Error)
	}
}

// RegisterMetricsCallbacks times every query, create, update and delete
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) {
	cb := db.Callback()

	_ = cb.Query().Before("gorm:query").Register("metrics:query_before", markStart)
	_ = cb.Query().After("gorm:query").Register("metrics:query_after", recordAs(recorder, "select"))

	_ = cb.Create().Before("gorm:create").Register("metrics:create_before", markStart)
	_ = cb.Create().After("gorm:create").Register("metrics:create_after", recordAs(recorder, "insert"))

	_ = cb.Update().Before("gorm:update").Register("metrics:update_before", markStart)
	_ = cb.Update().After("gorm:update").Register("metrics:update_after", recordAs(recorder, "update"))

	_ = cb.Delete().Before("gorm:delete").Register("metrics:delete_before", markStart)
	_ = cb.Delete().After("gorm:delete").Register("metrics:delete_after", recordAs(recorder, "delete"))

	_ = cb.Raw().Before("gorm:raw").Register("metrics:raw_before", markStart)
	_ = cb.Raw().After("gorm:raw").Register("metrics:raw_after", recordAs(recorder, "raw"))
}

// StartDBStatsCollector samples connection pool stats until the returned channel is closed
func StartDBStatsCollector(db *gorm.DB, recorder MetricsRecorder) chan struct{} {
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(DBStatsInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					continue
				}
				recorder.UpdateDBStats(sqlDB.Stats())
			case <-done:
				return
			}
		}
	}()

	return done
}
