package metrics

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BusinessMetricsCollector refreshes the business gauges from the database
type BusinessMetricsCollector struct {
	db       *gorm.DB
	metrics  *Metrics
	logger   *zap.Logger
	interval time.Duration
	done     chan struct{}
	stopOnce sync.Once
}

// NewBusinessMetricsCollector creates a new collector
func NewBusinessMetricsCollector(db *gorm.DB, metrics *Metrics, logger *zap.Logger) *BusinessMetricsCollector {
	return &BusinessMetricsCollector{
		db:       db,
		metrics:  metrics,
		logger:   logger,
		interval: 60 * time.Second,
		done:     make(chan struct{}),
	}
}

// Start begins collecting metrics
func (c *BusinessMetricsCollector) Start() {
	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		// 즉시 한 번 수집
		c.collect()

		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.done:
				return
			}
		}
	}()
}

// Stop stops the collector
func (c *BusinessMetricsCollector) Stop() {
	c.stopOnce.Do(func() { close(c.done) })
}

// collect gathers business metrics
func (c *BusinessMetricsCollector) collect() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in business metrics collection",
				zap.Any("panic", r),
			)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	gauges := []struct {
		table string
		where string
		set   func(int64)
	}{
		{"workspaces", "", c.metrics.SetWorkspacesTotal},
		{"projects", "", c.metrics.SetProjectsTotal},
		{"tasks", "", c.metrics.SetTasksTotal},
		{"time_logs", "end_time IS NULL", c.metrics.SetOpenTimeLogs},
	}

	for _, g := range gauges {
		q := c.db.WithContext(ctx).Table(g.table)
		if g.where != "" {
			q = q.Where(g.where)
		}
		var count int64
		if err := q.Count(&count).Error; err != nil {
			c.logger.Error("Failed to count rows", zap.String("table", g.table), zap.Error(err))
			continue
		}
		g.set(count)
	}
}
