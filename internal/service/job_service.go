package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"hotelbooking/internal/entities"

	"github.com/robfig/cron/v3"
)

const healthCheckTimeout = 10 * time.Second

// HealthReport is the last known backend health, as shown by the status
// indicator.
type HealthReport struct {
	Healthy   bool                   `json:"healthy"`
	Status    string                 `json:"status"`
	Detail    *entities.HealthStatus `json:"detail,omitempty"`
	Error     string                 `json:"error,omitempty"`
	CheckedAt time.Time              `json:"checkedAt"`
}

// HealthMonitor polls the backend /health endpoint on a cron schedule.
type HealthMonitor struct {
	repo   HealthRepository
	logger *slog.Logger
	cron   *cron.Cron

	mu     sync.RWMutex
	report HealthReport
}

func NewHealthMonitor(repo HealthRepository, logger *slog.Logger) *HealthMonitor {
	return &HealthMonitor{
		repo:   repo,
		logger: logger,
		report: HealthReport{Status: "Unknown"},
	}
}

// Check polls the backend once and records the outcome.
func (m *HealthMonitor) Check(ctx context.Context) HealthReport {
	status, err := m.repo.Check(ctx)

	report := HealthReport{CheckedAt: time.Now()}
	if err != nil {
		report.Status = "Unreachable"
		report.Error = err.Error()
		m.logger.Warn("backend health check failed", "error", err)
	} else {
		report.Healthy = status.IsHealthy()
		report.Status = status.Status
		report.Detail = status
		if !report.Healthy {
			m.logger.Warn("backend reports unhealthy", "status", status.Status)
		}
	}

	m.mu.Lock()
	m.report = report
	m.mu.Unlock()
	return report
}

func (m *HealthMonitor) Report() HealthReport {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.report
}

// Start runs one check immediately and then on schedule ("@every 30s" or a
// cron expression).
func (m *HealthMonitor) Start(schedule string) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
		defer cancel()
		m.Check(ctx)
	})
	if err != nil {
		return fmt.Errorf("scheduling health check %q: %w", schedule, err)
	}
	m.cron = c

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
		defer cancel()
		m.Check(ctx)
	}()
	c.Start()
	m.logger.Info("health monitor started", "schedule", schedule)
	return nil
}

// Stop halts the schedule and waits for a running check to finish.
func (m *HealthMonitor) Stop() {
	if m.cron == nil {
		return
	}
	<-m.cron.Stop().Done()
}
