package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotelbooking/internal/entities"
	"hotelbooking/internal/service"
	"hotelbooking/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHealthMonitor_Check(t *testing.T) {
	tests := []struct {
		name        string
		status      *entities.HealthStatus
		err         error
		wantHealthy bool
		wantStatus  string
	}{
		{"healthy", &entities.HealthStatus{Status: "Healthy"}, nil, true, "Healthy"},
		{"degraded", &entities.HealthStatus{Status: "Degraded"}, nil, false, "Degraded"},
		{"unreachable", nil, errors.New("connection refused"), false, "Unreachable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockHealthRepository)
			repo.On("Check", mock.Anything).Return(tt.status, tt.err)
			m := service.NewHealthMonitor(repo, discardLogger())
			assert.Equal(t, "Unknown", m.Report().Status)

			report := m.Check(context.Background())

			assert.Equal(t, tt.wantHealthy, report.Healthy)
			assert.Equal(t, tt.wantStatus, report.Status)
			assert.Equal(t, report, m.Report())
		})
	}
}

func TestHealthMonitor_StartRunsInitialCheck(t *testing.T) {
	repo := new(mocks.MockHealthRepository)
	repo.On("Check", mock.Anything).Return(&entities.HealthStatus{Status: "Healthy"}, nil)
	m := service.NewHealthMonitor(repo, discardLogger())

	assert.NoError(t, m.Start("@every 1h"))
	defer m.Stop()

	assert.Eventually(t, func() bool { return m.Report().Healthy }, time.Second, 10*time.Millisecond)
}

func TestHealthMonitor_StartRejectsBadSchedule(t *testing.T) {
	m := service.NewHealthMonitor(new(mocks.MockHealthRepository), discardLogger())
	assert.Error(t, m.Start("whenever"))
	m.Stop()
}
