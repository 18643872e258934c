package repository

import (
	"context"
	"net/http"

	"hotelbooking/internal/entities"
	apperrors "hotelbooking/internal/errors"
)

type HealthRepository struct {
	API *APIClient
}

func NewHealthRepository(api *APIClient) *HealthRepository {
	return &HealthRepository{API: api}
}

// Check calls GET /health. A 503 is an answer, not a failure: it is
// reported as an Unhealthy status.
func (r *HealthRepository) Check(ctx context.Context) (*entities.HealthStatus, error) {
	var status entities.HealthStatus
	err := r.API.do(ctx, request{method: http.MethodGet, path: "/health"}, &status)
	if apperrors.StatusOf(err) == http.StatusServiceUnavailable {
		return &entities.HealthStatus{Status: "Unhealthy"}, nil
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}
