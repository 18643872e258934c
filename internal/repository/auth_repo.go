package repository

import (
	"context"
	"net/http"

	"hotelbooking/internal/entities"
)

type AuthRepository struct {
	API *APIClient
}

func NewAuthRepository(api *APIClient) *AuthRepository {
	return &AuthRepository{API: api}
}

func (r *AuthRepository) Login(ctx context.Context, req entities.LoginRequest) (*entities.AuthResponse, error) {
	var resp entities.AuthResponse
	if err := r.API.do(ctx, request{method: http.MethodPost, path: "/api/Auth/login", body: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *AuthRepository) Register(ctx context.Context, req entities.RegisterRequest) (*entities.AuthResponse, error) {
	var resp entities.AuthResponse
	if err := r.API.do(ctx, request{method: http.MethodPost, path: "/api/Auth/register", body: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
