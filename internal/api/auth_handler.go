package api

import (
	"net/http"

	"hotelbooking/internal/entities"
	"hotelbooking/internal/service"
	"hotelbooking/internal/views"
)

type AuthHandler struct {
	App  *views.App
	Auth *service.AuthService
}

func NewAuthHandler(app *views.App, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{App: app, Auth: auth}
}

type SessionResponse struct {
	User     *entities.User     `json:"user"`
	Location service.Navigation `json:"location"`
}

// Login starts a session and, when the app was sent to login by a guard,
// returns to the page that asked for it.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req entities.LoginRequest
	if err := decode(r, &req); err != nil {
		respondErr(w, err, nil)
		return
	}
	user, err := h.Auth.Login(r.Context(), req)
	if err != nil {
		respondErr(w, err, nil)
		return
	}
	h.resume()
	respondJSON(w, http.StatusOK, SessionResponse{User: user, Location: h.App.Location()})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req entities.RegisterRequest
	if err := decode(r, &req); err != nil {
		respondErr(w, err, nil)
		return
	}
	user, err := h.Auth.Register(r.Context(), req)
	if err != nil {
		respondErr(w, err, nil)
		return
	}
	if user != nil {
		h.resume()
	}
	respondJSON(w, http.StatusCreated, SessionResponse{User: user, Location: h.App.Location()})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.Logout(); err != nil {
		respondErr(w, err, nil)
		return
	}
	if err := h.App.Navigate(service.Navigation{Path: "/"}); err != nil {
		respondErr(w, err, nil)
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Message: "Logged out"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.Auth.CurrentUser()
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	respondJSON(w, http.StatusOK, SessionResponse{User: user, Location: h.App.Location()})
}

func (h *AuthHandler) resume() {
	loc := h.App.Location()
	if loc.Path != "/login" || loc.ReturnURL == "" {
		return
	}
	// A failing mount of the return page is reported by that page itself.
	_ = h.App.Navigate(service.Navigation{Path: loc.ReturnURL})
}
