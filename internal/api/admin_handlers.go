package api

import (
	"net/http"
	"strconv"

	"hotelbooking/internal/service"
	"hotelbooking/internal/views"

	"github.com/gorilla/mux"
)

type AdminHandler struct {
	App   *views.App
	Admin *views.Admin
}

func NewAdminHandler(app *views.App, admin *views.Admin) *AdminHandler {
	return &AdminHandler{App: app, Admin: admin}
}

func (h *AdminHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	err := h.App.Navigate(service.Navigation{Path: "/admin"})
	render(w, h.App, err, func() any { return h.Admin.State() })
}

func (h *AdminHandler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	if err := h.App.Ensure("/admin"); err != nil {
		render(w, h.App, err, func() any { return h.Admin.State() })
		return
	}
	err = h.Admin.Confirm(r.Context(), id)
	render(w, h.App, err, func() any { return h.Admin.State() })
}

func (h *AdminHandler) RejectBooking(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	var req RejectRequest
	if err := decode(r, &req); err != nil {
		respondErr(w, err, nil)
		return
	}
	if err := h.App.Ensure("/admin"); err != nil {
		render(w, h.App, err, func() any { return h.Admin.State() })
		return
	}
	err = h.Admin.Reject(r.Context(), id, req.Reason)
	render(w, h.App, err, func() any { return h.Admin.State() })
}
