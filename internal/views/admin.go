package views

import (
	"context"

	"hotelbooking/internal/entities"
	apperrors "hotelbooking/internal/errors"
	"hotelbooking/internal/service"
)

type AdminState struct {
	Dashboard *service.Dashboard `json:"dashboard,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// Admin is the dashboard. Confirm and reject replace the listing with the
// one the service refetched.
type Admin struct {
	base
	admin *service.AdminService
	state AdminState
}

func NewAdmin(admin *service.AdminService, nav Navigator) *Admin {
	return &Admin{base: base{nav: nav}, admin: admin}
}

func (v *Admin) Mount(ctx context.Context, _ Navigation) error {
	scope := v.begin(ctx)
	err := run(&v.base, scope.Context(), v.admin.Dashboard, func(d *service.Dashboard, err error) {
		v.state = AdminState{Dashboard: d, Error: errorText(err)}
	})
	v.redirectOnAuth(err)
	return err
}

func (v *Admin) Unmount() { v.end() }

func (v *Admin) State() AdminState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *Admin) Confirm(ctx context.Context, id int) error {
	return v.mutate(ctx, func(ctx context.Context) ([]entities.Booking, error) {
		return v.admin.ConfirmBooking(ctx, id)
	})
}

func (v *Admin) Reject(ctx context.Context, id int, reason string) error {
	return v.mutate(ctx, func(ctx context.Context) ([]entities.Booking, error) {
		return v.admin.RejectBooking(ctx, id, reason)
	})
}

func (v *Admin) mutate(ctx context.Context, fn func(context.Context) ([]entities.Booking, error)) error {
	err := run(&v.base, ctx, fn, func(list []entities.Booking, err error) {
		if err != nil {
			v.state.Error = err.Error()
			return
		}
		v.state.Error = ""
		if v.state.Dashboard == nil {
			v.state.Dashboard = &service.Dashboard{}
		}
		d := *v.state.Dashboard
		d.Bookings = list
		d.Stats = service.ComputeStats(list)
		v.state.Dashboard = &d
	})
	v.redirectOnAuth(err)
	return err
}

func (v *Admin) redirectOnAuth(err error) {
	if apperrors.IsUnauthorized(err) {
		v.navigate(&Navigation{Path: "/login", ReturnURL: "/admin"})
	}
}
