package views

import (
	"context"

	"hotelbooking/internal/entities"
	"hotelbooking/internal/service"
)

type HomeState struct {
	RoomTypes []entities.RoomType   `json:"roomTypes"`
	Health    *service.HealthReport `json:"health,omitempty"`
	Error     string                `json:"error,omitempty"`
}

// Home lists the room types and the backend status indicator.
type Home struct {
	base
	rooms  *service.RoomService
	health *service.HealthMonitor
	state  HomeState
}

func NewHome(rooms *service.RoomService, health *service.HealthMonitor) *Home {
	return &Home{rooms: rooms, health: health}
}

func (v *Home) Mount(ctx context.Context, _ Navigation) error {
	scope := v.begin(ctx)
	return run(&v.base, scope.Context(), v.rooms.RoomTypes, func(types []entities.RoomType, err error) {
		v.state = HomeState{RoomTypes: types, Error: errorText(err)}
	})
}

func (v *Home) Unmount() { v.end() }

func (v *Home) State() HomeState {
	v.mu.Lock()
	s := v.state
	v.mu.Unlock()
	if v.health != nil {
		report := v.health.Report()
		s.Health = &report
	}
	return s
}
