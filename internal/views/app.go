package views

import (
	"context"
	"log/slog"
	"sync"
	"time"

	apperrors "hotelbooking/internal/errors"
	"hotelbooking/internal/service"
)

type Navigation = service.Navigation

type Navigator interface {
	Navigate(nav Navigation) error
}

// View is a screen the App can mount. Mount receives the navigation that led
// to it, including any navigation-time state.
type View interface {
	Mount(ctx context.Context, nav Navigation) error
	Unmount()
}

type guard int

const (
	public guard = iota
	authenticated
	adminOnly
)

type route struct {
	view  View
	guard guard
}

// App owns the current location and the mounted view. Navigating unmounts the
// previous view before the next one is mounted.
type App struct {
	ctx     context.Context
	session service.Session
	logger  *slog.Logger

	mu       sync.Mutex
	routes   map[string]route
	location Navigation
	active   View
	timer    *time.Timer
	pending  *Navigation
	gen      uint64
}

func NewApp(ctx context.Context, session service.Session, logger *slog.Logger) *App {
	return &App{
		ctx:      ctx,
		session:  session,
		logger:   logger,
		routes:   make(map[string]route),
		location: Navigation{Path: "/"},
	}
}

func (a *App) Register(path string, v View) { a.register(path, v, public) }

// RegisterProtected mounts v only for a logged-in session.
func (a *App) RegisterProtected(path string, v View) { a.register(path, v, authenticated) }

// RegisterAdmin mounts v only for an admin session.
func (a *App) RegisterAdmin(path string, v View) { a.register(path, v, adminOnly) }

func (a *App) register(path string, v View, g guard) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.routes[path] = route{view: v, guard: g}
}

// Navigate moves to nav.Path. With DelayMs set the move is scheduled instead;
// any later navigation cancels a scheduled one.
func (a *App) Navigate(nav Navigation) error {
	if nav.DelayMs > 0 {
		a.schedule(nav)
		return nil
	}
	a.mu.Lock()
	a.cancelPendingLocked()
	gen := a.gen
	a.mu.Unlock()
	return a.navigateNow(nav, gen)
}

// Ensure navigates to path unless it is already the current location.
func (a *App) Ensure(path string) error {
	a.mu.Lock()
	current := a.location.Path
	a.mu.Unlock()
	if current == path {
		return nil
	}
	return a.Navigate(Navigation{Path: path})
}

func (a *App) Location() Navigation {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.location
}

// PendingRedirect returns the scheduled navigation, if any.
func (a *App) PendingRedirect() *Navigation {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pending == nil {
		return nil
	}
	p := *a.pending
	return &p
}

// Close unmounts the current view and drops any scheduled navigation.
func (a *App) Close() {
	a.mu.Lock()
	a.cancelPendingLocked()
	active := a.active
	a.active = nil
	a.mu.Unlock()
	if active != nil {
		active.Unmount()
	}
}

func (a *App) schedule(nav Navigation) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelPendingLocked()
	gen := a.gen
	delay := time.Duration(nav.DelayMs) * time.Millisecond
	nav.DelayMs = 0
	a.pending = &nav
	a.timer = time.AfterFunc(delay, func() {
		if err := a.navigateNow(nav, gen); err != nil {
			a.logger.Warn("scheduled navigation failed", "path", nav.Path, "error", err)
		}
	})
	a.logger.Debug("navigation scheduled", "path", nav.Path, "delay", delay)
}

func (a *App) cancelPendingLocked() {
	a.gen++
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.pending = nil
}

func (a *App) navigateNow(nav Navigation, gen uint64) error {
	a.mu.Lock()
	if gen != a.gen {
		a.mu.Unlock()
		return nil
	}
	a.pending = nil
	a.timer = nil

	r, known := a.routes[nav.Path]
	var denied error
	if known {
		switch {
		case r.guard >= authenticated && !a.session.IsAuthenticated():
			denied = apperrors.ErrNotAuthenticated
			nav = Navigation{Path: "/login", ReturnURL: nav.Path}
		case r.guard == adminOnly && !a.session.IsAdmin():
			denied = apperrors.ErrForbidden
			nav = Navigation{Path: "/"}
		}
		r = a.routes[nav.Path]
	}

	prev := a.active
	a.active = r.view
	a.location = Navigation{Path: nav.Path, ReturnURL: nav.ReturnURL}
	a.mu.Unlock()

	if prev != nil {
		prev.Unmount()
	}
	a.logger.Info("navigated", "path", nav.Path)
	if r.view == nil {
		return denied
	}
	if err := r.view.Mount(a.ctx, nav); err != nil && denied == nil {
		return err
	}
	return denied
}
