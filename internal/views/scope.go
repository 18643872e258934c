package views

import (
	"context"
	"sync"

	apperrors "hotelbooking/internal/errors"
)

// Scope is the lifetime of one mounted view. Unmount cancels it, which aborts
// the view's outstanding calls.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func NewScope(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel}
}

func (s *Scope) Context() context.Context { return s.ctx }

func (s *Scope) Alive() bool { return s.ctx.Err() == nil }

func (s *Scope) Cancel() { s.cancel() }

// Bind returns a context that ends with either ctx or the scope.
func (s *Scope) Bind(ctx context.Context) (context.Context, context.CancelFunc) {
	joined, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(s.ctx, cancel)
	return joined, func() {
		stop()
		cancel()
	}
}

// base carries the mount state shared by every view. mu guards the embedding
// view's state as well.
type base struct {
	mu    sync.Mutex
	scope *Scope
	nav   Navigator
}

func (b *base) begin(parent context.Context) *Scope {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.scope != nil {
		b.scope.Cancel()
	}
	b.scope = NewScope(parent)
	return b.scope
}

func (b *base) end() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.scope != nil {
		b.scope.Cancel()
		b.scope = nil
	}
}

func (b *base) current() *Scope {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.scope
}

// Mounted reports whether the view currently has a live scope.
func (b *base) Mounted() bool {
	s := b.current()
	return s != nil && s.Alive()
}

func (b *base) navigate(nav *Navigation) {
	if nav == nil || b.nav == nil {
		return
	}
	_ = b.nav.Navigate(*nav)
}

// run calls fn under the view's scope. apply sees the outcome, with the view
// lock held, only if the same scope is still mounted; otherwise the result is
// dropped and ErrViewUnmounted returned.
func run[T any](b *base, ctx context.Context, fn func(context.Context) (T, error), apply func(T, error)) error {
	scope := b.current()
	if scope == nil || !scope.Alive() {
		return apperrors.ErrViewUnmounted
	}
	bound, cancel := scope.Bind(ctx)
	defer cancel()

	v, err := fn(bound)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.scope != scope || !scope.Alive() {
		return apperrors.ErrViewUnmounted
	}
	apply(v, err)
	return err
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
