package application

import (
	"context"
	"sync"

	domainerrors "provenance/contexts/product-integrity/authenticity-service/domain/errors"
)

type guardKey struct{}

// Guard serializes mutating calls on one state surface. A call entered through
// the guard carries a context marker; entering again with that context (from an
// observer or any other side effect of the running call) is rejected instead of
// deadlocking.
type Guard struct {
	mu sync.Mutex
}

func NewGuard() *Guard {
	return &Guard{}
}

// Enter blocks until no other call holds the guard. The returned context must be
// used for the rest of the call and release must be called exactly once.
func (g *Guard) Enter(ctx context.Context) (context.Context, func(), error) {
	if active, ok := ctx.Value(guardKey{}).(*Guard); ok && active == g {
		return ctx, func() {}, domainerrors.ErrReentrantCall
	}
	g.mu.Lock()
	return context.WithValue(ctx, guardKey{}, g), g.mu.Unlock, nil
}

// Active reports whether ctx belongs to a call currently inside g.
func (g *Guard) Active(ctx context.Context) bool {
	active, ok := ctx.Value(guardKey{}).(*Guard)
	return ok && active == g
}
