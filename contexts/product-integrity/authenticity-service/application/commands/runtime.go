package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	application "provenance/contexts/product-integrity/authenticity-service/application"
	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	"provenance/contexts/product-integrity/authenticity-service/ports"
)

const moduleName = "product-integrity/authenticity-service"

var errGuardMissing = errors.New("call guard is not configured")

// Runtime bundles the collaborators shared by every mutating use case. All use
// cases of one module must share the same Guard and Store.
type Runtime struct {
	Store       ports.StateStore
	Guard       *application.Guard
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Observers   []ports.EventObserver
	Logger      *slog.Logger
}

type mutation func(ctx context.Context, tx ports.StateTx, now time.Time) ([]entities.Event, error)

// execute runs fn as one guarded, atomic call.
func (r Runtime) execute(ctx context.Context, fn mutation) error {
	guarded, release, err := r.enter(ctx)
	if err != nil {
		return err
	}
	defer release()
	return r.mutate(guarded, fn)
}

func (r Runtime) enter(ctx context.Context) (context.Context, func(), error) {
	if r.Guard == nil {
		return ctx, func() {}, errGuardMissing
	}
	return r.Guard.Enter(ctx)
}

// mutate commits fn and its events as one unit, then notifies observers. The
// caller must already hold the guard.
func (r Runtime) mutate(ctx context.Context, fn mutation) error {
	now := r.now()
	var committed []entities.Event
	err := r.Store.Mutate(ctx, func(ctx context.Context, tx ports.StateTx) error {
		events, err := fn(ctx, tx, now)
		if err != nil {
			return err
		}
		for _, event := range events {
			if err := tx.AppendEvent(ctx, event); err != nil {
				return err
			}
		}
		committed = events
		return nil
	})
	if err != nil {
		return err
	}
	application.Notify(ctx, r.Observers, committed, r.Logger)
	return nil
}

func (r Runtime) newEvent(ctx context.Context, now time.Time, payload entities.EventPayload) (entities.Event, error) {
	eventID, err := r.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Event{}, err
	}
	return entities.NewEvent(eventID, now, payload), nil
}

func (r Runtime) now() time.Time {
	if r.Clock == nil {
		return time.Now().UTC()
	}
	return r.Clock.Now().UTC()
}

func (r Runtime) logger() *slog.Logger {
	return application.ResolveLogger(r.Logger)
}

// requireAccess runs the typed privilege check against the write view.
func requireAccess(
	ctx context.Context,
	tx ports.StateTx,
	caller entities.Address,
	privilege application.Privilege,
) error {
	decision, err := application.CheckAccess(ctx, tx, caller, privilege)
	if err != nil {
		return err
	}
	return decision.Err()
}
