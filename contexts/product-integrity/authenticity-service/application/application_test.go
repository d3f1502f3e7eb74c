package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	domainerrors "provenance/contexts/product-integrity/authenticity-service/domain/errors"
)

type fakeAuthorizations struct {
	owner      entities.Address
	authorized map[entities.Address]bool
}

func (f fakeAuthorizations) Owner(context.Context) (entities.Address, error) {
	return f.owner, nil
}

func (f fakeAuthorizations) IsAuthorized(_ context.Context, address entities.Address) (bool, error) {
	return f.authorized[address], nil
}

func (f fakeAuthorizations) ListAuthorized(context.Context) ([]entities.Address, error) {
	return nil, nil
}

func testAddress(b byte) entities.Address {
	var a entities.Address
	a[19] = b
	return a
}

func TestGuardRejectsReentry(t *testing.T) {
	guard := NewGuard()
	ctx, release, err := guard.Enter(context.Background())
	if err != nil {
		t.Fatalf("enter: %v", err)
	}
	if !guard.Active(ctx) {
		t.Fatalf("expected guard active for entered context")
	}

	_, releaseInner, err := guard.Enter(ctx)
	if !errors.Is(err, domainerrors.ErrReentrantCall) {
		t.Fatalf("expected ErrReentrantCall, got %v", err)
	}
	releaseInner()
	release()

	if guard.Active(context.Background()) {
		t.Fatalf("expected fresh context to be outside the guard")
	}
	_, release, err = guard.Enter(context.Background())
	if err != nil {
		t.Fatalf("enter after release: %v", err)
	}
	release()
}

func TestGuardSerializesIndependentCalls(t *testing.T) {
	guard := NewGuard()
	_, release, err := guard.Enter(context.Background())
	if err != nil {
		t.Fatalf("enter: %v", err)
	}

	entered := make(chan struct{})
	go func() {
		_, releaseSecond, err := guard.Enter(context.Background())
		if err == nil {
			releaseSecond()
		}
		close(entered)
	}()

	select {
	case <-entered:
		t.Fatalf("expected second call to wait for the first")
	case <-time.After(50 * time.Millisecond):
	}
	release()
	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatalf("second call never entered")
	}
}

func TestGuardRecognisesOnlyContextsDerivedFromTheCall(t *testing.T) {
	guard := NewGuard()
	ctx, release, err := guard.Enter(context.Background())
	if err != nil {
		t.Fatalf("enter: %v", err)
	}

	derived, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if _, _, err := guard.Enter(derived); !errors.Is(err, domainerrors.ErrReentrantCall) {
		t.Fatalf("expected derived context to be rejected, got %v", err)
	}

	detached := make(chan error, 1)
	go func() {
		_, releaseDetached, err := guard.Enter(context.Background())
		if err == nil {
			releaseDetached()
		}
		detached <- err
	}()
	select {
	case err := <-detached:
		t.Fatalf("expected detached context to wait, returned %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	release()
	select {
	case err := <-detached:
		if err != nil {
			t.Fatalf("expected detached call to enter after release, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("detached call never entered")
	}
}

func TestCheckAccess(t *testing.T) {
	owner := testAddress(1)
	manufacturer := testAddress(2)
	reader := fakeAuthorizations{
		owner:      owner,
		authorized: map[entities.Address]bool{owner: true, manufacturer: true, entities.ZeroAddress: true},
	}

	cases := []struct {
		name      string
		caller    entities.Address
		privilege Privilege
		want      error
	}{
		{"owner as owner", owner, PrivilegeOwner, nil},
		{"manufacturer as owner", manufacturer, PrivilegeOwner, domainerrors.ErrNotOwner},
		{"manufacturer", manufacturer, PrivilegeManufacturer, nil},
		{"stranger", testAddress(3), PrivilegeManufacturer, domainerrors.ErrNotAuthorized},
		{"zero address never passes", entities.ZeroAddress, PrivilegeManufacturer, domainerrors.ErrNotAuthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision, err := CheckAccess(context.Background(), reader, tc.caller, tc.privilege)
			if err != nil {
				t.Fatalf("check access: %v", err)
			}
			if !errors.Is(decision.Err(), tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, decision.Err())
			}
			if decision.Allowed != (tc.want == nil) {
				t.Fatalf("unexpected allowed flag %v", decision.Allowed)
			}
		})
	}
}
