package uowmock

import (
	"context"
	"errors"
	"testing"

	"safeguard-backend/internal/domain/uow"
	"safeguard-backend/internal/testutil/claimmock"
	"safeguard-backend/internal/testutil/policymock"
	"safeguard-backend/internal/testutil/usermock"
)

func TestUoW_WithinTx_Happy(t *testing.T) {
	ctx := context.Background()

	policies := &policymock.Repo{}
	claims := &claimmock.Repo{}
	users := &usermock.Repo{}
	repos := uow.Repos{Policies: policies, Claims: claims, Users: users}

	innerCalled := false
	m := &UoW{
		WithinTxFn: func(gotCtx context.Context, fn func(context.Context, uow.Repos) error) error {
			if gotCtx != ctx {
				t.Fatalf("WithinTx: ctx mismatch")
			}
			if fn == nil {
				t.Fatalf("WithinTx: fn is nil")
			}
			return fn(gotCtx, repos)
		},
	}

	err := m.WithinTx(ctx, func(_ context.Context, r uow.Repos) error {
		innerCalled = true
		if r.Policies != policies || r.Claims != claims || r.Users != users {
			t.Fatalf("WithinTx: repos not forwarded correctly")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinTx: unexpected err: %v", err)
	}
	if !innerCalled {
		t.Fatalf("WithinTx: inner fn not called")
	}
}

func TestUoW_Passthrough_PropagatesError(t *testing.T) {
	wantErr := errors.New("tx failed")
	m := Passthrough(uow.Repos{})
	err := m.WithinTx(context.Background(), func(context.Context, uow.Repos) error { return wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("WithinTx: want %v, got %v", wantErr, err)
	}
}

func TestUoW_Unimplemented(t *testing.T) {
	m := New()
	if err := m.WithinTx(context.Background(), nil); !errors.Is(err, errUnimplemented) {
		t.Fatalf("want errUnimplemented, got %v", err)
	}
	m.WithWithinTx(func(context.Context, func(context.Context, uow.Repos) error) error { return nil })
	m.Reset()
	if m.WithinTxFn != nil {
		t.Fatalf("Reset did not clear WithinTxFn")
	}
}
