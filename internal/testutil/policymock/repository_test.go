package policymock

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "safeguard-backend/internal/domain/policy"
)

func TestRepo_UsesProvidedFuncs(t *testing.T) {
	ctx := context.Background()
	wantErr := errors.New("boom")
	called := 0
	m := &Repo{
		CreateFn: func(gotCtx context.Context, p *domain.Policy) error {
			called++
			if gotCtx != ctx || p.ID != "POL-1" {
				t.Fatalf("Create arg mismatch")
			}
			return wantErr
		},
		UpdateStatusFn: func(_ context.Context, id string, from, to domain.Status, _ time.Time) error {
			called++
			if id != "POL-1" || from != domain.StatusActive || to != domain.StatusClaimed {
				t.Fatalf("UpdateStatus arg mismatch: %s %s->%s", id, from, to)
			}
			return nil
		},
	}
	if err := m.Create(ctx, &domain.Policy{ID: "POL-1"}); !errors.Is(err, wantErr) {
		t.Fatalf("Create: want %v, got %v", wantErr, err)
	}
	if err := m.UpdateStatus(ctx, "POL-1", domain.StatusActive, domain.StatusClaimed, time.Now()); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if called != 2 {
		t.Fatalf("want 2 calls, got %d", called)
	}
}

func TestRepo_Defaults(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}
	if err := m.Create(ctx, &domain.Policy{}); err != nil {
		t.Fatalf("Create default: want nil, got %v", err)
	}
	if _, err := m.GetByID(ctx, "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByID default: want ErrNotFound, got %v", err)
	}
	if out, err := m.List(ctx, domain.Filter{}); err != nil || out == nil {
		t.Fatalf("List default: want empty slice, got %v %v", out, err)
	}
}
