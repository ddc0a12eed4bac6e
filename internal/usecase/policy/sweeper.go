package policy

import (
	"context"
	"time"

	applog "safeguard-backend/internal/logger"
)

// RunExpirySweeper calls ExpireDue every interval until ctx is done.
func (u *Usecase) RunExpirySweeper(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if _, err := u.ExpireDue(ctx); err != nil && ctx.Err() == nil {
				applog.CtxError(ctx, "policy expiry sweep failed", err)
			}
		}
	}
}
