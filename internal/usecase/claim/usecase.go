package claim

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"safeguard-backend/internal/domain/claim"
	"safeguard-backend/internal/domain/errs"
	"safeguard-backend/internal/domain/policy"
	"safeguard-backend/internal/domain/uow"
	"safeguard-backend/internal/infrastructure/ipfs"
	applog "safeguard-backend/internal/logger"
	"safeguard-backend/pkg/id"
)

// Publisher receives claim lifecycle events after they are committed.
type Publisher interface {
	PublishClaimEvent(ctx context.Context, ev claim.Event) error
}

type Usecase struct {
	claims claim.Repository
	tx     uow.UnitOfWork
	store  ipfs.Store
	events Publisher
	now    func() time.Time
}

func NewUsecase(claims claim.Repository, tx uow.UnitOfWork, store ipfs.Store, events Publisher) *Usecase {
	return &Usecase{claims: claims, tx: tx, store: store, events: events, now: time.Now}
}

func (u *Usecase) List(ctx context.Context, in ListInput) ([]claim.Claim, error) {
	f := claim.Filter{PolicyID: in.PolicyID, Status: claim.Status(in.Status)}
	if f.Status != "" && !f.Status.Valid() {
		return nil, errs.Invalid("unknown claim status %q", in.Status)
	}
	return u.claims.List(ctx, f)
}

func (u *Usecase) Get(ctx context.Context, claimID string) (*claim.Claim, error) {
	return u.claims.GetByID(ctx, claimID)
}

// Create files a pending claim against an active policy. The claim insert,
// the policy flip to claimed and the claimant bookkeeping share one
// transaction; evidence is pinned before it starts. The flip is conditional
// on the policy still being active, so at most one of several concurrent
// filings against the same policy succeeds.
func (u *Usecase) Create(ctx context.Context, in CreateClaimInput) (*CreateClaimResult, error) {
	if in.PolicyID == "" {
		return nil, errs.Invalid("policyId is required")
	}
	amount := decimal.NewFromFloat(in.Amount)
	if !amount.IsPositive() {
		return nil, errs.Invalid("amount must be greater than zero")
	}
	if in.ID == "" {
		in.ID = id.New(id.PrefixClaim)
	}

	evidence, err := u.pinEvidence(ctx, in)
	if err != nil {
		return nil, err
	}

	now := u.now().UTC()
	c := &claim.Claim{
		ID:          in.ID,
		PolicyID:    in.PolicyID,
		Claimant:    in.Claimant,
		Amount:      in.Amount,
		Status:      claim.StatusPending,
		Timestamp:   now,
		Description: in.Description,
		Evidence:    evidence,
	}

	err = u.tx.WithinTx(ctx, func(ctx context.Context, r uow.Repos) error {
		p, err := r.Policies.GetByID(ctx, in.PolicyID)
		if err != nil {
			return err
		}
		if p.Status != policy.StatusActive || p.ExpiredAt(now) {
			return policy.ErrNotActive
		}
		if amount.GreaterThan(decimal.NewFromFloat(p.CoverageAmount)) {
			return errs.Invalid("amount %s exceeds policy coverage %s", amount, decimal.NewFromFloat(p.CoverageAmount))
		}
		if c.Claimant == "" {
			c.Claimant = p.Holder
		}
		if err := r.Policies.UpdateStatus(ctx, p.ID, policy.StatusActive, policy.StatusClaimed, now); err != nil {
			if errors.Is(err, policy.ErrStatusChanged) {
				return policy.ErrNotActive
			}
			return err
		}
		if err := r.Claims.Create(ctx, c); err != nil {
			// undo the flip when the store has no transaction to roll back
			if uerr := r.Policies.UpdateStatus(ctx, p.ID, policy.StatusClaimed, policy.StatusActive, now); uerr != nil {
				applog.CtxWarn(ctx, "policy not released after failed claim insert",
					zap.String("policy_id", p.ID), zap.Error(uerr))
			}
			return err
		}
		if c.Claimant == "" {
			return nil
		}
		return r.Users.AddClaim(ctx, c.Claimant, c.ID)
	})
	if err != nil {
		return nil, err
	}

	applog.CtxInfo(ctx, "claim filed", zap.String("claim_id", c.ID), zap.String("policy_id", c.PolicyID))
	u.publish(ctx, c, c.Claimant)
	return &CreateClaimResult{Success: true, ClaimID: c.ID, EvidenceHash: evidence}, nil
}

func (u *Usecase) pinEvidence(ctx context.Context, in CreateClaimInput) (string, error) {
	switch v := in.Evidence.(type) {
	case nil:
		return "", nil
	case string:
		if v == "" {
			return "", nil
		}
		if ref, err := ipfs.Normalize(v); err == nil {
			return ref, nil
		}
	}
	hash, err := u.store.Put(ctx, "claim-evidence-"+in.ID+".json", in.Evidence)
	if err != nil {
		if errors.Is(err, ipfs.ErrDisabled) {
			return "", errs.Invalid("evidence upload is not available: %v", err)
		}
		return "", errs.Upstream("ipfs", err)
	}
	return hash, nil
}

// Review applies a reviewer decision. Rejecting releases the policy back to
// active, or to expired once its end date has passed.
func (u *Usecase) Review(ctx context.Context, in ReviewInput) (*claim.Claim, error) {
	var to claim.Status
	switch in.Decision {
	case DecisionUnderReview:
		to = claim.StatusUnderReview
	case DecisionApprove:
		to = claim.StatusApproved
	case DecisionReject:
		to = claim.StatusRejected
	default:
		return nil, errs.Invalid("unknown decision %q", in.Decision)
	}
	return u.transition(ctx, in.ClaimID, to, in.Reviewer, in.Reason)
}

// Pay marks an approved claim as paid.
func (u *Usecase) Pay(ctx context.Context, claimID, actor string) (*claim.Claim, error) {
	return u.transition(ctx, claimID, claim.StatusPaid, actor, "")
}

func (u *Usecase) transition(ctx context.Context, claimID string, to claim.Status, actor, reason string) (*claim.Claim, error) {
	now := u.now().UTC()
	var out *claim.Claim
	err := u.tx.WithinTx(ctx, func(ctx context.Context, r uow.Repos) error {
		c, err := r.Claims.GetByID(ctx, claimID)
		if err != nil {
			return err
		}
		from := c.Status
		if err := c.Transition(to, actor, reason, now); err != nil {
			return err
		}
		if err := r.Claims.Save(ctx, c, from); err != nil {
			return err
		}
		out = c
		if to != claim.StatusRejected {
			return nil
		}
		return releasePolicy(ctx, r.Policies, c.PolicyID, now)
	})
	if err != nil {
		return nil, err
	}

	applog.CtxInfo(ctx, "claim status changed",
		zap.String("claim_id", out.ID), zap.String("status", string(out.Status)), zap.String("actor", actor))
	u.publish(ctx, out, actor)
	return out, nil
}

func releasePolicy(ctx context.Context, repo policy.Repository, policyID string, now time.Time) error {
	p, err := repo.GetByID(ctx, policyID)
	if errors.Is(err, policy.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if p.Status != policy.StatusClaimed {
		return nil
	}
	next := policy.StatusActive
	if p.ExpiredAt(now) {
		next = policy.StatusExpired
	}
	err = repo.UpdateStatus(ctx, p.ID, policy.StatusClaimed, next, now)
	if errors.Is(err, policy.ErrStatusChanged) {
		return nil
	}
	return err
}

func (u *Usecase) publish(ctx context.Context, c *claim.Claim, actor string) {
	if u.events == nil {
		return
	}
	ev := claim.Event{ClaimID: c.ID, PolicyID: c.PolicyID, Status: c.Status, Actor: actor, At: u.now().UTC()}
	if err := u.events.PublishClaimEvent(ctx, ev); err != nil {
		applog.CtxWarn(ctx, "claim event not published", zap.String("claim_id", c.ID), zap.Error(err))
	}
}
