package policy

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"safeguard-backend/internal/domain/errs"
	"safeguard-backend/internal/domain/policy"
	"safeguard-backend/internal/domain/uow"
	"safeguard-backend/internal/infrastructure/ipfs"
	applog "safeguard-backend/internal/logger"
	"safeguard-backend/pkg/id"
)

type Usecase struct {
	repo  policy.Repository
	tx    uow.UnitOfWork
	store ipfs.Store
	now   func() time.Time
}

// NewUsecase: the UoW links new policies to their holder atomically.
func NewUsecase(repo policy.Repository, tx uow.UnitOfWork, store ipfs.Store) *Usecase {
	return &Usecase{repo: repo, tx: tx, store: store, now: time.Now}
}

func (u *Usecase) List(ctx context.Context, in ListInput) ([]policy.Policy, error) {
	f := policy.Filter{Holder: in.Holder, Status: policy.Status(in.Status)}
	if f.Status != "" && !f.Status.Valid() {
		return nil, errs.Invalid("unknown policy status %q", in.Status)
	}
	return u.repo.List(ctx, f)
}

func (u *Usecase) Get(ctx context.Context, policyID string) (*policy.Policy, error) {
	return u.repo.GetByID(ctx, policyID)
}

// Create pins the policy document on IPFS, then stores the policy and
// links it to the holder in one transaction.
func (u *Usecase) Create(ctx context.Context, in CreatePolicyInput) (*CreatePolicyResult, error) {
	if in.CoverageAmount <= 0 {
		return nil, errs.Invalid("coverageAmount must be greater than zero")
	}
	if in.Premium < 0 {
		return nil, errs.Invalid("premium must not be negative")
	}
	now := u.now().UTC()
	if in.StartDate.IsZero() {
		in.StartDate = now
	}
	if !in.EndDate.IsZero() && !in.EndDate.After(in.StartDate) {
		return nil, errs.Invalid("endDate must be after startDate")
	}
	if in.ID == "" {
		in.ID = id.New(id.PrefixPolicy)
	}

	p := &policy.Policy{
		ID:             in.ID,
		Holder:         in.Holder,
		TokenID:        in.TokenID,
		CoverageAmount: in.CoverageAmount,
		Premium:        in.Premium,
		StartDate:      in.StartDate.UTC(),
		EndDate:        in.EndDate.UTC(),
		Status:         policy.StatusActive,
		Description:    in.Description,
		Type:           in.Type,
	}

	hash, err := u.store.Put(ctx, "policy-"+p.ID+".json", p)
	switch {
	case errors.Is(err, ipfs.ErrDisabled):
		applog.CtxWarn(ctx, "ipfs disabled, policy stored without document", zap.String("policy_id", p.ID))
	case err != nil:
		return nil, errs.Upstream("ipfs", err)
	}
	p.IPFSHash = hash

	err = u.tx.WithinTx(ctx, func(ctx context.Context, r uow.Repos) error {
		if err := r.Policies.Create(ctx, p); err != nil {
			return err
		}
		if p.Holder == "" {
			return nil
		}
		return r.Users.AddPolicy(ctx, p.Holder, p.ID)
	})
	if err != nil {
		return nil, err
	}

	applog.CtxInfo(ctx, "policy created", zap.String("policy_id", p.ID), zap.String("ipfs_hash", hash))
	return &CreatePolicyResult{Success: true, PolicyID: p.ID, IPFSHash: hash}, nil
}

// Document returns the JSON document pinned for the policy.
func (u *Usecase) Document(ctx context.Context, policyID string) (map[string]any, error) {
	p, err := u.repo.GetByID(ctx, policyID)
	if err != nil {
		return nil, err
	}
	if p.IPFSHash == "" {
		return nil, policy.ErrNoDocument
	}
	doc := map[string]any{}
	if err := u.store.Get(ctx, p.IPFSHash, &doc); err != nil {
		if errors.Is(err, ipfs.ErrNotFound) {
			return nil, policy.ErrNoDocument
		}
		return nil, errs.Upstream("ipfs", err)
	}
	return doc, nil
}

// ExpireDue marks every active policy past its end date as expired.
func (u *Usecase) ExpireDue(ctx context.Context) (int64, error) {
	n, err := u.repo.ExpireBefore(ctx, u.now().UTC())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		applog.CtxInfo(ctx, "policies expired", zap.Int64("count", n))
	}
	return n, nil
}
