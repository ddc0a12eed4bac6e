package user

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"safeguard-backend/internal/domain/errs"
	"safeguard-backend/internal/domain/user"
	"safeguard-backend/internal/infrastructure/chain"
	applog "safeguard-backend/internal/logger"
)

type Usecase struct {
	repo   user.Repository
	admins map[string]struct{}
}

// NewUsecase: admins are bootstrap addresses that hold every role.
func NewUsecase(repo user.Repository, admins []string) *Usecase {
	set := make(map[string]struct{}, len(admins))
	for _, a := range admins {
		set[strings.ToLower(a)] = struct{}{}
	}
	return &Usecase{repo: repo, admins: set}
}

func (u *Usecase) Get(ctx context.Context, address string) (*user.User, error) {
	if !chain.IsAddress(address) {
		return nil, errs.Invalid("invalid address %q", address)
	}
	return u.repo.GetByAddress(ctx, address)
}

// SetRoles replaces the roles of address. Unknown roles are rejected and
// duplicates dropped.
func (u *Usecase) SetRoles(ctx context.Context, actor, address string, roles []string) (*user.User, error) {
	if !chain.IsAddress(address) {
		return nil, errs.Invalid("invalid address %q", address)
	}
	out := make([]user.Role, 0, len(roles))
	seen := map[user.Role]bool{}
	for _, r := range roles {
		role := user.Role(strings.TrimSpace(r))
		if !role.Valid() {
			return nil, errs.Invalid("unknown role %q", r)
		}
		if !seen[role] {
			seen[role] = true
			out = append(out, role)
		}
	}
	usr, err := u.repo.SetRoles(ctx, address, out)
	if err != nil {
		return nil, err
	}
	applog.CtxInfo(ctx, "user roles updated",
		zap.String("address", usr.Address), zap.Any("roles", out), zap.String("actor", actor))
	return usr, nil
}

// HasRole reports whether address holds any of roles. Bootstrap admins and
// stored admins pass every check.
func (u *Usecase) HasRole(ctx context.Context, address string, roles ...user.Role) (bool, error) {
	if address == "" {
		return false, nil
	}
	if _, ok := u.admins[strings.ToLower(address)]; ok {
		return true, nil
	}
	usr, err := u.repo.GetByAddress(ctx, address)
	if errors.Is(err, user.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return usr.HasRole(append(roles, user.RoleAdmin)...), nil
}
