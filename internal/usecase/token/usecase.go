package token

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"safeguard-backend/internal/domain/errs"
	"safeguard-backend/internal/domain/token"
	"safeguard-backend/internal/infrastructure/chain"
	applog "safeguard-backend/internal/logger"
)

// Cache is the lookup cache in front of the repository.
type Cache interface {
	Get(ctx context.Context, identifier string) (*token.Token, bool, error)
	Set(ctx context.Context, identifier string, t *token.Token) error
	Invalidate(ctx context.Context, t *token.Token) error
}

// MetadataReader resolves ERC-20 metadata for an address.
type MetadataReader interface {
	Metadata(ctx context.Context, address string) (*chain.Metadata, error)
}

type Usecase struct {
	repo   token.Repository
	cache  Cache
	reader MetadataReader
}

// NewUsecase: cache and reader are optional.
func NewUsecase(repo token.Repository, cache Cache, reader MetadataReader) *Usecase {
	return &Usecase{repo: repo, cache: cache, reader: reader}
}

func (u *Usecase) List(ctx context.Context) ([]token.Token, error) {
	return u.repo.List(ctx)
}

// GetByIdentifier looks a token up by address (0x…) or symbol, case-insensitively.
func (u *Usecase) GetByIdentifier(ctx context.Context, identifier string) (*token.Token, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, errs.Invalid("identifier is required")
	}
	if u.cache != nil {
		t, hit, err := u.cache.Get(ctx, identifier)
		if err != nil {
			applog.CtxWarn(ctx, "token cache read failed", zap.Error(err))
		} else if hit {
			return t, nil
		}
	}

	var (
		t   *token.Token
		err error
	)
	if token.IsAddressIdentifier(identifier) {
		t, err = u.repo.GetByAddress(ctx, identifier)
	} else {
		t, err = u.repo.GetBySymbol(ctx, identifier)
	}
	if err != nil {
		return nil, err
	}

	if u.cache != nil {
		if err := u.cache.Set(ctx, identifier, t); err != nil {
			applog.CtxWarn(ctx, "token cache write failed", zap.Error(err))
		}
	}
	return t, nil
}

// Create registers a token. Missing symbol, name or decimals are read from
// chain when a reader is configured.
func (u *Usecase) Create(ctx context.Context, in CreateTokenInput) (*token.Token, error) {
	in.Address = strings.TrimSpace(in.Address)
	if !chain.IsAddress(in.Address) {
		return nil, errs.Invalid("address must be a 0x-prefixed 20-byte hex address")
	}
	if chain.IsZero(in.Address) {
		return nil, errs.Invalid("address must not be the zero address")
	}
	if (in.Symbol == "" || in.Name == "" || in.Decimals == nil) && u.reader != nil {
		if err := u.resolve(ctx, &in); err != nil {
			return nil, err
		}
	}
	if in.Symbol == "" || in.Name == "" {
		return nil, errs.Invalid("symbol and name are required")
	}

	if err := u.ensureUnique(ctx, in.Symbol, in.Address); err != nil {
		return nil, err
	}

	t := &token.Token{
		Symbol:      in.Symbol,
		Name:        in.Name,
		Address:     in.Address,
		Category:    in.Category,
		Description: in.Description,
	}
	if in.Decimals != nil {
		t.Decimals = *in.Decimals
	} else {
		t.Decimals = 18
	}
	if err := u.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	if u.cache != nil {
		if err := u.cache.Invalidate(ctx, t); err != nil {
			applog.CtxWarn(ctx, "token cache invalidate failed", zap.Error(err))
		}
	}
	applog.CtxInfo(ctx, "token registered", zap.String("symbol", t.Symbol), zap.String("address", t.Address))
	return t, nil
}

func (u *Usecase) resolve(ctx context.Context, in *CreateTokenInput) error {
	md, err := u.reader.Metadata(ctx, in.Address)
	if err != nil {
		if errors.Is(err, chain.ErrNotContract) {
			return errs.Invalid("%s is not an ERC-20 contract", in.Address)
		}
		return errs.Upstream("chain", errors.New(chain.ParseError(err, chain.ERC20ABI())))
	}
	if in.Symbol == "" {
		in.Symbol = md.Symbol
	}
	if in.Name == "" {
		in.Name = md.Name
	}
	if in.Decimals == nil {
		d := md.Decimals
		in.Decimals = &d
	}
	return nil
}

func (u *Usecase) ensureUnique(ctx context.Context, symbol, address string) error {
	if _, err := u.repo.GetBySymbol(ctx, symbol); err == nil {
		return token.ErrDuplicate
	} else if !errors.Is(err, token.ErrNotFound) {
		return err
	}
	if _, err := u.repo.GetByAddress(ctx, address); err == nil {
		return token.ErrDuplicate
	} else if !errors.Is(err, token.ErrNotFound) {
		return err
	}
	return nil
}
