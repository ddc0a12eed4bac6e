package token

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"safeguard-backend/internal/domain/errs"
	"safeguard-backend/internal/domain/token"
	"safeguard-backend/internal/infrastructure/chain"
	"safeguard-backend/internal/testutil/tokenmock"
)

const usdcAddr = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"

type memCache struct {
	entries     map[string]*token.Token
	invalidated int
	getErr      error
}

func newMemCache() *memCache { return &memCache{entries: map[string]*token.Token{}} }

func (c *memCache) Get(_ context.Context, id string) (*token.Token, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	t, ok := c.entries[strings.ToLower(id)]
	return t, ok, nil
}

func (c *memCache) Set(_ context.Context, id string, t *token.Token) error {
	c.entries[strings.ToLower(id)] = t
	return nil
}

func (c *memCache) Invalidate(context.Context, *token.Token) error {
	c.invalidated++
	return nil
}

// revertErr carries revert data the way JSON-RPC call errors do.
type revertErr struct{ data string }

func (e revertErr) Error() string  { return "execution reverted" }
func (e revertErr) ErrorData() any { return e.data }

type readerFunc func(ctx context.Context, address string) (*chain.Metadata, error)

func (f readerFunc) Metadata(ctx context.Context, address string) (*chain.Metadata, error) {
	return f(ctx, address)
}

func repoWith(tokens ...token.Token) (*tokenmock.Repo, *int) {
	lookups := 0
	created := []token.Token{}
	repo := &tokenmock.Repo{
		GetBySymbolFn: func(_ context.Context, s string) (*token.Token, error) {
			lookups++
			for _, t := range append(tokens, created...) {
				if strings.EqualFold(t.Symbol, s) {
					cp := t
					return &cp, nil
				}
			}
			return nil, token.ErrNotFound
		},
		GetByAddressFn: func(_ context.Context, a string) (*token.Token, error) {
			lookups++
			for _, t := range append(tokens, created...) {
				if strings.EqualFold(t.Address, a) {
					cp := t
					return &cp, nil
				}
			}
			return nil, token.ErrNotFound
		},
		CreateFn: func(_ context.Context, t *token.Token) error {
			created = append(created, *t)
			return nil
		},
	}
	return repo, &lookups
}

func TestUsecase_GetByIdentifier(t *testing.T) {
	usdc := token.Token{Symbol: "USDC", Name: "USD Coin", Address: usdcAddr, Decimals: 6}
	ctx := context.Background()

	t.Run("address and symbol lookups are case-insensitive", func(t *testing.T) {
		repo, _ := repoWith(usdc)
		uc := NewUsecase(repo, nil, nil)
		got, err := uc.GetByIdentifier(ctx, strings.ToLower(usdcAddr))
		if err != nil || got.Symbol != "USDC" {
			t.Fatalf("by address = %+v, %v", got, err)
		}
		got, err = uc.GetByIdentifier(ctx, "usdc")
		if err != nil || got.Address != usdcAddr {
			t.Fatalf("by symbol = %+v, %v", got, err)
		}
		if _, err := uc.GetByIdentifier(ctx, "DAI"); !errors.Is(err, token.ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})

	t.Run("second lookup is served from cache", func(t *testing.T) {
		repo, lookups := repoWith(usdc)
		uc := NewUsecase(repo, newMemCache(), nil)
		for i := 0; i < 3; i++ {
			if _, err := uc.GetByIdentifier(ctx, "USDC"); err != nil {
				t.Fatalf("lookup %d: %v", i, err)
			}
		}
		if *lookups != 1 {
			t.Fatalf("repo lookups = %d, want 1", *lookups)
		}
	})

	t.Run("cache failure falls back to repo", func(t *testing.T) {
		repo, _ := repoWith(usdc)
		c := newMemCache()
		c.getErr = errors.New("redis down")
		if _, err := NewUsecase(repo, c, nil).GetByIdentifier(ctx, "USDC"); err != nil {
			t.Fatalf("want fallback, got %v", err)
		}
	})

	t.Run("blank identifier", func(t *testing.T) {
		repo, _ := repoWith()
		if _, err := NewUsecase(repo, nil, nil).GetByIdentifier(ctx, " "); !errors.Is(err, errs.ErrInvalidInput) {
			t.Fatalf("want ErrInvalidInput, got %v", err)
		}
	})
}

func TestUsecase_Create(t *testing.T) {
	ctx := context.Background()
	six := uint8(6)
	existing := token.Token{Symbol: "USDC", Name: "USD Coin", Address: usdcAddr, Decimals: 6}
	newAddr := "0x1111111111111111111111111111111111111111"

	tests := []struct {
		name      string
		in        CreateTokenInput
		reader    MetadataReader
		wantErr   error
		wantMsg   string
		wantToken *token.Token
	}{
		{
			name:      "explicit metadata",
			in:        CreateTokenInput{Symbol: "RET", Name: "Real Estate Token", Address: newAddr, Decimals: &six, Category: "rwa"},
			wantToken: &token.Token{Symbol: "RET", Name: "Real Estate Token", Address: newAddr, Decimals: 6, Category: "rwa"},
		},
		{
			name: "metadata resolved from chain",
			in:   CreateTokenInput{Address: newAddr},
			reader: readerFunc(func(context.Context, string) (*chain.Metadata, error) {
				return &chain.Metadata{Name: "Real Estate Token", Symbol: "RET", Decimals: 18}, nil
			}),
			wantToken: &token.Token{Symbol: "RET", Name: "Real Estate Token", Address: newAddr, Decimals: 18},
		},
		{
			name: "not a contract",
			in:   CreateTokenInput{Address: newAddr},
			reader: readerFunc(func(context.Context, string) (*chain.Metadata, error) {
				return nil, chain.ErrNotContract
			}),
			wantErr: errs.ErrInvalidInput,
		},
		{
			name: "rpc failure",
			in:   CreateTokenInput{Address: newAddr},
			reader: readerFunc(func(context.Context, string) (*chain.Metadata, error) {
				return nil, errors.New("dial tcp: connection refused")
			}),
			wantErr: errs.ErrUpstream,
		},
		{
			name: "token revert is decoded",
			in:   CreateTokenInput{Address: newAddr},
			reader: readerFunc(func(context.Context, string) (*chain.Metadata, error) {
				e := chain.ERC20ABI().Errors["ERC20InvalidReceiver"]
				packed, err := e.Inputs.Pack(common.Address{})
				if err != nil {
					t.Fatalf("pack: %v", err)
				}
				return nil, revertErr{data: hexutil.Encode(append(e.ID[:4:4], packed...))}
			}),
			wantErr: errs.ErrUpstream,
			wantMsg: "ERC20Invalid Receiver(0x0000000000000000000000000000000000000000)",
		},
		{name: "missing name without reader", in: CreateTokenInput{Symbol: "RET", Address: newAddr}, wantErr: errs.ErrInvalidInput},
		{name: "bad address", in: CreateTokenInput{Symbol: "RET", Name: "x", Address: "0x123"}, wantErr: errs.ErrInvalidInput},
		{name: "zero address", in: CreateTokenInput{Symbol: "RET", Name: "x", Address: "0x0000000000000000000000000000000000000000"}, wantErr: errs.ErrInvalidInput},
		{name: "duplicate symbol", in: CreateTokenInput{Symbol: "usdc", Name: "x", Address: newAddr}, wantErr: token.ErrDuplicate},
		{name: "duplicate address", in: CreateTokenInput{Symbol: "NEW", Name: "x", Address: strings.ToLower(usdcAddr)}, wantErr: token.ErrDuplicate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _ := repoWith(existing)
			c := newMemCache()
			got, err := NewUsecase(repo, c, tt.reader).Create(ctx, tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
				if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
					t.Fatalf("error %q does not contain %q", err, tt.wantMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if *got != *tt.wantToken {
				t.Fatalf("got %+v, want %+v", got, tt.wantToken)
			}
			if c.invalidated != 1 {
				t.Fatalf("cache should be invalidated once, got %d", c.invalidated)
			}
		})
	}
}
