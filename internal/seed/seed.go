// Package seed loads demo fixtures into an empty store and removes them again.
package seed

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"safeguard-backend/internal/domain/claim"
	"safeguard-backend/internal/domain/option"
	"safeguard-backend/internal/domain/policy"
	"safeguard-backend/internal/domain/token"
)

type Kind string

const (
	KindOptions  Kind = "insurance-options"
	KindPolicies Kind = "policies"
	KindClaims   Kind = "claims"
	KindTokens   Kind = "tokens"
)

// All is the seeding order; purging runs it backwards.
var All = []Kind{KindOptions, KindTokens, KindPolicies, KindClaims}

func (k Kind) label() string {
	if k == KindOptions {
		return "insurance options"
	}
	return string(k)
}

// ParseKinds resolves CLI arguments; "all" or no argument selects every kind.
func ParseKinds(args []string) ([]Kind, error) {
	if len(args) == 0 {
		return All, nil
	}
	var out []Kind
	for _, a := range args {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "all" {
			return All, nil
		}
		found := false
		for _, k := range All {
			if string(k) == a {
				out = append(out, k)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown collection %q (want one of %s, all)", a, joinKinds(All))
		}
	}
	return out, nil
}

func joinKinds(ks []Kind) string {
	s := make([]string, len(ks))
	for i, k := range ks {
		s[i] = string(k)
	}
	return strings.Join(s, ", ")
}

type Repos struct {
	Policies policy.Repository
	Claims   claim.Repository
	Options  option.Repository
	Tokens   token.Repository
}

type Seeder struct {
	repos Repos
	fx    *Fixtures
	out   io.Writer
	now   func() time.Time
}

func New(r Repos, fx *Fixtures, out io.Writer) *Seeder {
	if out == nil {
		out = io.Discard
	}
	return &Seeder{repos: r, fx: fx, out: out, now: time.Now}
}

// Seed inserts fixtures into each selected collection that is still empty.
func (s *Seeder) Seed(ctx context.Context, kinds ...Kind) error {
	now := s.now().UTC()
	for _, k := range kinds {
		count, err := s.counter(k)(ctx)
		if err != nil {
			return fmt.Errorf("count %s: %w", k.label(), err)
		}
		if count > 0 {
			fmt.Fprintf(s.out, "Database already has %d %s. Skipping seed.\n", count, k.label())
			continue
		}
		n, err := s.insert(ctx, k, now)
		if err != nil {
			return fmt.Errorf("seed %s: %w", k.label(), err)
		}
		fmt.Fprintf(s.out, "Successfully seeded %d %s.\n", n, k.label())
	}
	return nil
}

// Purge deletes every document of the selected collections.
func (s *Seeder) Purge(ctx context.Context, kinds ...Kind) error {
	for i := len(kinds) - 1; i >= 0; i-- {
		k := kinds[i]
		n, err := s.deleter(k)(ctx)
		if err != nil {
			return fmt.Errorf("purge %s: %w", k.label(), err)
		}
		fmt.Fprintf(s.out, "Successfully removed %d %s.\n", n, k.label())
	}
	return nil
}

func (s *Seeder) counter(k Kind) func(context.Context) (int64, error) {
	switch k {
	case KindOptions:
		return s.repos.Options.Count
	case KindPolicies:
		return s.repos.Policies.Count
	case KindClaims:
		return s.repos.Claims.Count
	default:
		return s.repos.Tokens.Count
	}
}

func (s *Seeder) deleter(k Kind) func(context.Context) (int64, error) {
	switch k {
	case KindOptions:
		return s.repos.Options.DeleteAll
	case KindPolicies:
		return s.repos.Policies.DeleteAll
	case KindClaims:
		return s.repos.Claims.DeleteAll
	default:
		return s.repos.Tokens.DeleteAll
	}
}

func (s *Seeder) insert(ctx context.Context, k Kind, now time.Time) (int, error) {
	switch k {
	case KindOptions:
		for _, f := range s.fx.Options {
			if err := s.repos.Options.Create(ctx, f.build(now)); err != nil {
				return 0, fmt.Errorf("%s: %w", f.ID, err)
			}
		}
		return len(s.fx.Options), nil
	case KindPolicies:
		for _, f := range s.fx.Policies {
			if err := s.repos.Policies.Create(ctx, f.build(now)); err != nil {
				return 0, fmt.Errorf("%s: %w", f.ID, err)
			}
		}
		return len(s.fx.Policies), nil
	case KindClaims:
		for _, f := range s.fx.Claims {
			if err := s.repos.Claims.Create(ctx, f.build(now)); err != nil {
				return 0, fmt.Errorf("%s: %w", f.ID, err)
			}
		}
		return len(s.fx.Claims), nil
	default:
		for _, f := range s.fx.Tokens {
			if err := s.repos.Tokens.Create(ctx, f.build(now)); err != nil {
				return 0, fmt.Errorf("%s: %w", f.Symbol, err)
			}
		}
		return len(s.fx.Tokens), nil
	}
}
