package seed

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safeguard-backend/internal/domain/claim"
	"safeguard-backend/internal/domain/option"
	"safeguard-backend/internal/domain/policy"
	"safeguard-backend/internal/domain/token"
	"safeguard-backend/internal/testutil/claimmock"
	"safeguard-backend/internal/testutil/optionmock"
	"safeguard-backend/internal/testutil/policymock"
	"safeguard-backend/internal/testutil/tokenmock"
)

func TestDefaultFixtures(t *testing.T) {
	fx, err := Default()
	require.NoError(t, err)

	assert.Len(t, fx.Options, 3)
	assert.Len(t, fx.Policies, 3)
	assert.Len(t, fx.Claims, 3)
	assert.Len(t, fx.Tokens, 7)

	addrs := map[string]bool{}
	for _, tk := range fx.Tokens {
		assert.False(t, addrs[tk.Address], "duplicate token address %s", tk.Address)
		addrs[tk.Address] = true
	}

	now := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	p := fx.Policies[0].build(now)
	assert.Equal(t, "POL-001", p.ID)
	assert.Equal(t, now.Add(-30*day), p.StartDate)
	assert.Equal(t, now.Add(335*day), p.EndDate)
	assert.Equal(t, policy.StatusActive, p.Status)

	c := fx.Claims[0].build(now)
	assert.Equal(t, claim.StatusApproved, c.Status)
	require.NotNil(t, c.ProcessedAt)
	assert.Equal(t, now.Add(-10*day), *c.ProcessedAt)
	assert.Nil(t, fx.Claims[1].build(now).ProcessedAt)

	assert.Equal(t, 2.8, fx.Options[2].build(now).PremiumRate)
}

func TestParse_RejectsUnknownStatus(t *testing.T) {
	_, err := Parse([]byte("policies:\n  - id: P\n    status: lapsed\n"))
	assert.Error(t, err)
	_, err = Parse([]byte("claims: [1"))
	assert.Error(t, err)
}

func TestParseKinds(t *testing.T) {
	ks, err := ParseKinds(nil)
	require.NoError(t, err)
	assert.Equal(t, All, ks)

	ks, err = ParseKinds([]string{"Claims", "tokens"})
	require.NoError(t, err)
	assert.Equal(t, []Kind{KindClaims, KindTokens}, ks)

	ks, err = ParseKinds([]string{"policies", "all"})
	require.NoError(t, err)
	assert.Equal(t, All, ks)

	_, err = ParseKinds([]string{"users"})
	assert.Error(t, err)
}

// store counts inserts per collection; preset counts simulate existing data.
type store struct {
	counts map[Kind]int64
	order  []string
}

func newSeeder(st *store, out *bytes.Buffer) *Seeder {
	count := func(k Kind) func(context.Context) (int64, error) {
		return func(context.Context) (int64, error) { return st.counts[k], nil }
	}
	purge := func(k Kind) func(context.Context) (int64, error) {
		return func(context.Context) (int64, error) {
			n := st.counts[k]
			st.counts[k] = 0
			st.order = append(st.order, string(k))
			return n, nil
		}
	}
	repos := Repos{
		Policies: &policymock.Repo{
			CountFn:     count(KindPolicies),
			DeleteAllFn: purge(KindPolicies),
			CreateFn: func(_ context.Context, p *policy.Policy) error {
				st.counts[KindPolicies]++
				return nil
			},
		},
		Claims: &claimmock.Repo{
			CountFn:     count(KindClaims),
			DeleteAllFn: purge(KindClaims),
			CreateFn: func(_ context.Context, c *claim.Claim) error {
				st.counts[KindClaims]++
				return nil
			},
		},
		Options: &optionmock.Repo{
			CountFn:     count(KindOptions),
			DeleteAllFn: purge(KindOptions),
			CreateFn: func(_ context.Context, o *option.InsuranceOption) error {
				st.counts[KindOptions]++
				return nil
			},
		},
		Tokens: &tokenmock.Repo{
			CountFn:     count(KindTokens),
			DeleteAllFn: purge(KindTokens),
			CreateFn: func(_ context.Context, tk *token.Token) error {
				st.counts[KindTokens]++
				return nil
			},
		},
	}
	fx, _ := Default()
	return New(repos, fx, out)
}

func TestSeeder_SeedSkipsPopulatedCollections(t *testing.T) {
	st := &store{counts: map[Kind]int64{KindPolicies: 4}}
	var out bytes.Buffer
	s := newSeeder(st, &out)

	require.NoError(t, s.Seed(context.Background(), All...))

	assert.Equal(t, int64(3), st.counts[KindOptions])
	assert.Equal(t, int64(7), st.counts[KindTokens])
	assert.Equal(t, int64(4), st.counts[KindPolicies])
	assert.Equal(t, int64(3), st.counts[KindClaims])
	assert.Contains(t, out.String(), "Database already has 4 policies. Skipping seed.")
	assert.Contains(t, out.String(), "Successfully seeded 3 insurance options.")
	assert.Contains(t, out.String(), "Successfully seeded 7 tokens.")
}

func TestSeeder_PurgeReverseOrder(t *testing.T) {
	st := &store{counts: map[Kind]int64{KindClaims: 2, KindPolicies: 1}}
	var out bytes.Buffer
	s := newSeeder(st, &out)

	require.NoError(t, s.Purge(context.Background(), All...))
	assert.Equal(t, []string{"claims", "policies", "tokens", "insurance-options"}, st.order)
	assert.Contains(t, out.String(), "Successfully removed 2 claims.")
	assert.Contains(t, out.String(), "Successfully removed 0 insurance options.")
}

func TestSeeder_InsertError(t *testing.T) {
	boom := errors.New("duplicate")
	s := New(Repos{Options: &optionmock.Repo{
		CreateFn: func(context.Context, *option.InsuranceOption) error { return boom },
	}}, &Fixtures{Options: []optionFixture{{ID: "X"}}}, nil)

	err := s.Seed(context.Background(), KindOptions)
	assert.ErrorIs(t, err, boom)
}
