package seed

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"safeguard-backend/internal/domain/claim"
	"safeguard-backend/internal/domain/option"
	"safeguard-backend/internal/domain/policy"
	"safeguard-backend/internal/domain/token"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

const day = 24 * time.Hour

type Fixtures struct {
	Options  []optionFixture `yaml:"insuranceOptions"`
	Policies []policyFixture `yaml:"policies"`
	Claims   []claimFixture  `yaml:"claims"`
	Tokens   []tokenFixture  `yaml:"tokens"`
}

type optionFixture struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	Value        float64 `yaml:"value"`
	PremiumRate  float64 `yaml:"premiumRate"`
	Description  string  `yaml:"description"`
	TokenAddress string  `yaml:"tokenAddress"`
}

type policyFixture struct {
	ID             string  `yaml:"id"`
	Holder         string  `yaml:"holder"`
	TokenID        string  `yaml:"tokenId"`
	Description    string  `yaml:"description"`
	Type           string  `yaml:"type"`
	CoverageAmount float64 `yaml:"coverageAmount"`
	Premium        float64 `yaml:"premium"`
	StartDaysAgo   int     `yaml:"startDaysAgo"`
	EndDaysAhead   int     `yaml:"endDaysAhead"`
	Status         string  `yaml:"status"`
}

type claimFixture struct {
	ID               string  `yaml:"id"`
	PolicyID         string  `yaml:"policyId"`
	Amount           float64 `yaml:"amount"`
	Status           string  `yaml:"status"`
	DaysAgo          int     `yaml:"daysAgo"`
	Description      string  `yaml:"description"`
	Evidence         string  `yaml:"evidence"`
	ProcessedBy      string  `yaml:"processedBy"`
	ProcessedDaysAgo int     `yaml:"processedDaysAgo"`
	RejectionReason  string  `yaml:"rejectionReason"`
}

type tokenFixture struct {
	Symbol      string `yaml:"symbol"`
	Name        string `yaml:"name"`
	Address     string `yaml:"address"`
	Decimals    uint8  `yaml:"decimals"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
}

// Default returns the embedded fixtures.
func Default() (*Fixtures, error) { return Parse(fixturesYAML) }

func Parse(b []byte) (*Fixtures, error) {
	var fx Fixtures
	if err := yaml.Unmarshal(b, &fx); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	for _, p := range fx.Policies {
		if !policy.Status(p.Status).Valid() {
			return nil, fmt.Errorf("fixture policy %s: unknown status %q", p.ID, p.Status)
		}
	}
	for _, c := range fx.Claims {
		if !claim.Status(c.Status).Valid() {
			return nil, fmt.Errorf("fixture claim %s: unknown status %q", c.ID, c.Status)
		}
	}
	return &fx, nil
}

func (f optionFixture) build(now time.Time) *option.InsuranceOption {
	return &option.InsuranceOption{
		ID:           f.ID,
		Name:         f.Name,
		Value:        f.Value,
		PremiumRate:  f.PremiumRate,
		Description:  f.Description,
		TokenAddress: f.TokenAddress,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (f policyFixture) build(now time.Time) *policy.Policy {
	start := now.Add(-time.Duration(f.StartDaysAgo) * day)
	return &policy.Policy{
		ID:             f.ID,
		Holder:         f.Holder,
		TokenID:        f.TokenID,
		CoverageAmount: f.CoverageAmount,
		Premium:        f.Premium,
		StartDate:      start,
		EndDate:        now.Add(time.Duration(f.EndDaysAhead) * day),
		Status:         policy.Status(f.Status),
		Description:    f.Description,
		Type:           f.Type,
		CreatedAt:      start,
		UpdatedAt:      start,
	}
}

func (f claimFixture) build(now time.Time) *claim.Claim {
	at := now.Add(-time.Duration(f.DaysAgo) * day)
	c := &claim.Claim{
		ID:              f.ID,
		PolicyID:        f.PolicyID,
		Amount:          f.Amount,
		Status:          claim.Status(f.Status),
		Timestamp:       at,
		Description:     f.Description,
		Evidence:        f.Evidence,
		ProcessedBy:     f.ProcessedBy,
		RejectionReason: f.RejectionReason,
		CreatedAt:       at,
		UpdatedAt:       at,
	}
	if f.ProcessedBy != "" {
		processed := now.Add(-time.Duration(f.ProcessedDaysAgo) * day)
		c.ProcessedAt = &processed
		c.UpdatedAt = processed
	}
	return c
}

func (f tokenFixture) build(now time.Time) *token.Token {
	return &token.Token{
		Symbol:      f.Symbol,
		Name:        f.Name,
		Address:     f.Address,
		Decimals:    f.Decimals,
		Category:    f.Category,
		Description: f.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
