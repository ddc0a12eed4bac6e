package option

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"safeguard-backend/internal/domain/errs"
	"safeguard-backend/internal/domain/option"
	applog "safeguard-backend/internal/logger"
)

const (
	defaultCoveragePercent = 100
	defaultMonths          = 12
	maxMonths              = 120
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

type Usecase struct{ repo option.Repository }

func NewUsecase(r option.Repository) *Usecase { return &Usecase{repo: r} }

func (u *Usecase) List(ctx context.Context) ([]option.InsuranceOption, error) {
	return u.repo.List(ctx)
}

func (u *Usecase) Get(ctx context.Context, optionID string) (*option.InsuranceOption, error) {
	return u.repo.GetByID(ctx, optionID)
}

// Create stores a new option; id, name, value, premiumRate and description are required.
func (u *Usecase) Create(ctx context.Context, in CreateOptionInput) (*option.InsuranceOption, error) {
	switch {
	case in.ID == "":
		return nil, errs.Invalid("Missing required field: id")
	case in.Name == "":
		return nil, errs.Invalid("Missing required field: name")
	case in.Value == 0:
		return nil, errs.Invalid("Missing required field: value")
	case in.PremiumRate == 0:
		return nil, errs.Invalid("Missing required field: premiumRate")
	case in.Description == "":
		return nil, errs.Invalid("Missing required field: description")
	case in.Value < 0 || in.PremiumRate < 0:
		return nil, errs.Invalid("value and premiumRate must be positive")
	}

	_, err := u.repo.GetByID(ctx, in.ID)
	switch {
	case err == nil:
		return nil, option.ErrDuplicate
	case !errors.Is(err, option.ErrNotFound):
		return nil, err
	}

	o := &option.InsuranceOption{
		ID:           in.ID,
		Name:         in.Name,
		Value:        in.Value,
		PremiumRate:  in.PremiumRate,
		Description:  in.Description,
		TokenAddress: in.TokenAddress,
	}
	if err := u.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	applog.CtxInfo(ctx, "insurance option created", zap.String("option_id", o.ID))
	return o, nil
}

// Quote prices coverage on an option:
// monthly = value × coverage% × premiumRate% / 12, total = monthly × months.
func (u *Usecase) Quote(ctx context.Context, in QuoteInput) (*QuoteDTO, error) {
	if in.CoveragePercent == 0 {
		in.CoveragePercent = defaultCoveragePercent
	}
	if in.Months == 0 {
		in.Months = defaultMonths
	}
	if in.CoveragePercent < 0 || in.CoveragePercent > 100 {
		return nil, errs.Invalid("coverage must be between 0 and 100 percent")
	}
	if in.Months < 0 || in.Months > maxMonths {
		return nil, errs.Invalid("months must be between 1 and %d", maxMonths)
	}

	o, err := u.repo.GetByID(ctx, in.OptionID)
	if err != nil {
		return nil, err
	}

	value := decimal.NewFromFloat(o.Value)
	coverage := decimal.NewFromFloat(in.CoveragePercent)
	rate := decimal.NewFromFloat(o.PremiumRate)
	coverageAmount := value.Mul(coverage).Div(hundred)
	monthly := coverageAmount.Mul(rate).Div(hundred).Div(twelve)

	return &QuoteDTO{
		OptionID:        o.ID,
		Value:           value,
		CoveragePercent: coverage,
		CoverageAmount:  coverageAmount.Round(2),
		PremiumRate:     rate,
		Months:          in.Months,
		MonthlyPremium:  monthly.Round(2),
		TotalPremium:    monthly.Mul(decimal.NewFromInt(int64(in.Months))).Round(2),
	}, nil
}
