package risk

import (
	"fmt"
	"time"

	"lending/core"
	"lending/pkg/lending"

	"github.com/shopspring/decimal"
)

type riskService struct {
	config core.RiskConfig
	tokens *core.TokenRegistry
}

// New new risk policy, the configuration is validated once here
func New(cfg core.RiskConfig, tokens *core.TokenRegistry) (core.IRiskService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.MinimumLoanAmount.Currency = core.NormalizeSymbol(cfg.MinimumLoanAmount.Currency)
	return &riskService{
		config: cfg,
		tokens: tokens,
	}, nil
}

func (s *riskService) Config() core.RiskConfig {
	return s.config
}

func (s *riskService) CheckAdmission(collateralValue, loanValue decimal.Decimal) error {
	if !lending.Admissible(collateralValue, loanValue, s.config.MaxLTV) {
		return core.ErrNotEnoughCollateral
	}

	return nil
}

func (s *riskService) CheckDuration(days int64) error {
	if days <= 0 {
		return core.ErrInvalidAmount
	}

	if days > s.config.MaxLoanDurationInDays {
		return core.ErrDurationTooLong
	}

	return nil
}

func (s *riskService) CheckInterestRate(rate int64) error {
	if rate < s.config.MinInterestRate {
		return core.ErrInterestRateTooLow
	}

	return nil
}

// CheckMinimumLoan amount is in native units of currency, which must be the minimum's currency
func (s *riskService) CheckMinimumLoan(amount decimal.Decimal, currency string) error {
	min := s.config.MinimumLoanAmount
	if core.NormalizeSymbol(currency) != min.Currency {
		return fmt.Errorf("minimum loan is in %s, got %s: %w", min.Currency, currency, core.ErrUnknownToken)
	}

	token, ok := s.tokens.Find(min.Currency)
	if !ok {
		return core.ErrUnknownToken
	}

	if amount.LessThan(min.Amount.Shift(token.Decimals)) {
		return core.ErrLoanTooSmall
	}

	return nil
}

func (s *riskService) CheckHealth(collateralValue, owedValue decimal.Decimal) core.HealthStatus {
	if lending.Liquidatable(collateralValue, owedValue, s.config.LiquidationThreshold) {
		return core.HealthStatusLiquidatable
	}

	return core.HealthStatusHealthy
}

// CheckOverdue the loan is past its duration
func (s *riskService) CheckOverdue(loan *core.Loan, now time.Time) error {
	if loan.FundedAt == nil || !now.After(loan.Due()) {
		return core.ErrNotOverdue
	}

	return nil
}

func (s *riskService) LTV(collateralValue, loanValue decimal.Decimal) decimal.Decimal {
	return lending.LTV(collateralValue, loanValue)
}

func (s *riskService) MaxLoanValue(collateralValue decimal.Decimal) decimal.Decimal {
	return lending.MaxLoanValue(collateralValue, s.config.MaxLTV)
}
