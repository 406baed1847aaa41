package core

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MinimumLoanAmount loan floor in whole tokens of Currency
type MinimumLoanAmount struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// RiskConfig risk parameters, immutable once the engine is built
type RiskConfig struct {
	// MaxLTV percent
	MaxLTV int64 `json:"max_ltv"`
	// LiquidationThreshold percent, always above MaxLTV
	LiquidationThreshold int64 `json:"liquidation_threshold"`
	// MinInterestRate per-mille, 35 = 3.5%
	MinInterestRate          int64             `json:"min_interest_rate"`
	MaxLoanDurationInDays    int64             `json:"max_loan_duration_in_days"`
	MinimumLoanAmount        MinimumLoanAmount `json:"minimum_loan_amount"`
	LoanRequestFeePercentage int64             `json:"loan_request_fee_percentage"`
	SettlementFeePercentage  int64             `json:"settlement_fee_percentage"`
	// CommonPrecision fractional digits of the common value unit
	CommonPrecision int32 `json:"common_precision"`
}

// DefaultRiskConfig default risk parameters
func DefaultRiskConfig() RiskConfig {
	return RiskConfig{
		MaxLTV:                75,
		LiquidationThreshold:  85,
		MinInterestRate:       35,
		MaxLoanDurationInDays: 180,
		MinimumLoanAmount: MinimumLoanAmount{
			Amount:   decimal.NewFromInt(200),
			Currency: "USDT",
		},
		LoanRequestFeePercentage: 1,
		SettlementFeePercentage:  1,
		CommonPrecision:          18,
	}
}

// Validate check the configuration invariants
func (c RiskConfig) Validate() error {
	switch {
	case c.MaxLTV <= 0 || c.MaxLTV > 100:
		return fmt.Errorf("max_ltv %d out of range: %w", c.MaxLTV, ErrInvalidConfig)
	case c.LiquidationThreshold <= c.MaxLTV:
		return fmt.Errorf("liquidation_threshold %d must be above max_ltv %d: %w", c.LiquidationThreshold, c.MaxLTV, ErrInvalidConfig)
	case c.MinInterestRate < 0:
		return fmt.Errorf("min_interest_rate %d is negative: %w", c.MinInterestRate, ErrInvalidConfig)
	case c.MaxLoanDurationInDays <= 0:
		return fmt.Errorf("max_loan_duration_in_days must be positive: %w", ErrInvalidConfig)
	case c.MinimumLoanAmount.Amount.IsNegative():
		return fmt.Errorf("minimum_loan_amount is negative: %w", ErrInvalidConfig)
	case c.MinimumLoanAmount.Currency == "":
		return fmt.Errorf("minimum_loan_amount currency missing: %w", ErrInvalidConfig)
	case c.LoanRequestFeePercentage < 0 || c.LoanRequestFeePercentage > 100:
		return fmt.Errorf("loan_request_fee_percentage %d out of range: %w", c.LoanRequestFeePercentage, ErrInvalidConfig)
	case c.SettlementFeePercentage < 0 || c.SettlementFeePercentage > 100:
		return fmt.Errorf("settlement_fee_percentage %d out of range: %w", c.SettlementFeePercentage, ErrInvalidConfig)
	case c.CommonPrecision < 0:
		return fmt.Errorf("common_precision is negative: %w", ErrInvalidConfig)
	}

	return nil
}

// HealthStatus result of a health check
type HealthStatus string

const (
	// HealthStatusHealthy collateral covers the owed value
	HealthStatusHealthy HealthStatus = "Healthy"
	// HealthStatusLiquidatable below the liquidation threshold
	HealthStatusLiquidatable HealthStatus = "Liquidatable"
)

// IValuationService values token amounts in the common unit
type IValuationService interface {
	ValueOf(ctx context.Context, symbol string, amount decimal.Decimal) (decimal.Decimal, error)
	ValueWith(snapshot PriceSnapshot, symbol string, amount decimal.Decimal) (decimal.Decimal, error)
	// Convert expresses amount of symbol in native units of another token
	Convert(snapshot PriceSnapshot, from string, amount decimal.Decimal, to string) (decimal.Decimal, error)
}

// IRiskService risk policy interface
type IRiskService interface {
	Config() RiskConfig
	CheckAdmission(collateralValue, loanValue decimal.Decimal) error
	CheckDuration(days int64) error
	CheckInterestRate(rate int64) error
	CheckMinimumLoan(amount decimal.Decimal, currency string) error
	CheckHealth(collateralValue, owedValue decimal.Decimal) HealthStatus
	CheckOverdue(loan *Loan, now time.Time) error
	LTV(collateralValue, loanValue decimal.Decimal) decimal.Decimal
	MaxLoanValue(collateralValue decimal.Decimal) decimal.Decimal
}

// IInterestService interest accrual interface
type IInterestService interface {
	Accrued(loan *Loan, now time.Time) decimal.Decimal
}

// IFeeService fee calculator interface
type IFeeService interface {
	Fee(amount decimal.Decimal, percentage int64) decimal.Decimal
	OriginationFee(amount decimal.Decimal) decimal.Decimal
	SettlementFee(amount decimal.Decimal) decimal.Decimal
}
