package interest

import (
	"time"

	"lending/core"
	"lending/pkg/lending"

	"github.com/shopspring/decimal"
)

type interestService struct {
	maxDuration time.Duration
}

// New new interest accrual service
func New(cfg core.RiskConfig) core.IInterestService {
	return &interestService{
		maxDuration: time.Duration(cfg.MaxLoanDurationInDays) * 24 * time.Hour,
	}
}

// Accrued simple interest of the loan at now.
// Accrual starts at funding, freezes once the loan is closed and never runs past the max duration.
func (s *interestService) Accrued(loan *core.Loan, now time.Time) decimal.Decimal {
	if loan.FundedAt == nil {
		return decimal.Zero
	}

	end := now
	if loan.ClosedAt != nil && loan.ClosedAt.Before(end) {
		end = *loan.ClosedAt
	}

	elapsed := end.Sub(*loan.FundedAt)
	if elapsed > s.maxDuration {
		elapsed = s.maxDuration
	}

	return lending.Interest(loan.LoanAmount, loan.InterestRate, int64(elapsed/time.Second))
}
