package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// LoanStatus loan lifecycle status
type LoanStatus int

const (
	_ LoanStatus = iota
	// LoanStatusRequested waiting for a lender
	LoanStatusRequested
	// LoanStatusFunded principal delivered, transient before Active
	LoanStatusFunded
	// LoanStatusActive accruing interest
	LoanStatusActive
	// LoanStatusRepaid settled by the borrower
	LoanStatusRepaid
	// LoanStatusLiquidated collateral seized
	LoanStatusLiquidated
	// LoanStatusCancelled request withdrawn before funding
	LoanStatusCancelled
	// LoanStatusDefaulted duration exceeded without settlement
	LoanStatusDefaulted
)

var loanStatusNames = map[LoanStatus]string{
	LoanStatusRequested:  "Requested",
	LoanStatusFunded:     "Funded",
	LoanStatusActive:     "Active",
	LoanStatusRepaid:     "Repaid",
	LoanStatusLiquidated: "Liquidated",
	LoanStatusCancelled:  "Cancelled",
	LoanStatusDefaulted:  "Defaulted",
}

func (s LoanStatus) String() string {
	if name, ok := loanStatusNames[s]; ok {
		return name
	}

	return fmt.Sprintf("LoanStatus(%d)", int(s))
}

// IsTerminal no further transition allowed
func (s LoanStatus) IsTerminal() bool {
	switch s {
	case LoanStatusRepaid, LoanStatusLiquidated, LoanStatusCancelled, LoanStatusDefaulted:
		return true
	}

	return false
}

// MarshalText encodes the status by name
func (s LoanStatus) MarshalText() ([]byte, error) {
	if _, ok := loanStatusNames[s]; !ok {
		return nil, fmt.Errorf("invalid loan status %d", int(s))
	}

	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name, case insensitive
func (s *LoanStatus) UnmarshalText(text []byte) error {
	status, err := ParseLoanStatus(string(text))
	if err != nil {
		return err
	}

	*s = status
	return nil
}

// ParseLoanStatus parse status name
func ParseLoanStatus(name string) (LoanStatus, error) {
	for status, n := range loanStatusNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return status, nil
		}
	}

	return 0, fmt.Errorf("unknown loan status %q", name)
}

// Loan a single collateralized loan
type Loan struct {
	ID               uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Borrower         string          `sql:"size:64;index:idx_loans_borrower" json:"borrower"`
	Lender           string          `sql:"size:64" json:"lender,omitempty"`
	Liquidator       string          `sql:"size:64" json:"liquidator,omitempty"`
	CollateralToken  string          `sql:"size:20" json:"collateral_token"`
	CollateralAmount decimal.Decimal `sql:"type:decimal(65,0)" json:"collateral_amount"`
	LoanToken        string          `sql:"size:20" json:"loan_token"`
	LoanAmount       decimal.Decimal `sql:"type:decimal(65,0)" json:"loan_amount"`
	InterestRate     int64           `json:"interest_rate"`
	DurationInDays   int64           `json:"duration_in_days"`
	Status           LoanStatus      `sql:"index:idx_loans_status" json:"status"`
	OriginationFee   decimal.Decimal `sql:"type:decimal(65,0)" json:"origination_fee"`
	SettlementFee    decimal.Decimal `sql:"type:decimal(65,0)" json:"settlement_fee"`
	RepaidAmount     decimal.Decimal `sql:"type:decimal(65,0)" json:"repaid_amount"`
	FundedAt         *time.Time      `json:"funded_at,omitempty"`
	ClosedAt         *time.Time      `json:"closed_at,omitempty"`
	Version          int64           `sql:"default:0" json:"version"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// Clone deep copy of the loan
func (l *Loan) Clone() *Loan {
	c := *l
	if l.FundedAt != nil {
		t := *l.FundedAt
		c.FundedAt = &t
	}
	if l.ClosedAt != nil {
		t := *l.ClosedAt
		c.ClosedAt = &t
	}

	return &c
}

// Due the moment the loan duration runs out, zero if not funded
func (l *Loan) Due() time.Time {
	if l.FundedAt == nil {
		return time.Time{}
	}

	return l.FundedAt.Add(time.Duration(l.DurationInDays) * 24 * time.Hour)
}

// loan event actions
const (
	LoanActionRequest   = "request"
	LoanActionCancel    = "cancel"
	LoanActionFund      = "fund"
	LoanActionActivate  = "activate"
	LoanActionSettle    = "settle"
	LoanActionLiquidate = "liquidate"
	LoanActionDefault   = "default"
)

// LoanEvent audit record, written with every loan mutation
type LoanEvent struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	LoanID    uint64          `sql:"index:idx_loan_events_loan" json:"loan_id"`
	TraceID   string          `sql:"size:36" json:"trace_id"`
	Action    string          `sql:"size:16" json:"action"`
	From      LoanStatus      `json:"from,omitempty"`
	To        LoanStatus      `json:"to"`
	Actor     string          `sql:"size:64" json:"actor"`
	Amount    decimal.Decimal `sql:"type:decimal(65,0)" json:"amount"`
	Fee       decimal.Decimal `sql:"type:decimal(65,0)" json:"fee"`
	Data      types.JSONText  `sql:"type:varchar(1024)" json:"data,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// LoanRequest borrower's loan request
type LoanRequest struct {
	Borrower         string          `json:"borrower"`
	CollateralToken  string          `json:"collateral_token"`
	CollateralAmount decimal.Decimal `json:"collateral_amount"`
	LoanToken        string          `json:"loan_token"`
	LoanAmount       decimal.Decimal `json:"loan_amount"`
	InterestRate     int64           `json:"interest_rate"`
	DurationInDays   int64           `json:"duration_in_days"`
}

// Position live valuation of a loan
type Position struct {
	Loan            *Loan           `json:"loan"`
	Accrued         decimal.Decimal `json:"accrued"`
	Owed            decimal.Decimal `json:"owed"`
	CollateralValue decimal.Decimal `json:"collateral_value"`
	OwedValue       decimal.Decimal `json:"owed_value"`
	LTV             decimal.Decimal `json:"ltv"`
	Health          HealthStatus    `json:"health"`
}

// FeeTotal fees collected in one loan token
type FeeTotal struct {
	Token       string          `json:"token"`
	Origination decimal.Decimal `json:"origination"`
	Settlement  decimal.Decimal `json:"settlement"`
}

// LoanStore loan store interface
type LoanStore interface {
	// Create assigns loan.ID and stores the loan with its event
	Create(ctx context.Context, loan *Loan, event *LoanEvent) error
	// Transition updates the loan and appends the events atomically,
	// db.ErrOptimisticLock if the stored version moved on
	Transition(ctx context.Context, loan *Loan, events ...*LoanEvent) error
	Find(ctx context.Context, id uint64) (*Loan, error)
	List(ctx context.Context) ([]*Loan, error)
	ListByBorrower(ctx context.Context, borrower string) ([]*Loan, error)
	ListByStatus(ctx context.Context, status LoanStatus) ([]*Loan, error)
	Events(ctx context.Context, loanID uint64) ([]*LoanEvent, error)
}

// ILoanService loan ledger interface
type ILoanService interface {
	RequestLoan(ctx context.Context, req *LoanRequest) (uint64, error)
	CancelRequest(ctx context.Context, id uint64, caller string) error
	FundLoan(ctx context.Context, id uint64, lender string) (*Loan, error)
	Settle(ctx context.Context, id uint64, payer string) (decimal.Decimal, error)
	AttemptLiquidation(ctx context.Context, id uint64, caller string) error
	MarkDefaulted(ctx context.Context, id uint64, caller string) error
	GetLoanRequests(ctx context.Context) ([]*Loan, error)
	GetLoan(ctx context.Context, id uint64) (*Loan, error)
	ListByBorrower(ctx context.Context, borrower string) ([]*Loan, error)
	Events(ctx context.Context, id uint64) ([]*LoanEvent, error)
	Position(ctx context.Context, id uint64) (*Position, error)
	FeeTotals(ctx context.Context) ([]*FeeTotal, error)
}
