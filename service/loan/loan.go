package loan

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"lending/core"
	"lending/pkg/id"
	"lending/pkg/lending"

	"github.com/fox-one/pkg/logger"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

type loanService struct {
	// mux serializes every mutation, views share the read lock
	mux sync.RWMutex

	loans     core.LoanStore
	tokens    *core.TokenRegistry
	oracle    core.IPriceOracleService
	valuation core.IValuationService
	risk      core.IRiskService
	interest  core.IInterestService
	fees      core.IFeeService
	now       func() time.Time
}

// Option loan service option
type Option func(*loanService)

// WithClock replace the wall clock
func WithClock(now func() time.Time) Option {
	return func(s *loanService) {
		s.now = now
	}
}

// New new loan ledger
func New(
	loans core.LoanStore,
	tokens *core.TokenRegistry,
	oracle core.IPriceOracleService,
	valuation core.IValuationService,
	risk core.IRiskService,
	interest core.IInterestService,
	fees core.IFeeService,
	opts ...Option,
) core.ILoanService {
	s := &loanService{
		loans:     loans,
		tokens:    tokens,
		oracle:    oracle,
		valuation: valuation,
		risk:      risk,
		interest:  interest,
		fees:      fees,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// RequestLoan admit a new loan request, nothing is stored unless every check passes
func (s *loanService) RequestLoan(ctx context.Context, req *core.LoanRequest) (uint64, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	log := logger.FromContext(ctx).WithField("borrower", req.Borrower)

	if req.Borrower == "" {
		return 0, core.ErrNotAuthorized
	}

	snapshot, err := s.checkMinimumLoan(ctx, req)
	if err != nil {
		log.WithError(err).Debugln("request rejected")
		return 0, err
	}

	if err := s.risk.CheckDuration(req.DurationInDays); err != nil {
		log.WithError(err).Debugln("request rejected")
		return 0, err
	}

	if err := s.risk.CheckInterestRate(req.InterestRate); err != nil {
		log.WithError(err).Debugln("request rejected")
		return 0, err
	}

	if !isAmount(req.CollateralAmount) || !isAmount(req.LoanAmount) {
		return 0, core.ErrInvalidAmount
	}

	collateral, ok := s.tokens.Collateral(req.CollateralToken)
	if !ok {
		return 0, core.ErrUnknownToken
	}

	loanToken, ok := s.tokens.Loan(req.LoanToken)
	if !ok {
		return 0, core.ErrUnknownToken
	}

	// quotes already pulled for the minimum check are reused
	var symbols []string
	for _, symbol := range []string{collateral.Symbol, loanToken.Symbol} {
		if _, ok := snapshot[symbol]; !ok {
			symbols = append(symbols, symbol)
		}
	}

	if len(symbols) > 0 {
		pulled, err := s.oracle.Snapshot(ctx, symbols...)
		if err != nil {
			return 0, err
		}

		if snapshot == nil {
			snapshot = pulled
		} else {
			for symbol, quote := range pulled {
				snapshot[symbol] = quote
			}
		}
	}

	collateralValue, err := s.valuation.ValueWith(snapshot, collateral.Symbol, req.CollateralAmount)
	if err != nil {
		return 0, err
	}

	loanValue, err := s.valuation.ValueWith(snapshot, loanToken.Symbol, req.LoanAmount)
	if err != nil {
		return 0, err
	}

	if err := s.risk.CheckAdmission(collateralValue, loanValue); err != nil {
		log.WithField("collateral_value", collateralValue).
			WithField("loan_value", loanValue).
			Infoln("request rejected: not enough collateral")
		return 0, err
	}

	now := s.now()
	loan := &core.Loan{
		Borrower:         req.Borrower,
		CollateralToken:  collateral.Symbol,
		CollateralAmount: req.CollateralAmount,
		LoanToken:        loanToken.Symbol,
		LoanAmount:       req.LoanAmount,
		InterestRate:     req.InterestRate,
		DurationInDays:   req.DurationInDays,
		Status:           core.LoanStatusRequested,
		OriginationFee:   decimal.Zero,
		SettlementFee:    decimal.Zero,
		RepaidAmount:     decimal.Zero,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	event := &core.LoanEvent{
		TraceID:   id.GenTraceID(),
		Action:    core.LoanActionRequest,
		To:        core.LoanStatusRequested,
		Actor:     req.Borrower,
		Amount:    req.LoanAmount,
		Fee:       decimal.Zero,
		Data:      eventData(ctx, map[string]interface{}{"collateral_value": collateralValue, "loan_value": loanValue}),
		CreatedAt: now,
	}

	if err := s.loans.Create(ctx, loan, event); err != nil {
		return 0, fmt.Errorf("create loan: %w", err)
	}

	log.WithField("loan", loan.ID).WithField("status", loan.Status).Infoln("loan requested")
	return loan.ID, nil
}

// checkMinimumLoan compare the loan amount with the configured minimum,
// a loan in another currency is converted with the quotes it returns
func (s *loanService) checkMinimumLoan(ctx context.Context, req *core.LoanRequest) (core.PriceSnapshot, error) {
	if !req.LoanAmount.IsPositive() {
		return nil, core.ErrLoanTooSmall
	}

	minCurrency := core.NormalizeSymbol(s.risk.Config().MinimumLoanAmount.Currency)
	if core.NormalizeSymbol(req.LoanToken) == minCurrency {
		return nil, s.risk.CheckMinimumLoan(req.LoanAmount, minCurrency)
	}

	loanToken, ok := s.tokens.Loan(req.LoanToken)
	if !ok {
		return nil, core.ErrUnknownToken
	}

	snapshot, err := s.oracle.Snapshot(ctx, loanToken.Symbol, minCurrency)
	if err != nil {
		return nil, err
	}

	amount, err := s.valuation.Convert(snapshot, loanToken.Symbol, req.LoanAmount, minCurrency)
	if err != nil {
		return nil, err
	}

	if err := s.risk.CheckMinimumLoan(amount, minCurrency); err != nil {
		return nil, err
	}

	return snapshot, nil
}

// CancelRequest withdraw a request before it is funded
func (s *loanService) CancelRequest(ctx context.Context, loanID uint64, caller string) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	loan, err := s.loans.Find(ctx, loanID)
	if err != nil {
		return err
	}

	if caller != loan.Borrower {
		return core.ErrNotAuthorized
	}

	if loan.Status != core.LoanStatusRequested {
		return core.ErrInvalidState
	}

	now := s.now()
	loan.Status = core.LoanStatusCancelled
	loan.ClosedAt = &now
	event := s.event(ctx, loan, core.LoanActionCancel, core.LoanStatusRequested, caller, decimal.Zero, decimal.Zero, nil)
	return s.transit(ctx, loan, event)
}

// FundLoan lender accepts the request, funding and activation happen in one step
func (s *loanService) FundLoan(ctx context.Context, loanID uint64, lender string) (*core.Loan, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	if lender == "" {
		return nil, core.ErrNotAuthorized
	}

	loan, err := s.loans.Find(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if loan.Status != core.LoanStatusRequested {
		return nil, core.ErrInvalidState
	}

	if lender == loan.Borrower {
		return nil, core.ErrNotAuthorized
	}

	now := s.now()
	loan.Lender = lender
	loan.FundedAt = &now
	loan.OriginationFee = s.fees.OriginationFee(loan.LoanAmount)

	loan.Status = core.LoanStatusFunded
	fund := s.event(ctx, loan, core.LoanActionFund, core.LoanStatusRequested, lender, loan.LoanAmount, loan.OriginationFee, nil)

	loan.Status = core.LoanStatusActive
	activate := s.event(ctx, loan, core.LoanActionActivate, core.LoanStatusFunded, lender, loan.LoanAmount, decimal.Zero, map[string]interface{}{
		"due": loan.Due(),
	})

	if err := s.transit(ctx, loan, fund, activate); err != nil {
		return nil, err
	}

	return loan.Clone(), nil
}

// Settle close an active loan, returns principal plus accrued interest plus the settlement fee
func (s *loanService) Settle(ctx context.Context, loanID uint64, payer string) (decimal.Decimal, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	loan, err := s.loans.Find(ctx, loanID)
	if err != nil {
		return decimal.Zero, err
	}

	if loan.Status != core.LoanStatusActive {
		return decimal.Zero, core.ErrInvalidState
	}

	now := s.now()
	accrued := s.interest.Accrued(loan, now)
	owed := loan.LoanAmount.Add(accrued)
	fee := s.fees.SettlementFee(owed)
	total := owed.Add(fee)

	loan.Status = core.LoanStatusRepaid
	loan.SettlementFee = fee
	loan.RepaidAmount = total
	loan.ClosedAt = &now

	event := s.event(ctx, loan, core.LoanActionSettle, core.LoanStatusActive, payer, total, fee, map[string]interface{}{
		"accrued": accrued,
		"owed":    owed,
	})
	if err := s.transit(ctx, loan, event); err != nil {
		return decimal.Zero, err
	}

	return total, nil
}

// AttemptLiquidation liquidate the loan if it is below the liquidation threshold at current prices
func (s *loanService) AttemptLiquidation(ctx context.Context, loanID uint64, caller string) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	loan, err := s.loans.Find(ctx, loanID)
	if err != nil {
		return err
	}

	if loan.Status != core.LoanStatusActive {
		return core.ErrInvalidState
	}

	now := s.now()
	accrued := s.interest.Accrued(loan, now)
	owed := loan.LoanAmount.Add(accrued)

	collateralValue, owedValue, err := s.values(ctx, loan, owed)
	if err != nil {
		return err
	}

	log := logger.FromContext(ctx).WithField("loan", loan.ID).
		WithField("collateral_value", collateralValue).
		WithField("owed_value", owedValue)

	if s.risk.CheckHealth(collateralValue, owedValue) != core.HealthStatusLiquidatable {
		log.Debugln("loan is healthy")
		return core.ErrNotLiquidatable
	}

	loan.Status = core.LoanStatusLiquidated
	loan.Liquidator = caller
	loan.ClosedAt = &now

	event := s.event(ctx, loan, core.LoanActionLiquidate, core.LoanStatusActive, caller, loan.CollateralAmount, decimal.Zero, map[string]interface{}{
		"accrued":          accrued,
		"collateral_value": collateralValue,
		"owed_value":       owedValue,
	})
	return s.transit(ctx, loan, event)
}

// MarkDefaulted close an active loan that outlived its duration
func (s *loanService) MarkDefaulted(ctx context.Context, loanID uint64, caller string) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	loan, err := s.loans.Find(ctx, loanID)
	if err != nil {
		return err
	}

	if loan.Status != core.LoanStatusActive {
		return core.ErrInvalidState
	}

	now := s.now()
	if err := s.risk.CheckOverdue(loan, now); err != nil {
		return err
	}

	accrued := s.interest.Accrued(loan, now)
	loan.Status = core.LoanStatusDefaulted
	loan.ClosedAt = &now

	event := s.event(ctx, loan, core.LoanActionDefault, core.LoanStatusActive, caller, loan.LoanAmount.Add(accrued), decimal.Zero, map[string]interface{}{
		"accrued": accrued,
		"due":     loan.Due(),
	})
	return s.transit(ctx, loan, event)
}

func (s *loanService) GetLoanRequests(ctx context.Context) ([]*core.Loan, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	return s.loans.List(ctx)
}

func (s *loanService) GetLoan(ctx context.Context, loanID uint64) (*core.Loan, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	return s.loans.Find(ctx, loanID)
}

func (s *loanService) ListByBorrower(ctx context.Context, borrower string) ([]*core.Loan, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	return s.loans.ListByBorrower(ctx, borrower)
}

func (s *loanService) Events(ctx context.Context, loanID uint64) ([]*core.LoanEvent, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	if _, err := s.loans.Find(ctx, loanID); err != nil {
		return nil, err
	}

	return s.loans.Events(ctx, loanID)
}

// Position live view of a loan, open loans are valued at current prices
func (s *loanService) Position(ctx context.Context, loanID uint64) (*core.Position, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	loan, err := s.loans.Find(ctx, loanID)
	if err != nil {
		return nil, err
	}

	accrued := s.interest.Accrued(loan, s.now())
	pos := &core.Position{
		Loan:    loan,
		Accrued: accrued,
		Owed:    loan.LoanAmount.Add(accrued),
	}

	if loan.Status.IsTerminal() {
		return pos, nil
	}

	if pos.CollateralValue, pos.OwedValue, err = s.values(ctx, loan, pos.Owed); err != nil {
		return nil, err
	}

	pos.LTV = s.risk.LTV(pos.CollateralValue, pos.OwedValue)
	pos.Health = s.risk.CheckHealth(pos.CollateralValue, pos.OwedValue)
	return pos, nil
}

// FeeTotals fees per loan token, sorted by token
func (s *loanService) FeeTotals(ctx context.Context) ([]*core.FeeTotal, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	loans, err := s.loans.List(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]*core.FeeTotal)
	for _, loan := range loans {
		total, ok := totals[loan.LoanToken]
		if !ok {
			total = &core.FeeTotal{
				Token:       loan.LoanToken,
				Origination: decimal.Zero,
				Settlement:  decimal.Zero,
			}
			totals[loan.LoanToken] = total
		}

		total.Origination = total.Origination.Add(loan.OriginationFee)
		total.Settlement = total.Settlement.Add(loan.SettlementFee)
	}

	list := make([]*core.FeeTotal, 0, len(totals))
	for _, total := range totals {
		list = append(list, total)
	}

	sort.Slice(list, func(i, j int) bool { return list[i].Token < list[j].Token })
	return list, nil
}

// values collateral and owed value from one snapshot
func (s *loanService) values(ctx context.Context, loan *core.Loan, owed decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	snapshot, err := s.oracle.Snapshot(ctx, loan.CollateralToken, loan.LoanToken)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	collateralValue, err := s.valuation.ValueWith(snapshot, loan.CollateralToken, loan.CollateralAmount)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	owedValue, err := s.valuation.ValueWith(snapshot, loan.LoanToken, owed)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return collateralValue, owedValue, nil
}

func (s *loanService) event(ctx context.Context, loan *core.Loan, action string, from core.LoanStatus, actor string, amount, fee decimal.Decimal, data map[string]interface{}) *core.LoanEvent {
	return &core.LoanEvent{
		TraceID:   id.LoanTraceID(loan.ID, action, loan.Version),
		Action:    action,
		From:      from,
		To:        loan.Status,
		Actor:     actor,
		Amount:    amount,
		Fee:       fee,
		Data:      eventData(ctx, data),
		CreatedAt: s.now(),
	}
}

func (s *loanService) transit(ctx context.Context, loan *core.Loan, events ...*core.LoanEvent) error {
	loan.UpdatedAt = s.now()
	if err := s.loans.Transition(ctx, loan, events...); err != nil {
		return fmt.Errorf("update loan %d: %w", loan.ID, err)
	}

	last := events[len(events)-1]
	logger.FromContext(ctx).
		WithField("loan", loan.ID).
		WithField("status", loan.Status).
		WithField("actor", last.Actor).
		Infoln("loan", last.Action)
	return nil
}

func isAmount(d decimal.Decimal) bool {
	return d.IsPositive() && lending.IsWhole(d)
}

func eventData(ctx context.Context, data map[string]interface{}) types.JSONText {
	if len(data) == 0 {
		return nil
	}

	b, err := json.Marshal(data)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("marshal event data")
		return nil
	}

	return types.JSONText(b)
}
