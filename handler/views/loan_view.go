package views

import (
	"time"

	"lending/core"
	"lending/pkg/number"

	"github.com/shopspring/decimal"
)

// Loan loan view with amounts in whole tokens next to the raw smallest units
type Loan struct {
	*core.Loan
	Status                string     `json:"status"`
	CollateralAmountHuman string     `json:"collateral_amount_human"`
	LoanAmountHuman       string     `json:"loan_amount_human"`
	Due                   *time.Time `json:"due,omitempty"`
}

// LoanView render loan
func LoanView(loan *core.Loan, tokens *core.TokenRegistry) Loan {
	v := Loan{
		Loan:                  loan,
		Status:                loan.Status.String(),
		CollateralAmountHuman: human(tokens, loan.CollateralToken, loan.CollateralAmount),
		LoanAmountHuman:       human(tokens, loan.LoanToken, loan.LoanAmount),
	}

	if loan.FundedAt != nil {
		due := loan.Due()
		v.Due = &due
	}

	return v
}

// LoansView render loans
func LoansView(loans []*core.Loan, tokens *core.TokenRegistry) []Loan {
	list := make([]Loan, 0, len(loans))
	for _, loan := range loans {
		list = append(list, LoanView(loan, tokens))
	}

	return list
}

// Position position view
type Position struct {
	*core.Position
	Loan         Loan   `json:"loan"`
	OwedHuman    string `json:"owed_human"`
	AccruedHuman string `json:"accrued_human"`
}

// PositionView render position
func PositionView(pos *core.Position, tokens *core.TokenRegistry) Position {
	return Position{
		Position:     pos,
		Loan:         LoanView(pos.Loan, tokens),
		OwedHuman:    human(tokens, pos.Loan.LoanToken, pos.Owed),
		AccruedHuman: human(tokens, pos.Loan.LoanToken, pos.Accrued),
	}
}

// Quote price quote view
type Quote struct {
	*core.PriceQuote
	PriceHuman string `json:"price_human"`
}

// QuoteView render quote
func QuoteView(quote *core.PriceQuote) Quote {
	return Quote{
		PriceQuote: quote,
		PriceHuman: number.Human(quote.Price, quote.Precision),
	}
}

func human(tokens *core.TokenRegistry, symbol string, amount decimal.Decimal) string {
	token, ok := tokens.Find(symbol)
	if !ok {
		return amount.String()
	}

	return number.Human(amount, token.Decimals)
}
