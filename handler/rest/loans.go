package rest

import (
	"context"
	"net/http"

	"lending/core"
	"lending/handler/param"
	"lending/handler/render"
	"lending/handler/request"
	"lending/handler/views"

	"github.com/shopspring/decimal"
)

func listLoansHandler(tokens *core.TokenRegistry, ledger core.ILoanService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Borrower string `json:"borrower"`
			Status   string `json:"status"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		var status core.LoanStatus
		if params.Status != "" {
			s, err := core.ParseLoanStatus(params.Status)
			if err != nil {
				render.BadRequest(w, err)
				return
			}
			status = s
		}

		var (
			loans []*core.Loan
			err   error
		)

		if params.Borrower != "" {
			loans, err = ledger.ListByBorrower(r.Context(), params.Borrower)
		} else {
			loans, err = ledger.GetLoanRequests(r.Context())
		}

		if err != nil {
			render.Fail(w, err)
			return
		}

		if status > 0 {
			filtered := loans[:0]
			for _, loan := range loans {
				if loan.Status == status {
					filtered = append(filtered, loan)
				}
			}
			loans = filtered
		}

		render.JSON(w, views.LoansView(loans, tokens))
	}
}

func requestLoanHandler(tokens *core.TokenRegistry, ledger core.ILoanService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		borrower, ok := request.Caller(ctx)
		if !ok {
			render.Fail(w, core.ErrNotAuthorized)
			return
		}

		var params struct {
			CollateralToken  string          `json:"collateral_token"`
			CollateralAmount decimal.Decimal `json:"collateral_amount"`
			LoanToken        string          `json:"loan_token"`
			LoanAmount       decimal.Decimal `json:"loan_amount"`
			InterestRate     int64           `json:"interest_rate"`
			DurationInDays   int64           `json:"duration_in_days"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		id, err := ledger.RequestLoan(ctx, &core.LoanRequest{
			Borrower:         borrower,
			CollateralToken:  params.CollateralToken,
			CollateralAmount: params.CollateralAmount,
			LoanToken:        params.LoanToken,
			LoanAmount:       params.LoanAmount,
			InterestRate:     params.InterestRate,
			DurationInDays:   params.DurationInDays,
		})
		if err != nil {
			render.Fail(w, err)
			return
		}

		renderLoan(w, r, id, tokens, ledger)
	}
}

func loanHandler(tokens *core.TokenRegistry, ledger core.ILoanService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := loanID(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		renderLoan(w, r, id, tokens, ledger)
	}
}

func positionHandler(tokens *core.TokenRegistry, ledger core.ILoanService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := loanID(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		pos, err := ledger.Position(r.Context(), id)
		if err != nil {
			render.Fail(w, err)
			return
		}

		render.JSON(w, views.PositionView(pos, tokens))
	}
}

func eventsHandler(ledger core.ILoanService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := loanID(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		events, err := ledger.Events(r.Context(), id)
		if err != nil {
			render.Fail(w, err)
			return
		}

		render.JSON(w, events)
	}
}

func cancelHandler(tokens *core.TokenRegistry, ledger core.ILoanService) http.HandlerFunc {
	return loanAction(tokens, ledger, ledger.CancelRequest)
}

func liquidateHandler(tokens *core.TokenRegistry, ledger core.ILoanService) http.HandlerFunc {
	return loanAction(tokens, ledger, ledger.AttemptLiquidation)
}

func defaultHandler(tokens *core.TokenRegistry, ledger core.ILoanService) http.HandlerFunc {
	return loanAction(tokens, ledger, ledger.MarkDefaulted)
}

func fundHandler(tokens *core.TokenRegistry, ledger core.ILoanService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, caller, ok := actionParams(w, r)
		if !ok {
			return
		}

		loan, err := ledger.FundLoan(r.Context(), id, caller)
		if err != nil {
			render.Fail(w, err)
			return
		}

		render.JSON(w, views.LoanView(loan, tokens))
	}
}

func settleHandler(tokens *core.TokenRegistry, ledger core.ILoanService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, caller, ok := actionParams(w, r)
		if !ok {
			return
		}

		total, err := ledger.Settle(r.Context(), id, caller)
		if err != nil {
			render.Fail(w, err)
			return
		}

		loan, err := ledger.GetLoan(r.Context(), id)
		if err != nil {
			render.Fail(w, err)
			return
		}

		render.JSON(w, render.H{
			"total": total,
			"loan":  views.LoanView(loan, tokens),
		})
	}
}

func loanAction(tokens *core.TokenRegistry, ledger core.ILoanService, action func(ctx context.Context, id uint64, caller string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, caller, ok := actionParams(w, r)
		if !ok {
			return
		}

		if err := action(r.Context(), id, caller); err != nil {
			render.Fail(w, err)
			return
		}

		renderLoan(w, r, id, tokens, ledger)
	}
}

// actionParams loan id and caller of a mutating request, false once a response is written
func actionParams(w http.ResponseWriter, r *http.Request) (uint64, string, bool) {
	id, err := loanID(r)
	if err != nil {
		render.BadRequest(w, err)
		return 0, "", false
	}

	caller, ok := request.Caller(r.Context())
	if !ok {
		render.Fail(w, core.ErrNotAuthorized)
		return 0, "", false
	}

	return id, caller, true
}

func renderLoan(w http.ResponseWriter, r *http.Request, id uint64, tokens *core.TokenRegistry, ledger core.ILoanService) {
	loan, err := ledger.GetLoan(r.Context(), id)
	if err != nil {
		render.Fail(w, err)
		return
	}

	render.JSON(w, views.LoanView(loan, tokens))
}
