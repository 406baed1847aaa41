package rest

import (
	"net/http"

	"lending/core"
	"lending/handler/render"
)

func tokensHandler(tokens *core.TokenRegistry) http.HandlerFunc {
	all := tokens.All()
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, all)
	}
}

func feesHandler(ledger core.ILoanService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		totals, err := ledger.FeeTotals(r.Context())
		if err != nil {
			render.Fail(w, err)
			return
		}

		render.JSON(w, totals)
	}
}
