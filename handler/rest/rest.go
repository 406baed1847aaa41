package rest

import (
	"errors"
	"net/http"

	"lending/core"
	"lending/handler/render"

	"github.com/go-chi/chi"
	"github.com/spf13/cast"
)

// Handle handle rest api request
func Handle(
	tokens *core.TokenRegistry,
	quotes core.PriceQuoteStore,
	oracle core.IPriceOracleService,
	ledger core.ILoanService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/tokens", tokensHandler(tokens))
	router.Get("/prices", pricesHandler(quotes))
	router.Get("/prices/{symbol}", priceHandler(oracle))
	router.Get("/fees", feesHandler(ledger))

	router.Route("/loans", func(r chi.Router) {
		r.Get("/", listLoansHandler(tokens, ledger))
		r.Post("/", requestLoanHandler(tokens, ledger))
		r.Get("/{id}", loanHandler(tokens, ledger))
		r.Get("/{id}/position", positionHandler(tokens, ledger))
		r.Get("/{id}/events", eventsHandler(ledger))
		r.Post("/{id}/cancel", cancelHandler(tokens, ledger))
		r.Post("/{id}/fund", fundHandler(tokens, ledger))
		r.Post("/{id}/settle", settleHandler(tokens, ledger))
		r.Post("/{id}/liquidate", liquidateHandler(tokens, ledger))
		r.Post("/{id}/default", defaultHandler(tokens, ledger))
	})

	return router
}

func loanID(r *http.Request) (uint64, error) {
	id, err := cast.ToUint64E(chi.URLParam(r, "id"))
	if err != nil || id == 0 {
		return 0, errors.New("invalid loan id")
	}

	return id, nil
}
