package rest

import (
	"net/http"

	"lending/core"
	"lending/handler/render"
	"lending/handler/views"

	"github.com/go-chi/chi"
)

func pricesHandler(quotes core.PriceQuoteStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := quotes.ListLatest(r.Context())
		if err != nil {
			render.Fail(w, err)
			return
		}

		items := make([]views.Quote, 0, len(list))
		for _, quote := range list {
			items = append(items, views.QuoteView(quote))
		}

		render.JSON(w, items)
	}
}

// priceHandler the quote the engine would use right now, stale quotes are rejected
func priceHandler(oracle core.IPriceOracleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quote, err := oracle.GetQuote(r.Context(), core.NormalizeSymbol(chi.URLParam(r, "symbol")))
		if err != nil {
			render.Fail(w, err)
			return
		}

		render.JSON(w, views.QuoteView(quote))
	}
}
