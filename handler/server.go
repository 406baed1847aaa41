package handler

import (
	"net/http"

	"lending/core"
	"lending/handler/render"
	"lending/handler/request"
	"lending/handler/rest"

	"github.com/go-chi/chi"
)

// Server server
type Server struct {
	tokens *core.TokenRegistry
	quotes core.PriceQuoteStore
	oracle core.IPriceOracleService
	ledger core.ILoanService
}

// New new server function
func New(
	tokens *core.TokenRegistry,
	quotes core.PriceQuoteStore,
	oracle core.IPriceOracleService,
	ledger core.ILoanService,
) Server {
	return Server{
		tokens: tokens,
		quotes: quotes,
		oracle: oracle,
		ledger: ledger,
	}
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.Use(render.WrapResponse)
	r.Use(request.HandleCaller)

	r.Mount("/", rest.Handle(s.tokens, s.quotes, s.oracle, s.ledger))
	return r
}
