package cmd

import (
	"sync"
	"time"

	"lending/core"
	"lending/service/fee"
	"lending/service/interest"
	loanservice "lending/service/loan"
	"lending/service/oracle"
	"lending/service/risk"
	"lending/service/valuation"
	loanstore "lending/store/loan"
	"lending/store/price"

	"github.com/fox-one/pkg/store/db"
)

var (
	database     *db.DB
	databaseOnce sync.Once
)

func provideDatabase() *db.DB {
	databaseOnce.Do(func() {
		database = db.MustOpen(cfg.DB)
	})

	return database
}

func provideConfig() *core.Config {
	return &cfg
}

func provideTokens() *core.TokenRegistry {
	return core.NewTokenRegistry(cfg.Tokens)
}

// ---------------store-----------------------------------------

func provideLoanStore() core.LoanStore {
	if cfg.App.Memory {
		return loanstore.Arena()
	}

	return loanstore.New(provideDatabase())
}

func providePriceStore() core.PriceQuoteStore {
	if cfg.App.Memory {
		return price.Memory()
	}

	// quotes saved by another process show up once the entry expires
	return price.Cache(price.New(provideDatabase()), cfg.PriceOracle.CacheSize, 10*time.Second)
}

// ------------------service------------------------------------

func provideOracleService(tokens *core.TokenRegistry, quotes core.PriceQuoteStore) core.IPriceOracleService {
	return oracle.New(&cfg.PriceOracle, tokens, quotes)
}

func provideRiskService(tokens *core.TokenRegistry) core.IRiskService {
	s, err := risk.New(cfg.Risk, tokens)
	if err != nil {
		panic(err)
	}

	return s
}

func provideValuationService(tokens *core.TokenRegistry, oracles core.IPriceOracleService) core.IValuationService {
	return valuation.New(tokens, oracles, cfg.Risk)
}

// engine everything a command needs, built once per process
type engine struct {
	tokens    *core.TokenRegistry
	quotes    core.PriceQuoteStore
	loans     core.LoanStore
	oracle    core.IPriceOracleService
	valuation core.IValuationService
	risk      core.IRiskService
	ledger    core.ILoanService
}

func provideEngine() *engine {
	tokens := provideTokens()
	quotes := providePriceStore()
	loans := provideLoanStore()
	oracles := provideOracleService(tokens, quotes)
	valuations := provideValuationService(tokens, oracles)
	risks := provideRiskService(tokens)

	return &engine{
		tokens:    tokens,
		quotes:    quotes,
		loans:     loans,
		oracle:    oracles,
		valuation: valuations,
		risk:      risks,
		ledger: loanservice.New(
			loans,
			tokens,
			oracles,
			valuations,
			risks,
			interest.New(cfg.Risk),
			fee.New(cfg.Risk),
		),
	}
}
