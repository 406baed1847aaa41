package oracle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lending/core"
	"lending/pkg/id"
	"lending/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
)

type priceService struct {
	config *core.PriceOracle
	tokens *core.TokenRegistry
	quotes core.PriceQuoteStore
	now    func() time.Time
}

// Option price service option
type Option func(*priceService)

// WithClock replace the wall clock used for quote age checks
func WithClock(now func() time.Time) Option {
	return func(s *priceService) {
		s.now = now
	}
}

// New new oracle price service
func New(cfg *core.PriceOracle, tokens *core.TokenRegistry, quotes core.PriceQuoteStore, opts ...Option) core.IPriceOracleService {
	s := &priceService{
		config: cfg,
		tokens: tokens,
		quotes: quotes,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// GetQuote latest valid quote of a registered token
func (s *priceService) GetQuote(ctx context.Context, symbol string) (*core.PriceQuote, error) {
	symbol = core.NormalizeSymbol(symbol)
	if _, ok := s.tokens.Find(symbol); !ok {
		return nil, core.ErrUnknownToken
	}

	quote, err := s.quotes.Latest(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("load quote of %s: %w", symbol, err)
	}

	if quote.ID == 0 || !quote.Price.IsPositive() || quote.Precision < 0 {
		logger.FromContext(ctx).WithField("symbol", symbol).Debugln("invalid quote")
		return nil, core.ErrStaleOrInvalidQuote
	}

	if age := s.config.MaxQuoteAge; age > 0 && s.now().Sub(quote.Timestamp) > time.Duration(age)*time.Second {
		logger.FromContext(ctx).WithField("symbol", symbol).Infoln("stale quote from", quote.Timestamp)
		return nil, core.ErrStaleOrInvalidQuote
	}

	return quote, nil
}

// Snapshot pull every quote once
func (s *priceService) Snapshot(ctx context.Context, symbols ...string) (core.PriceSnapshot, error) {
	snapshot := make(core.PriceSnapshot, len(symbols))
	for _, symbol := range symbols {
		symbol = core.NormalizeSymbol(symbol)
		if _, ok := snapshot[symbol]; ok {
			continue
		}

		quote, err := s.GetQuote(ctx, symbol)
		if err != nil {
			return nil, err
		}

		snapshot[symbol] = quote
	}

	return snapshot, nil
}

// PullPriceTicker pull the ticker of token from the price endpoint
func (s *priceService) PullPriceTicker(ctx context.Context, token core.Token) (*core.PriceQuote, error) {
	source := token.PriceSource
	if source == "" {
		source = token.Symbol
	}

	url := fmt.Sprintf("%s/api/v2/tickers/%s", strings.TrimSuffix(s.config.EndPoint, "/"), source)
	logger.FromContext(ctx).Debugln("pull price:", url)

	resp, err := resthttp.WithRequestID(ctx, id.GenTraceID()).Get(url)
	if err != nil {
		return nil, err
	}

	var ticker core.PriceTicker
	if err := resthttp.ParseResponse(resp, &ticker); err != nil {
		return nil, err
	}

	if !ticker.Price.IsPositive() {
		return nil, fmt.Errorf("ticker of %s: %w", source, core.ErrStaleOrInvalidQuote)
	}

	return &core.PriceQuote{
		Symbol:    token.Symbol,
		Price:     ticker.Price.Shift(core.DefaultPricePrecision).Truncate(0),
		Precision: core.DefaultPricePrecision,
		Source:    ticker.Provider,
		Timestamp: s.now(),
	}, nil
}
