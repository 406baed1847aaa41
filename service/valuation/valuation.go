package valuation

import (
	"context"

	"lending/core"
	"lending/pkg/lending"

	"github.com/shopspring/decimal"
)

type valuationService struct {
	tokens          *core.TokenRegistry
	oracle          core.IPriceOracleService
	commonPrecision int32
}

// New new valuation service
func New(tokens *core.TokenRegistry, oracle core.IPriceOracleService, risk core.RiskConfig) core.IValuationService {
	return &valuationService{
		tokens:          tokens,
		oracle:          oracle,
		commonPrecision: risk.CommonPrecision,
	}
}

// ValueOf value amount with the latest quote
func (s *valuationService) ValueOf(ctx context.Context, symbol string, amount decimal.Decimal) (decimal.Decimal, error) {
	snapshot, err := s.oracle.Snapshot(ctx, symbol)
	if err != nil {
		return decimal.Zero, err
	}

	return s.ValueWith(snapshot, symbol, amount)
}

// ValueWith value amount with an already pulled snapshot
func (s *valuationService) ValueWith(snapshot core.PriceSnapshot, symbol string, amount decimal.Decimal) (decimal.Decimal, error) {
	token, quote, err := s.lookup(snapshot, symbol)
	if err != nil {
		return decimal.Zero, err
	}

	return lending.Value(amount, quote.Price, token.Decimals, quote.Precision, s.commonPrecision), nil
}

func (s *valuationService) Convert(snapshot core.PriceSnapshot, from string, amount decimal.Decimal, to string) (decimal.Decimal, error) {
	if core.NormalizeSymbol(from) == core.NormalizeSymbol(to) {
		return amount, nil
	}

	fromToken, fromQuote, err := s.lookup(snapshot, from)
	if err != nil {
		return decimal.Zero, err
	}

	toToken, toQuote, err := s.lookup(snapshot, to)
	if err != nil {
		return decimal.Zero, err
	}

	return lending.Convert(
		amount,
		fromQuote.Price, fromToken.Decimals, fromQuote.Precision,
		toQuote.Price, toToken.Decimals, toQuote.Precision,
	), nil
}

func (s *valuationService) lookup(snapshot core.PriceSnapshot, symbol string) (core.Token, *core.PriceQuote, error) {
	token, ok := s.tokens.Find(symbol)
	if !ok {
		return token, nil, core.ErrUnknownToken
	}

	quote, ok := snapshot[token.Symbol]
	if !ok || !quote.Price.IsPositive() || quote.Precision < 0 {
		return token, nil, core.ErrStaleOrInvalidQuote
	}

	return token, quote, nil
}
