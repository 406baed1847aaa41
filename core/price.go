package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultPricePrecision fractional digits of oracle quotes
const DefaultPricePrecision int32 = 8

// PriceQuote latest price of a token, Price is an integer scaled by 10^Precision
type PriceQuote struct {
	ID        int64           `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	Symbol    string          `sql:"size:20;index:idx_price_quotes_symbol" json:"symbol"`
	Price     decimal.Decimal `sql:"type:decimal(48,0)" json:"price"`
	Precision int32           `sql:"default:8" json:"precision"`
	Source    string          `sql:"size:64" json:"source,omitempty"`
	Timestamp time.Time       `sql:"index:idx_price_quotes_ts" json:"timestamp"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
}

// PriceTicker price ticker from the price endpoint
type PriceTicker struct {
	Provider string          `json:"provider,omitempty"`
	Symbol   string          `json:"symbol,omitempty"`
	Price    decimal.Decimal `json:"price,omitempty"`
}

// PriceSnapshot quotes pulled once for a single engine operation
type PriceSnapshot map[string]*PriceQuote

// PriceQuoteStore price quote store interface
type PriceQuoteStore interface {
	Save(ctx context.Context, quote *PriceQuote) error
	Latest(ctx context.Context, symbol string) (*PriceQuote, error)
	ListLatest(ctx context.Context) ([]*PriceQuote, error)
}

// IPriceOracleService read only view over the latest quotes
type IPriceOracleService interface {
	GetQuote(ctx context.Context, symbol string) (*PriceQuote, error)
	Snapshot(ctx context.Context, symbols ...string) (PriceSnapshot, error)
	PullPriceTicker(ctx context.Context, token Token) (*PriceQuote, error)
}
