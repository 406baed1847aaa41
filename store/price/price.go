package price

import (
	"context"

	"lending/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type priceStore struct {
	db *db.DB
}

// New new price quote store
func New(db *db.DB) core.PriceQuoteStore {
	return &priceStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.PriceQuote{})

		if err := tx.AutoMigrate(core.PriceQuote{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *priceStore) Save(ctx context.Context, quote *core.PriceQuote) error {
	quote.Symbol = core.NormalizeSymbol(quote.Symbol)
	return s.db.Update().Create(quote).Error
}

// Latest returns an empty quote when the symbol has none
func (s *priceStore) Latest(ctx context.Context, symbol string) (*core.PriceQuote, error) {
	var quote core.PriceQuote
	err := s.db.View().
		Where("symbol=?", core.NormalizeSymbol(symbol)).
		Order("timestamp desc, id desc").
		First(&quote).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.PriceQuote{Symbol: core.NormalizeSymbol(symbol)}, nil
		}

		return nil, err
	}

	return &quote, nil
}

func (s *priceStore) ListLatest(ctx context.Context) ([]*core.PriceQuote, error) {
	var symbols []string
	if err := s.db.View().Model(core.PriceQuote{}).Pluck("distinct symbol", &symbols).Error; err != nil {
		return nil, err
	}

	quotes := make([]*core.PriceQuote, 0, len(symbols))
	for _, symbol := range symbols {
		quote, err := s.Latest(ctx, symbol)
		if err != nil {
			return nil, err
		}

		quotes = append(quotes, quote)
	}

	return quotes, nil
}
