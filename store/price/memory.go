package price

import (
	"context"
	"sort"
	"sync"

	"lending/core"
)

type memoryStore struct {
	mux    sync.RWMutex
	nextID int64
	latest map[string]*core.PriceQuote
}

// Memory in process price quote store, keeps the latest quote per symbol
func Memory() core.PriceQuoteStore {
	return &memoryStore{
		latest: make(map[string]*core.PriceQuote),
	}
}

func (s *memoryStore) Save(ctx context.Context, quote *core.PriceQuote) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	s.nextID++
	quote.ID = s.nextID
	quote.Symbol = core.NormalizeSymbol(quote.Symbol)

	// out of order quotes never replace a newer one
	if current, ok := s.latest[quote.Symbol]; ok && current.Timestamp.After(quote.Timestamp) {
		return nil
	}

	q := *quote
	s.latest[quote.Symbol] = &q
	return nil
}

func (s *memoryStore) Latest(ctx context.Context, symbol string) (*core.PriceQuote, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	symbol = core.NormalizeSymbol(symbol)
	if quote, ok := s.latest[symbol]; ok {
		q := *quote
		return &q, nil
	}

	return &core.PriceQuote{Symbol: symbol}, nil
}

func (s *memoryStore) ListLatest(ctx context.Context) ([]*core.PriceQuote, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	quotes := make([]*core.PriceQuote, 0, len(s.latest))
	for _, quote := range s.latest {
		q := *quote
		quotes = append(quotes, &q)
	}

	sort.Slice(quotes, func(i, j int) bool { return quotes[i].Symbol < quotes[j].Symbol })
	return quotes, nil
}
