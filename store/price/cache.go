package price

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lending/core"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

// Cache lru read through cache of the latest quote per symbol
func Cache(store core.PriceQuoteStore, size int, exp time.Duration) core.PriceQuoteStore {
	if size <= 0 {
		size = 256
	}

	return &cacheStore{
		PriceQuoteStore: store,
		cache:           gcache.New(size).LRU().Build(),
		sf:              &singleflight.Group{},
		exp:             exp,
	}
}

type cacheStore struct {
	core.PriceQuoteStore
	cache gcache.Cache
	sf    *singleflight.Group
	exp   time.Duration

	// gen bumps on every save, loads started before a save never fill the cache
	mux sync.Mutex
	gen uint64
}

func (s *cacheStore) Save(ctx context.Context, quote *core.PriceQuote) error {
	if err := s.PriceQuoteStore.Save(ctx, quote); err != nil {
		return err
	}

	// the underlying store decides which quote is the latest
	key := s.symbolKey(quote.Symbol)
	s.mux.Lock()
	s.gen++
	s.cache.Remove(key)
	s.mux.Unlock()

	s.sf.Forget(key)
	return nil
}

func (s *cacheStore) Latest(ctx context.Context, symbol string) (*core.PriceQuote, error) {
	key := s.symbolKey(symbol)
	if v, err := s.cache.Get(key); err == nil {
		if quote, ok := v.(*core.PriceQuote); ok {
			q := *quote
			return &q, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		s.mux.Lock()
		gen := s.gen
		s.mux.Unlock()

		quote, err := s.PriceQuoteStore.Latest(ctx, symbol)
		if err != nil {
			return nil, err
		}

		if quote.ID > 0 {
			s.cacheQuote(key, quote, gen)
		}

		return quote, nil
	})
	if err != nil {
		return nil, err
	}

	q := *(v.(*core.PriceQuote))
	return &q, nil
}

func (s *cacheStore) cacheQuote(key string, quote *core.PriceQuote, gen uint64) {
	s.mux.Lock()
	defer s.mux.Unlock()

	if gen != s.gen {
		return
	}

	q := *quote
	if s.exp > 0 {
		_ = s.cache.SetWithExpire(key, &q, s.exp)
		return
	}

	_ = s.cache.Set(key, &q)
}

func (s *cacheStore) symbolKey(symbol string) string {
	return fmt.Sprintf("quote:symbol:%s", core.NormalizeSymbol(symbol))
}
