package price

import (
	"context"
	"sync"
	"testing"
	"time"

	"lending/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLatest(t *testing.T) {
	ctx := context.Background()
	store := Memory()

	quote, err := store.Latest(ctx, "eth")
	require.Nil(t, err)
	assert.Zero(t, quote.ID, "no quote yet")

	now := time.Now()
	require.Nil(t, store.Save(ctx, &core.PriceQuote{Symbol: "eth", Price: decimal.NewFromInt(168000000000), Precision: 8, Timestamp: now}))
	require.Nil(t, store.Save(ctx, &core.PriceQuote{Symbol: "ETH", Price: decimal.NewFromInt(100), Precision: 8, Timestamp: now.Add(-time.Minute)}))

	quote, err = store.Latest(ctx, "Eth")
	require.Nil(t, err)
	assert.Equal(t, "ETH", quote.Symbol)
	assert.Equal(t, "168000000000", quote.Price.String(), "older quote must not win")

	quote.Price = decimal.Zero
	again, _ := store.Latest(ctx, "ETH")
	assert.Equal(t, "168000000000", again.Price.String(), "callers get copies")

	require.Nil(t, store.Save(ctx, &core.PriceQuote{Symbol: "USDC", Price: decimal.NewFromInt(100003400), Precision: 8, Timestamp: now}))
	quotes, err := store.ListLatest(ctx)
	require.Nil(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, "ETH", quotes[0].Symbol)
	assert.Equal(t, "USDC", quotes[1].Symbol)
}

type countingStore struct {
	core.PriceQuoteStore
	mux   sync.Mutex
	reads int
}

func (s *countingStore) Latest(ctx context.Context, symbol string) (*core.PriceQuote, error) {
	s.mux.Lock()
	s.reads++
	s.mux.Unlock()
	return s.PriceQuoteStore.Latest(ctx, symbol)
}

func TestCache(t *testing.T) {
	ctx := context.Background()
	backend := &countingStore{PriceQuoteStore: Memory()}
	store := Cache(backend, 16, 0)

	// misses are not cached
	_, _ = store.Latest(ctx, "BTC")
	_, _ = store.Latest(ctx, "BTC")
	assert.Equal(t, 2, backend.reads)

	require.Nil(t, store.Save(ctx, &core.PriceQuote{Symbol: "BTC", Price: decimal.NewFromInt(7902048000000), Precision: 8, Timestamp: time.Now()}))
	for i := 0; i < 5; i++ {
		quote, err := store.Latest(ctx, "btc")
		require.Nil(t, err)
		assert.Equal(t, "7902048000000", quote.Price.String())
	}
	assert.Equal(t, 3, backend.reads)

	// save invalidates
	require.Nil(t, store.Save(ctx, &core.PriceQuote{Symbol: "BTC", Price: decimal.NewFromInt(8000000000000), Precision: 8, Timestamp: time.Now().Add(time.Second)}))
	quote, err := store.Latest(ctx, "BTC")
	require.Nil(t, err)
	assert.Equal(t, "8000000000000", quote.Price.String())
	assert.Equal(t, 4, backend.reads)
}

// blockingStore holds the first Latest after it has read the backend
type blockingStore struct {
	core.PriceQuoteStore
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (s *blockingStore) Latest(ctx context.Context, symbol string) (*core.PriceQuote, error) {
	quote, err := s.PriceQuoteStore.Latest(ctx, symbol)
	s.once.Do(func() {
		close(s.entered)
		<-s.release
	})
	return quote, err
}

func TestCacheSaveDuringLoad(t *testing.T) {
	ctx := context.Background()
	backend := &blockingStore{
		PriceQuoteStore: Memory(),
		entered:         make(chan struct{}),
		release:         make(chan struct{}),
	}
	store := Cache(backend, 16, 0)

	now := time.Now()
	require.Nil(t, backend.Save(ctx, &core.PriceQuote{Symbol: "BTC", Price: decimal.NewFromInt(7902048000000), Precision: 8, Timestamp: now}))

	loaded := make(chan *core.PriceQuote)
	go func() {
		quote, _ := store.Latest(ctx, "BTC")
		loaded <- quote
	}()

	<-backend.entered
	require.Nil(t, store.Save(ctx, &core.PriceQuote{Symbol: "BTC", Price: decimal.NewFromInt(8000000000000), Precision: 8, Timestamp: now.Add(time.Second)}))

	// a read after the save must not join the load still in flight
	quote, err := store.Latest(ctx, "BTC")
	require.Nil(t, err)
	assert.Equal(t, "8000000000000", quote.Price.String())

	close(backend.release)
	assert.Equal(t, "7902048000000", (<-loaded).Price.String())

	// nor may that load put the old quote back into the cache
	quote, err = store.Latest(ctx, "BTC")
	require.Nil(t, err)
	assert.Equal(t, "8000000000000", quote.Price.String())
}
