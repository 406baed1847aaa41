package priceoracle

import (
	"context"

	"lending/core"
	"lending/worker"

	"github.com/fox-one/pkg/logger"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Worker pulls a ticker of every registered token and saves it as the latest quote
type Worker struct {
	worker.CronJob
	Tokens      *core.TokenRegistry
	Quotes      core.PriceQuoteStore
	Oracle      core.IPriceOracleService
	Concurrency int64
}

// New new price oracle worker
func New(cfg core.Worker, location string, tokens *core.TokenRegistry, quotes core.PriceQuoteStore, oracle core.IPriceOracleService) *Worker {
	w := &Worker{
		Tokens:      tokens,
		Quotes:      quotes,
		Oracle:      oracle,
		Concurrency: cfg.Concurrency,
	}

	if w.Concurrency <= 0 {
		w.Concurrency = 4
	}

	w.Name = "priceoracle"
	w.Spec = cfg.PriceSpec
	w.Location = worker.Location(location)
	w.OnWork = w.onWork
	return w
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx)

	seen := make(map[string]bool)
	var tokens []core.Token
	for _, token := range w.Tokens.All() {
		if !seen[token.Symbol] {
			seen[token.Symbol] = true
			tokens = append(tokens, token)
		}
	}

	if len(tokens) == 0 {
		log.Infoln("no token registered")
		return nil
	}

	sem := semaphore.NewWeighted(w.Concurrency)
	g, ctx := errgroup.WithContext(ctx)
	for _, token := range tokens {
		token := token
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}

		g.Go(func() error {
			defer sem.Release(1)

			quote, err := w.Oracle.PullPriceTicker(ctx, token)
			if err != nil {
				log.WithError(err).WithField("symbol", token.Symbol).Errorln("pull price ticker")
				return nil
			}

			return w.Quotes.Save(ctx, quote)
		})
	}

	return g.Wait()
}
