package cmd

import (
	"context"
	"sync"

	"lending/worker"
	"lending/worker/overdue"
	"lending/worker/priceoracle"

	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "lending job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		runWorkers(ctx, provideEngine())
	},
}

func runWorkers(ctx context.Context, e *engine) {
	workers := []worker.Worker{
		priceoracle.New(cfg.Worker, cfg.App.Location, e.tokens, e.quotes, e.oracle),
		overdue.New(cfg.Worker, cfg.App.Location, e.loans, e.risk, e.ledger),
	}

	wg := sync.WaitGroup{}
	for _, w := range workers {
		wg.Add(1)

		go func(w worker.Worker) {
			defer wg.Done()
			if err := w.Run(ctx); err != nil {
				logger.FromContext(ctx).WithError(err).Errorln("worker aborted")
			}
		}(w)
	}

	wg.Wait()
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
