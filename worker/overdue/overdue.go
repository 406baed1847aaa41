package overdue

import (
	"context"
	"time"

	"lending/core"
	"lending/worker"

	"github.com/fox-one/pkg/logger"
)

// Actor recorded on loans this worker defaults
const Actor = "overdue-worker"

// Worker marks active loans past their duration as defaulted
type Worker struct {
	worker.CronJob
	Loans  core.LoanStore
	Risk   core.IRiskService
	Ledger core.ILoanService
	Now    func() time.Time
}

// New new overdue worker
func New(cfg core.Worker, location string, loans core.LoanStore, risk core.IRiskService, ledger core.ILoanService) *Worker {
	w := &Worker{
		Loans:  loans,
		Risk:   risk,
		Ledger: ledger,
		Now:    time.Now,
	}

	w.Name = "overdue"
	w.Spec = cfg.OverdueSpec
	w.Location = worker.Location(location)
	w.OnWork = w.onWork
	return w
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx)

	loans, err := w.Loans.ListByStatus(ctx, core.LoanStatusActive)
	if err != nil {
		return err
	}

	now := w.Now()
	for _, loan := range loans {
		if w.Risk.CheckOverdue(loan, now) != nil {
			continue
		}

		if err := w.Ledger.MarkDefaulted(ctx, loan.ID, Actor); err != nil {
			log.WithError(err).WithField("loan", loan.ID).Errorln("mark defaulted")
			continue
		}
	}

	return nil
}
