package worker

import (
	"context"
	"time"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Worker background worker
type Worker interface {
	Run(ctx context.Context) error
}

// OnWork one round of work
type OnWork func(ctx context.Context) error

// CronJob runs OnWork on a cron schedule until ctx is done.
// A round is skipped while the previous one is still running.
type CronJob struct {
	Name     string
	Spec     string
	Location *time.Location
	OnWork   OnWork
}

// Run start the schedule and block until ctx is done
func (job *CronJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", job.Name)

	location := job.Location
	if location == nil {
		location = time.Local
	}

	c := cron.New(
		cron.WithLocation(location),
		cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	if _, err := c.AddFunc(job.Spec, func() { job.Work(ctx) }); err != nil {
		return err
	}

	log.Infoln("start with spec", job.Spec)
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	log.Infoln("stopped")
	return nil
}

// Work run one round now
func (job *CronJob) Work(ctx context.Context) {
	log := logger.FromContext(ctx).WithField("worker", job.Name)
	ctx = logger.WithContext(ctx, log)

	if err := job.OnWork(ctx); err != nil {
		log.WithError(err).Errorln("work failed")
	}
}

// Location load the location, local time if name is empty or unknown
func Location(name string) *time.Location {
	if l, err := time.LoadLocation(name); err == nil {
		return l
	}

	return time.Local
}
