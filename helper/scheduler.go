package helper

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/robfig/cron/v3"
)

// StartPaymentReconciler runs task every interval on a gocron scheduler. Runs never overlap.
func StartPaymentReconciler(interval time.Duration, task func()) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	s.Start()
	log.Infof("Payment reconciler started (every %s)", interval)
	return s, nil
}

// StartEventCloser runs task on a cron spec, skipping a run while the previous one is busy.
func StartEventCloser(spec string, task func()) (*cron.Cron, error) {
	scheduler := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	if _, err := scheduler.AddFunc(spec, task); err != nil {
		return nil, err
	}

	scheduler.Start()
	log.Infof("Event closing scheduler started (%s)", spec)
	return scheduler, nil
}
