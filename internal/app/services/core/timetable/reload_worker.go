package timetable

import (
	"assistant-service/internal/app/contracts"
	"assistant-service/internal/pkg/constvars"
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const reloadTimeout = 30 * time.Second

// ReloadWorker re-reads the timetable source on a cron schedule. A failed
// run keeps the lessons that are already loaded.
type ReloadWorker struct {
	log     *zap.Logger
	usecase contracts.TimetableUsecase
	spec    string
	cron    *cron.Cron
	runCtx  context.Context
	cancel  context.CancelFunc
}

func NewReloadWorker(log *zap.Logger, usecase contracts.TimetableUsecase, spec string) *ReloadWorker {
	return &ReloadWorker{log: log, usecase: usecase, spec: spec}
}

// Start schedules the reload job. An invalid schedule is returned and nothing
// is scheduled.
func (w *ReloadWorker) Start(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(w.spec, func() { w.runOnce(w.runCtx) }); err != nil {
		return err
	}
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c.Start()
	w.cron = c
	w.log.Info("timetable.reloadWorker started", zap.String("cron_spec", w.spec))
	return nil
}

// Stop waits for a running reload to finish.
func (w *ReloadWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

func (w *ReloadWorker) runOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, reloadTimeout)
	defer cancel()

	result, err := w.usecase.Reload(ctx)
	if err != nil {
		w.log.Warn("timetable.reloadWorker run failed, keeping previous timetable", zap.Error(err))
		return
	}
	w.log.Info("timetable.reloadWorker run done", zap.Int(constvars.LoggingLessonCountKey, result.Lessons))
}
