package queue

import (
	"context"
	"time"

	"blood-donation-api/config"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

const TypeSheetSync = "sheet:sync"

// SheetSyncer runs one spreadsheet sync pass
type SheetSyncer interface {
	Perform(ctx context.Context) error
}

func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: cfg.Addr(), Password: cfg.Password, DB: cfg.DB}
}

// Scheduler enqueues the sync task on a cron spec.
type Scheduler struct {
	scheduler *asynq.Scheduler
	log       *logrus.Logger
}

func NewScheduler(redisOpt asynq.RedisClientOpt, cronSpec string, log *logrus.Logger) (*Scheduler, error) {
	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Location: time.UTC,
		LogLevel: asynq.WarnLevel,
		PostEnqueueFunc: func(info *asynq.TaskInfo, err error) {
			if err != nil {
				log.Warnf("Failed to enqueue %s: %+v", TypeSheetSync, err)
			}
		},
	})

	task := asynq.NewTask(TypeSheetSync, nil)
	if _, err := scheduler.Register(cronSpec, task,
		asynq.MaxRetry(0),
		asynq.Timeout(4*time.Minute),
		asynq.Unique(4*time.Minute),
	); err != nil {
		return nil, err
	}

	return &Scheduler{scheduler: scheduler, log: log}, nil
}

// Start runs the scheduler in background goroutines.
func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}

// Worker executes queued sync tasks one at a time.
type Worker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	syncer SheetSyncer
	log    *logrus.Logger
}

func NewWorker(redisOpt asynq.RedisClientOpt, syncer SheetSyncer, log *logrus.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 1,
		LogLevel:    asynq.WarnLevel,
	})
	mux := asynq.NewServeMux()
	w := &Worker{srv: srv, mux: mux, syncer: syncer, log: log}
	mux.HandleFunc(TypeSheetSync, w.HandleSheetSync)
	return w
}

func (w *Worker) HandleSheetSync(ctx context.Context, t *asynq.Task) error {
	if err := w.syncer.Perform(ctx); err != nil {
		w.log.Errorf("Sheet sync failed: %+v", err)
		return err
	}
	return nil
}

// Start processes tasks in background goroutines.
func (w *Worker) Start() error {
	return w.srv.Start(w.mux)
}

func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
