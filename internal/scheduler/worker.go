package scheduler

import (
	"context"
	"fmt"

	"agencyhunter_backend/internal/leads/snapshot"
	"agencyhunter_backend/platform/config"
	"agencyhunter_backend/platform/logger"

	"github.com/hibiken/asynq"
)

type Worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	primary snapshot.Store
	backup  snapshot.Store
	log     *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, primary, backup snapshot.Store, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:  server,
		mux:     mux,
		primary: primary,
		backup:  backup,
		log:     log,
	}

	mux.HandleFunc(TaskSnapshotBackup, w.handleSnapshotBackup)

	return w, nil
}

// handleSnapshotBackup copies the primary snapshot into the backup store.
// Errors are returned so asynq retries the task.
func (w *Worker) handleSnapshotBackup(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseSnapshotBackupPayload(task)
	if err != nil {
		return err
	}

	leads, err := w.primary.Load(ctx)
	if err != nil {
		w.log.SnapshotError("backup load", payload.Namespace, err)
		return err
	}

	if err := w.backup.Save(ctx, leads); err != nil {
		w.log.SnapshotError("backup save", payload.Namespace, err)
		return err
	}

	w.log.Info("snapshot backed up", "namespace", payload.Namespace, "leads", len(leads))
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
