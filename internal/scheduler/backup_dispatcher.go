package scheduler

import (
	"context"
	"time"

	"agencyhunter_backend/platform/config"
	"agencyhunter_backend/platform/logger"
)

// BackupDispatcher enqueues a snapshot backup task on a fixed interval.
type BackupDispatcher struct {
	client    *Client
	namespace string
	interval  time.Duration
	log       *logger.Logger
}

func NewBackupDispatcher(cfg interface {
	config.SchedulerConfig
	config.SnapshotConfig
}, log *logger.Logger) (*BackupDispatcher, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}

	interval := cfg.GetSnapshotBackupInterval()
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	return &BackupDispatcher{
		client:    client,
		namespace: cfg.GetSnapshotNamespace(),
		interval:  interval,
		log:       log,
	}, nil
}

func (d *BackupDispatcher) Close() error {
	if d == nil || d.client == nil {
		return nil
	}
	return d.client.Close()
}

func (d *BackupDispatcher) Run(ctx context.Context) {
	if d == nil || d.client == nil {
		return
	}

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		err := d.client.EnqueueSnapshotBackup(ctx, SnapshotBackupPayload{Namespace: d.namespace})
		if err != nil {
			d.log.Warn("snapshot backup enqueue failed", "namespace", d.namespace, "error", err)
		}
	}
}
