// Package scheduler runs the background jobs: periodic snapshot backups
// dispatched and processed through asynq.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskSnapshotBackup = "snapshot.backup"

type SnapshotBackupPayload struct {
	Namespace string `json:"namespace"`
}

func NewSnapshotBackupTask(payload SnapshotBackupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSnapshotBackup, data), nil
}

func ParseSnapshotBackupPayload(task *asynq.Task) (SnapshotBackupPayload, error) {
	var payload SnapshotBackupPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return SnapshotBackupPayload{}, err
	}
	return payload, nil
}
