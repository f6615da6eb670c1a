package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var snapshotFlushFailures = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "lead_snapshot_flush_failures_total",
		Help: "Total number of failed lead snapshot writes",
	},
)
