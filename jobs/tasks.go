package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskReportWarmup precomputes and caches ledger reports.
	TaskReportWarmup = "ledger:report_warmup"
	// TaskReportCacheBump invalidates cached reports after postings.
	TaskReportCacheBump = "ledger:report_cache_bump"
)

// ReportWarmupPayload selects which reports the warmup pass rebuilds.
type ReportWarmupPayload struct {
	LedgerTypes []string `json:"ledger_types"`
	// WindowDays bounds the report period, counted back from today.
	WindowDays int `json:"window_days"`
}

// NewReportWarmupTask constructs the warmup task.
func NewReportWarmupTask(payload ReportWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportWarmup, data), nil
}

// NewReportCacheBumpTask constructs the cache invalidation task.
func NewReportCacheBumpTask() *asynq.Task {
	return asynq.NewTask(TaskReportCacheBump, nil)
}
