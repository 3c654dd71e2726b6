package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ledgerline/ledgerline/internal/ledger"
)

// ReportWarmupJob rebuilds the configured ledger reports so the first
// morning request hits a warm cache.
type ReportWarmupJob struct {
	Service *ledger.Service
	Logger  *slog.Logger
	clock   func() time.Time
}

// NewReportWarmupJob wires dependencies for the warmup handler.
func NewReportWarmupJob(service *ledger.Service, logger *slog.Logger) *ReportWarmupJob {
	return &ReportWarmupJob{
		Service: service,
		Logger:  logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes report warmup tasks.
func (j *ReportWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Service == nil {
		return errors.New("report warmup: handler not configured")
	}
	var payload ReportWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if len(payload.LedgerTypes) == 0 {
		payload.LedgerTypes = []string{string(ledger.TypeGeneral)}
	}
	if payload.WindowDays <= 0 {
		payload.WindowDays = 365
	}

	logger := j.logger()
	now := j.clock()
	dateTo := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dateFrom := dateTo.AddDate(0, 0, -payload.WindowDays)

	warmed := 0
	for _, raw := range payload.LedgerTypes {
		ledgerType := ledger.LedgerType(raw)
		if !ledgerType.Valid() {
			logger.Warn("skipping unknown ledger type", slog.String("type", raw))
			continue
		}
		opts := ledger.Options{
			Type:            ledgerType,
			DateFrom:        &dateFrom,
			DateTo:          &dateTo,
			WithInitBalance: true,
			PostedOnly:      true,
		}
		if _, err := j.Service.BuildReport(ctx, opts); err != nil {
			logger.Error("warm ledger report", slog.String("type", raw), slog.Any("error", err))
			return err
		}
		warmed++
	}

	logger.Info("completed report warmup",
		slog.Int("reports", warmed),
		slog.Duration("duration", time.Since(now)))
	return nil
}

// HandleCacheBump processes cache invalidation tasks.
func (j *ReportWarmupJob) HandleCacheBump(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Service == nil {
		return errors.New("report warmup: handler not configured")
	}
	if err := j.Service.InvalidateCache(ctx); err != nil {
		j.logger().Error("bump report cache", slog.Any("error", err))
		return err
	}
	return nil
}

func (j *ReportWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
