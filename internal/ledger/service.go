package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// BuildMetrics receives instrumentation from report builds. Implementations
// live in the observability package; a nil value disables instrumentation.
type BuildMetrics interface {
	ObserveBuild(ledgerType, status string, seconds float64)
	AddLines(ledgerType string, count int)
}

// Service orchestrates persistent queries, the pure engine and the cache.
// The engine itself stays single-threaded per invocation; the service only
// collapses concurrent identical requests.
type Service struct {
	repo    Repository
	engine  *Engine
	cache   *ReportCache
	logger  *slog.Logger
	metrics BuildMetrics
	sf      singleflight.Group
}

// NewService wires the report service.
func NewService(repo Repository, cache *ReportCache, logger *slog.Logger, metrics BuildMetrics) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, engine: NewEngine(), cache: cache, logger: logger, metrics: metrics}
}

// BuildReport produces the assembled report for the options, serving from
// cache when possible and deduplicating concurrent identical builds.
func (s *Service) BuildReport(ctx context.Context, opts Options) (Report, error) {
	opts.Normalize()
	if err := opts.Validate(); err != nil {
		return Report{}, err
	}

	fingerprint := opts.Fingerprint()
	key, err := s.cache.Key(ctx, "ledger:report", fingerprint)
	if err != nil {
		s.logger.Warn("report cache key", slog.Any("error", err))
		key = ""
	}
	if key != "" {
		if cached, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			return cached, nil
		} else if err != nil {
			s.logger.Warn("report cache read", slog.Any("error", err))
		}
	}

	result, err, _ := s.sf.Do(fingerprint, func() (any, error) {
		return s.build(ctx, opts, key)
	})
	if err != nil {
		return Report{}, err
	}
	return result.(Report), nil
}

func (s *Service) build(ctx context.Context, opts Options, cacheKey string) (Report, error) {
	start := time.Now()
	runID := uuid.New()

	report, err := s.buildUncached(ctx, opts)
	status := "success"
	if err != nil {
		status = "failure"
	}
	if s.metrics != nil {
		s.metrics.ObserveBuild(string(opts.Type), status, time.Since(start).Seconds())
	}
	if err != nil {
		s.logger.Error("build ledger report",
			slog.String("run_id", runID.String()),
			slog.String("type", string(opts.Type)),
			slog.Any("error", err))
		return Report{}, err
	}

	s.logger.Info("built ledger report",
		slog.String("run_id", runID.String()),
		slog.String("type", string(opts.Type)),
		slog.Int("groups", len(report.Groups)),
		slog.Duration("elapsed", time.Since(start)))

	if cacheKey != "" {
		if err := s.cache.Put(ctx, cacheKey, report); err != nil {
			s.logger.Warn("report cache write", slog.Any("error", err))
		}
	}
	return report, nil
}

func (s *Service) buildUncached(ctx context.Context, opts Options) (Report, error) {
	accounts, err := s.repo.SearchAccounts(ctx, AccountQueryForReport(opts))
	if err != nil {
		return Report{}, err
	}
	accountIDs := make([]int64, 0, len(accounts))
	for _, acc := range accounts {
		accountIDs = append(accountIDs, acc.ID)
	}

	boundary := InitBoundary(opts.DateFrom, opts.FiscalYearEndMonth, opts.FiscalYearEndDay)
	matches, err := s.resolveMatches(ctx, opts, boundary)
	if err != nil {
		return Report{}, err
	}

	var lines []JournalLine
	if len(accountIDs) > 0 {
		lines, err = s.repo.FetchLines(ctx, FilterForReport(opts, accountIDs, matches.Future))
		if err != nil {
			return Report{}, err
		}
	}
	if s.metrics != nil {
		s.metrics.AddLines(string(opts.Type), len(lines))
	}

	report, err := s.engine.BuildWithMatches(opts, lines, matches)
	if err != nil {
		return Report{}, err
	}

	refs, err := s.repo.GroupRefs(ctx, opts.Type.GroupBy(), report.GroupKeys)
	if err != nil {
		return Report{}, fmt.Errorf("ledger: group refs: %w", err)
	}
	report.ApplyGroupRefs(refs)
	return report, nil
}

// resolveMatches queries the reconciliation-group ids spanning past the
// cutoff and past the init boundary. Skipped entirely unless the caller
// asked for future-reconciled handling and set an upper date bound.
func (s *Service) resolveMatches(ctx context.Context, opts Options, boundary *time.Time) (FutureMatches, error) {
	matches := FutureMatches{Future: MatchSet{}, AfterInit: MatchSet{}}
	if !opts.RemoveFutureReconciled || opts.DateTo == nil {
		return matches, nil
	}
	future, err := s.repo.MatchedAfter(ctx, *opts.DateTo)
	if err != nil {
		return matches, fmt.Errorf("ledger: future matches: %w", err)
	}
	matches.Future = NewMatchSet(future)
	if boundary != nil {
		afterInit, err := s.repo.MatchedAfter(ctx, *boundary)
		if err != nil {
			return matches, fmt.Errorf("ledger: after-init matches: %w", err)
		}
		matches.AfterInit = NewMatchSet(afterInit)
	}
	return matches, nil
}

// InvalidateCache drops every cached report, for callers that just posted
// new journal entries.
func (s *Service) InvalidateCache(ctx context.Context) error {
	return s.cache.Bump(ctx)
}
