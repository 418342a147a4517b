package payroll

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/payroll-report/internal"
	"github.com/frahmantamala/payroll-report/pkg/logger"
	"github.com/google/uuid"
)

// Loader reads the dataset from a record source.
type Loader interface {
	Load(ctx context.Context) *LoadResult
}

// Result is the outcome of one pipeline run.
type Result struct {
	RunID       string
	Report      *Report
	Status      LoadStatus
	Source      string
	Fingerprint string
	Cached      bool
}

// Service runs Loader -> Aggregator and caches aggregation output by dataset
// fingerprint.
type Service struct {
	loader         Loader
	cache          *ReportCache
	rejectNegative bool
	logger         *slog.Logger
}

func NewService(loader Loader, cache *ReportCache, negativeValues string, logger *slog.Logger) *Service {
	return &Service{
		loader:         loader,
		cache:          cache,
		rejectNegative: negativeValues != internal.NegativePropagate,
		logger:         logger,
	}
}

// Report loads the source and returns its aggregation. A missing or
// malformed source yields an all-zero report; an invalid record or, under
// the reject policy, a negative value is returned as an error.
func (s *Service) Report(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	log := logger.FromOr(ctx, s.logger).With("run_id", runID)

	loaded := s.loader.Load(ctx)
	switch {
	case loaded.Degraded():
		log.Warn("record source unavailable, continuing with empty dataset",
			"source", loaded.Source,
			"status", loaded.Status,
			"error", loaded.Err)
		loaded.Dataset = Dataset{}
	case loaded.Status == StatusInvalidRecord:
		log.Error("record source contains an invalid record", "source", loaded.Source, "error", loaded.Err)
		return nil, loaded.Err
	}

	if s.rejectNegative {
		if err := ValidateNonNegative(loaded.Dataset); err != nil {
			log.Error("negative values rejected", "source", loaded.Source, "error", err)
			return nil, err
		}
	}

	fingerprint := loaded.Dataset.Fingerprint()
	result := &Result{
		RunID:       runID,
		Status:      loaded.Status,
		Source:      loaded.Source,
		Fingerprint: fingerprint,
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(fingerprint); ok {
			log.Debug("aggregation served from cache", "fingerprint", fingerprint)
			result.Report = cached
			result.Cached = true
			return result, nil
		}
	}

	result.Report = Aggregate(loaded.Dataset)
	if s.cache != nil {
		s.cache.Set(fingerprint, result.Report)
	}

	log.Info("payroll aggregated",
		"source", loaded.Source,
		"units", len(result.Report.Units),
		"employees", result.Report.EmployeeCount,
		"fingerprint", fingerprint)

	return result, nil
}

// UnitView returns the filtered view of one unit of the current report.
func (s *Service) UnitView(ctx context.Context, unit string, f Filter) (*FilteredView, error) {
	res, err := s.Report(ctx)
	if err != nil {
		return nil, err
	}
	ur, ok := res.Report.Unit(unit)
	if !ok {
		return nil, internal.ErrUnitNotFound
	}
	return ApplyFilter(ur, f)
}
