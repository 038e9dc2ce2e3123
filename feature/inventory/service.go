package inventory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"stock-reconciler/core/runcache"
	"stock-reconciler/feature/inventory/aggregate"
	"stock-reconciler/feature/inventory/extract"
	"stock-reconciler/feature/inventory/ledger"
	"stock-reconciler/feature/inventory/models"
	"stock-reconciler/feature/inventory/status"
	"stock-reconciler/feature/inventory/units"
)

// ErrMissingInput indicates a required primary input (unit export or ledger
// workbook) is entirely absent. It is the only condition that aborts a run;
// everything else degrades to a safe default.
var ErrMissingInput = errors.New("inventory: required input missing")

// inputSet is one run's discovered input files.
type inputSet struct {
	unitFiles  []string
	ledgerFile string
	stockFiles []string
	dirFile    string
}

// Service orchestrates the reconciliation pipeline: discover inputs,
// consult the run cache, and on a miss run the loaders, classifier and
// aggregator to build the two views.
type Service struct {
	cfg     Config
	source  Source
	logger  *zap.Logger
	cache   *runcache.Store
	history *History

	mu      sync.RWMutex
	lastRun *models.RunInfo
}

// NewService creates the pipeline service. db may be nil; run history is
// then disabled.
func NewService(cfg Config, source Source, logger *zap.Logger, db *gorm.DB) (*Service, error) {
	s := &Service{
		cfg:    cfg,
		source: source,
		logger: logger,
		cache:  runcache.NewStore(),
	}
	if db != nil {
		h, err := NewHistory(db)
		if err != nil {
			return nil, fmt.Errorf("init run history: %w", err)
		}
		s.history = h
	}
	return s, nil
}

// LastRun returns metadata of the most recent run, or nil before any run.
func (s *Service) LastRun() *models.RunInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRun
}

// Run executes the pipeline, serving the result from the cache when the
// input file set is unchanged. Re-running identical inputs yields identical
// tables; only the RunInfo timestamp differs.
func (s *Service) Run(ctx context.Context) (*models.Result, *models.RunInfo, error) {
	started := time.Now()

	in, stats, err := s.discover(ctx)
	if err != nil {
		return nil, nil, err
	}
	fingerprint := runcache.Fingerprint(stats)

	ttl := time.Duration(s.cfg.CacheTTLSeconds) * time.Second
	value, cached, err := s.cache.GetOrBuild(fingerprint, ttl, func() (any, error) {
		return s.build(ctx, in)
	})
	if err != nil {
		return nil, nil, err
	}
	result := value.(*models.Result)

	info := &models.RunInfo{
		Fingerprint: fingerprint,
		FinishedAt:  time.Now(),
		DetailRows:  len(result.Detail),
		SummaryRows: len(result.Summary),
		Cached:      cached,
	}
	s.mu.Lock()
	s.lastRun = info
	s.mu.Unlock()

	if !cached && s.history != nil {
		rec := &RunRecord{
			Fingerprint: fingerprint,
			StartedAt:   started,
			DurationMS:  time.Since(started).Milliseconds(),
			DetailRows:  info.DetailRows,
			SummaryRows: info.SummaryRows,
		}
		if err := s.history.Record(ctx, rec); err != nil {
			s.logger.Warn("failed to record run", zap.Error(err))
		}
	}

	return result, info, nil
}

// Reload drops every cached result and runs the pipeline fresh.
func (s *Service) Reload(ctx context.Context) (*models.Result, *models.RunInfo, error) {
	s.cache.Clear()
	return s.Run(ctx)
}

// discover lists the input files of all sources and collects their stats
// for fingerprinting. Absent unit export or ledger is fatal here, before
// any output is produced; absent stock extracts or supplier directory are
// not (zero contribution / raw labels).
func (s *Service) discover(ctx context.Context) (inputSet, []runcache.FileStat, error) {
	var in inputSet
	var stats []runcache.FileStat

	unitStats, err := s.source.List(ctx, s.cfg.UnitsDir, ".csv")
	if err != nil || len(unitStats) == 0 {
		return in, nil, fmt.Errorf("%w: unit export folder %s", ErrMissingInput, s.cfg.UnitsDir)
	}
	for _, st := range unitStats {
		in.unitFiles = append(in.unitFiles, st.Name)
	}
	stats = append(stats, unitStats...)

	ledgerStat, err := s.source.Stat(ctx, s.cfg.LedgerFile)
	if err != nil {
		return in, nil, fmt.Errorf("%w: ledger workbook %s", ErrMissingInput, s.cfg.LedgerFile)
	}
	in.ledgerFile = ledgerStat.Name
	stats = append(stats, ledgerStat)

	if err := s.source.PrepareStock(ctx, s.cfg.StockDir); err != nil {
		s.logger.Warn("stock extract folder unavailable, contribution will be zero",
			zap.String("folder", s.cfg.StockDir), zap.Error(err))
	} else {
		stockStats, err := s.source.List(ctx, s.cfg.StockDir, ".txt")
		if err != nil {
			s.logger.Warn("listing stock extracts failed, contribution will be zero",
				zap.String("folder", s.cfg.StockDir), zap.Error(err))
		}
		for _, st := range stockStats {
			in.stockFiles = append(in.stockFiles, st.Name)
		}
		stats = append(stats, stockStats...)
	}

	if dirStat, err := s.source.Stat(ctx, s.cfg.DirectoryFile); err == nil {
		in.dirFile = dirStat.Name
		stats = append(stats, dirStat)
	}

	return in, stats, nil
}

// build runs the actual pipeline over a discovered input set.
func (s *Service) build(ctx context.Context, in inputSet) (*models.Result, error) {
	op := opener{ctx: ctx, src: s.source}

	unitRecs, err := units.LoadFiles(op, in.unitFiles)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingInput, err)
	}

	rc, err := op.Open(in.ledgerFile)
	if err != nil {
		return nil, fmt.Errorf("%w: ledger workbook %s", ErrMissingInput, in.ledgerFile)
	}
	entries, ledgerStock, err := ledger.Load(rc)
	rc.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingInput, err)
	}
	latest := ledger.Dedupe(entries)

	classifier := status.NewClassifier(s.loadDirectory(ctx, in.dirFile))

	detail := make([]models.DetailRow, 0, len(unitRecs))
	for _, rec := range unitRecs {
		var entry *models.LedgerEntry
		if e, ok := latest[rec.SerialPrimary]; ok && rec.SerialPrimary != "" {
			entry = &e
		}
		_, resolved := classifier.Classify(entry)
		row := models.DetailRow{
			MaterialCode:       rec.MaterialCode,
			Description:        rec.Description,
			Status:             resolved,
			SerialPrimary:      rec.SerialPrimary,
			SerialSecondary:    rec.SerialSecondary,
			StatusRaw:          rec.StatusRaw,
			WarehouseCode:      rec.WarehouseCode,
			RegionalStatusCode: rec.RegionalStatusCode,
		}
		if entry != nil {
			row.RegistrationDate = entry.RegistrationDate
		}
		detail = append(detail, row)
	}

	stockLines := s.loadStock(op, in.stockFiles)

	summary := aggregate.New(s.cfg.ProvinceMap).Summarize(unitRecs, stockLines, ledgerStock)

	s.logger.Info("pipeline run complete",
		zap.Int("units", len(unitRecs)),
		zap.Int("ledger_entries", len(entries)),
		zap.Int("stock_lines", len(stockLines)),
		zap.Int("detail_rows", len(detail)),
		zap.Int("summary_rows", len(summary)),
	)

	return &models.Result{Detail: detail, Summary: summary}, nil
}

// loadDirectory loads the supplier directory, degrading to nil (raw status
// labels) with a warning when it is unavailable.
func (s *Service) loadDirectory(ctx context.Context, name string) status.Directory {
	if name == "" {
		s.logger.Warn("supplier directory missing, statuses stay raw",
			zap.String("file", s.cfg.DirectoryFile))
		return nil
	}
	rc, err := s.source.Open(ctx, name)
	if err != nil {
		s.logger.Warn("supplier directory unreadable, statuses stay raw",
			zap.String("file", name), zap.Error(err))
		return nil
	}
	defer rc.Close()
	dir, err := status.LoadDirectory(rc, s.logger)
	if err != nil {
		s.logger.Warn("supplier directory unparsable, statuses stay raw",
			zap.String("file", name), zap.Error(err))
		return nil
	}
	return dir
}

// loadStock parses the stock extracts, degrading to a zero contribution on
// failure: stock problems must never abort the run.
func (s *Service) loadStock(op opener, files []string) []models.StockLine {
	if len(files) == 0 {
		return nil
	}
	opts := extract.Options{
		HeaderMarker:  s.cfg.StockHeaderMarker,
		QuantityField: s.cfg.StockQuantityField,
	}
	lines, stats, err := extract.ParseFiles(op, files, opts)
	if err != nil {
		s.logger.Warn("stock extracts unreadable, contribution is zero", zap.Error(err))
		return nil
	}
	s.logger.Debug("stock extracts parsed",
		zap.Int("files", len(files)),
		zap.Int("headers", stats.Headers),
		zap.Int("data_lines", stats.DataLines),
		zap.Int("skipped", stats.Skipped),
		zap.Int("dropped_pre_header", stats.DroppedNoCtx),
	)
	return lines
}
