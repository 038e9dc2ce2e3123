package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"stock-reconciler/core/config"
	"stock-reconciler/core/database"
	"stock-reconciler/core/logger"
	"stock-reconciler/core/storage"
	"stock-reconciler/feature/inventory"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	runOutDir      string
	runDetailName  string
	runSummaryName string
)

// runCmd executes the pipeline once and writes both views as CSV.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the reconciliation pipeline and write the output tables",
	Long: `Run the full reconciliation pipeline once: load the unit export,
deduplicate the movement ledger, classify statuses, parse the stock
extracts and aggregate the variance summary.

Writes the detail ledger and the summary table as CSV files.

Examples:
  # Run against the configured source folders
  stock-reconciler run

  # Write the output tables somewhere else
  stock-reconciler run --out /tmp/reports`,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().StringVar(&runOutDir, "out", ".", "Directory for the output CSV files")
	runCmd.Flags().StringVar(&runDetailName, "detail-file", "inventario_dettagliato.csv", "Detail view file name")
	runCmd.Flags().StringVar(&runSummaryName, "summary-file", "riepilogo_per_magazzino.csv", "Summary view file name")

	RootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	l.Info("Starting reconciliation run")

	source, err := buildSource(cfg, l)
	if err != nil {
		return err
	}

	db := connectOptionalDB(cfg, l)

	svc, err := inventory.NewService(cfg.Sources, source, l, db)
	if err != nil {
		return fmt.Errorf("failed to initialize pipeline: %w", err)
	}

	result, info, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	detailPath := filepath.Join(runOutDir, runDetailName)
	if err := writeCSV(detailPath, func(f *os.File) error {
		return inventory.WriteDetailCSV(f, result.Detail)
	}); err != nil {
		return err
	}

	summaryPath := filepath.Join(runOutDir, runSummaryName)
	if err := writeCSV(summaryPath, func(f *os.File) error {
		return inventory.WriteSummaryCSV(f, result.Summary)
	}); err != nil {
		return err
	}

	if bs, ok := source.(*inventory.BucketSource); ok {
		for _, p := range []string{detailPath, summaryPath} {
			if err := publishFile(ctx, bs, p); err != nil {
				l.Warn("Failed to publish result table", zap.String("file", p), zap.Error(err))
			}
		}
	}

	l.Info("Reconciliation run complete",
		zap.String("fingerprint", info.Fingerprint),
		zap.Int("detail_rows", info.DetailRows),
		zap.Int("summary_rows", info.SummaryRows),
		zap.String("detail_file", detailPath),
		zap.String("summary_file", summaryPath),
	)
	return nil
}

func writeCSV(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// publishFile uploads one written result table back into the bucket, so
// bucket-sourced runs leave their output next to the extracts.
func publishFile(ctx context.Context, bs *inventory.BucketSource, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}
	return bs.Publish(ctx, filepath.Base(path), f, info.Size())
}

// buildSource picks the extract source per configuration: local folders by
// default, the object-storage bucket when sources.use_bucket is set.
func buildSource(cfg *config.Config, l *zap.Logger) (inventory.Source, error) {
	if !cfg.Sources.UseBucket {
		return inventory.NewLocalSource(), nil
	}
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	src := inventory.NewBucketSource(client, cfg.Storage.Bucket)
	if err := src.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to reach extract bucket: %w", err)
	}
	l.Info("Reading extracts from bucket", zap.String("bucket", cfg.Storage.Bucket))
	return src, nil
}

// connectOptionalDB connects the run-history database when enabled.
// Failure is a warning, not an error: runs work fine without history.
func connectOptionalDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	if !cfg.Database.Enabled {
		return nil
	}
	db, err := database.Connect(cfg.Database)
	if err != nil {
		l.Warn("Run-history database unavailable", zap.Error(err))
		return nil
	}
	l.Info("Run history enabled")
	return db
}
