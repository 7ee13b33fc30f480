// Command etl runs the AIHW hospital-separations pipeline end to end:
// discover and download the published workbooks, reshape them into the
// unified long-form table, aggregate, and persist.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"aihwetl/internal/config"
	"aihwetl/internal/dataprocessing"
	"aihwetl/internal/exporter"
	"aihwetl/internal/fetch"
	"aihwetl/internal/infrastructure"
	"aihwetl/internal/storage"
	"aihwetl/pkg/contracts"
)

func main() {
	urls := flag.String("url", "", "comma-separated workbook URLs, bypassing landing-page discovery")
	csvOut := flag.String("csv-out", "", "directory for CSV exports of the unified and aggregated tables")
	dryRun := flag.Bool("dry-run", false, "reshape and aggregate but skip the database write")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	// A local .env is a convenience for development; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *urls != "" {
		cfg.Fetch.SourceURLs = splitURLs(*urls)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	if err := run(context.Background(), cfg, *csvOut, *dryRun, logger); err != nil {
		logger.Error("pipeline run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, csvOut string, dryRun bool, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	sources, err := fetch.NewClient(cfg.Fetch, logger).Sources(ctx)
	if err != nil {
		return err
	}

	unified, err := dataprocessing.NewCompiler(logger).Compile(sources)
	if err != nil {
		return err
	}
	clean := dataprocessing.Reduce(unified)

	logger.Info("pipeline tables ready",
		slog.Int("unified_records", unified.Len()),
		slog.Int("aggregated_records", clean.Len()))

	if csvOut != "" {
		writer := exporter.NewCSVWriter(logger)
		if err := writer.WriteTable(unified, filepath.Join(csvOut, cfg.Tables.Staging+".csv")); err != nil {
			return err
		}
		if err := writer.WriteTable(clean, filepath.Join(csvOut, cfg.Tables.Clean+".csv")); err != nil {
			return err
		}
	}

	if dryRun {
		logger.Info("dry run: skipping database write")
		return nil
	}

	store, err := storage.Open(cfg.Database, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.AppendStaging(ctx, unified, cfg.Tables.Staging); err != nil {
		return err
	}
	if err := store.Persist(ctx, clean, cfg.Tables.Clean); err != nil {
		return err
	}

	logger.Info("ETL completed",
		slog.String("staging_relation", cfg.Tables.Staging),
		slog.String("clean_relation", cfg.Tables.Clean))
	return nil
}

func splitURLs(raw string) []string {
	var out []string
	for _, u := range strings.Split(raw, ",") {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	return out
}
