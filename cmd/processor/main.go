// Command processor turns brokerage delivery-order exports into one
// consolidated spreadsheet report.
//
//	processor [-type HTSC] [-o output.xlsx] file1.txt file2.txt ...
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"tzzbcli/internal/config"
	"tzzbcli/internal/dataprocessing"
	"tzzbcli/internal/exporter"
	"tzzbcli/internal/files"
	"tzzbcli/internal/infrastructure"
	"tzzbcli/internal/pipeline"
	"tzzbcli/pkg/contracts"
)

func main() {
	fileType := flag.String("type", dataprocessing.VariantHTSC, "parser variant for the input files (HTSC or HTSC-FLEX)")
	output := flag.String("o", "", "output report path (.xlsx or .csv, defaults to config)")
	configFile := flag.String("config", "", "path to YAML config file")
	queueCapacity := flag.Int("queue", 0, "record queue capacity (defaults to config)")
	debug := flag.Bool("debug", false, "enable debug logging")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if *debug {
		cfg.Logging.Level = "debug"
	}
	if *output != "" {
		cfg.Export.Output = *output
	}
	if *queueCapacity > 0 {
		cfg.Pipeline.QueueCapacity = *queueCapacity
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = infrastructure.WithRunID(ctx, infrastructure.NewRunID())

	inputs, err := files.ResolveInputs(flag.Args(), *fileType)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to resolve inputs", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Starting delivery-order processing",
		slog.Int("input_count", len(inputs)),
		slog.String("file_type", *fileType),
		slog.String("output", cfg.Export.Output))
	fmt.Printf("Found %d export files\n", len(inputs))

	sink, err := exporter.NewReportWriter(cfg.Export.Output, cfg.Export.Sheet)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create report sink", slog.String("error", err.Error()))
		os.Exit(1)
	}

	p := pipeline.New(cfg.Pipeline.QueueCapacity, dataprocessing.NewClassifier(), logger)
	summary, runErr := p.Run(ctx, inputs, sink)

	for path, fileErr := range summary.FileErrors {
		fmt.Fprintf(os.Stderr, "warning: %s: %v\n", path, fileErr)
	}

	fmt.Printf("Processing complete: %d files, %d records written, %d ignored, %d lines skipped, %d ledger mismatches\n",
		summary.Producers, summary.RecordsWritten, summary.RecordsIgnored,
		summary.LinesSkipped, summary.LedgerMismatches)

	if runErr != nil {
		logger.ErrorContext(ctx, "Extraction failed", slog.String("error", runErr.Error()))
		fmt.Fprintf(os.Stderr, "error: %v\n", runErr)
		os.Exit(1)
	}
	if len(summary.FileErrors) == len(inputs) {
		// Every producer failed; nothing was extracted.
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Report written", slog.String("output", cfg.Export.Output))
	fmt.Printf("Report written to %s\n", cfg.Export.Output)
}
