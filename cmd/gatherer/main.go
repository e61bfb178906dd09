// Command gatherer downloads daily institutional-investor trading data for a
// tracked list of Taiwanese securities and maintains per-security snapshot
// and history files.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/linwc/twse-chip-data/internal/config"
	"github.com/linwc/twse-chip-data/internal/date"
	"github.com/linwc/twse-chip-data/internal/fetch"
	"github.com/linwc/twse-chip-data/internal/gatherer"
	"github.com/linwc/twse-chip-data/internal/stocklist"
	"github.com/linwc/twse-chip-data/internal/store"
	"github.com/linwc/twse-chip-data/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (built-in defaults when empty)")
	days := flag.Int("days", 0, "trailing calendar days to process, including today (overrides config)")
	stockList := flag.String("stocks", "", "path to the tracked-stock list (overrides config)")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting gatherer",
		"version", version.String(),
		"config", *configPath,
	)

	// Load configuration
	var cfg *config.GathererConfig
	if *configPath == "" {
		cfg = config.Default()
	} else {
		var err error
		cfg, err = config.LoadAndValidate(*configPath)
		if err != nil {
			logger.Error("failed to load config", "error", err)
			os.Exit(1)
		}
	}
	if *days > 0 {
		cfg.Scheduler.Days = *days
	}
	if *stockList != "" {
		cfg.Storage.StockList = *stockList
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Load the tracked securities; this is the only fatal data error.
	securities, err := stocklist.Load(cfg.Storage.StockList)
	if err != nil {
		logger.Error("failed to load stock list", "error", err)
		os.Exit(1)
	}
	logger.Info("stock list loaded",
		"file", cfg.Storage.StockList,
		"securities", len(securities),
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals: stop starting new date tasks, let in-flight
	// ones finish.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	client := fetch.NewClient(
		cfg.Fetch.UserAgent,
		fetch.WithLogger(logger),
		fetch.WithTimeout(cfg.Fetch.Timeout),
		fetch.WithMinBytes(cfg.Fetch.MinBytes),
		fetch.WithTLSVerify(cfg.Fetch.TLSVerify),
	)
	st := store.New(cfg.Storage.ListedDir, cfg.Storage.OTCDir, logger)
	day := gatherer.NewDay(cfg, client, st, logger)

	coordinator := gatherer.NewCoordinator(day, cfg.Scheduler.Concurrency, logger)
	dates := gatherer.TrailingDates(date.Today(), cfg.Scheduler.Days)
	coordinator.Run(ctx, dates, securities)

	logger.Info("all tasks complete")
}
