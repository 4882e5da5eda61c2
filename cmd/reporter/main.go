package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ccwx46/stock-data-ai/internal/collector"
	"github.com/ccwx46/stock-data-ai/internal/config"
	"github.com/ccwx46/stock-data-ai/internal/pipeline"
	"github.com/ccwx46/stock-data-ai/internal/report"
	"github.com/ccwx46/stock-data-ai/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] reporter starting...")

	var (
		cfgPath = flag.String("config", "configs/config.yaml", "path to YAML config")
		daemon  = flag.Bool("daemon", false, "keep running and regenerate on the configured cron schedule")
	)
	flag.Parse()

	// .env is optional; real env always wins.
	_ = godotenv.Load()

	if v := os.Getenv("CONFIG_PATH"); v != "" {
		*cfgPath = v
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	fetcher := collector.NewYahooFetcher(cfg.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	run := func() error {
		rep := pipeline.Run(ctx, fetcher, cfg.Portfolio, pipeline.Options{
			LookbackYears: cfg.LookbackYears,
			Concurrency:   cfg.Concurrency,
		})
		log.Printf("[INFO] pipeline done: %d tickers, %d skipped", len(rep.Results), len(rep.Skipped))

		renderer := report.NewRenderer(cfg.MonthsDisplayed, cfg.Location())
		if cfg.Output.HTMLPath != "" {
			if err := renderer.WriteHTML(rep, cfg.Output.HTMLPath); err != nil {
				return err
			}
			log.Printf("[INFO] wrote %s", cfg.Output.HTMLPath)
		}
		if cfg.Output.CSVPath != "" {
			if err := renderer.WriteCSV(rep, cfg.Output.CSVPath); err != nil {
				return err
			}
			log.Printf("[INFO] wrote %s", cfg.Output.CSVPath)
		}
		return nil
	}

	if !*daemon {
		// One-shot: skipped tickers are fine, a failed write is not.
		if err := run(); err != nil {
			log.Fatalf("[FATAL] write output: %v", err)
		}
		log.Println("[INFO] report generated")
		return
	}

	sched := scheduler.NewScheduler(func() {
		if err := run(); err != nil {
			log.Printf("[ERROR] write output: %v", err)
		}
	})
	if err := sched.Register(cfg.Schedule.ReportCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, generating report now")
		go sched.RunNow()
	}

	log.Println("[INFO] reporter is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] reporter stopped")
}
