package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"DataIngest/internal/collector"
	"DataIngest/internal/config"
	"DataIngest/internal/ingest"
	"DataIngest/internal/logging"
	"DataIngest/internal/recorder"
	"DataIngest/internal/scheduler"

	"go.uber.org/zap"
)

func main() {
	log := logging.New()
	code := run(log)
	_ = log.Sync()
	os.Exit(code)
}

func run(log *zap.Logger) int {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Error("load config", zap.Error(err))
		return 1
	}
	if err := cfg.Validate(); err != nil {
		log.Error("config validation", zap.Error(err))
		return 1
	}

	fetcher := collector.NewYahooFetcher(cfg.Provider.BaseURL, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
		if err != nil {
			log.Warn("init sqlite recorder failed, using noop", zap.Error(err))
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			logPreviousRun(log, sr)
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := ingest.NewRunner(cfg, fetcher, rec, log)

	if cfg.Schedule.Cron == "" {
		res, err := runner.Run(ctx)
		if err != nil {
			log.Error("data acquisition aborted", zap.Error(err))
			return 1
		}
		if cfg.FailOnFetchError && res.Fetch.Status == ingest.FetchFailed {
			return 1
		}
		return 0
	}

	if cfg.FailOnFetchError {
		log.Warn("fail_on_fetch_error has no effect in scheduled mode; failed fetches are only logged")
	}
	sched := scheduler.NewScheduler(ctx, runner, log)
	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		log.Error("register cron task", zap.Error(err))
		return 1
	}
	sched.Start()
	sched.RunNow()

	log.Info("ingest scheduler running, press Ctrl+C to stop", zap.String("cron", cfg.Schedule.Cron))
	<-ctx.Done()

	log.Info("shutdown signal received, stopping")
	sched.Stop()
	return 0
}

func logPreviousRun(log *zap.Logger, sr *recorder.SQLiteRecorder) {
	prev, err := sr.LastRun()
	if err != nil {
		log.Warn("read previous run", zap.Error(err))
		return
	}
	if prev == nil {
		return
	}
	log.Info("previous run",
		zap.String("run_id", prev.RunID),
		zap.String("symbol", prev.Symbol),
		zap.String("fetch_status", prev.FetchStatus),
		zap.Int("rows", prev.Rows),
		zap.Time("finished_at", prev.FinishedAt),
	)
}
