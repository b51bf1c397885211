package ingest

import (
	"context"
	"fmt"
	"os"
	"time"

	"DataIngest/internal/collector"
	"DataIngest/internal/config"
	"DataIngest/internal/export"
	"DataIngest/internal/recorder"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RunResult summarizes one pass of the ingest sequence.
type RunResult struct {
	RunID            string
	Fetch            FetchResult
	InstructionsPath string
}

// Runner executes the ingest sequence: ensure the output directory, fetch
// prices, write the news-data instructions, record the run.
type Runner struct {
	Config   *config.Config
	Fetcher  collector.Fetcher
	Recorder recorder.Recorder
	Log      *zap.Logger

	now func() time.Time
}

// NewRunner creates a Runner. cfg must already be validated.
func NewRunner(cfg *config.Config, fetcher collector.Fetcher, rec recorder.Recorder, log *zap.Logger) *Runner {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Runner{
		Config:   cfg,
		Fetcher:  fetcher,
		Recorder: rec,
		Log:      log,
		now:      time.Now,
	}
}

// Run performs one full, stateless pass. Fetch problems are reported in the
// result; only directory creation and instruction-file failures are returned
// as errors.
func (r *Runner) Run(ctx context.Context) (*RunResult, error) {
	cfg := r.Config
	res := &RunResult{RunID: uuid.NewString(), InstructionsPath: cfg.NewsInstructionsPath()}
	log := r.Log.With(zap.String("run_id", res.RunID))
	startedAt := r.now()

	if err := os.MkdirAll(cfg.RawDataDir, 0755); err != nil {
		return res, fmt.Errorf("create raw data dir: %w", err)
	}
	log.Info("ensured output directory exists", zap.String("dir", cfg.RawDataDir))

	res.Fetch = FetchPrices(ctx, log, r.Fetcher, cfg.Symbol, cfg.Start(), cfg.End(), cfg.StockPricesPath())

	instrErr := export.WriteNewsInstructions(res.InstructionsPath)
	if instrErr == nil {
		log.Info("created news data instructions file", zap.String("path", res.InstructionsPath))
	}

	r.record(log, res, instrErr, startedAt)

	if instrErr != nil {
		return res, fmt.Errorf("write news instructions: %w", instrErr)
	}
	log.Info("data acquisition finished",
		zap.String("fetch_status", string(res.Fetch.Status)),
		zap.Int("rows", res.Fetch.Rows),
	)
	return res, nil
}

func (r *Runner) record(log *zap.Logger, res *RunResult, instrErr error, startedAt time.Time) {
	evt := &recorder.RunEvent{
		RunID:              res.RunID,
		Symbol:             r.Config.Symbol,
		StartDate:          r.Config.StartDate,
		EndDate:            r.Config.EndDate,
		FetchStatus:        string(res.Fetch.Status),
		Rows:               res.Fetch.Rows,
		InstructionsStatus: "written",
		StartedAt:          startedAt,
		FinishedAt:         r.now(),
	}
	if res.Fetch.Err != nil {
		evt.FetchError = res.Fetch.Err.Error()
	}
	if instrErr != nil {
		evt.InstructionsStatus = "failed"
	}
	if err := r.Recorder.RecordRun(evt); err != nil {
		log.Error("record run", zap.Error(err))
	}
}
