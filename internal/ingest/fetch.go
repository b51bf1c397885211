package ingest

import (
	"context"
	"time"

	"DataIngest/internal/collector"
	"DataIngest/internal/export"
	"DataIngest/internal/model"

	"go.uber.org/zap"
)

// FetchStatus classifies the outcome of a price fetch.
type FetchStatus string

const (
	FetchWritten FetchStatus = "written"
	FetchEmpty   FetchStatus = "empty"
	FetchFailed  FetchStatus = "failed"
)

// FetchResult is what FetchPrices reports back instead of an error.
type FetchResult struct {
	Status FetchStatus
	Rows   int
	Path   string
	Err    error
}

// FetchPrices downloads daily history for symbol in [start, end) and writes it
// to path as CSV. It never returns an error: provider and disk failures are
// logged and reported as FetchFailed, and an empty history leaves path untouched.
func FetchPrices(ctx context.Context, log *zap.Logger, fetcher collector.Fetcher, symbol string, start, end time.Time, path string) FetchResult {
	log.Info("starting download",
		zap.String("symbol", symbol),
		zap.String("source", fetcher.Name()),
		zap.String("start", start.Format(model.DateLayout)),
		zap.String("end", end.Format(model.DateLayout)),
	)

	table, err := fetcher.FetchHistory(ctx, symbol, start, end)
	if err != nil {
		log.Error("an error occurred while downloading stock data", zap.String("symbol", symbol), zap.Error(err))
		return FetchResult{Status: FetchFailed, Path: path, Err: err}
	}
	if table.Empty() {
		log.Warn("no data found for ticker, it might be delisted or incorrect", zap.String("symbol", symbol))
		return FetchResult{Status: FetchEmpty, Path: path}
	}

	if err := export.WritePriceCSV(path, table); err != nil {
		log.Error("an error occurred while saving stock data", zap.String("path", path), zap.Error(err))
		return FetchResult{Status: FetchFailed, Path: path, Err: err}
	}

	log.Info("saved stock data", zap.String("path", path), zap.Int("rows", table.Len()))
	return FetchResult{Status: FetchWritten, Rows: table.Len(), Path: path}
}
