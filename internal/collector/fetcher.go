package collector

import (
	"context"
	"time"

	"DataIngest/internal/model"
)

// Fetcher defines the interface for fetching daily price history.
//
// FetchHistory covers [start, end). An unknown or delisted symbol yields an
// empty table and a nil error; transport and decoding problems are errors.
type Fetcher interface {
	FetchHistory(ctx context.Context, symbol string, start, end time.Time) (*model.PriceTable, error)
	Name() string
}
