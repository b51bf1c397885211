package collector

import (
	"context"
	"time"

	"DataIngest/internal/model"

	"github.com/shopspring/decimal"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price   float64
	Records []model.PriceRecord
	Err     error
	Calls   int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(_ context.Context, symbol string, start, end time.Time) (*model.PriceTable, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Records != nil {
		return &model.PriceTable{Symbol: symbol, Records: m.Records}, nil
	}
	if m.Price == 0 {
		return &model.PriceTable{Symbol: symbol}, nil
	}
	return &model.PriceTable{Symbol: symbol, Records: generateMockRecords(m.Price, start, end)}, nil
}

// generateMockRecords emits one record per weekday in [start, end).
func generateMockRecords(basePrice float64, start, end time.Time) []model.PriceRecord {
	var records []model.PriceRecord
	i := 0
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		p := decimal.NewFromFloat(basePrice * (1 + float64(i)*0.001)).Round(4)
		volume := int64(1000000)
		records = append(records, model.PriceRecord{
			Date:     d,
			Open:     decimal.NewNullDecimal(p.Mul(decimal.RequireFromString("0.999")).Round(4)),
			High:     decimal.NewNullDecimal(p.Mul(decimal.RequireFromString("1.005")).Round(4)),
			Low:      decimal.NewNullDecimal(p.Mul(decimal.RequireFromString("0.995")).Round(4)),
			Close:    decimal.NewNullDecimal(p),
			AdjClose: decimal.NewNullDecimal(p),
			Volume:   &volume,
		})
		i++
	}
	return records
}
