package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used in config and CSV output.
const DateLayout = "2006-01-02"

// PriceRecord is one trading day of price history for a symbol. Fields the
// provider reported as null stay invalid (or nil) rather than zero.
type PriceRecord struct {
	Date     time.Time
	Open     decimal.NullDecimal
	High     decimal.NullDecimal
	Low      decimal.NullDecimal
	Close    decimal.NullDecimal
	AdjClose decimal.NullDecimal
	Volume   *int64
}

// PriceTable holds the records for one symbol in the order the provider delivered them.
type PriceTable struct {
	Symbol  string
	Records []PriceRecord
}

// Len returns the number of records, treating a nil table as empty.
func (t *PriceTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Empty reports whether the table has no rows.
func (t *PriceTable) Empty() bool { return t.Len() == 0 }
