package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"DataIngest/internal/model"

	"github.com/shopspring/decimal"
)

// PriceHeader is the column set written for every price table. The date
// index is the leading column; no row-number column is emitted.
var PriceHeader = []string{"Date", "Open", "High", "Low", "Close", "Adj Close", "Volume"}

// WritePriceCSV writes the table as comma-delimited text to path, replacing
// any existing file. Rows are written in table order. The file is staged
// next to path and renamed into place, so a failed write leaves path untouched.
func WritePriceCSV(path string, table *model.PriceTable) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	w := csv.NewWriter(tmp)
	if err = w.Write(PriceHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range table.Records {
		row := []string{
			r.Date.Format(model.DateLayout),
			formatDecimal(r.Open),
			formatDecimal(r.High),
			formatDecimal(r.Low),
			formatDecimal(r.Close),
			formatDecimal(r.AdjClose),
			formatVolume(r.Volume),
		}
		if err = w.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", row[0], err)
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	if err = tmp.Chmod(0644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

// Missing provider values are written as empty cells.
func formatDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

func formatVolume(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}
