package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "AAPL", cfg.Symbol)
	assert.Equal(t, "data/raw", cfg.RawDataDir)
	assert.Equal(t, time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), cfg.Start())
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), cfg.End())
	assert.Equal(t, filepath.Join("data/raw", "stock_prices.csv"), cfg.StockPricesPath())
	assert.Equal(t, filepath.Join("data/raw", "news_data_readme.txt"), cfg.NewsInstructionsPath())
	assert.Empty(t, cfg.Schedule.Cron)
	assert.False(t, cfg.FailOnFetchError)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `symbol: MSFT
start_date: "2020-01-01"
end_date: "2021-01-01"
raw_data_dir: out
database:
  sqlite_path: runs.db
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))
	t.Setenv("RAW_DATA_DIR", "elsewhere")
	t.Setenv("FAIL_ON_FETCH_ERROR", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "MSFT", cfg.Symbol)
	assert.Equal(t, "elsewhere", cfg.RawDataDir)
	assert.Equal(t, "runs.db", cfg.Database.SQLitePath)
	assert.True(t, cfg.FailOnFetchError)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("symbol: [unterminated"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"empty symbol", func(c *Config) { c.Symbol = "" }, true},
		{"empty dir", func(c *Config) { c.RawDataDir = "" }, true},
		{"bad start", func(c *Config) { c.StartDate = "01/01/2015" }, true},
		{"bad end", func(c *Config) { c.EndDate = "yesterday" }, true},
		{"reversed range", func(c *Config) { c.StartDate, c.EndDate = "2024-01-01", "2023-01-01" }, true},
		{"empty range", func(c *Config) { c.StartDate, c.EndDate = "2024-01-01", "2024-01-01" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
			require.NoError(t, err)
			tt.mutate(cfg)
			err = cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
