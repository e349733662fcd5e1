package config

import (
	"testing"

	"pricehypo/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"DATA_FILE", "DATA_SHEET", "PORT", "BATCH_WORKERS", "REPORT_FORMAT", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultDataFile, cfg.Data.File)
	assert.Equal(t, "", cfg.Data.Sheet)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 4, cfg.Batch.Workers)
	assert.Equal(t, "text", cfg.Report.Format)
	assert.Equal(t, "INFO", cfg.Log.Level)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATA_FILE", "cars.xlsx")
	t.Setenv("DATA_SHEET", "Listings")
	t.Setenv("PORT", "9090")
	t.Setenv("BATCH_WORKERS", "2")
	t.Setenv("REPORT_FORMAT", "JSON")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "cars.xlsx", cfg.Data.File)
	assert.Equal(t, "Listings", cfg.Data.Sheet)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 2, cfg.Batch.Workers)
	assert.Equal(t, "json", cfg.Report.Format)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric port", "PORT", "http"},
		{"zero workers", "BATCH_WORKERS", "0"},
		{"unknown format", "REPORT_FORMAT", "pdf"},
		{"blank data file", "DATA_FILE", "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
