package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrame_AddAndLookup(t *testing.T) {
	f := NewFrame(3)
	require.NoError(t, f.Add(ColumnPrice, []float64{1, 2, 3}))
	require.NoError(t, f.Add(IndicatorName(FuelPetrol), []float64{0, 1, 1}))

	assert.True(t, f.Has("Fuel_Type_Petrol"))
	assert.False(t, f.Has("Fuel_Type_Diesel"))
	assert.Equal(t, []string{"Price", "Fuel_Type_Petrol"}, f.Names())
	assert.Equal(t, 3, f.Len())

	prices, err := f.Where(ColumnPrice, "Fuel_Type_Petrol")
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3}, prices)
}

func TestFrame_AddRejectsBadColumns(t *testing.T) {
	f := NewFrame(2)
	assert.Error(t, f.Add(ColumnHP, []float64{1}))
	require.NoError(t, f.Add(ColumnHP, []float64{1, 2}))
	assert.Error(t, f.Add(ColumnHP, []float64{3, 4}))

	_, err := f.Where(ColumnHP, "missing")
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
	}{
		{"ToyotaCorolla (1).csv", FormatCSV},
		{"cars.XLSX", FormatXLSX},
		{"cars.xlsm", FormatXLSX},
		{"cars", FormatCSV},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatFromPath(tt.path), tt.path)
	}

	format, ok := ParseFormat(" XLSX ")
	assert.True(t, ok)
	assert.Equal(t, FormatXLSX, format)
	_, ok = ParseFormat("parquet")
	assert.False(t, ok)
}
