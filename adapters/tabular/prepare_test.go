package tabular

import (
	"context"
	"errors"
	"strings"
	"testing"

	"pricehypo/domain/core"
	"pricehypo/domain/dataset"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, text string) dataframe.DataFrame {
	t.Helper()
	df, err := NewDataReader("", nil).LoadReader(context.Background(), strings.NewReader(text), dataset.FormatCSV)
	require.NoError(t, err)
	return df
}

func TestClean_DropsRowsWithMissingValues(t *testing.T) {
	cleaned, err := Clean(load(t, sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 3, cleaned.Len())
	assert.Equal(t, []string{"Diesel", "Petrol", "CNG"}, cleaned.FuelType)
	prices, ok := cleaned.Numeric.Column(dataset.ColumnPrice)
	require.True(t, ok)
	assert.Equal(t, []float64{13500, 18600, 12950}, prices)
	assert.False(t, cleaned.Numeric.Has("Id"))
}

func TestClean_MissingColumn(t *testing.T) {
	_, err := Clean(load(t, "Price,Age_08_04,Fuel_Type\n1,2,Petrol\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrMissingColumn))
	assert.Contains(t, err.Error(), "HP")
}

func TestClean_NonNumericColumn(t *testing.T) {
	_, err := Clean(load(t, "Price,Age_08_04,Fuel_Type,HP\ncheap,2,Petrol,90\n1000,3,Diesel,90\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNotNumeric))
}

func TestClean_AllRowsIncomplete(t *testing.T) {
	cleaned, err := Clean(load(t, "Price,Age_08_04,Fuel_Type,HP\n1000,,Petrol,90\n,3,Diesel,90\n1200,4,,90\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, cleaned.Len())
	assert.Equal(t, 0, cleaned.Numeric.Len())
}

func TestEncode_DropsFirstSortedCategory(t *testing.T) {
	cleaned, err := Clean(load(t, sampleCSV))
	require.NoError(t, err)

	table, err := Encode(cleaned)
	require.NoError(t, err)

	assert.Equal(t, []string{"CNG", "Diesel", "Petrol"}, table.Categories)
	assert.Equal(t, "CNG", table.Baseline)
	assert.Equal(t, []string{"Price", "Age_08_04", "HP", "Fuel_Type_Diesel", "Fuel_Type_Petrol"}, table.Names())
	assert.False(t, table.Has("Fuel_Type_CNG"))
	assert.False(t, table.Has(dataset.ColumnFuelType))

	diesel, _ := table.Column("Fuel_Type_Diesel")
	petrol, _ := table.Column("Fuel_Type_Petrol")
	assert.Equal(t, []float64{1, 0, 0}, diesel)
	assert.Equal(t, []float64{0, 1, 0}, petrol)
}

func TestEncode_SingleCategoryHasNoIndicators(t *testing.T) {
	cleaned, err := Clean(load(t, "Price,Age_08_04,Fuel_Type,HP\n1000,2,Petrol,90\n1100,3,Petrol,97\n"))
	require.NoError(t, err)

	table, err := Encode(cleaned)
	require.NoError(t, err)
	assert.Equal(t, "Petrol", table.Baseline)
	assert.Equal(t, []string{"Price", "Age_08_04", "HP"}, table.Names())
}

func TestEncode_EmptySubset(t *testing.T) {
	cleaned, err := Clean(load(t, "Price,Age_08_04,Fuel_Type,HP\n1000,,Petrol,90\n"))
	require.NoError(t, err)

	table, err := Encode(cleaned)
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.Baseline)
}
