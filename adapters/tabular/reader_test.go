package tabular

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pricehypo/domain/core"
	"pricehypo/domain/dataset"
	"pricehypo/internal/testkit"

	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Id,Price,Age_08_04,Fuel_Type,HP
1,13500,23,Diesel,90
2,13750,,Diesel,90
3,18600,30,Petrol,192
4,NA,32,Petrol,110
5,12950,44,CNG,110
`

func TestDataReader_LoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cars.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	df, err := NewDataReader("", nil).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 5, df.Nrow())
	assert.Equal(t, []string{"Id", "Price", "Age_08_04", "Fuel_Type", "HP"}, df.Names())
	assert.Equal(t, series.Int, df.Col("Price").Type())
	assert.Equal(t, series.String, df.Col("Fuel_Type").Type())
	assert.Equal(t, []bool{false, true, false, false, false}, df.Col("Age_08_04").IsNaN())
	assert.Equal(t, []bool{false, false, false, true, false}, df.Col("Price").IsNaN())
}

func TestDataReader_LoadMissingFile(t *testing.T) {
	_, err := NewDataReader("", nil).Load(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDataReader_LoadMalformedCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.csv")
	require.NoError(t, os.WriteFile(path, []byte("Price,HP\n1,2,3\n"), 0o644))

	_, err := NewDataReader("", nil).Load(context.Background(), path)
	assert.Error(t, err)
}

func TestDataReader_LoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cars.xlsx")
	config := testkit.DefaultCorollaConfig()
	config.Rows = 40
	records := testkit.NewCorollaGenerator(config).Records()
	require.NoError(t, testkit.WriteXLSX(path, records))

	df, err := NewDataReader("", nil).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 40, df.Nrow())
	assert.Contains(t, df.Names(), "Fuel_Type")
	assert.True(t, isNumeric(df.Col("Price").Type()))
}

func TestDataReader_LoadXLSXUnknownSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cars.xlsx")
	require.NoError(t, testkit.WriteXLSX(path, [][]string{{"Price"}, {"1"}}))

	_, err := NewDataReader("Listings", nil).Load(context.Background(), path)
	assert.Error(t, err)
}

func TestDataReader_LoadReader(t *testing.T) {
	reader := NewDataReader("", nil)

	df, err := reader.LoadReader(context.Background(), strings.NewReader(sampleCSV), dataset.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, 5, df.Nrow())

	_, err = reader.LoadReader(context.Background(), strings.NewReader(sampleCSV), dataset.Format("parquet"))
	assert.True(t, errors.Is(err, core.ErrUnsupportedFormat))
}

func TestDataReader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDataReader("", nil).Load(ctx, "cars.csv")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestPadRows(t *testing.T) {
	rows := padRows([][]string{{"a", "b", "c"}, {"1"}, {"1", "2", "3", "4"}})
	for _, row := range rows {
		assert.Len(t, row, 4)
	}
	assert.Equal(t, []string{"1", "", "", ""}, rows[1])
}
