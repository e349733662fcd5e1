package dataset

import (
	"path/filepath"
	"strings"
)

// Required source columns
const (
	ColumnPrice    = "Price"
	ColumnAge      = "Age_08_04"
	ColumnFuelType = "Fuel_Type"
	ColumnHP       = "HP"
)

// Fuel categories with a fixed role in the analysis
const (
	FuelDiesel = "Diesel"
	FuelPetrol = "Petrol"
	FuelCNG    = "CNG"
)

// RequiredColumns is the projection applied before any row is dropped
var RequiredColumns = []string{ColumnPrice, ColumnAge, ColumnFuelType, ColumnHP}

// NumericColumns must carry int or float values after type inference
var NumericColumns = []string{ColumnPrice, ColumnAge, ColumnHP}

// IndicatorName returns the one-hot column name for a fuel category
func IndicatorName(category string) string {
	return ColumnFuelType + "_" + category
}

// Format identifies how a dataset is serialized on disk or in an upload
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatFromPath picks the format from a file extension, defaulting to CSV
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	default:
		return FormatCSV
	}
}

// ParseFormat accepts "csv" or "xlsx" in any case
func ParseFormat(s string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, true
	case FormatXLSX:
		return FormatXLSX, true
	}
	return "", false
}
