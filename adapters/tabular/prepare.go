package tabular

import (
	"sort"

	"pricehypo/domain/core"
	"pricehypo/domain/dataset"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// CleanedSubset is the projection to the four required columns with NA rows removed
type CleanedSubset struct {
	Numeric  *dataset.Frame // Price, Age_08_04, HP
	FuelType []string
}

// Len returns the number of surviving rows
func (c *CleanedSubset) Len() int {
	return len(c.FuelType)
}

// Clean projects df to the required columns and drops every row with a missing value in them
func Clean(df dataframe.DataFrame) (*CleanedSubset, error) {
	if df.Err != nil {
		return nil, df.Err
	}

	present := make(map[string]bool, df.Ncol())
	for _, name := range df.Names() {
		present[name] = true
	}
	var missing []string
	for _, name := range dataset.RequiredColumns {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, core.NewMissingColumnError(missing)
	}

	cols := make(map[string]series.Series, len(dataset.RequiredColumns))
	keep := make([]bool, df.Nrow())
	for i := range keep {
		keep[i] = true
	}
	for _, name := range dataset.RequiredColumns {
		col := df.Col(name)
		cols[name] = col
		for i, na := range col.IsNaN() {
			if na {
				keep[i] = false
			}
		}
	}

	for _, name := range dataset.NumericColumns {
		col := cols[name]
		if !isNumeric(col.Type()) && !allMissing(col) {
			return nil, core.NewNotNumericError(name, string(col.Type()))
		}
	}

	rows := 0
	for _, k := range keep {
		if k {
			rows++
		}
	}

	numeric := dataset.NewFrame(rows)
	for _, name := range dataset.NumericColumns {
		if err := numeric.Add(name, filterFloats(cols[name].Float(), keep, rows)); err != nil {
			return nil, err
		}
	}

	fuel := make([]string, 0, rows)
	for i, v := range cols[dataset.ColumnFuelType].Records() {
		if keep[i] {
			fuel = append(fuel, v)
		}
	}

	return &CleanedSubset{Numeric: numeric, FuelType: fuel}, nil
}

// EncodedTable is the cleaned subset with Fuel_Type replaced by indicator columns
type EncodedTable struct {
	*dataset.Frame
	Baseline   string   // dropped category, empty when no rows survived
	Categories []string // all observed categories, sorted
}

// Encode one-hot encodes Fuel_Type. Categories are sorted ascending and the
// first is dropped as baseline, leaving len(categories)-1 indicator columns.
func Encode(c *CleanedSubset) (*EncodedTable, error) {
	seen := make(map[string]bool)
	var categories []string
	for _, v := range c.FuelType {
		if !seen[v] {
			seen[v] = true
			categories = append(categories, v)
		}
	}
	sort.Strings(categories)

	n := c.Len()
	frame := dataset.NewFrame(n)
	for _, name := range c.Numeric.Names() {
		values, _ := c.Numeric.Column(name)
		if err := frame.Add(name, values); err != nil {
			return nil, err
		}
	}

	table := &EncodedTable{Frame: frame, Categories: categories}
	if len(categories) == 0 {
		return table, nil
	}
	table.Baseline = categories[0]

	for _, category := range categories[1:] {
		indicator := make([]float64, n)
		for i, v := range c.FuelType {
			if v == category {
				indicator[i] = 1
			}
		}
		if err := frame.Add(dataset.IndicatorName(category), indicator); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func isNumeric(t series.Type) bool {
	return t == series.Int || t == series.Float
}

func allMissing(s series.Series) bool {
	for _, na := range s.IsNaN() {
		if !na {
			return false
		}
	}
	return true
}

func filterFloats(values []float64, keep []bool, rows int) []float64 {
	out := make([]float64, 0, rows)
	for i, v := range values {
		if keep[i] {
			out = append(out, v)
		}
	}
	return out
}
