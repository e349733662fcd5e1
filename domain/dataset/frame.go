package dataset

import "fmt"

// Frame is an immutable numeric table keyed by column name.
// Column order is preserved for deterministic design matrices.
type Frame struct {
	names   []string
	columns map[string][]float64
	rows    int
}

// NewFrame creates an empty frame with a fixed row count
func NewFrame(rows int) *Frame {
	return &Frame{columns: make(map[string][]float64), rows: rows}
}

// Add appends a column; its length must match the frame's row count
func (f *Frame) Add(name string, values []float64) error {
	if len(values) != f.rows {
		return fmt.Errorf("column %s has %d rows, frame has %d", name, len(values), f.rows)
	}
	if _, exists := f.columns[name]; exists {
		return fmt.Errorf("column %s already present", name)
	}
	f.names = append(f.names, name)
	f.columns[name] = values
	return nil
}

// Has reports whether a column exists
func (f *Frame) Has(name string) bool {
	_, ok := f.columns[name]
	return ok
}

// Column returns the values of a column and whether it exists
func (f *Frame) Column(name string) ([]float64, bool) {
	values, ok := f.columns[name]
	return values, ok
}

// Names returns column names in insertion order
func (f *Frame) Names() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// Len returns the number of rows
func (f *Frame) Len() int {
	return f.rows
}

// Where returns the values of target for rows where indicator equals 1
func (f *Frame) Where(target, indicator string) ([]float64, error) {
	values, ok := f.columns[target]
	if !ok {
		return nil, fmt.Errorf("column %s not found", target)
	}
	flags, ok := f.columns[indicator]
	if !ok {
		return nil, fmt.Errorf("column %s not found", indicator)
	}
	var out []float64
	for i, flag := range flags {
		if flag == 1 {
			out = append(out, values[i])
		}
	}
	return out, nil
}
