package tabular

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"pricehypo/domain/core"
	"pricehypo/domain/dataset"
	"pricehypo/internal"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"
)

// MissingTokens are the cell values treated as NA, the usual dataframe NA markers
var MissingTokens = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// DataReader handles reading CSV and Excel files into data frames
type DataReader struct {
	sheet  string
	logger *internal.Logger
}

// NewDataReader creates a reader; sheet selects the xlsx worksheet (empty means first)
func NewDataReader(sheet string, logger *internal.Logger) *DataReader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DataReader{sheet: sheet, logger: logger.With("DataReader")}
}

// Load reads the file at path, choosing the parser from its extension
func (r *DataReader) Load(ctx context.Context, path string) (dataframe.DataFrame, error) {
	if err := ctx.Err(); err != nil {
		return dataframe.DataFrame{}, err
	}

	format := dataset.FormatFromPath(path)
	r.logger.Debug("reading %s file: %s", format, path)

	switch format {
	case dataset.FormatXLSX:
		f, err := excelize.OpenFile(path)
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("failed to open Excel file: %w", err)
		}
		defer f.Close()
		return r.readWorkbook(f)
	default:
		file, err := os.Open(path)
		if err != nil {
			return dataframe.DataFrame{}, err
		}
		defer file.Close()
		return r.readCSV(file)
	}
}

// LoadReader reads an already opened stream in the given format
func (r *DataReader) LoadReader(ctx context.Context, in io.Reader, format dataset.Format) (dataframe.DataFrame, error) {
	if err := ctx.Err(); err != nil {
		return dataframe.DataFrame{}, err
	}

	switch format {
	case dataset.FormatCSV:
		return r.readCSV(in)
	case dataset.FormatXLSX:
		f, err := excelize.OpenReader(in)
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("failed to open Excel stream: %w", err)
		}
		defer f.Close()
		return r.readWorkbook(f)
	default:
		return dataframe.DataFrame{}, fmt.Errorf("%w: %q", core.ErrUnsupportedFormat, format)
	}
}

func loadOptions() []dataframe.LoadOption {
	return []dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(MissingTokens),
	}
}

// readCSV parses CSV text; malformed records fail the whole load
func (r *DataReader) readCSV(in io.Reader) (dataframe.DataFrame, error) {
	start := time.Now()
	df := dataframe.ReadCSV(in, loadOptions()...)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to read CSV: %w", df.Err)
	}
	r.logger.Debug("CSV parsed in %.2fms (%d columns, %d rows)",
		float64(time.Since(start).Nanoseconds())/1e6, df.Ncol(), df.Nrow())
	return df, nil
}

// readWorkbook loads the configured sheet, or the first one
func (r *DataReader) readWorkbook(f *excelize.File) (dataframe.DataFrame, error) {
	sheet := r.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return dataframe.DataFrame{}, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	start := time.Now()
	rows, err := f.GetRows(sheet)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to read %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("sheet %s is empty", sheet)
	}

	records := padRows(rows)
	df := dataframe.LoadRecords(records, loadOptions()...)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to load %s: %w", sheet, df.Err)
	}
	r.logger.Debug("sheet %s read in %.2fms (%d columns, %d rows)",
		sheet, float64(time.Since(start).Nanoseconds())/1e6, df.Ncol(), df.Nrow())
	return df, nil
}

// padRows squares off rows; excelize trims trailing empty cells
func padRows(rows [][]string) [][]string {
	width := len(rows[0])
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		padded := make([]string, width)
		copy(padded, row)
		out[i] = padded
	}
	return out
}
