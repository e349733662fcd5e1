package ports

import (
	"context"
	"io"

	"pricehypo/domain/dataset"

	"github.com/go-gota/gota/dataframe"
)

// DatasetLoader reads a tabular file into an in-memory frame with inferred column types.
// Missing cells must surface as NA in the returned frame.
type DatasetLoader interface {
	// Load reads the file at path; the format follows the extension
	Load(ctx context.Context, path string) (dataframe.DataFrame, error)

	// LoadReader reads an already opened stream, e.g. an HTTP upload
	LoadReader(ctx context.Context, r io.Reader, format dataset.Format) (dataframe.DataFrame, error)
}
