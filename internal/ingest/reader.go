package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrSourceUnavailable signals that the drive-test export cannot be opened or
// its header cannot be read. It is fatal to ingestion.
var ErrSourceUnavailable = errors.New("ingest: source unavailable")

const DefaultBatchSize = 100

// Reader walks a tab-delimited export file in fixed-size batches. It performs
// exactly one pass; after io.EOF the reader is exhausted and cannot restart.
type Reader struct {
	file      *os.File
	csv       *csv.Reader
	header    []string
	batchSize int
}

// Open opens the export and consumes its header row.
func Open(path string, batchSize int) (*Reader, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	r := csv.NewReader(file)
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("%w: read header: %v", ErrSourceUnavailable, err)
	}

	return &Reader{
		file:      file,
		csv:       r,
		header:    header,
		batchSize: batchSize,
	}, nil
}

// Header returns the column names from the first row.
func (r *Reader) Header() []string {
	return r.header
}

// Next returns the next batch of raw rows in file order, at most batchSize
// long. A row that fails to parse is skipped; the stream continues. Returns
// io.EOF once the file is exhausted.
func (r *Reader) Next() ([][]string, error) {
	batch := make([][]string, 0, r.batchSize)
	for len(batch) < r.batchSize {
		row, err := r.csv.Read()
		if err == io.EOF {
			if len(batch) == 0 {
				return nil, io.EOF
			}
			return batch, nil
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			return nil, fmt.Errorf("%w: read row: %v", ErrSourceUnavailable, err)
		}
		batch = append(batch, row)
	}
	return batch, nil
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}
