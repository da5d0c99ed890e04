// Package dataset loads and generates the tabular matrices the autoencoders
// train on. Every loader returns a [rows, width] tensor with values in [0, 1].
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/tabae/internal/tensor"
	"github.com/born-ml/tabae/internal/train"
)

// ErrInvalidData is returned for malformed or out-of-range input.
var ErrInvalidData = errors.New("invalid data")

// LoadCSV reads a numeric CSV file. See ReadCSV.
func LoadCSV(filename string) (*tensor.Tensor, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV parses comma separated rows of numbers in [0, 1]. A first row
// that does not parse as numbers is taken as a header and skipped. All rows
// must have the same number of columns.
func ReadCSV(r io.Reader) (*tensor.Tensor, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV: %w", ErrInvalidData, err)
	}

	if len(records) > 0 && isHeader(records[0]) {
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV has no data rows: %w", train.ErrEmptyDataset)
	}

	rows := make([][]float64, len(records))
	for i, record := range records {
		row := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d, column %d: %w", ErrInvalidData, i+1, j+1, err)
			}
			if !(v >= 0 && v <= 1) {
				return nil, fmt.Errorf("%w: row %d, column %d: %v is outside [0, 1]", ErrInvalidData, i+1, j+1, v)
			}
			row[j] = v
		}
		rows[i] = row
	}

	t, err := tensor.FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}
	return t, nil
}

func isHeader(record []string) bool {
	for _, field := range record {
		if _, err := strconv.ParseFloat(strings.TrimSpace(field), 64); err != nil {
			return true
		}
	}
	return false
}
