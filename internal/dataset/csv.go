package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"creditrust/internal/domain"
)

// Column names used by the CFPB complaint export.
const (
	ColNarrative    = "Consumer complaint narrative"
	ColProduct      = "Product"
	ColSubProduct   = "Sub-product"
	ColDateReceived = "Date received"
	ColState        = "State"
	ColCompany      = "Company"
	ColComplaintID  = "Complaint ID"
)

// ReadCSV loads a complaint CSV into records keyed by column name.
// The header order is returned alongside for writers that need it.
func ReadCSV(path string) ([]domain.Record, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, &domain.MissingInputError{Path: path}
		}
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	var records []domain.Record
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", path, err)
		}
		rec := make(domain.Record, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			} else {
				rec[col] = ""
			}
		}
		records = append(records, rec)
	}
	return records, header, nil
}

// WriteCSV writes records under the given header, creating parent
// directories as needed.
func WriteCSV(path string, header []string, records []domain.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	row := make([]string, len(header))
	for _, rec := range records {
		for i, col := range header {
			row[i] = rec[col]
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
