package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"tzzbcli/pkg/contracts/domain"
)

// CSVWriter writes the report as UTF-8 CSV with a BOM so spreadsheet
// applications pick up the encoding.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates the output file with the report header already written.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(domain.ReportHeader()); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	return &CSVWriter{file: file, writer: writer}, nil
}

// WriteRecord appends one record as the next CSV row.
func (w *CSVWriter) WriteRecord(order domain.DeliveryOrder) error {
	return w.writer.Write(order.ReportRow())
}

// Close flushes and closes the output file.
func (w *CSVWriter) Close() error {
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
