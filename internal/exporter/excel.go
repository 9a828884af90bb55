package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"tzzbcli/pkg/contracts/domain"
)

// ExcelWriter streams delivery orders into a single-sheet workbook. Rows are
// written through the excelize stream writer so large exports never hold the
// whole sheet in memory.
type ExcelWriter struct {
	file  *excelize.File
	sw    *excelize.StreamWriter
	path  string
	sheet string
	row   int
}

// NewExcelWriter creates the workbook with the report header already written.
func NewExcelWriter(path, sheet string) (*ExcelWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create stream writer: %w", err)
	}

	w := &ExcelWriter{file: f, sw: sw, path: path, sheet: sheet, row: 1}
	if err := w.writeRow(domain.ReportHeader()); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	return w, nil
}

// WriteRecord appends one record as the next sheet row.
func (w *ExcelWriter) WriteRecord(order domain.DeliveryOrder) error {
	return w.writeRow(order.ReportRow())
}

func (w *ExcelWriter) writeRow(values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}

	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := w.sw.SetRow(cell, cells); err != nil {
		return err
	}

	w.row++
	return nil
}

// Close flushes the stream and saves the workbook.
func (w *ExcelWriter) Close() error {
	if err := w.sw.Flush(); err != nil {
		w.file.Close()
		return fmt.Errorf("failed to flush workbook: %w", err)
	}
	if err := w.file.SaveAs(w.path); err != nil {
		w.file.Close()
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return w.file.Close()
}
