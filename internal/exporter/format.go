package exporter

import (
	"path/filepath"
	"strings"

	"tzzbcli/pkg/contracts/domain"
)

// ReportWriter is the tabular report sink: one row per delivery order, in
// the order records arrive.
type ReportWriter interface {
	WriteRecord(order domain.DeliveryOrder) error
	Close() error
}

// NewReportWriter picks the sink format by output extension: .csv gets the
// CSV writer, everything else the Excel workbook.
func NewReportWriter(path, sheet string) (ReportWriter, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return NewCSVWriter(path)
	}
	return NewExcelWriter(path, sheet)
}
