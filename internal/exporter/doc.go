// Package exporter writes the consolidated delivery-order report.
//
// Two sinks share the same column layout (date, code, name, action label,
// quantity, price, amount, running balance):
//
// ExcelWriter: streams rows into a single-sheet .xlsx workbook.
//
// CSVWriter: UTF-8 CSV with a BOM for spreadsheet compatibility.
//
// NewReportWriter selects between them by output file extension.
package exporter
