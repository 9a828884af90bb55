package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tzzbcli/pkg/contracts/domain"
)

func TestCSVWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")

	writer, err := NewCSVWriter(path)
	require.NoError(t, err)
	for _, order := range sampleOrders() {
		require.NoError(t, writer.WriteRecord(order))
	}
	require.NoError(t, writer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// BOM prefix for spreadsheet compatibility.
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))

	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})))
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, domain.ReportHeader(), rows[0])
	assert.Equal(t, "20240105", rows[1][0])
	assert.Equal(t, "-50", rows[2][4])
}

func TestNewReportWriterSelectsByExtension(t *testing.T) {
	dir := t.TempDir()

	w, err := NewReportWriter(filepath.Join(dir, "a.csv"), "交割单")
	require.NoError(t, err)
	_, isCSV := w.(*CSVWriter)
	assert.True(t, isCSV)
	require.NoError(t, w.Close())

	w, err = NewReportWriter(filepath.Join(dir, "b.xlsx"), "交割单")
	require.NoError(t, err)
	_, isExcel := w.(*ExcelWriter)
	assert.True(t, isExcel)
	require.NoError(t, w.Close())
}
