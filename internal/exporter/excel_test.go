package exporter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tzzbcli/pkg/contracts/domain"
)

func sampleOrders() []domain.DeliveryOrder {
	return []domain.DeliveryOrder{
		{
			Date:           "20240105",
			SecurityCode:   "600000",
			SecurityName:   "浦发银行",
			Action:         domain.ActionBuy,
			ActionLabel:    "买入",
			Quantity:       "100",
			Price:          "7.850",
			Amount:         "-785.00",
			RunningBalance: "100",
		},
		{
			Date:           "20240108",
			SecurityCode:   "600000",
			SecurityName:   "浦发银行",
			Action:         domain.ActionSell,
			ActionLabel:    "卖出",
			Quantity:       "-50",
			Price:          "8.000",
			Amount:         "400.00",
			RunningBalance: "50",
		},
	}
}

func TestExcelWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.xlsx")

	writer, err := NewExcelWriter(path, "交割单")
	require.NoError(t, err)
	for _, order := range sampleOrders() {
		require.NoError(t, writer.WriteRecord(order))
	}
	require.NoError(t, writer.Close())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("交割单")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, domain.ReportHeader(), rows[0])
	assert.Equal(t, []string{"20240105", "600000", "浦发银行", "买入", "100", "7.850", "-785.00", "100"}, rows[1])
	assert.Equal(t, []string{"20240108", "600000", "浦发银行", "卖出", "-50", "8.000", "400.00", "50"}, rows[2])
}

func TestExcelWriterEmptyReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")

	writer, err := NewExcelWriter(path, "交割单")
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("交割单")
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
	assert.Equal(t, domain.ReportHeader(), rows[0])
}
