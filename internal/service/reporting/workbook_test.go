package reporting

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

func TestWriteWorkbook(t *testing.T) {
	var buf bytes.Buffer
	err := WriteWorkbook(&buf, []models.InventoryItem{
		{ItemCode: "ITEM-1", ItemName: "Widget", SKU: "SKU-1", Quantity: 5, QCStatus: models.QCFail, UpdatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		{ItemCode: "ITEM-2", ItemName: "Bolt", SKU: "SKU-2", Quantity: 12, QCStatus: models.QCPass},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(WorkbookSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "itemCode", rows[0][0])
	assert.Equal(t, "Widget", rows[1][1])
	assert.Equal(t, "5", rows[1][4])
	assert.Equal(t, "Fail", rows[1][7])
	assert.Equal(t, "Bolt", rows[2][1])
}
