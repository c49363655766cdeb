package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository/memory"
)

type MockSheet struct {
	mock.Mock
}

func (m *MockSheet) ReplaceRange(ctx context.Context, sheetRange string, rows [][]interface{}) error {
	args := m.Called(ctx, sheetRange, rows)
	return args.Error(0)
}

type exportCounter struct {
	ok, failed int
}

func (e *exportCounter) RecordSnapshotExport(err error) {
	if err != nil {
		e.failed++
		return
	}
	e.ok++
}

func TestExportInventory(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	expiry := time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC)
	updated := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.InsertItem(ctx, &models.InventoryItem{
		ItemCode:   "ITEM-1",
		ItemName:   "Widget",
		SKU:        "SKU-1",
		Category:   models.DefaultCategory,
		Quantity:   5,
		LotNumber:  "L2",
		ExpiryDate: &expiry,
		QCStatus:   models.QCFail,
		UpdatedAt:  updated,
	}))

	sheet := new(MockSheet)
	sheet.On("ReplaceRange", ctx, "Inventory!A:I", mock.MatchedBy(func(rows [][]interface{}) bool {
		return len(rows) == 2 && rows[0][0] == "itemCode"
	})).Return(nil)

	rec := &exportCounter{}
	svc := NewService(store, sheet, "Inventory!A:I", rec, nil)
	n, err := svc.ExportInventory(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, rec.ok)
	sheet.AssertExpectations(t)
}

func TestExportInventory_SheetFailure(t *testing.T) {
	sheet := new(MockSheet)
	sheet.On("ReplaceRange", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("quota exceeded"))

	rec := &exportCounter{}
	svc := NewService(memory.NewStore(), sheet, "Inventory!A:I", rec, nil)
	_, err := svc.ExportInventory(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Equal(t, 1, rec.failed)
}

func TestSnapshotRows(t *testing.T) {
	updated := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := SnapshotRows([]models.InventoryItem{
		{ItemCode: "ITEM-1", ItemName: "Widget", SKU: "SKU-1", Quantity: 5, QCStatus: models.QCPass, UpdatedAt: updated},
	})

	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 9)
	assert.Equal(t, []interface{}{
		"ITEM-1", "Widget", "SKU-1", "", 5, "", "", "Pass", "2026-03-01T10:00:00Z",
	}, rows[1])

	assert.Len(t, SnapshotRows(nil), 1)
}
