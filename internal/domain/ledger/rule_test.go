package ledger_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/stockroom/internal/domain/ledger"
	"github.com/mamadbah2/stockroom/internal/domain/models"
)

type fixedCodes struct{}

func (fixedCodes) ItemCode(time.Time) string { return "ITEM-1" }
func (fixedCodes) SKU(time.Time) string      { return "SKU-1" }

var now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func TestDecide_FoundIncrementsQuantity(t *testing.T) {
	existing := models.InventoryItem{ItemName: "Widget", ItemCode: "ITEM-A", Quantity: 7, QCStatus: models.QCPass}

	m := ledger.Decide(ledger.Found(existing), models.GRNLine{ItemName: "Widget", QuantityReceived: 5}, "", now, fixedCodes{})

	assert.Equal(t, ledger.ActionIncrement, m.Action)
	assert.Equal(t, 12, m.Item.Quantity)
	assert.Equal(t, 5, m.Delta)
	assert.Equal(t, "ITEM-A", m.Item.ItemCode)
	assert.Equal(t, models.QCPass, m.Item.QCStatus, "no verdict keeps the stored status")
	assert.Equal(t, now, m.Item.UpdatedAt)
}

func TestDecide_FoundOverwritesLotExpiryAndQC(t *testing.T) {
	oldExpiry := now.AddDate(0, 1, 0)
	newExpiry := now.AddDate(1, 0, 0)
	existing := models.InventoryItem{ItemName: "Widget", LotNumber: "L1", ExpiryDate: &oldExpiry, QCStatus: models.QCPass}

	m := ledger.Decide(ledger.Found(existing), models.GRNLine{
		ItemName:         "Widget",
		QuantityReceived: 1,
		LotNumber:        "L2",
		ExpiryDate:       &newExpiry,
	}, models.QCCheck, now, fixedCodes{})

	assert.Equal(t, "L2", m.Item.LotNumber)
	require.NotNil(t, m.Item.ExpiryDate)
	assert.True(t, newExpiry.Equal(*m.Item.ExpiryDate))
	assert.Equal(t, models.QCCheck, m.Item.QCStatus)
}

func TestDecide_FoundKeepsLotWhenLineOmitsIt(t *testing.T) {
	existing := models.InventoryItem{ItemName: "Widget", LotNumber: "L1"}

	m := ledger.Decide(ledger.Found(existing), models.GRNLine{ItemName: "Widget", QuantityReceived: 1}, "", now, fixedCodes{})

	assert.Equal(t, "L1", m.Item.LotNumber)
	assert.Nil(t, m.Item.ExpiryDate)
}

func TestDecide_NotFoundCreatesEntry(t *testing.T) {
	tests := []struct {
		name   string
		qc     models.QCStatus
		wantQC models.QCStatus
	}{
		{name: "verdict copied", qc: models.QCFail, wantQC: models.QCFail},
		{name: "missing verdict defaults to pass", qc: "", wantQC: models.QCPass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ledger.Decide(ledger.NotFound(), models.GRNLine{ItemName: "Bolt", QuantityReceived: 3, LotNumber: "LX"}, tt.qc, now, fixedCodes{})

			assert.Equal(t, ledger.ActionCreate, m.Action)
			assert.Equal(t, "Bolt", m.Item.ItemName)
			assert.Equal(t, 3, m.Item.Quantity)
			assert.Equal(t, "LX", m.Item.LotNumber)
			assert.Equal(t, models.DefaultCategory, m.Item.Category)
			assert.Equal(t, "ITEM-1", m.Item.ItemCode)
			assert.Equal(t, "SKU-1", m.Item.SKU)
			assert.Equal(t, tt.wantQC, m.Item.QCStatus)
		})
	}
}

func TestDecide_ConcurrentNotFoundBothCreate(t *testing.T) {
	// Two receipts that resolved before either persisted both see NotFound.
	line := models.GRNLine{ItemName: "Gasket", QuantityReceived: 2}

	first := ledger.Decide(ledger.NotFound(), line, "", now, ledger.RandomCodes{})
	second := ledger.Decide(ledger.NotFound(), line, "", now, ledger.RandomCodes{})

	assert.Equal(t, ledger.ActionCreate, first.Action)
	assert.Equal(t, ledger.ActionCreate, second.Action)
	assert.NotEqual(t, first.Item.ItemCode, second.Item.ItemCode)
}

func TestRandomCodes_Format(t *testing.T) {
	codes := ledger.RandomCodes{}

	assert.Regexp(t, regexp.MustCompile(`^ITEM-1772359200000-[0-9a-f]{9}$`), codes.ItemCode(now))
	assert.Regexp(t, regexp.MustCompile(`^SKU-1772359200000-[0-9a-f]{9}$`), codes.SKU(now))
}

func TestLookup_Item(t *testing.T) {
	_, ok := ledger.NotFound().Item()
	assert.False(t, ok)

	item, ok := ledger.Found(models.InventoryItem{ItemName: "Widget"}).Item()
	assert.True(t, ok)
	assert.Equal(t, "Widget", item.ItemName)
}
