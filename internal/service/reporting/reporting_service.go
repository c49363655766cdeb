package reporting

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	repo "github.com/mamadbah2/stockroom/internal/repository/sheets"
)

const dateLayout = "2006-01-02"

var snapshotHeader = []interface{}{
	"itemCode", "itemName", "SKU", "category", "quantity", "lotNumber", "expiryDate", "QCstatus", "updatedAt",
}

// ItemLister reads the whole ledger.
type ItemLister interface {
	ListItems(ctx context.Context) ([]models.InventoryItem, error)
}

// ExportRecorder counts export attempts.
type ExportRecorder interface {
	RecordSnapshotExport(err error)
}

// Service exports inventory snapshots to a spreadsheet.
type Service struct {
	items      ItemLister
	repo       repo.Repository
	sheetRange string
	recorder   ExportRecorder
	logger     *zap.Logger
}

// NewService wires a new reporting service instance. recorder may be nil.
func NewService(items ItemLister, repository repo.Repository, sheetRange string, recorder ExportRecorder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{items: items, repo: repository, sheetRange: sheetRange, recorder: recorder, logger: logger}
}

// ExportInventory replaces the snapshot range with the current ledger and
// returns the number of item rows written.
func (s *Service) ExportInventory(ctx context.Context) (n int, err error) {
	if s.recorder != nil {
		defer func() { s.recorder.RecordSnapshotExport(err) }()
	}

	items, err := s.items.ListItems(ctx)
	if err != nil {
		return 0, fmt.Errorf("load inventory: %w", err)
	}

	rows := SnapshotRows(items)
	if err := s.repo.ReplaceRange(ctx, s.sheetRange, rows); err != nil {
		return 0, fmt.Errorf("write inventory snapshot: %w", err)
	}

	s.logger.Info("inventory snapshot exported",
		zap.String("range", s.sheetRange),
		zap.Int("items", len(items)),
	)
	return len(items), nil
}

// SnapshotRows renders the header row followed by one row per item.
func SnapshotRows(items []models.InventoryItem) [][]interface{} {
	rows := make([][]interface{}, 0, len(items)+1)
	rows = append(rows, snapshotHeader)
	for _, it := range items {
		expiry := ""
		if it.ExpiryDate != nil {
			expiry = it.ExpiryDate.Format(dateLayout)
		}
		rows = append(rows, []interface{}{
			it.ItemCode,
			it.ItemName,
			it.SKU,
			it.Category,
			it.Quantity,
			it.LotNumber,
			expiry,
			string(it.QCStatus),
			it.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	return rows
}
