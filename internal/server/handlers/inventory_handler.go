package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/service/reporting"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InventoryService answers ledger queries.
type InventoryService interface {
	List(ctx context.Context) ([]models.InventoryItem, error)
	Get(ctx context.Context, id string) (*models.InventoryItem, error)
}

// SnapshotExporter writes the ledger to the configured spreadsheet.
type SnapshotExporter interface {
	ExportInventory(ctx context.Context) (int, error)
}

// InventoryHandler serves /api/inventory.
type InventoryHandler struct {
	svc      InventoryService
	exporter SnapshotExporter
	logger   *zap.Logger
}

// NewInventoryHandler constructs the handler. exporter may be nil, which
// disables the snapshot endpoint.
func NewInventoryHandler(svc InventoryService, exporter SnapshotExporter, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{svc: svc, exporter: exporter, logger: logger}
}

// List returns the whole ledger.
func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get returns one ledger entry.
func (h *InventoryHandler) Get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Item not found")
		return
	}
	c.JSON(http.StatusOK, item)
}

// Snapshot exports the ledger on demand.
func (h *InventoryHandler) Snapshot(c *gin.Context) {
	if h.exporter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "inventory snapshot export is not configured"})
		return
	}

	n, err := h.exporter.ExportInventory(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "exported", "items": n})
}

// Export downloads the ledger as an xlsx workbook.
func (h *InventoryHandler) Export(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}

	var buf bytes.Buffer
	if err := reporting.WriteWorkbook(&buf, items); err != nil {
		respondError(c, h.logger, err, "")
		return
	}

	filename := fmt.Sprintf("inventory-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
