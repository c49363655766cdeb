package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/service/purchasing"
)

// PurchaseOrderService manages purchase orders.
type PurchaseOrderService interface {
	Create(ctx context.Context, in purchasing.CreateInput) (*models.PurchaseOrder, error)
	List(ctx context.Context) ([]models.PurchaseOrder, error)
}

type purchaseOrderLineRequest struct {
	ItemName  string          `json:"itemName" binding:"required"`
	Quantity  int             `json:"quantity" binding:"gte=1"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type createPurchaseOrderRequest struct {
	PONumber string                     `json:"poNumber" binding:"required"`
	Supplier string                     `json:"supplier" binding:"required"`
	Items    []purchaseOrderLineRequest `json:"items" binding:"omitempty,dive"`
	Status   string                     `json:"status"`
}

// PurchaseOrderHandler serves /api/purchase-orders.
type PurchaseOrderHandler struct {
	svc    PurchaseOrderService
	logger *zap.Logger
}

// NewPurchaseOrderHandler constructs the HTTP handler adapter.
func NewPurchaseOrderHandler(svc PurchaseOrderService, logger *zap.Logger) *PurchaseOrderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PurchaseOrderHandler{svc: svc, logger: logger}
}

// Create stores a purchase order.
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req createPurchaseOrderRequest
	if msg, ok := bindJSON(c, &req); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	lines := make([]models.PurchaseOrderLine, 0, len(req.Items))
	for _, l := range req.Items {
		lines = append(lines, models.PurchaseOrderLine{ItemName: l.ItemName, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}

	po, err := h.svc.Create(c.Request.Context(), purchasing.CreateInput{
		PONumber: req.PONumber,
		Supplier: req.Supplier,
		Items:    lines,
		Status:   models.PurchaseOrderStatus(req.Status),
	})
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}
	c.JSON(http.StatusCreated, po)
}

// List returns every purchase order.
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}
	c.JSON(http.StatusOK, out)
}
