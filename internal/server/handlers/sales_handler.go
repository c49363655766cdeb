package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/service/dispatch"
	"github.com/mamadbah2/stockroom/internal/service/invoicing"
)

// DispatchService manages sales dispatches.
type DispatchService interface {
	Create(ctx context.Context, in dispatch.CreateInput) (*models.DispatchView, error)
	List(ctx context.Context) ([]models.DispatchView, error)
	UpdateStatus(ctx context.Context, id string, status models.DispatchStatus) (*models.DispatchView, error)
}

// InvoiceService manages customer invoices.
type InvoiceService interface {
	Create(ctx context.Context, in invoicing.CreateInput) (*models.InvoiceView, error)
	List(ctx context.Context) ([]models.InvoiceView, error)
	UpdateStatus(ctx context.Context, id string, status models.InvoiceStatus) (*models.InvoiceView, error)
}

type salesLineRequest struct {
	ItemName  string          `json:"itemName"`
	SKU       string          `json:"SKU"`
	Quantity  int             `json:"quantity" binding:"gte=0"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

func toSalesLines(in []salesLineRequest) []models.SalesLine {
	out := make([]models.SalesLine, 0, len(in))
	for _, l := range in {
		out = append(out, models.SalesLine{ItemName: l.ItemName, SKU: l.SKU, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}
	return out
}

type createDispatchRequest struct {
	CustomerID    string             `json:"customerID" binding:"required"`
	InvoiceNumber string             `json:"invoiceNumber"`
	Items         []salesLineRequest `json:"items" binding:"omitempty,dive"`
	DispatchDate  *requestDate       `json:"dispatchDate"`
	Status        string             `json:"status"`
}

type createInvoiceRequest struct {
	CustomerID       string             `json:"customerID" binding:"required"`
	LinkedDispatchID string             `json:"linkedDispatchID"`
	InvoiceNumber    string             `json:"invoiceNumber"`
	InvoiceDate      *requestDate       `json:"invoiceDate"`
	Items            []salesLineRequest `json:"items" binding:"omitempty,dive"`
	Status           string             `json:"status"`
}

// DispatchHandler serves /api/sales-dispatch.
type DispatchHandler struct {
	svc    DispatchService
	logger *zap.Logger
}

// NewDispatchHandler constructs the HTTP handler adapter.
func NewDispatchHandler(svc DispatchService, logger *zap.Logger) *DispatchHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DispatchHandler{svc: svc, logger: logger}
}

// Create stores a dispatch.
func (h *DispatchHandler) Create(c *gin.Context) {
	var req createDispatchRequest
	if msg, ok := bindJSON(c, &req); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	d, err := h.svc.Create(c.Request.Context(), dispatch.CreateInput{
		CustomerID:    req.CustomerID,
		InvoiceNumber: req.InvoiceNumber,
		Items:         toSalesLines(req.Items),
		DispatchDate:  req.DispatchDate.ptr(),
		Status:        models.DispatchStatus(req.Status),
	})
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}
	c.JSON(http.StatusCreated, d)
}

// List returns every dispatch.
func (h *DispatchHandler) List(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}
	c.JSON(http.StatusOK, out)
}

// UpdateStatus changes a dispatch's status.
func (h *DispatchHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if msg, ok := bindJSON(c, &req); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	d, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), models.DispatchStatus(req.Status))
	if err != nil {
		respondError(c, h.logger, err, "Dispatch not found")
		return
	}
	c.JSON(http.StatusOK, d)
}

// InvoiceHandler serves /api/customer-invoices.
type InvoiceHandler struct {
	svc    InvoiceService
	logger *zap.Logger
}

// NewInvoiceHandler constructs the HTTP handler adapter.
func NewInvoiceHandler(svc InvoiceService, logger *zap.Logger) *InvoiceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceHandler{svc: svc, logger: logger}
}

// Create stores an invoice.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req createInvoiceRequest
	if msg, ok := bindJSON(c, &req); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	inv, err := h.svc.Create(c.Request.Context(), invoicing.CreateInput{
		CustomerID:       req.CustomerID,
		LinkedDispatchID: req.LinkedDispatchID,
		InvoiceNumber:    req.InvoiceNumber,
		InvoiceDate:      req.InvoiceDate.ptr(),
		Items:            toSalesLines(req.Items),
		Status:           models.InvoiceStatus(req.Status),
	})
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}
	c.JSON(http.StatusCreated, inv)
}

// List returns every invoice.
func (h *InvoiceHandler) List(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}
	c.JSON(http.StatusOK, out)
}

// UpdateStatus changes an invoice's status.
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if msg, ok := bindJSON(c, &req); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	inv, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), models.InvoiceStatus(req.Status))
	if err != nil {
		respondError(c, h.logger, err, "Invoice not found")
		return
	}
	c.JSON(http.StatusOK, inv)
}
