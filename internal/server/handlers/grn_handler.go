package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/service/receiving"
)

// GRNService is the receiving workflow as seen by HTTP.
type GRNService interface {
	CreateGRN(ctx context.Context, in receiving.CreateGRNInput) (*models.GRN, error)
	ListGRNs(ctx context.Context) ([]models.GRNView, error)
	UpdateStatus(ctx context.Context, id string, status models.GRNStatus) (*models.GRNView, error)
}

type grnLineRequest struct {
	ItemName         string       `json:"itemName" binding:"required"`
	ItemCode         string       `json:"itemCode"`
	QuantityReceived int          `json:"quantityReceived" binding:"required,gte=1"`
	LotNumber        string       `json:"lotNumber"`
	ExpiryDate       *requestDate `json:"expiryDate"`
}

type createGRNRequest struct {
	POID  string           `json:"poID" binding:"required"`
	QC    models.QCStatus  `json:"QC" binding:"omitempty,oneof=Pass Fail Check"`
	Items []grnLineRequest `json:"items" binding:"required,min=1,dive"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GRNHandler serves /api/grn.
type GRNHandler struct {
	svc    GRNService
	logger *zap.Logger
}

// NewGRNHandler constructs the HTTP handler adapter.
func NewGRNHandler(svc GRNService, logger *zap.Logger) *GRNHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GRNHandler{svc: svc, logger: logger}
}

// Create records a goods receipt and applies it to the ledger. Every failure
// is reported as 400, including partially applied receipts.
func (h *GRNHandler) Create(c *gin.Context) {
	var req createGRNRequest
	if msg, ok := bindJSON(c, &req); !ok {
		h.logger.Warn("invalid grn payload", zap.String("reason", msg))
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	in := receiving.CreateGRNInput{POID: req.POID, QC: req.QC, Items: make([]models.GRNLine, 0, len(req.Items))}
	for _, l := range req.Items {
		in.Items = append(in.Items, models.GRNLine{
			ItemName:         l.ItemName,
			ItemCode:         l.ItemCode,
			QuantityReceived: l.QuantityReceived,
			LotNumber:        l.LotNumber,
			ExpiryDate:       l.ExpiryDate.ptr(),
		})
	}

	grn, err := h.svc.CreateGRN(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		h.logger.Error("failed creating grn", zap.String("po_id", req.POID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, grn)
}

// List returns every GRN with its purchase order resolved.
func (h *GRNHandler) List(c *gin.Context) {
	grns, err := h.svc.ListGRNs(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}
	c.JSON(http.StatusOK, grns)
}

// UpdateStatus changes a GRN's status.
func (h *GRNHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if msg, ok := bindJSON(c, &req); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	grn, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), models.GRNStatus(req.Status))
	if err != nil {
		respondError(c, h.logger, err, "GRN not found")
		return
	}
	c.JSON(http.StatusOK, grn)
}
