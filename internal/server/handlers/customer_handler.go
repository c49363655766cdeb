package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/service/customers"
)

// CustomerService manages customers.
type CustomerService interface {
	Create(ctx context.Context, in customers.CreateInput) (*models.Customer, error)
	List(ctx context.Context) ([]models.Customer, error)
}

type createCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CustomerHandler serves /api/customers.
type CustomerHandler struct {
	svc    CustomerService
	logger *zap.Logger
}

// NewCustomerHandler constructs the HTTP handler adapter.
func NewCustomerHandler(svc CustomerService, logger *zap.Logger) *CustomerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerHandler{svc: svc, logger: logger}
}

// Create stores a customer.
func (h *CustomerHandler) Create(c *gin.Context) {
	var req createCustomerRequest
	if msg, ok := bindJSON(c, &req); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	customer, err := h.svc.Create(c.Request.Context(), customers.CreateInput(req))
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// List returns every customer.
func (h *CustomerHandler) List(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}
	c.JSON(http.StatusOK, out)
}
