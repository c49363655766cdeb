package purchasing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain"
	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// Repository persists purchase orders.
type Repository interface {
	InsertPurchaseOrder(ctx context.Context, po *models.PurchaseOrder) error
	ListPurchaseOrders(ctx context.Context) ([]models.PurchaseOrder, error)
	FindPurchaseOrders(ctx context.Context, ids []primitive.ObjectID, numbers []string) ([]models.PurchaseOrder, error)
}

// CreateInput is a purchase-order submission.
type CreateInput struct {
	PONumber string
	Supplier string
	Items    []models.PurchaseOrderLine
	Status   models.PurchaseOrderStatus
}

// Service manages purchase orders and resolves GRN references to them.
type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a purchasing service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Create stores a purchase order. Status defaults to Open.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.PurchaseOrder, error) {
	po := models.PurchaseOrder{
		PONumber: strings.TrimSpace(in.PONumber),
		Supplier: strings.TrimSpace(in.Supplier),
		Items:    in.Items,
		Status:   in.Status,
	}
	if po.PONumber == "" {
		return nil, fmt.Errorf("%w: poNumber is required", domain.ErrInvalidInput)
	}
	if po.Supplier == "" {
		return nil, fmt.Errorf("%w: supplier is required", domain.ErrInvalidInput)
	}
	if po.Status == "" {
		po.Status = models.POOpen
	}
	if !po.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown purchase order status %q", domain.ErrInvalidInput, po.Status)
	}
	if po.Items == nil {
		po.Items = []models.PurchaseOrderLine{}
	}

	now := s.now().UTC()
	po.CreatedAt, po.UpdatedAt = now, now

	if err := s.repo.InsertPurchaseOrder(ctx, &po); err != nil {
		return nil, fmt.Errorf("save purchase order: %w", err)
	}

	s.logger.Info("purchase order created", zap.String("po_number", po.PONumber), zap.String("supplier", po.Supplier))
	return &po, nil
}

// List returns every purchase order.
func (s *Service) List(ctx context.Context) ([]models.PurchaseOrder, error) {
	orders, err := s.repo.ListPurchaseOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	return orders, nil
}

// Resolve maps each reference to the purchase order it names, matching on
// the hex id first and the poNumber second. Unresolved references are absent.
func (s *Service) Resolve(ctx context.Context, refs []string) (map[string]models.PurchaseOrder, error) {
	seen := make(map[string]struct{}, len(refs))
	var (
		ids     []primitive.ObjectID
		numbers []string
	)
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		if _, dup := seen[ref]; dup {
			continue
		}
		seen[ref] = struct{}{}
		if oid, err := primitive.ObjectIDFromHex(ref); err == nil {
			ids = append(ids, oid)
		}
		numbers = append(numbers, ref)
	}

	out := make(map[string]models.PurchaseOrder, len(seen))
	if len(seen) == 0 {
		return out, nil
	}

	orders, err := s.repo.FindPurchaseOrders(ctx, ids, numbers)
	if err != nil {
		return nil, fmt.Errorf("find purchase orders: %w", err)
	}

	byID := make(map[string]models.PurchaseOrder, len(orders))
	byNumber := make(map[string]models.PurchaseOrder, len(orders))
	for _, po := range orders {
		byID[po.ID.Hex()] = po
		byNumber[po.PONumber] = po
	}

	for ref := range seen {
		if po, ok := byID[ref]; ok {
			out[ref] = po
		} else if po, ok := byNumber[ref]; ok {
			out[ref] = po
		}
	}
	return out, nil
}
