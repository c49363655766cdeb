// Package dispatch records outbound shipments. Creating or updating a dispatch
// does not touch the inventory ledger.
package dispatch

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

// Repository persists dispatches.
type Repository interface {
	InsertDispatch(ctx context.Context, d *models.SalesDispatch) error
	ListDispatches(ctx context.Context) ([]models.SalesDispatch, error)
	UpdateDispatchStatus(ctx context.Context, id string, status models.DispatchStatus, at time.Time) (*models.SalesDispatch, error)
}

// CustomerLookup resolves customer references.
type CustomerLookup interface {
	Lookup(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Customer, error)
}

// CreateInput is a dispatch submission.
type CreateInput struct {
	CustomerID    string
	InvoiceNumber string
	Items         []models.SalesLine
	DispatchDate  *time.Time
	Status        models.DispatchStatus
}

// Service implements the dispatch workflow.
type Service struct {
	repo      Repository
	customers CustomerLookup
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a dispatch service.
func NewService(repo Repository, customers CustomerLookup, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, customers: customers, logger: logger, now: time.Now}
}

// Create stores a dispatch. Status defaults to Draft and the dispatch date to now.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.DispatchView, error) {
	customerID, err := primitive.ObjectIDFromHex(strings.TrimSpace(in.CustomerID))
	if err != nil {
		return nil, fmt.Errorf("%w: customerID must be a valid id", domain.ErrInvalidInput)
	}

	status := in.Status
	if status == "" {
		status = models.DispatchDraft
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown dispatch status %q", domain.ErrInvalidInput, status)
	}

	now := s.now().UTC()
	d := models.SalesDispatch{
		CustomerID:    customerID,
		InvoiceNumber: strings.TrimSpace(in.InvoiceNumber),
		Items:         in.Items,
		DispatchDate:  now,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.DispatchDate != nil {
		d.DispatchDate = in.DispatchDate.UTC()
	}
	if d.Items == nil {
		d.Items = []models.SalesLine{}
	}

	if err := s.repo.InsertDispatch(ctx, &d); err != nil {
		return nil, fmt.Errorf("save dispatch: %w", err)
	}

	s.logger.Info("dispatch created",
		zap.String("dispatch_id", d.ID.Hex()),
		zap.String("customer_id", d.CustomerID.Hex()),
		zap.Int("lines", len(d.Items)))

	views, err := s.views(ctx, []models.SalesDispatch{d})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// List returns every dispatch with its customer and total.
func (s *Service) List(ctx context.Context) ([]models.DispatchView, error) {
	dispatches, err := s.repo.ListDispatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("list dispatches: %w", err)
	}
	return s.views(ctx, dispatches)
}

// UpdateStatus changes only the status and updated timestamp of a dispatch.
func (s *Service) UpdateStatus(ctx context.Context, id string, status models.DispatchStatus) (*models.DispatchView, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown dispatch status %q", domain.ErrInvalidInput, status)
	}

	d, err := s.repo.UpdateDispatchStatus(ctx, id, status, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("update dispatch status: %w", err)
	}

	views, err := s.views(ctx, []models.SalesDispatch{*d})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *Service) views(ctx context.Context, dispatches []models.SalesDispatch) ([]models.DispatchView, error) {
	ids := make([]primitive.ObjectID, 0, len(dispatches))
	for _, d := range dispatches {
		ids = append(ids, d.CustomerID)
	}

	var customers map[primitive.ObjectID]models.Customer
	if s.customers != nil {
		var err error
		customers, err = s.customers.Lookup(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("resolve customers: %w", err)
		}
	}

	out := make([]models.DispatchView, 0, len(dispatches))
	for _, d := range dispatches {
		v := models.DispatchView{SalesDispatch: d, TotalAmount: models.TotalAmount(d.Items)}
		if c, ok := customers[d.CustomerID]; ok {
			v.Customer = &c
		}
		out = append(out, v)
	}
	return out, nil
}
