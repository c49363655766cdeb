package invoicing

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

// Repository persists customer invoices.
type Repository interface {
	InsertInvoice(ctx context.Context, inv *models.CustomerInvoice) error
	ListInvoices(ctx context.Context) ([]models.CustomerInvoice, error)
	UpdateInvoiceStatus(ctx context.Context, id string, status models.InvoiceStatus, at time.Time) (*models.CustomerInvoice, error)
}

// CustomerLookup resolves customer references.
type CustomerLookup interface {
	Lookup(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Customer, error)
}

// CreateInput is an invoice submission.
type CreateInput struct {
	CustomerID       string
	LinkedDispatchID string
	InvoiceNumber    string
	InvoiceDate      *time.Time
	Items            []models.SalesLine
	Status           models.InvoiceStatus
}

// Service implements the customer invoice workflow.
type Service struct {
	repo      Repository
	customers CustomerLookup
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires an invoicing service.
func NewService(repo Repository, customers CustomerLookup, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, customers: customers, logger: logger, now: time.Now}
}

// Create stores an invoice. Status defaults to Draft and the invoice date to now.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.InvoiceView, error) {
	customerID, err := primitive.ObjectIDFromHex(strings.TrimSpace(in.CustomerID))
	if err != nil {
		return nil, fmt.Errorf("%w: customerID must be a valid id", domain.ErrInvalidInput)
	}

	status := in.Status
	if status == "" {
		status = models.InvoiceDraft
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown invoice status %q", domain.ErrInvalidInput, status)
	}

	now := s.now().UTC()
	inv := models.CustomerInvoice{
		CustomerID:    customerID,
		InvoiceNumber: strings.TrimSpace(in.InvoiceNumber),
		InvoiceDate:   now,
		Items:         in.Items,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if linked := strings.TrimSpace(in.LinkedDispatchID); linked != "" {
		dispatchID, err := primitive.ObjectIDFromHex(linked)
		if err != nil {
			return nil, fmt.Errorf("%w: linkedDispatchID must be a valid id", domain.ErrInvalidInput)
		}
		inv.LinkedDispatchID = &dispatchID
	}
	if in.InvoiceDate != nil {
		inv.InvoiceDate = in.InvoiceDate.UTC()
	}
	if inv.Items == nil {
		inv.Items = []models.SalesLine{}
	}

	if err := s.repo.InsertInvoice(ctx, &inv); err != nil {
		return nil, fmt.Errorf("save invoice: %w", err)
	}

	s.logger.Info("invoice created",
		zap.String("invoice_id", inv.ID.Hex()),
		zap.String("invoice_number", inv.InvoiceNumber))

	views, err := s.views(ctx, []models.CustomerInvoice{inv})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// List returns every invoice with its customer and total.
func (s *Service) List(ctx context.Context) ([]models.InvoiceView, error) {
	invoices, err := s.repo.ListInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return s.views(ctx, invoices)
}

// UpdateStatus changes only the status and updated timestamp of an invoice.
func (s *Service) UpdateStatus(ctx context.Context, id string, status models.InvoiceStatus) (*models.InvoiceView, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown invoice status %q", domain.ErrInvalidInput, status)
	}

	inv, err := s.repo.UpdateInvoiceStatus(ctx, id, status, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("update invoice status: %w", err)
	}

	views, err := s.views(ctx, []models.CustomerInvoice{*inv})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *Service) views(ctx context.Context, invoices []models.CustomerInvoice) ([]models.InvoiceView, error) {
	ids := make([]primitive.ObjectID, 0, len(invoices))
	for _, inv := range invoices {
		ids = append(ids, inv.CustomerID)
	}

	var customers map[primitive.ObjectID]models.Customer
	if s.customers != nil {
		var err error
		customers, err = s.customers.Lookup(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("resolve customers: %w", err)
		}
	}

	out := make([]models.InvoiceView, 0, len(invoices))
	for _, inv := range invoices {
		v := models.InvoiceView{CustomerInvoice: inv, TotalAmount: models.TotalAmount(inv.Items)}
		if c, ok := customers[inv.CustomerID]; ok {
			v.Customer = &c
		}
		out = append(out, v)
	}
	return out, nil
}
