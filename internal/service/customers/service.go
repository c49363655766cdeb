package customers

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

// Repository persists customers.
type Repository interface {
	InsertCustomer(ctx context.Context, c *models.Customer) error
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	FindCustomers(ctx context.Context, ids []primitive.ObjectID) ([]models.Customer, error)
}

// CreateInput is a customer submission.
type CreateInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// Service manages the customer directory.
type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a customer service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Create stores a customer.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Customer, error) {
	c := models.Customer{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Address: strings.TrimSpace(in.Address),
	}
	if c.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	now := s.now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now

	if err := s.repo.InsertCustomer(ctx, &c); err != nil {
		return nil, fmt.Errorf("save customer: %w", err)
	}
	return &c, nil
}

// List returns every customer.
func (s *Service) List(ctx context.Context) ([]models.Customer, error) {
	out, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return out, nil
}

// Lookup returns the customers with the given ids keyed by id. Unknown ids are absent.
func (s *Service) Lookup(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Customer, error) {
	unique := make([]primitive.ObjectID, 0, len(ids))
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		if id.IsZero() {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	out := make(map[primitive.ObjectID]models.Customer, len(unique))
	if len(unique) == 0 {
		return out, nil
	}

	found, err := s.repo.FindCustomers(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("find customers: %w", err)
	}
	for _, c := range found {
		out[c.ID] = c
	}
	return out, nil
}
