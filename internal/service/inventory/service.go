// Package inventory exposes read-only queries over the ledger.
package inventory

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// Repository reads ledger entries. FindItemByID returns domain.ErrNotFound
// for unknown or malformed ids.
type Repository interface {
	ListItems(ctx context.Context) ([]models.InventoryItem, error)
	FindItemByID(ctx context.Context, id string) (*models.InventoryItem, error)
}

// Service answers inventory queries.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService wires an inventory query service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// List returns the whole ledger.
func (s *Service) List(ctx context.Context) ([]models.InventoryItem, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return items, nil
}

// Get returns one ledger entry.
func (s *Service) Get(ctx context.Context, id string) (*models.InventoryItem, error) {
	item, err := s.repo.FindItemByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return item, nil
}
