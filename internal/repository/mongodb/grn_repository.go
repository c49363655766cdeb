package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// InsertGRN stores a new receipt and assigns its id.
func (r *Repository) InsertGRN(ctx context.Context, grn *models.GRN) error {
	grn.ID = primitive.NewObjectID()
	if _, err := r.collection(grnCollection).InsertOne(ctx, grn); err != nil {
		return fmt.Errorf("failed to insert grn: %w", err)
	}
	return nil
}

// ListGRNs returns every receipt in insertion order.
func (r *Repository) ListGRNs(ctx context.Context) ([]models.GRN, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return findAll[models.GRN](ctx, r.collection(grnCollection), bson.D{}, opts)
}

// UpdateGRNStatus sets status and updatedAt on one receipt.
func (r *Repository) UpdateGRNStatus(ctx context.Context, id string, status models.GRNStatus, at time.Time) (*models.GRN, error) {
	return setStatus[models.GRN](ctx, r.collection(grnCollection), "grn", id, status, at)
}
