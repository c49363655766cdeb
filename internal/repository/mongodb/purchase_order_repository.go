package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/stockroom/internal/domain"
	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// InsertPurchaseOrder stores a new purchase order and assigns its id. A
// duplicate poNumber is reported as invalid input.
func (r *Repository) InsertPurchaseOrder(ctx context.Context, po *models.PurchaseOrder) error {
	po.ID = primitive.NewObjectID()
	if _, err := r.collection(purchaseOrderCollection).InsertOne(ctx, po); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: poNumber %s already exists", domain.ErrInvalidInput, po.PONumber)
		}
		return fmt.Errorf("failed to insert purchase order: %w", err)
	}
	return nil
}

// ListPurchaseOrders returns every purchase order in insertion order.
func (r *Repository) ListPurchaseOrders(ctx context.Context) ([]models.PurchaseOrder, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return findAll[models.PurchaseOrder](ctx, r.collection(purchaseOrderCollection), bson.D{}, opts)
}

// FindPurchaseOrders returns orders whose id is in ids or whose poNumber is in numbers.
func (r *Repository) FindPurchaseOrders(ctx context.Context, ids []primitive.ObjectID, numbers []string) ([]models.PurchaseOrder, error) {
	if len(ids) == 0 && len(numbers) == 0 {
		return []models.PurchaseOrder{}, nil
	}

	var or bson.A
	if len(ids) > 0 {
		or = append(or, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
	}
	if len(numbers) > 0 {
		or = append(or, bson.D{{Key: "poNumber", Value: bson.D{{Key: "$in", Value: numbers}}}})
	}
	return findAll[models.PurchaseOrder](ctx, r.collection(purchaseOrderCollection), bson.D{{Key: "$or", Value: or}})
}
