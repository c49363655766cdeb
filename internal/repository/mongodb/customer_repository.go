package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// InsertCustomer stores a new customer and assigns its id.
func (r *Repository) InsertCustomer(ctx context.Context, c *models.Customer) error {
	c.ID = primitive.NewObjectID()
	if _, err := r.collection(customerCollection).InsertOne(ctx, c); err != nil {
		return fmt.Errorf("failed to insert customer: %w", err)
	}
	return nil
}

// ListCustomers returns every customer in insertion order.
func (r *Repository) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return findAll[models.Customer](ctx, r.collection(customerCollection), bson.D{}, opts)
}

// FindCustomers returns the customers with the given ids.
func (r *Repository) FindCustomers(ctx context.Context, ids []primitive.ObjectID) ([]models.Customer, error) {
	if len(ids) == 0 {
		return []models.Customer{}, nil
	}
	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}
	return findAll[models.Customer](ctx, r.collection(customerCollection), filter)
}
