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

// ListItems returns every ledger entry in insertion order.
func (r *Repository) ListItems(ctx context.Context) ([]models.InventoryItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return findAll[models.InventoryItem](ctx, r.collection(inventoryCollection), bson.D{}, opts)
}

// FindItemByID returns the entry with the given hex id. Malformed ids miss.
func (r *Repository) FindItemByID(ctx context.Context, id string) (*models.InventoryItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("inventory item %s: %w", id, domain.ErrNotFound)
	}
	return r.findItem(ctx, bson.D{{Key: "_id", Value: oid}}, id)
}

// FindItemByName returns the oldest entry whose itemName equals name.
func (r *Repository) FindItemByName(ctx context.Context, name string) (*models.InventoryItem, error) {
	return r.findItem(ctx, bson.D{{Key: "itemName", Value: name}}, name)
}

// FindItemByCode returns the entry whose itemCode equals code.
func (r *Repository) FindItemByCode(ctx context.Context, code string) (*models.InventoryItem, error) {
	return r.findItem(ctx, bson.D{{Key: "itemCode", Value: code}}, code)
}

func (r *Repository) findItem(ctx context.Context, filter bson.D, key string) (*models.InventoryItem, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})

	var item models.InventoryItem
	if err := r.collection(inventoryCollection).FindOne(ctx, filter, opts).Decode(&item); err != nil {
		return nil, notFound(err, "inventory item", key)
	}
	return &item, nil
}

// InsertItem stores a new entry and assigns its id.
func (r *Repository) InsertItem(ctx context.Context, item *models.InventoryItem) error {
	item.ID = primitive.NewObjectID()
	if _, err := r.collection(inventoryCollection).InsertOne(ctx, item); err != nil {
		return fmt.Errorf("failed to insert inventory item %s: %w", item.ItemCode, err)
	}
	return nil
}

// ReplaceItem overwrites the stored entry that has item's id.
func (r *Repository) ReplaceItem(ctx context.Context, item models.InventoryItem) error {
	res, err := r.collection(inventoryCollection).ReplaceOne(ctx, bson.D{{Key: "_id", Value: item.ID}}, item)
	if err != nil {
		return fmt.Errorf("failed to replace inventory item %s: %w", item.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("inventory item %s: %w", item.ID.Hex(), domain.ErrNotFound)
	}
	return nil
}

// findAll decodes every document matching filter. The result is never nil.
func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", coll.Name(), err)
	}

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", coll.Name(), err)
	}
	return out, nil
}

// setStatus applies a status change and returns the updated document.
func setStatus[T any](ctx context.Context, coll *mongo.Collection, what, id string, status any, at any) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", what, id, domain.ErrNotFound)
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: status},
		{Key: "updatedAt", Value: at},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc T
	if err := coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update, opts).Decode(&doc); err != nil {
		return nil, notFound(err, what, id)
	}
	return &doc, nil
}
