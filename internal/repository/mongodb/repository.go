package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/stockroom/internal/domain"
)

const (
	inventoryCollection       = "inventory"
	grnCollection             = "grns"
	purchaseOrderCollection   = "purchase_orders"
	customerCollection        = "customers"
	salesDispatchCollection   = "sales_dispatches"
	customerInvoiceCollection = "customer_invoices"
)

// Repository implements every store used by the services on top of one
// MongoDB database.
type Repository struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoDBRepository connects to uri, verifies the connection and returns a
// repository bound to dbName.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*Repository, error) {
	clientOptions := options.Client().ApplyURI(uri).SetRegistry(NewRegistry())
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return NewRepository(client.Database(dbName)), nil
}

// NewRepository wraps an already connected database.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{client: db.Client(), db: db}
}

// EnsureIndexes creates the lookup and uniqueness indexes. itemName is indexed
// but not unique.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	specs := map[string][]mongo.IndexModel{
		inventoryCollection: {
			{Keys: bson.D{{Key: "itemCode", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "SKU", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "itemName", Value: 1}}},
		},
		grnCollection: {
			{Keys: bson.D{{Key: "poID", Value: 1}}},
		},
		purchaseOrderCollection: {
			{Keys: bson.D{{Key: "poNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for coll, indexes := range specs {
		if _, err := r.db.Collection(coll).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

// WithTransaction runs fn inside a multi-document transaction. Store calls
// must use the context passed to fn. Requires a replica set or sharded cluster.
func (r *Repository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start mongodb session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// Ping checks the connection.
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}

// Close closes the MongoDB connection.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *Repository) collection(name string) *mongo.Collection {
	return r.db.Collection(name)
}

// notFound converts a driver miss into domain.ErrNotFound.
func notFound(err error, what, key string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s %s: %w", what, key, domain.ErrNotFound)
	}
	return fmt.Errorf("find %s %s: %w", what, key, err)
}
