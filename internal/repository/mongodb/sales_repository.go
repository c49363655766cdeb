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

// InsertDispatch stores a new dispatch and assigns its id.
func (r *Repository) InsertDispatch(ctx context.Context, d *models.SalesDispatch) error {
	d.ID = primitive.NewObjectID()
	if _, err := r.collection(salesDispatchCollection).InsertOne(ctx, d); err != nil {
		return fmt.Errorf("failed to insert sales dispatch: %w", err)
	}
	return nil
}

// ListDispatches returns every dispatch in insertion order.
func (r *Repository) ListDispatches(ctx context.Context) ([]models.SalesDispatch, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return findAll[models.SalesDispatch](ctx, r.collection(salesDispatchCollection), bson.D{}, opts)
}

// UpdateDispatchStatus sets status and updatedAt on one dispatch.
func (r *Repository) UpdateDispatchStatus(ctx context.Context, id string, status models.DispatchStatus, at time.Time) (*models.SalesDispatch, error) {
	return setStatus[models.SalesDispatch](ctx, r.collection(salesDispatchCollection), "dispatch", id, status, at)
}

// InsertInvoice stores a new invoice and assigns its id.
func (r *Repository) InsertInvoice(ctx context.Context, inv *models.CustomerInvoice) error {
	inv.ID = primitive.NewObjectID()
	if _, err := r.collection(customerInvoiceCollection).InsertOne(ctx, inv); err != nil {
		return fmt.Errorf("failed to insert customer invoice: %w", err)
	}
	return nil
}

// ListInvoices returns every invoice in insertion order.
func (r *Repository) ListInvoices(ctx context.Context) ([]models.CustomerInvoice, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return findAll[models.CustomerInvoice](ctx, r.collection(customerInvoiceCollection), bson.D{}, opts)
}

// UpdateInvoiceStatus sets status and updatedAt on one invoice.
func (r *Repository) UpdateInvoiceStatus(ctx context.Context, id string, status models.InvoiceStatus, at time.Time) (*models.CustomerInvoice, error) {
	return setStatus[models.CustomerInvoice](ctx, r.collection(customerInvoiceCollection), "invoice", id, status, at)
}
