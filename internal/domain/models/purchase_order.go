package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PurchaseOrderStatus tracks how much of an order has been received.
type PurchaseOrderStatus string

const (
	POOpen              PurchaseOrderStatus = "Open"
	POPartiallyReceived PurchaseOrderStatus = "PartiallyReceived"
	POClosed            PurchaseOrderStatus = "Closed"
)

// Valid reports whether the status is one of the known values.
func (s PurchaseOrderStatus) Valid() bool {
	switch s {
	case POOpen, POPartiallyReceived, POClosed:
		return true
	default:
		return false
	}
}

// PurchaseOrderLine is one ordered item.
type PurchaseOrderLine struct {
	ItemName  string          `bson:"itemName" json:"itemName"`
	Quantity  int             `bson:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `bson:"unitPrice" json:"unitPrice"`
}

// PurchaseOrder is an order placed with a supplier; GRNs reference it.
type PurchaseOrder struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	PONumber  string              `bson:"poNumber" json:"poNumber"`
	Supplier  string              `bson:"supplier" json:"supplier"`
	Items     []PurchaseOrderLine `bson:"items" json:"items"`
	Status    PurchaseOrderStatus `bson:"status" json:"status"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}
