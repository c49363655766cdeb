package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultCategory is assigned to ledger entries created implicitly by a receipt.
const DefaultCategory = "Raw Material"

// InventoryItem is one ledger entry tracking on-hand quantity for an item.
type InventoryItem struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ItemCode      string             `bson:"itemCode" json:"itemCode"`
	ItemName      string             `bson:"itemName" json:"itemName"`
	SKU           string             `bson:"SKU" json:"SKU"`
	Category      string             `bson:"category" json:"category"`
	ContainerType string             `bson:"containerType,omitempty" json:"containerType,omitempty"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	LotNumber     string             `bson:"lotNumber,omitempty" json:"lotNumber,omitempty"`
	BatchID       string             `bson:"batchID,omitempty" json:"batchID,omitempty"`
	ExpiryDate    *time.Time         `bson:"expiryDate,omitempty" json:"expiryDate,omitempty"`
	AlcoholFlag   bool               `bson:"alcoholFlag" json:"alcoholFlag"`
	QCStatus      QCStatus           `bson:"QCstatus" json:"QCstatus"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
