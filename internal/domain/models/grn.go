package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GRNStatus tracks the lifecycle of a goods receipt note.
type GRNStatus string

const (
	GRNPending   GRNStatus = "Pending"
	GRNReceived  GRNStatus = "Received"
	GRNCompleted GRNStatus = "Completed"
	GRNRejected  GRNStatus = "Rejected"
)

// Valid reports whether the status is one of the known values.
func (s GRNStatus) Valid() bool {
	switch s {
	case GRNPending, GRNReceived, GRNCompleted, GRNRejected:
		return true
	default:
		return false
	}
}

// GRNLine is one received line item of a goods receipt note.
type GRNLine struct {
	ItemName         string     `bson:"itemName" json:"itemName"`
	ItemCode         string     `bson:"itemCode,omitempty" json:"itemCode,omitempty"`
	QuantityReceived int        `bson:"quantityReceived" json:"quantityReceived"`
	LotNumber        string     `bson:"lotNumber,omitempty" json:"lotNumber,omitempty"`
	ExpiryDate       *time.Time `bson:"expiryDate,omitempty" json:"expiryDate,omitempty"`
}

// GRN records materials received against a purchase order. POID is an opaque
// reference: either a purchase order's hex id or its poNumber.
type GRN struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	POID      string             `bson:"poID" json:"poID"`
	Items     []GRNLine          `bson:"items" json:"items"`
	QC        QCStatus           `bson:"QC,omitempty" json:"QC,omitempty"`
	Status    GRNStatus          `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// GRNView is a GRN with its purchase-order reference resolved.
type GRNView struct {
	GRN
	PurchaseOrder *PurchaseOrder `json:"purchaseOrder,omitempty"`
}
