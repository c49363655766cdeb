package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DispatchStatus tracks an outbound shipment.
type DispatchStatus string

const (
	DispatchDraft      DispatchStatus = "Draft"
	DispatchDispatched DispatchStatus = "Dispatched"
	DispatchDelivered  DispatchStatus = "Delivered"
)

// Valid reports whether the status is one of the known values.
func (s DispatchStatus) Valid() bool {
	switch s {
	case DispatchDraft, DispatchDispatched, DispatchDelivered:
		return true
	default:
		return false
	}
}

// InvoiceStatus tracks customer billing.
type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "Draft"
	InvoiceIssued  InvoiceStatus = "Issued"
	InvoicePaid    InvoiceStatus = "Paid"
	InvoiceOverdue InvoiceStatus = "Overdue"
)

// Valid reports whether the status is one of the known values.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceDraft, InvoiceIssued, InvoicePaid, InvoiceOverdue:
		return true
	default:
		return false
	}
}

// SalesLine is a priced line item shared by dispatches and invoices.
type SalesLine struct {
	ItemName  string          `bson:"itemName,omitempty" json:"itemName,omitempty"`
	SKU       string          `bson:"SKU,omitempty" json:"SKU,omitempty"`
	Quantity  int             `bson:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `bson:"unitPrice" json:"unitPrice"`
}

// Amount is quantity times unit price.
func (l SalesLine) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// TotalAmount sums the amounts of every line.
func TotalAmount(lines []SalesLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount())
	}
	return total
}

// SalesDispatch records an outbound shipment to a customer. Creating one does
// not change the inventory ledger.
type SalesDispatch struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CustomerID    primitive.ObjectID `bson:"customerID" json:"customerID"`
	InvoiceNumber string             `bson:"invoiceNumber" json:"invoiceNumber"`
	Items         []SalesLine        `bson:"items" json:"items"`
	DispatchDate  time.Time          `bson:"dispatchDate" json:"dispatchDate"`
	Status        DispatchStatus     `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DispatchView is a dispatch with its customer resolved and the total computed.
// customerID stays the raw id and the resolved record is served under customer,
// so clients that read customerID.name must read customer.name instead.
type DispatchView struct {
	SalesDispatch
	Customer    *Customer       `json:"customer,omitempty"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// CustomerInvoice bills a customer, optionally for a prior dispatch.
type CustomerInvoice struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	CustomerID       primitive.ObjectID  `bson:"customerID" json:"customerID"`
	LinkedDispatchID *primitive.ObjectID `bson:"linkedDispatchID,omitempty" json:"linkedDispatchID,omitempty"`
	InvoiceNumber    string              `bson:"invoiceNumber" json:"invoiceNumber"`
	InvoiceDate      time.Time           `bson:"invoiceDate" json:"invoiceDate"`
	Items            []SalesLine         `bson:"items" json:"items"`
	Status           InvoiceStatus       `bson:"status" json:"status"`
	CreatedAt        time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// InvoiceView is an invoice with its customer resolved and the total computed.
// As with DispatchView, the resolved record is under customer.
type InvoiceView struct {
	CustomerInvoice
	Customer    *Customer       `json:"customer,omitempty"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}
