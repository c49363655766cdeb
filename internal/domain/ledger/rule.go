// Package ledger holds the pure rule that turns a received GRN line into a
// write against the inventory ledger. It performs no I/O: callers resolve the
// line against storage first, hand the outcome to Decide and persist the
// returned Mutation themselves.
//
// Because resolution and persistence are separate steps, two receipts for the
// same new item that both resolve to NotFound will each produce an
// ActionCreate mutation. Nothing here or in storage prevents that duplicate.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// Lookup is the outcome of resolving a receipt line against the ledger:
// either Found(existing) or NotFound().
type Lookup struct {
	existing *models.InventoryItem
}

// Found wraps the ledger entry matching a receipt line.
func Found(item models.InventoryItem) Lookup {
	return Lookup{existing: &item}
}

// NotFound signals that no ledger entry matches a receipt line.
func NotFound() Lookup {
	return Lookup{}
}

// Item returns the matched entry and true, or false when nothing matched.
func (l Lookup) Item() (models.InventoryItem, bool) {
	if l.existing == nil {
		return models.InventoryItem{}, false
	}
	return *l.existing, true
}

// Action enumerates the two ledger writes a receipt line can produce.
type Action int

const (
	ActionIncrement Action = iota + 1
	ActionCreate
)

func (a Action) String() string {
	switch a {
	case ActionIncrement:
		return "increment"
	case ActionCreate:
		return "create"
	default:
		return "unknown"
	}
}

// Mutation is the ledger write a receipt line resolves to. Item holds the full
// post-write state of the entry.
type Mutation struct {
	Action Action
	Item   models.InventoryItem
	Delta  int
}

// CodeGenerator produces identities for entries created implicitly by a receipt.
type CodeGenerator interface {
	ItemCode(now time.Time) string
	SKU(now time.Time) string
}

// Decide applies the receiving rule to one line. qc is the receipt-wide
// verdict and may be empty.
func Decide(lookup Lookup, line models.GRNLine, qc models.QCStatus, now time.Time, codes CodeGenerator) Mutation {
	if item, ok := lookup.Item(); ok {
		item.Quantity += line.QuantityReceived
		if line.LotNumber != "" {
			item.LotNumber = line.LotNumber
		}
		if line.ExpiryDate != nil {
			expiry := *line.ExpiryDate
			item.ExpiryDate = &expiry
		}
		if qc != "" {
			item.QCStatus = qc
		}
		item.UpdatedAt = now
		return Mutation{Action: ActionIncrement, Item: item, Delta: line.QuantityReceived}
	}

	status := qc
	if status == "" {
		status = models.QCPass
	}

	item := models.InventoryItem{
		ItemCode:  codes.ItemCode(now),
		ItemName:  line.ItemName,
		SKU:       codes.SKU(now),
		Category:  models.DefaultCategory,
		Quantity:  line.QuantityReceived,
		LotNumber: line.LotNumber,
		QCStatus:  status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if line.ExpiryDate != nil {
		expiry := *line.ExpiryDate
		item.ExpiryDate = &expiry
	}

	return Mutation{Action: ActionCreate, Item: item, Delta: line.QuantityReceived}
}

// RandomCodes builds codes from the wall-clock millisecond plus a short random
// suffix. Uniqueness is probabilistic; no collision check is made.
type RandomCodes struct{}

// ItemCode returns "ITEM-<unix-ms>-<suffix>".
func (RandomCodes) ItemCode(now time.Time) string {
	return fmt.Sprintf("ITEM-%d-%s", now.UnixMilli(), randomSuffix())
}

// SKU returns "SKU-<unix-ms>-<suffix>".
func (RandomCodes) SKU(now time.Time) string {
	return fmt.Sprintf("SKU-%d-%s", now.UnixMilli(), randomSuffix())
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
}
