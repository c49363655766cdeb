// Package memory is a process-local implementation of every repository used by
// the services. It backs STORAGE_DRIVER=memory and the service and handler tests.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/stockroom/internal/domain"
	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// Store keeps every collection in insertion order.
type Store struct {
	mu         sync.RWMutex
	items      []models.InventoryItem
	grns       []models.GRN
	orders     []models.PurchaseOrder
	customers  []models.Customer
	dispatches []models.SalesDispatch
	invoices   []models.CustomerInvoice
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error {
	return nil
}

// WithTransaction restores the previous state of every collection when fn
// fails. Writes from concurrent callers are not isolated from fn, and a
// rollback discards them too, so only single-caller tests use it.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.RLock()
	snap := s.snapshot()
	s.mu.RUnlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.restore(snap)
		s.mu.Unlock()
		return err
	}
	return nil
}

type state struct {
	items      []models.InventoryItem
	grns       []models.GRN
	orders     []models.PurchaseOrder
	customers  []models.Customer
	dispatches []models.SalesDispatch
	invoices   []models.CustomerInvoice
}

func (s *Store) snapshot() state {
	return state{
		items:      slices.Clone(s.items),
		grns:       slices.Clone(s.grns),
		orders:     slices.Clone(s.orders),
		customers:  slices.Clone(s.customers),
		dispatches: slices.Clone(s.dispatches),
		invoices:   slices.Clone(s.invoices),
	}
}

// copyOf never returns nil so empty lists encode as [].
func copyOf[T any](src []T) []T {
	out := make([]T, len(src))
	copy(out, src)
	return out
}

func (s *Store) restore(st state) {
	s.items = st.items
	s.grns = st.grns
	s.orders = st.orders
	s.customers = st.customers
	s.dispatches = st.dispatches
	s.invoices = st.invoices
}

// --- inventory ---

// ListItems returns every ledger entry.
func (s *Store) ListItems(context.Context) ([]models.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOf(s.items), nil
}

// FindItemByID returns the entry with the given hex id.
func (s *Store) FindItemByID(_ context.Context, id string) (*models.InventoryItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("inventory item %s: %w", id, domain.ErrNotFound)
	}
	return s.findItem(func(it models.InventoryItem) bool { return it.ID == oid }, id)
}

// FindItemByName returns the first entry whose itemName equals name.
func (s *Store) FindItemByName(_ context.Context, name string) (*models.InventoryItem, error) {
	return s.findItem(func(it models.InventoryItem) bool { return it.ItemName == name }, name)
}

// FindItemByCode returns the entry whose itemCode equals code.
func (s *Store) FindItemByCode(_ context.Context, code string) (*models.InventoryItem, error) {
	return s.findItem(func(it models.InventoryItem) bool { return it.ItemCode == code }, code)
}

func (s *Store) findItem(match func(models.InventoryItem) bool, key string) (*models.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if match(it) {
			found := it
			return &found, nil
		}
	}
	return nil, fmt.Errorf("inventory item %s: %w", key, domain.ErrNotFound)
}

// InsertItem stores a new entry and assigns its id.
func (s *Store) InsertItem(_ context.Context, item *models.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ItemCode == item.ItemCode || it.SKU == item.SKU {
			return fmt.Errorf("insert inventory item: duplicate itemCode or SKU %s", item.ItemCode)
		}
	}
	item.ID = primitive.NewObjectID()
	s.items = append(s.items, *item)
	return nil
}

// ReplaceItem overwrites the stored entry that has item's id.
func (s *Store) ReplaceItem(_ context.Context, item models.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, it := range s.items {
		if it.ID == item.ID {
			s.items[i] = item
			return nil
		}
	}
	return fmt.Errorf("inventory item %s: %w", item.ID.Hex(), domain.ErrNotFound)
}

// --- grns ---

// InsertGRN stores a new receipt and assigns its id.
func (s *Store) InsertGRN(_ context.Context, grn *models.GRN) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	grn.ID = primitive.NewObjectID()
	stored := *grn
	stored.Items = slices.Clone(grn.Items)
	s.grns = append(s.grns, stored)
	return nil
}

// ListGRNs returns every receipt.
func (s *Store) ListGRNs(context.Context) ([]models.GRN, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOf(s.grns), nil
}

// UpdateGRNStatus sets status and updatedAt on one receipt.
func (s *Store) UpdateGRNStatus(_ context.Context, id string, status models.GRNStatus, at time.Time) (*models.GRN, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("grn %s: %w", id, domain.ErrNotFound)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.grns {
		if s.grns[i].ID == oid {
			s.grns[i].Status = status
			s.grns[i].UpdatedAt = at
			updated := s.grns[i]
			return &updated, nil
		}
	}
	return nil, fmt.Errorf("grn %s: %w", id, domain.ErrNotFound)
}

// --- purchase orders ---

// InsertPurchaseOrder stores a new purchase order and assigns its id.
func (s *Store) InsertPurchaseOrder(_ context.Context, po *models.PurchaseOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.orders {
		if existing.PONumber == po.PONumber {
			return fmt.Errorf("%w: poNumber %s already exists", domain.ErrInvalidInput, po.PONumber)
		}
	}
	po.ID = primitive.NewObjectID()
	s.orders = append(s.orders, *po)
	return nil
}

// ListPurchaseOrders returns every purchase order.
func (s *Store) ListPurchaseOrders(context.Context) ([]models.PurchaseOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOf(s.orders), nil
}

// FindPurchaseOrders returns orders whose id is in ids or whose poNumber is in numbers.
func (s *Store) FindPurchaseOrders(_ context.Context, ids []primitive.ObjectID, numbers []string) ([]models.PurchaseOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.PurchaseOrder
	for _, po := range s.orders {
		if slices.Contains(ids, po.ID) || slices.Contains(numbers, po.PONumber) {
			out = append(out, po)
		}
	}
	return out, nil
}

// --- customers ---

// InsertCustomer stores a new customer and assigns its id.
func (s *Store) InsertCustomer(_ context.Context, c *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = primitive.NewObjectID()
	s.customers = append(s.customers, *c)
	return nil
}

// ListCustomers returns every customer.
func (s *Store) ListCustomers(context.Context) ([]models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOf(s.customers), nil
}

// FindCustomers returns the customers with the given ids.
func (s *Store) FindCustomers(_ context.Context, ids []primitive.ObjectID) ([]models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Customer
	for _, c := range s.customers {
		if slices.Contains(ids, c.ID) {
			out = append(out, c)
		}
	}
	return out, nil
}

// --- dispatches ---

// InsertDispatch stores a new dispatch and assigns its id.
func (s *Store) InsertDispatch(_ context.Context, d *models.SalesDispatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = primitive.NewObjectID()
	s.dispatches = append(s.dispatches, *d)
	return nil
}

// ListDispatches returns every dispatch.
func (s *Store) ListDispatches(context.Context) ([]models.SalesDispatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOf(s.dispatches), nil
}

// UpdateDispatchStatus sets status and updatedAt on one dispatch.
func (s *Store) UpdateDispatchStatus(_ context.Context, id string, status models.DispatchStatus, at time.Time) (*models.SalesDispatch, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("dispatch %s: %w", id, domain.ErrNotFound)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.dispatches {
		if s.dispatches[i].ID == oid {
			s.dispatches[i].Status = status
			s.dispatches[i].UpdatedAt = at
			updated := s.dispatches[i]
			return &updated, nil
		}
	}
	return nil, fmt.Errorf("dispatch %s: %w", id, domain.ErrNotFound)
}

// --- invoices ---

// InsertInvoice stores a new invoice and assigns its id.
func (s *Store) InsertInvoice(_ context.Context, inv *models.CustomerInvoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv.ID = primitive.NewObjectID()
	s.invoices = append(s.invoices, *inv)
	return nil
}

// ListInvoices returns every invoice.
func (s *Store) ListInvoices(context.Context) ([]models.CustomerInvoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOf(s.invoices), nil
}

// UpdateInvoiceStatus sets status and updatedAt on one invoice.
func (s *Store) UpdateInvoiceStatus(_ context.Context, id string, status models.InvoiceStatus, at time.Time) (*models.CustomerInvoice, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invoice %s: %w", id, domain.ErrNotFound)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.invoices {
		if s.invoices[i].ID == oid {
			s.invoices[i].Status = status
			s.invoices[i].UpdatedAt = at
			updated := s.invoices[i]
			return &updated, nil
		}
	}
	return nil, fmt.Errorf("invoice %s: %w", id, domain.ErrNotFound)
}
