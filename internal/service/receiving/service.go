package receiving

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain"
	"github.com/mamadbah2/stockroom/internal/domain/ledger"
	"github.com/mamadbah2/stockroom/internal/domain/models"
)

const notifyTimeout = 10 * time.Second

// GRNRepository persists goods receipt notes.
type GRNRepository interface {
	InsertGRN(ctx context.Context, grn *models.GRN) error
	ListGRNs(ctx context.Context) ([]models.GRN, error)
	UpdateGRNStatus(ctx context.Context, id string, status models.GRNStatus, at time.Time) (*models.GRN, error)
}

// LedgerRepository reads and writes inventory ledger entries. Finders return
// domain.ErrNotFound when nothing matches.
type LedgerRepository interface {
	FindItemByName(ctx context.Context, name string) (*models.InventoryItem, error)
	FindItemByCode(ctx context.Context, code string) (*models.InventoryItem, error)
	InsertItem(ctx context.Context, item *models.InventoryItem) error
	ReplaceItem(ctx context.Context, item models.InventoryItem) error
}

// PurchaseOrderResolver maps GRN poID references to purchase orders.
type PurchaseOrderResolver interface {
	Resolve(ctx context.Context, refs []string) (map[string]models.PurchaseOrder, error)
}

// Transactor runs fn so that every store call made with the context it
// receives commits or aborts together.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier announces a completed receipt to an external system.
type Notifier interface {
	NotifyReceipt(ctx context.Context, receipt Receipt) error
}

// MutationRecorder counts ledger writes.
type MutationRecorder interface {
	RecordLedgerMutation(action string)
}

// CreateGRNInput is a goods receipt submission.
type CreateGRNInput struct {
	POID  string
	QC    models.QCStatus
	Items []models.GRNLine
}

// LineResult describes the ledger write applied for one received line.
type LineResult struct {
	ItemName         string `json:"itemName"`
	ItemCode         string `json:"itemCode"`
	QuantityReceived int    `json:"quantityReceived"`
	Created          bool   `json:"created"`
}

// Receipt is a persisted GRN together with its applied ledger writes.
type Receipt struct {
	GRN   models.GRN
	Lines []LineResult
}

// Option customizes a Service.
type Option func(*Service)

// WithTransactor makes CreateGRN commit the GRN and all of its ledger writes
// as a single transaction.
func WithTransactor(tx Transactor) Option {
	return func(s *Service) { s.tx = tx }
}

// WithNotifier sends a notification after every successful receipt. Sends run
// in the background; call Wait to drain them.
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithRecorder reports every ledger write to r.
func WithRecorder(r MutationRecorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithCodeGenerator overrides how implicitly created items are identified.
func WithCodeGenerator(codes ledger.CodeGenerator) Option {
	return func(s *Service) { s.codes = codes }
}

// Service implements the receiving workflow.
type Service struct {
	grns     GRNRepository
	items    LedgerRepository
	orders   PurchaseOrderResolver
	tx       Transactor
	notifier Notifier
	recorder MutationRecorder
	codes    ledger.CodeGenerator
	logger   *zap.Logger
	now      func() time.Time
	pending  sync.WaitGroup
}

// NewService wires a receiving service.
func NewService(grns GRNRepository, items LedgerRepository, orders PurchaseOrderResolver, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		grns:   grns,
		items:  items,
		orders: orders,
		codes:  ledger.RandomCodes{},
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateGRN persists the receipt and then applies each line to the ledger in
// order. Without a Transactor a failing line leaves the GRN and every earlier
// line in place.
func (s *Service) CreateGRN(ctx context.Context, in CreateGRNInput) (*models.GRN, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	var (
		grn     models.GRN
		results []LineResult
	)

	run := func(ctx context.Context) error {
		grn = models.GRN{
			POID:      strings.TrimSpace(in.POID),
			Items:     in.Items,
			QC:        in.QC,
			Status:    models.GRNPending,
			CreatedAt: now,
			UpdatedAt: now,
		}
		results = make([]LineResult, 0, len(in.Items))

		if err := s.grns.InsertGRN(ctx, &grn); err != nil {
			return fmt.Errorf("save grn: %w", err)
		}

		for i, line := range in.Items {
			result, err := s.applyLine(ctx, line, in.QC, now)
			if err != nil {
				return fmt.Errorf("apply line %d (%s): %w", i+1, line.ItemName, err)
			}
			results = append(results, result)
		}
		return nil
	}

	var err error
	if s.tx != nil {
		err = s.tx.WithTransaction(ctx, run)
	} else {
		err = run(ctx)
	}
	if err != nil {
		s.logger.Error("grn processing failed",
			zap.String("po_id", in.POID),
			zap.Int("lines_applied", len(results)),
			zap.Bool("atomic", s.tx != nil),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("grn received",
		zap.String("grn_id", grn.ID.Hex()),
		zap.String("po_id", grn.POID),
		zap.Int("lines", len(results)))

	s.notify(ctx, Receipt{GRN: grn, Lines: results})

	return &grn, nil
}

func (s *Service) applyLine(ctx context.Context, line models.GRNLine, qc models.QCStatus, now time.Time) (LineResult, error) {
	lookup, err := s.lookup(ctx, line)
	if err != nil {
		return LineResult{}, err
	}

	m := ledger.Decide(lookup, line, qc, now, s.codes)

	switch m.Action {
	case ledger.ActionCreate:
		if err := s.items.InsertItem(ctx, &m.Item); err != nil {
			return LineResult{}, fmt.Errorf("create inventory item: %w", err)
		}
	case ledger.ActionIncrement:
		if err := s.items.ReplaceItem(ctx, m.Item); err != nil {
			return LineResult{}, fmt.Errorf("update inventory item: %w", err)
		}
	}

	if s.recorder != nil {
		s.recorder.RecordLedgerMutation(m.Action.String())
	}

	s.logger.Debug("ledger mutation applied",
		zap.String("action", m.Action.String()),
		zap.String("item_code", m.Item.ItemCode),
		zap.String("item_name", m.Item.ItemName),
		zap.Int("delta", m.Delta),
		zap.Int("quantity", m.Item.Quantity))

	return LineResult{
		ItemName:         m.Item.ItemName,
		ItemCode:         m.Item.ItemCode,
		QuantityReceived: line.QuantityReceived,
		Created:          m.Action == ledger.ActionCreate,
	}, nil
}

func (s *Service) lookup(ctx context.Context, line models.GRNLine) (ledger.Lookup, error) {
	if line.ItemCode != "" {
		item, err := s.items.FindItemByCode(ctx, line.ItemCode)
		if err != nil {
			return ledger.Lookup{}, fmt.Errorf("inventory item %q: %w", line.ItemCode, err)
		}
		return ledger.Found(*item), nil
	}

	item, err := s.items.FindItemByName(ctx, line.ItemName)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return ledger.NotFound(), nil
	case err != nil:
		return ledger.Lookup{}, fmt.Errorf("find inventory item: %w", err)
	}
	return ledger.Found(*item), nil
}

func (s *Service) notify(ctx context.Context, receipt Receipt) {
	if s.notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer cancel()

		if err := s.notifier.NotifyReceipt(ctx, receipt); err != nil {
			s.logger.Warn("receipt notification failed", zap.String("grn_id", receipt.GRN.ID.Hex()), zap.Error(err))
		}
	}()
}

// Wait blocks until every in-flight receipt notification has finished.
func (s *Service) Wait() {
	s.pending.Wait()
}

// ListGRNs returns every GRN with its purchase order resolved.
func (s *Service) ListGRNs(ctx context.Context) ([]models.GRNView, error) {
	grns, err := s.grns.ListGRNs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list grns: %w", err)
	}

	refs := make([]string, 0, len(grns))
	for _, g := range grns {
		refs = append(refs, g.POID)
	}

	orders, err := s.resolve(ctx, refs)
	if err != nil {
		return nil, err
	}

	views := make([]models.GRNView, 0, len(grns))
	for _, g := range grns {
		views = append(views, view(g, orders))
	}
	return views, nil
}

// UpdateStatus changes only the status and updated timestamp of a GRN.
func (s *Service) UpdateStatus(ctx context.Context, id string, status models.GRNStatus) (*models.GRNView, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown grn status %q", domain.ErrInvalidInput, status)
	}

	grn, err := s.grns.UpdateGRNStatus(ctx, id, status, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("update grn status: %w", err)
	}

	orders, err := s.resolve(ctx, []string{grn.POID})
	if err != nil {
		return nil, err
	}

	v := view(*grn, orders)
	return &v, nil
}

func (s *Service) resolve(ctx context.Context, refs []string) (map[string]models.PurchaseOrder, error) {
	if s.orders == nil || len(refs) == 0 {
		return nil, nil
	}
	orders, err := s.orders.Resolve(ctx, refs)
	if err != nil {
		return nil, fmt.Errorf("resolve purchase orders: %w", err)
	}
	return orders, nil
}

func view(g models.GRN, orders map[string]models.PurchaseOrder) models.GRNView {
	v := models.GRNView{GRN: g}
	if po, ok := orders[g.POID]; ok {
		v.PurchaseOrder = &po
	}
	return v
}

func validateCreate(in CreateGRNInput) error {
	if strings.TrimSpace(in.POID) == "" {
		return fmt.Errorf("%w: poID is required", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: items must not be empty", domain.ErrInvalidInput)
	}
	if in.QC != "" && !in.QC.Valid() {
		return fmt.Errorf("%w: unknown QC verdict %q", domain.ErrInvalidInput, in.QC)
	}
	for i, line := range in.Items {
		if strings.TrimSpace(line.ItemName) == "" {
			return fmt.Errorf("%w: items[%d].itemName is required", domain.ErrInvalidInput, i)
		}
		if line.QuantityReceived < 1 {
			return fmt.Errorf("%w: items[%d].quantityReceived must be at least 1", domain.ErrInvalidInput, i)
		}
	}
	return nil
}
