package inventory

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paws4pals/inventory/internal/model"
)

// Principal is the caller of a session operation.
type Principal interface {
	CanMutate() bool
	Actor() string
}

// Journal persists changes. Each method is called before the session applies
// the change in memory; an error aborts the operation.
type Journal interface {
	ItemSaved(ctx context.Context, item model.Item, created bool) error
	ItemDeleted(ctx context.Context, id string) error
	MovementRecorded(ctx context.Context, m model.Movement, item model.Item) error
	MetadataSaved(ctx context.Context, e model.MetadataItem, created bool) error
	MetadataDeleted(ctx context.Context, kind model.Kind, id string) error
}

type nopJournal struct{}

func (nopJournal) ItemSaved(context.Context, model.Item, bool) error                  { return nil }
func (nopJournal) ItemDeleted(context.Context, string) error                          { return nil }
func (nopJournal) MovementRecorded(context.Context, model.Movement, model.Item) error { return nil }
func (nopJournal) MetadataSaved(context.Context, model.MetadataItem, bool) error      { return nil }
func (nopJournal) MetadataDeleted(context.Context, model.Kind, string) error          { return nil }

// Option configures a Session.
type Option func(*Session)

// WithJournal sets where changes are persisted.
func WithJournal(j Journal) Option {
	return func(s *Session) { s.journal = j }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Session owns the inventory collection and its metadata. It is not safe for
// concurrent use.
type Session struct {
	meta      *MetadataStore
	items     []model.Item
	movements []model.Movement
	journal   Journal
	now       func() time.Time
	seq       int
}

// NewSession creates a session over the given collection. The slices are
// copied.
func NewSession(meta *MetadataStore, items []model.Item, movements []model.Movement, opts ...Option) *Session {
	if meta == nil {
		meta = NewMetadataStore(nil)
	}
	s := &Session{
		meta:      meta,
		items:     slices.Clone(items),
		movements: slices.Clone(movements),
		journal:   nopJournal{},
		now:       time.Now,
		seq:       len(items),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, item := range s.items {
		s.observeID(item.ID)
	}
	return s
}

// TransactionResult is the data attached to a successful transaction.
type TransactionResult struct {
	Item     model.Item        `json:"item"`
	Movement model.Movement    `json:"movement"`
	Status   model.StockStatus `json:"status"`
}

// Snapshot is a copy of the whole session state.
type Snapshot struct {
	Items     []model.Item         `json:"items"`
	Metadata  []model.MetadataItem `json:"metadata"`
	Movements []model.Movement     `json:"movements"`
}

// Metadata returns the metadata store used to resolve item references.
func (s *Session) Metadata() *MetadataStore {
	return s.meta
}

// Items returns a copy of the collection in insertion order.
func (s *Session) Items() []model.Item {
	return slices.Clone(s.items)
}

// Get returns the item with the given id.
func (s *Session) Get(id string) (model.Item, bool) {
	i := s.index(id)
	if i < 0 {
		return model.Item{}, false
	}
	return s.items[i], true
}

// List returns the items matching c.
func (s *Session) List(c Criteria) []model.Item {
	return Apply(s.items, c, s.meta)
}

// Movements returns the recorded movements for an item, or all movements
// when itemID is empty.
func (s *Session) Movements(itemID string) []model.Movement {
	if itemID == "" {
		return slices.Clone(s.movements)
	}
	var out []model.Movement
	for _, m := range s.movements {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out
}

// Snapshot copies the session state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Items:     s.Items(),
		Metadata:  s.meta.All(),
		Movements: s.Movements(""),
	}
}

// CreateDraft returns an unsaved item with generated id and SKU.
func (s *Session) CreateDraft(p Principal) (model.Item, error) {
	if err := authorize(p, "create item"); err != nil {
		return model.Item{}, err
	}
	s.seq++
	now := s.now().UTC()
	return model.Item{
		ID:           fmt.Sprintf("INV-%d", 1000+s.seq),
		SKU:          fmt.Sprintf("SKU%d", 100000+s.seq),
		CostPrice:    decimal.Zero,
		SellingPrice: decimal.Zero,
		CreatedAt:    now,
		LastUpdated:  now,
	}, nil
}

// Validate checks required fields, value ranges, metadata references and
// name/SKU uniqueness against the other items.
func (s *Session) Validate(item model.Item) error {
	var missing, invalid []string
	for _, f := range []struct{ name, value string }{
		{"name", item.Name},
		{"sku", item.SKU},
		{"category", item.Category},
		{"location", item.Location},
		{"supplier", item.Supplier},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}

	if item.Quantity < 0 {
		invalid = append(invalid, "quantity")
	}
	if item.ReorderPoint < 0 {
		invalid = append(invalid, "reorder_point")
	}
	if item.InventoryCap < 0 {
		invalid = append(invalid, "inventory_cap")
	}
	if item.CostPrice.IsNegative() {
		invalid = append(invalid, "cost_price")
	}
	if item.SellingPrice.IsNegative() {
		invalid = append(invalid, "selling_price")
	}
	for _, ref := range []struct {
		kind model.Kind
		id   string
	}{
		{model.KindCategory, item.Category},
		{model.KindLocation, item.Location},
		{model.KindSupplier, item.Supplier},
	} {
		if strings.TrimSpace(ref.id) == "" {
			continue
		}
		if _, ok := s.meta.Resolve(ref.kind, ref.id); !ok {
			invalid = append(invalid, string(ref.kind))
		}
	}
	if len(missing) > 0 || len(invalid) > 0 {
		return &ValidationError{Missing: missing, Invalid: invalid}
	}

	name := strings.TrimSpace(item.Name)
	sku := strings.TrimSpace(item.SKU)
	for _, other := range s.items {
		if other.ID == item.ID {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(other.Name), name) {
			return &DuplicateError{Field: "name", Value: item.Name}
		}
	}
	for _, other := range s.items {
		if other.ID == item.ID {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(other.SKU), sku) {
			return &DuplicateError{Field: "sku", Value: item.SKU}
		}
	}
	return nil
}

// Save inserts a new item or replaces an existing one with the same id.
// LastUpdated is set to now; a replaced item keeps its original CreatedAt.
func (s *Session) Save(ctx context.Context, p Principal, item model.Item) (Outcome, error) {
	if err := authorize(p, "save item"); err != nil {
		return Failure(err), err
	}
	return s.save(ctx, item)
}

// Create inserts a new item. An item whose id is already taken is rejected.
func (s *Session) Create(ctx context.Context, p Principal, item model.Item) (Outcome, error) {
	if err := authorize(p, "create item"); err != nil {
		return Failure(err), err
	}
	if id := strings.TrimSpace(item.ID); id != "" && s.index(id) >= 0 {
		err := &DuplicateError{Field: "id", Value: id}
		return Failure(err), err
	}
	return s.save(ctx, item)
}

// Update replaces an existing item.
func (s *Session) Update(ctx context.Context, p Principal, item model.Item) (Outcome, error) {
	if err := authorize(p, "update item"); err != nil {
		return Failure(err), err
	}
	if s.index(item.ID) < 0 {
		err := fmt.Errorf("item %s: %w", item.ID, ErrNotFound)
		return Failure(err), err
	}
	return s.save(ctx, item)
}

func (s *Session) save(ctx context.Context, item model.Item) (Outcome, error) {
	if err := s.Validate(item); err != nil {
		return Failure(err), err
	}
	if strings.TrimSpace(item.ID) == "" {
		s.seq++
		item.ID = fmt.Sprintf("INV-%d", 1000+s.seq)
	}

	now := s.now().UTC()
	i := s.index(item.ID)
	created := i < 0
	if created {
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
	} else {
		item.CreatedAt = s.items[i].CreatedAt
	}
	item.LastUpdated = now

	if err := s.journal.ItemSaved(ctx, item, created); err != nil {
		err = fmt.Errorf("saving item %s: %w", item.ID, err)
		return Failure(err), err
	}

	if created {
		s.items = append(s.items, item)
		s.observeID(item.ID)
		return success(OutcomeItemAdded, "Item Added",
			fmt.Sprintf("%s has been added to inventory.", item.Name), item), nil
	}
	s.items[i] = item
	return success(OutcomeItemUpdated, "Item Updated",
		fmt.Sprintf("%s has been updated.", item.Name), item), nil
}

// Delete removes an item and its movement history.
func (s *Session) Delete(ctx context.Context, p Principal, id string) (Outcome, error) {
	if err := authorize(p, "delete item"); err != nil {
		return Failure(err), err
	}
	i := s.index(id)
	if i < 0 {
		err := fmt.Errorf("item %s: %w", id, ErrNotFound)
		return Failure(err), err
	}
	item := s.items[i]

	if err := s.journal.ItemDeleted(ctx, id); err != nil {
		err = fmt.Errorf("deleting item %s: %w", id, err)
		return Failure(err), err
	}

	s.items = slices.Delete(s.items, i, i+1)
	s.movements = slices.DeleteFunc(s.movements, func(m model.Movement) bool { return m.ItemID == id })
	return success(OutcomeItemDeleted, "Item Deleted",
		fmt.Sprintf("%s has been removed from inventory.", item.Name), item), nil
}

// Transact applies a sale or purchase to an item's quantity. A sale may not
// exceed the on-hand quantity. Purchases are not bounded by the inventory cap.
func (s *Session) Transact(ctx context.Context, p Principal, id string, kind model.MovementKind, amount int) (Outcome, error) {
	if err := authorize(p, "record transaction"); err != nil {
		return Failure(err), err
	}
	var invalid []string
	if kind != model.MovementSold && kind != model.MovementPurchased {
		invalid = append(invalid, "kind")
	}
	if amount <= 0 {
		invalid = append(invalid, "amount")
	}
	if len(invalid) > 0 {
		err := &ValidationError{Invalid: invalid}
		return Failure(err), err
	}

	i := s.index(id)
	if i < 0 {
		err := fmt.Errorf("item %s: %w", id, ErrNotFound)
		return Failure(err), err
	}
	item := s.items[i]
	if kind == model.MovementSold && amount > item.Quantity {
		err := &InsufficientStockError{Requested: amount, Available: item.Quantity}
		return Failure(err), err
	}
	if kind == model.MovementPurchased && amount > math.MaxInt-item.Quantity {
		err := &ValidationError{Invalid: []string{"amount"}}
		return Failure(err), err
	}

	m := model.Movement{
		ID:             uuid.NewString(),
		ItemID:         id,
		Kind:           kind,
		Amount:         amount,
		QuantityBefore: item.Quantity,
		At:             s.now().UTC(),
		By:             p.Actor(),
	}
	m.QuantityAfter = m.QuantityBefore + m.Delta()
	item.Quantity = m.QuantityAfter

	if err := s.journal.MovementRecorded(ctx, m, item); err != nil {
		err = fmt.Errorf("recording transaction for %s: %w", id, err)
		return Failure(err), err
	}

	s.items[i] = item
	s.movements = append(s.movements, m)
	result := TransactionResult{Item: item, Movement: m, Status: model.Classify(item)}
	if kind == model.MovementSold {
		return success(OutcomeItemSold, "Transaction Recorded",
			fmt.Sprintf("%d %s(s) marked as sold.", amount, item.Name), result), nil
	}
	return success(OutcomeItemPurchased, "Transaction Recorded",
		fmt.Sprintf("%d %s(s) added to inventory.", amount, item.Name), result), nil
}

// AddMetadata creates a category, location or supplier.
func (s *Session) AddMetadata(ctx context.Context, p Principal, kind model.Kind, name string) (Outcome, error) {
	if err := authorize(p, "add "+string(kind)); err != nil {
		return Failure(err), err
	}
	name, err := s.meta.prepare(kind, name, "")
	if err != nil {
		return Failure(err), err
	}
	e := model.MetadataItem{ID: newMetadataID(), Kind: kind, Name: name}
	if err := s.journal.MetadataSaved(ctx, e, true); err != nil {
		err = fmt.Errorf("saving %s: %w", kind, err)
		return Failure(err), err
	}
	s.meta.insert(e)
	return success(OutcomeMetadataAdded, kind.Title()+" Added",
		fmt.Sprintf("%s has been added.", name), e), nil
}

// UpdateMetadata renames an entry. The new name must be unique within its kind.
func (s *Session) UpdateMetadata(ctx context.Context, p Principal, kind model.Kind, id, name string) (Outcome, error) {
	if err := authorize(p, "update "+string(kind)); err != nil {
		return Failure(err), err
	}
	if _, ok := s.meta.Get(kind, id); !ok {
		err := fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
		return Failure(err), err
	}
	name, err := s.meta.prepare(kind, name, id)
	if err != nil {
		return Failure(err), err
	}
	e := model.MetadataItem{ID: id, Kind: kind, Name: name}
	if err := s.journal.MetadataSaved(ctx, e, false); err != nil {
		err = fmt.Errorf("saving %s: %w", kind, err)
		return Failure(err), err
	}
	s.meta.replace(e)
	return success(OutcomeMetadataUpdated, kind.Title()+" Updated",
		fmt.Sprintf("%s has been updated.", name), e), nil
}

// DeleteMetadata removes an entry. Entries still referenced by items cannot
// be deleted.
func (s *Session) DeleteMetadata(ctx context.Context, p Principal, kind model.Kind, id string) (Outcome, error) {
	if err := authorize(p, "delete "+string(kind)); err != nil {
		return Failure(err), err
	}
	e, ok := s.meta.Get(kind, id)
	if !ok {
		err := fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
		return Failure(err), err
	}
	if n := s.references(kind, id); n > 0 {
		err := &InUseError{Kind: kind, ID: id, Count: n}
		return Failure(err), err
	}
	if err := s.journal.MetadataDeleted(ctx, kind, id); err != nil {
		err = fmt.Errorf("deleting %s: %w", kind, err)
		return Failure(err), err
	}
	s.meta.remove(kind, id)
	return success(OutcomeMetadataDeleted, kind.Title()+" Deleted",
		fmt.Sprintf("%s has been deleted.", e.Name), e), nil
}

func (s *Session) references(kind model.Kind, id string) int {
	n := 0
	for _, item := range s.items {
		var ref string
		switch kind {
		case model.KindCategory:
			ref = item.Category
		case model.KindLocation:
			ref = item.Location
		case model.KindSupplier:
			ref = item.Supplier
		}
		if ref == id {
			n++
		}
	}
	return n
}

func (s *Session) index(id string) int {
	return slices.IndexFunc(s.items, func(item model.Item) bool { return item.ID == id })
}

// observeID advances the draft sequence past ids of the form INV-<n>.
func (s *Session) observeID(id string) {
	n, err := strconv.Atoi(strings.TrimPrefix(id, "INV-"))
	if err != nil || !strings.HasPrefix(id, "INV-") {
		return
	}
	if n-1000 > s.seq {
		s.seq = n - 1000
	}
}

func authorize(p Principal, action string) error {
	if p == nil || !p.CanMutate() {
		return &PermissionError{Action: action}
	}
	return nil
}
