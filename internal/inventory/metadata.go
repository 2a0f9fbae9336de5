package inventory

import (
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/paws4pals/inventory/internal/model"
)

// Resolver looks up metadata display names.
type Resolver interface {
	Resolve(kind model.Kind, id string) (string, bool)
	List(kind model.Kind) []model.MetadataItem
}

// MetadataStore holds categories, locations and suppliers in insertion order.
type MetadataStore struct {
	entries map[model.Kind][]model.MetadataItem
}

// NewMetadataStore returns a store populated with the given entries. Entries
// with an unknown kind are ignored.
func NewMetadataStore(entries []model.MetadataItem) *MetadataStore {
	m := &MetadataStore{entries: make(map[model.Kind][]model.MetadataItem)}
	for _, e := range entries {
		if e.Kind.Valid() {
			m.entries[e.Kind] = append(m.entries[e.Kind], e)
		}
	}
	return m
}

// DefaultMetadata returns the starter categories, locations and suppliers.
func DefaultMetadata() []model.MetadataItem {
	return []model.MetadataItem{
		{ID: "cat-1", Kind: model.KindCategory, Name: "Electronics"},
		{ID: "cat-2", Kind: model.KindCategory, Name: "Clothing"},
		{ID: "loc-1", Kind: model.KindLocation, Name: "Warehouse A"},
		{ID: "loc-2", Kind: model.KindLocation, Name: "Storefront"},
		{ID: "sup-1", Kind: model.KindSupplier, Name: "Supplier X"},
		{ID: "sup-2", Kind: model.KindSupplier, Name: "Supplier Y"},
	}
}

// Resolve returns the name of the entry, or false if it does not exist.
func (m *MetadataStore) Resolve(kind model.Kind, id string) (string, bool) {
	e, ok := m.Get(kind, id)
	if !ok {
		return "", false
	}
	return e.Name, true
}

// Get returns the entry with the given id.
func (m *MetadataStore) Get(kind model.Kind, id string) (model.MetadataItem, bool) {
	i := m.index(kind, id)
	if i < 0 {
		return model.MetadataItem{}, false
	}
	return m.entries[kind][i], true
}

// List returns a copy of all entries of a kind.
func (m *MetadataStore) List(kind model.Kind) []model.MetadataItem {
	return slices.Clone(m.entries[kind])
}

// All returns every entry of every kind.
func (m *MetadataStore) All() []model.MetadataItem {
	var out []model.MetadataItem
	for _, k := range model.Kinds {
		out = append(out, m.entries[k]...)
	}
	return out
}

func (m *MetadataStore) index(kind model.Kind, id string) int {
	return slices.IndexFunc(m.entries[kind], func(e model.MetadataItem) bool { return e.ID == id })
}

// prepare validates a new or renamed entry without changing the store.
// exceptID is the entry being renamed, empty for a new entry.
func (m *MetadataStore) prepare(kind model.Kind, name, exceptID string) (string, error) {
	if !kind.Valid() {
		return "", &ValidationError{Invalid: []string{"kind"}}
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &ValidationError{Missing: []string{"name"}}
	}
	for _, e := range m.entries[kind] {
		if e.ID != exceptID && strings.EqualFold(e.Name, name) {
			return "", &DuplicateError{Field: "name", Value: name}
		}
	}
	return name, nil
}

func newMetadataID() string {
	return uuid.NewString()
}

func (m *MetadataStore) insert(e model.MetadataItem) {
	m.entries[e.Kind] = append(m.entries[e.Kind], e)
}

func (m *MetadataStore) replace(e model.MetadataItem) {
	if i := m.index(e.Kind, e.ID); i >= 0 {
		m.entries[e.Kind][i] = e
	}
}

func (m *MetadataStore) remove(kind model.Kind, id string) {
	if i := m.index(kind, id); i >= 0 {
		m.entries[kind] = slices.Delete(m.entries[kind], i, i+1)
	}
}
