package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/paws4pals/inventory/internal/model"
)

func TestMetadataResolve(t *testing.T) {
	m := NewMetadataStore(DefaultMetadata())

	name, ok := m.Resolve(model.KindCategory, "cat-1")
	if !ok || name != "Electronics" {
		t.Errorf("expected Electronics, got %q %v", name, ok)
	}
	if _, ok := m.Resolve(model.KindLocation, "cat-1"); ok {
		t.Error("ids must resolve only within their own kind")
	}
	if got := len(m.List(model.KindSupplier)); got != 2 {
		t.Errorf("expected 2 suppliers, got %d", got)
	}
	if got := len(m.All()); got != 6 {
		t.Errorf("expected 6 entries, got %d", got)
	}
}

func TestAddMetadata(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	out, err := s.AddMetadata(ctx, admin, model.KindCategory, "  Pet Food ")
	if err != nil {
		t.Fatalf("AddMetadata: %v", err)
	}
	e := out.Data.(model.MetadataItem)
	if e.Name != "Pet Food" || e.ID == "" {
		t.Errorf("unexpected entry %+v", e)
	}
	if name, _ := s.Metadata().Resolve(model.KindCategory, e.ID); name != "Pet Food" {
		t.Errorf("expected new category to resolve, got %q", name)
	}

	_, err = s.AddMetadata(ctx, admin, model.KindCategory, "pet food")
	var derr *DuplicateError
	if !errors.As(err, &derr) {
		t.Errorf("expected DuplicateError, got %v", err)
	}

	// Names are unique per kind only.
	if _, err := s.AddMetadata(ctx, admin, model.KindSupplier, "Pet Food"); err != nil {
		t.Errorf("expected same name in another kind to succeed, got %v", err)
	}

	var verr *ValidationError
	if _, err := s.AddMetadata(ctx, admin, model.KindCategory, "   "); !errors.As(err, &verr) {
		t.Errorf("expected ValidationError for blank name, got %v", err)
	}
	if _, err := s.AddMetadata(ctx, admin, model.Kind("brand"), "Acme"); !errors.As(err, &verr) {
		t.Errorf("expected ValidationError for unknown kind, got %v", err)
	}
}

func TestUpdateMetadata(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	if _, err := s.UpdateMetadata(ctx, admin, model.KindLocation, "loc-2", "Front Shop"); err != nil {
		t.Fatalf("UpdateMetadata: %v", err)
	}
	if name, _ := s.Metadata().Resolve(model.KindLocation, "loc-2"); name != "Front Shop" {
		t.Errorf("expected rename, got %q", name)
	}

	// Renaming to its own name with different case is allowed.
	if _, err := s.UpdateMetadata(ctx, admin, model.KindLocation, "loc-2", "FRONT SHOP"); err != nil {
		t.Errorf("expected self rename to succeed, got %v", err)
	}

	_, err := s.UpdateMetadata(ctx, admin, model.KindLocation, "loc-2", "warehouse a")
	var derr *DuplicateError
	if !errors.As(err, &derr) {
		t.Errorf("expected DuplicateError, got %v", err)
	}

	if _, err := s.UpdateMetadata(ctx, admin, model.KindLocation, "loc-9", "X"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteMetadataInUse(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()
	sampleItem(t, s, "Collar", "CO-1", 4)

	out, err := s.DeleteMetadata(ctx, admin, model.KindCategory, "cat-1")
	var uerr *InUseError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected InUseError, got %v", err)
	}
	if uerr.Count != 1 || out.Kind != OutcomeInUse {
		t.Errorf("unexpected error %+v outcome %+v", uerr, out)
	}
	if _, ok := s.Metadata().Resolve(model.KindCategory, "cat-1"); !ok {
		t.Error("referenced category was deleted")
	}

	if _, err := s.DeleteMetadata(ctx, admin, model.KindCategory, "cat-2"); err != nil {
		t.Fatalf("DeleteMetadata: %v", err)
	}
	if _, ok := s.Metadata().Resolve(model.KindCategory, "cat-2"); ok {
		t.Error("expected unreferenced category to be deleted")
	}
}
