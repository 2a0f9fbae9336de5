package store

import (
	"context"
	"errors"
	"testing"

	"github.com/paws4pals/inventory/internal/db"
	"github.com/paws4pals/inventory/internal/inventory"
	"github.com/paws4pals/inventory/internal/model"
)

type admin struct{}

func (admin) CanMutate() bool { return true }
func (admin) Actor() string   { return "admin@example.com" }

func TestSessionChangesArePersisted(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	seedDefaults(t, database)

	s, err := OpenSession(ctx, database)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}

	draft, _ := s.CreateDraft(admin{})
	draft.Name = "Litter Box"
	draft.Category, draft.Location, draft.Supplier = "cat-2", "loc-2", "sup-1"
	draft.Quantity = 8
	if _, err := s.Save(ctx, admin{}, draft); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := s.Transact(ctx, admin{}, draft.ID, model.MovementSold, 3); err != nil {
		t.Fatalf("Transact: %v", err)
	}
	out, err := s.AddMetadata(ctx, admin{}, model.KindSupplier, "Supplier Z")
	if err != nil {
		t.Fatalf("AddMetadata: %v", err)
	}
	added := out.Data.(model.MetadataItem)

	// A fresh session sees the same state.
	reloaded, err := OpenSession(ctx, database)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	item, ok := reloaded.Get(draft.ID)
	if !ok {
		t.Fatal("expected saved item after reload")
	}
	if item.Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", item.Quantity)
	}
	if len(reloaded.Movements(draft.ID)) != 1 {
		t.Errorf("expected 1 movement after reload")
	}
	if name, _ := reloaded.Metadata().Resolve(model.KindSupplier, added.ID); name != "Supplier Z" {
		t.Errorf("expected new supplier after reload, got %q", name)
	}

	next, _ := reloaded.CreateDraft(admin{})
	if next.ID == draft.ID {
		t.Errorf("draft id %q reused after reload", next.ID)
	}
}

func TestSessionDeleteRemovesRows(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	seedDefaults(t, database)
	SaveItem(ctx, database, testItem("INV-1001", "Kibble", "SKU100001"))

	s, _ := OpenSession(ctx, database)
	if _, err := s.Delete(ctx, admin{}, "INV-1001"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, _ := getItem(ctx, database, "INV-1001"); got != nil {
		t.Error("expected item row to be deleted")
	}

	if _, err := s.DeleteMetadata(ctx, admin{}, model.KindCategory, "cat-1"); err != nil {
		t.Fatalf("DeleteMetadata: %v", err)
	}
	if got, _ := getMetadata(ctx, database, model.KindCategory, "cat-1"); got != nil {
		t.Error("expected metadata row to be deleted")
	}
}

func TestSessionRejectsDuplicateAgainstDatabase(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	seedDefaults(t, database)
	SaveItem(ctx, database, testItem("INV-1001", "Kibble", "SKU100001"))

	s, _ := OpenSession(ctx, database)
	item := testItem("INV-2000", "KIBBLE", "OTHER")
	_, err := s.Save(ctx, admin{}, item)
	var dup *inventory.DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateError, got %v", err)
	}
	items, _ := ListItems(ctx, database)
	if len(items) != 1 {
		t.Errorf("expected 1 item row, got %d", len(items))
	}
}
