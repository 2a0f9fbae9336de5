package main

import (
	"context"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/paws4pals/inventory/internal/config"
	"github.com/paws4pals/inventory/internal/db"
	"github.com/paws4pals/inventory/internal/model"
	"github.com/paws4pals/inventory/internal/store"
)

func TestGeneratePassword(t *testing.T) {
	a, err := generatePassword(16)
	if err != nil {
		t.Fatalf("generatePassword: %v", err)
	}
	if len(a) != 16 {
		t.Errorf("expected 16 characters, got %d", len(a))
	}
	b, _ := generatePassword(16)
	if a == b {
		t.Error("expected two generated passwords to differ")
	}
}

func TestInitDatabase(t *testing.T) {
	ctx := context.Background()
	cfg := config.DBConfig{
		Path:       filepath.Join(t.TempDir(), "paws4pals.db"),
		AdminEmail: "admin@paws4pals.test",
		StaffEmail: "staff@paws4pals.test",
	}

	creds, err := initDatabase(ctx, cfg)
	if err != nil {
		t.Fatalf("initDatabase: %v", err)
	}
	if len(creds) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(creds))
	}

	database, err := db.Open(cfg.Path)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer database.Close()

	admin, err := store.GetUserByEmail(ctx, database, cfg.AdminEmail)
	if err != nil || admin == nil {
		t.Fatalf("admin not created: %v", err)
	}
	if admin.Role != model.RoleAdmin {
		t.Errorf("expected admin role, got %q", admin.Role)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(creds[0].Password)); err != nil {
		t.Errorf("printed admin password does not match: %v", err)
	}

	entries, err := store.ListMetadata(ctx, database, "")
	if err != nil {
		t.Fatalf("ListMetadata: %v", err)
	}
	if len(entries) != 6 {
		t.Errorf("expected 6 default metadata entries, got %d", len(entries))
	}
}
