package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/paws4pals/inventory/internal/config"
	"github.com/paws4pals/inventory/internal/db"
	"github.com/paws4pals/inventory/internal/inventory"
	"github.com/paws4pals/inventory/internal/model"
	"github.com/paws4pals/inventory/internal/store"
)

// account is a generated login printed once after initialization.
type account struct {
	Role     string
	Email    string
	Password string
}

func runInit(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfg.DB.Path); err == nil {
		return fmt.Errorf("database %s already exists", cfg.DB.Path)
	}

	creds, err := initDatabase(c.Context, cfg.DB)
	if err != nil {
		return err
	}
	printInitResult(cfg.DB.Path, creds)
	return nil
}

// initDatabase creates a new database with the schema, the default metadata
// and one admin and one staff account. The file is removed on failure.
func initDatabase(ctx context.Context, cfg config.DBConfig) (creds []account, err error) {
	database, err := db.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		database.Close()
		if err != nil {
			os.Remove(cfg.Path)
		}
	}()

	if err := db.Migrate(database); err != nil {
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}

	if _, err := store.SeedMetadata(ctx, database, inventory.DefaultMetadata()); err != nil {
		return nil, fmt.Errorf("seeding metadata: %w", err)
	}

	for _, a := range []struct{ email, name, role string }{
		{cfg.AdminEmail, "Admin User", model.RoleAdmin},
		{cfg.StaffEmail, "Staff User", model.RoleStaff},
	} {
		password, err := createAccount(ctx, database, a.email, a.name, a.role)
		if err != nil {
			return nil, err
		}
		creds = append(creds, account{Role: a.role, Email: a.email, Password: password})
	}
	return creds, nil
}

func createAccount(ctx context.Context, database *sql.DB, email, name, role string) (string, error) {
	password, err := generatePassword(16)
	if err != nil {
		return "", fmt.Errorf("generating password: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	if _, err := store.CreateUser(ctx, database, email, name, string(hash), role); err != nil {
		return "", fmt.Errorf("creating %s user: %w", role, err)
	}
	return password, nil
}

// printInitResult prints the database initialization result to stdout.
func printInitResult(dbPath string, creds []account) {
	fmt.Printf("Database created: %s\n", dbPath)
	fmt.Println("Schema initialized, default categories, locations and suppliers added.")
	for _, a := range creds {
		fmt.Println()
		fmt.Printf("%s account created:\n", a.Role)
		fmt.Printf("  Email:    %s\n", a.Email)
		fmt.Printf("  Password: %s\n", a.Password)
	}
	fmt.Println()
	fmt.Println("Save these passwords, they cannot be recovered.")
	fmt.Println("Each user can change their password after logging in.")
}

// generatePassword creates a random password of the given length.
func generatePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}

// purgeTokens drops expired entries from the revocation list every interval.
func purgeTokens(ctx context.Context, database *sql.DB, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		n, err := store.PurgeExpiredTokens(ctx, database, time.Now())
		if err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("purging revoked tokens")
		} else if n > 0 {
			log.Info().Int64("tokens", n).Msg("purged expired revoked tokens")
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
