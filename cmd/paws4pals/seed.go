package main

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/paws4pals/inventory/internal/db"
	"github.com/paws4pals/inventory/internal/inventory"
	"github.com/paws4pals/inventory/internal/logging"
	"github.com/paws4pals/inventory/internal/store"
)

// systemPrincipal performs seeding with full access.
type systemPrincipal struct{}

func (systemPrincipal) CanMutate() bool { return true }
func (systemPrincipal) Actor() string   { return "system" }

type sampleItem struct {
	name, category, location, supplier string
	quantity, reorder, limit           int
	cost, price                        string
}

var sampleItems = []sampleItem{
	{"Pet Camera", "cat-1", "loc-1", "sup-1", 12, 5, 40, "45.00", "79.99"},
	{"Automatic Feeder", "cat-1", "loc-2", "sup-1", 3, 5, 30, "32.50", "59.90"},
	{"GPS Collar", "cat-1", "loc-1", "sup-2", 0, 4, 20, "28.00", "49.00"},
	{"Dog Raincoat", "cat-2", "loc-2", "sup-2", 25, 8, 24, "9.75", "19.99"},
	{"Cat Sweater", "cat-2", "loc-1", "sup-2", 14, 6, 50, "7.20", "15.00"},
}

func runSeed(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	closeLog, err := logging.Setup(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closeLog()

	database, err := db.Open(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	ctx := c.Context
	added, err := store.SeedMetadata(ctx, database, inventory.DefaultMetadata())
	if err != nil {
		return fmt.Errorf("seeding metadata: %w", err)
	}
	log.Info().Int("entries", added).Msg("metadata seeded")

	session, err := store.OpenSession(ctx, database)
	if err != nil {
		return err
	}

	var p systemPrincipal
	created := 0
	for _, s := range sampleItems {
		draft, err := session.CreateDraft(p)
		if err != nil {
			return err
		}
		draft.Name = s.name
		draft.Category = s.category
		draft.Location = s.location
		draft.Supplier = s.supplier
		draft.Quantity = s.quantity
		draft.ReorderPoint = s.reorder
		draft.InventoryCap = s.limit
		draft.CostPrice = decimal.RequireFromString(s.cost)
		draft.SellingPrice = decimal.RequireFromString(s.price)

		out, err := session.Save(ctx, p, draft)
		if err != nil {
			var dup *inventory.DuplicateError
			if errors.As(err, &dup) {
				log.Info().Str("item", s.name).Msg("sample item already present, skipping")
				continue
			}
			return fmt.Errorf("%s: %w", out.Message, err)
		}
		created++
	}

	fmt.Printf("Seeded %d sample items into %s.\n", created, cfg.DB.Path)
	return nil
}
