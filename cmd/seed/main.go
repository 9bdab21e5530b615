// Command seed wipes and repopulates the inventory tables with the demo
// dataset, atomically. Intended for test/demo environments — it preserves
// explicit numeric ids and resets the serial counters, which the normal API
// never does.
package main

import (
	"context"
	"os"
	"time"

	"bodega/internal/config"
	"bodega/internal/infra"
	"bodega/internal/seeder"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := seeder.EnsureDefaultAccounts(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("account seeding failed")
	}

	ds := seeder.DemoDataset()
	if err := seeder.New(db).Seed(ctx, ds); err != nil {
		// The transaction already rolled back — the store is untouched.
		log.Fatal().Err(err).Msg("seed failed, rolled back")
	}

	log.Info().
		Int("proveedores", len(ds.Proveedores)).
		Int("productos", len(ds.Productos)).
		Int("historial", len(ds.Historial)).
		Msg("base de datos poblada")
}
