// Package seeder is the bulk-load entry point: an all-or-nothing reseed of
// suppliers, products and price history, plus the first-run account seeding.
// It is deliberately separate from the per-request write path — it preserves
// explicit numeric ids and resets serial counters, which no normal create
// operation is allowed to do.
package seeder

import (
	"context"
	"fmt"

	"bodega/internal/model"

	"gorm.io/gorm"
)

// Dataset is one batch of rows to load. Products may carry explicit ids so
// their id_proveedor references resolve against the suppliers inserted in the
// same batch.
type Dataset struct {
	Proveedores []model.Proveedor
	Productos   []model.Producto
	Historial   []model.HistorialPrecio
}

type Seeder struct{ db *gorm.DB }

func New(db *gorm.DB) *Seeder { return &Seeder{db: db} }

// tables lists the cleared entities child-first, with the serial sequence
// Postgres generated for each custom primary-key column.
var tables = []struct{ name, sequence string }{
	{"historial_precios", "historial_precios_id_hist_seq"},
	{"productos", "productos_id_prod_seq"},
	{"proveedores", "proveedores_id_prov_seq"},
}

// Seed wipes and repopulates the three inventory tables as a single atomic
// unit. Deletes run child-to-parent to respect the FK constraints, sequences
// restart at 1, rows are inserted parent-to-child keeping any explicit ids,
// and finally each sequence is bumped past the highest id present. On any
// failure the whole transaction rolls back: no caller ever observes a
// half-seeded store.
func (s *Seeder) Seed(ctx context.Context, ds Dataset) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, t := range tables {
			if err := tx.Exec("DELETE FROM " + t.name).Error; err != nil {
				return fmt.Errorf("limpiar %s: %w", t.name, err)
			}
			if err := tx.Exec("ALTER SEQUENCE " + t.sequence + " RESTART WITH 1").Error; err != nil {
				return fmt.Errorf("reiniciar %s: %w", t.sequence, err)
			}
		}

		if len(ds.Proveedores) > 0 {
			if err := tx.Create(&ds.Proveedores).Error; err != nil {
				return fmt.Errorf("insertar proveedores: %w", err)
			}
		}
		if len(ds.Productos) > 0 {
			if err := tx.Create(&ds.Productos).Error; err != nil {
				return fmt.Errorf("insertar productos: %w", err)
			}
		}
		if len(ds.Historial) > 0 {
			if err := tx.Create(&ds.Historial).Error; err != nil {
				return fmt.Errorf("insertar historial: %w", err)
			}
		}

		// Explicit ids bypass the sequences; realign them so the next
		// sequence-generated id cannot collide with a seeded row.
		for _, stmt := range []string{
			`SELECT setval('proveedores_id_prov_seq', COALESCE((SELECT MAX(id_prov) FROM proveedores), 1))`,
			`SELECT setval('productos_id_prod_seq', COALESCE((SELECT MAX(id_prod) FROM productos), 1))`,
			`SELECT setval('historial_precios_id_hist_seq', COALESCE((SELECT MAX(id_hist) FROM historial_precios), 1))`,
		} {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("realinear secuencia: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}

// EnsureDefaultAccounts inserts the master accounts on first run only: if any
// usuario row exists the call is a no-op, so re-running at every process start
// is safe. Not part of the Seed transaction — accounts survive a reseed.
func EnsureDefaultAccounts(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&model.Usuario{}).Count(&count).Error; err != nil {
		return fmt.Errorf("contar usuarios: %w", err)
	}
	if count > 0 {
		return nil
	}

	cuentas := []model.Usuario{
		{Username: "admin", Password: "admin123", Role: "ADMIN"},
		{Username: "operador", Password: "user123", Role: "USER"},
	}
	if err := db.WithContext(ctx).Create(&cuentas).Error; err != nil {
		return fmt.Errorf("crear cuentas maestras: %w", err)
	}
	return nil
}
