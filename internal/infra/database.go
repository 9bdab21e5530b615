package infra

import (
	"fmt"

	"bodega/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update the four tables, then applies idempotent SQL patches for the
// DDL GORM cannot express (the role CHECK constraint and the price-audit
// trigger). Safe to invoke on every process start.
//
// TranslateError is enabled so unique-key violations surface as
// gorm.ErrDuplicatedKey instead of a driver-specific error string.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Proveedor{},
		&model.Producto{},
		&model.HistorialPrecio{},
		&model.Usuario{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches runs idempotent DDL statements that GORM AutoMigrate
// cannot fully handle on its own. Each statement uses IF NOT EXISTS / OR
// REPLACE semantics (or an existence guard) so re-running on an
// already-patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// Role domain: ADMIN | USER. AutoMigrate creates the varchar column
		// but cannot attach a CHECK constraint to it.
		{"check constraint usuarios.role", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint
                 WHERE conrelid = to_regclass('usuarios') AND conname = 'chk_usuarios_role') THEN
    ALTER TABLE usuarios
      ADD CONSTRAINT chk_usuarios_role CHECK (role IN ('ADMIN', 'USER'));
  END IF;
END $$`},

		// Audit rule: one history row per real purchase-price change. Living
		// in the storage layer means no write path — facade, seeder, ad-hoc
		// SQL — can bypass it. The WHEN clause skips updates that restate the
		// same price; inserts never fire an UPDATE trigger.
		{"trigger function log_precio_update", `
CREATE OR REPLACE FUNCTION log_precio_update() RETURNS trigger AS $$
BEGIN
  INSERT INTO historial_precios (id_producto, precio_registrado)
  VALUES (NEW.id_prod, NEW.precio_compra);
  RETURN NEW;
END;
$$ LANGUAGE plpgsql`},
		{"trigger log_precio_update on productos", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_trigger
                 WHERE tgrelid = to_regclass('productos') AND tgname = 'log_precio_update') THEN
    CREATE TRIGGER log_precio_update
      AFTER UPDATE OF precio_compra ON productos
      FOR EACH ROW
      WHEN (OLD.precio_compra IS DISTINCT FROM NEW.precio_compra)
      EXECUTE FUNCTION log_precio_update();
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
