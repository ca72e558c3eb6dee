package infra

import (
	"fmt"

	"github.com/fermanzolido/autitos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs
// AutoMigrate to create / update all tables, then applies the idempotent
// SQL patches that GORM cannot express (CHECK constraints, partial
// indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
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

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations applies the schema. Also used by integration tests
// against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Concesionario{},
		&model.Vehiculo{},
		&model.HistorialEstado{},
		&model.PedidoFabrica{},
		&model.Factura{},
		&model.Cliente{},
		&model.Venta{},
		&model.Interaccion{},
		&model.Prevision{},
		&model.Usuario{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// The CHECK constraints are the database-level backstop for the credit
// ledger: even a buggy writer cannot push the balance negative or above
// the line.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"credit balance bounds", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_concesionarios_credito') THEN
    ALTER TABLE concesionarios
      ADD CONSTRAINT chk_concesionarios_credito
      CHECK (credito_disponible >= 0 AND credito_disponible <= linea_credito);
  END IF;
END $$`},
		{"pending invoices partial index", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_facturas_pendientes') THEN
    CREATE INDEX idx_facturas_pendientes
        ON facturas (concesionario_id)
        WHERE estado = 'pendiente';
  END IF;
END $$`},
		{"pending orders partial index", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_pedidos_pendientes') THEN
    CREATE INDEX idx_pedidos_pendientes
        ON pedidos_fabrica (concesionario_id, created_at)
        WHERE estado = 'pendiente';
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
