package infra

import (
	"fmt"

	"torresegura/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies idempotent SQL patches that GORM
// cannot express (partial indexes).
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

// RunMigrations applies the schema. Shared with integration tooling so a
// fresh database can be prepared without starting the server.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Edificio{},
		&model.Vivienda{},
		&model.Residente{},
		&model.ConceptoCuota{},
		&model.Cuota{},
		&model.Pago{},
		&model.PagoCuota{},
		&model.CategoriaGasto{},
		&model.Gasto{},
		&model.EstadoCuenta{},
		&model.Visita{},
		&model.Alerta{},
		&model.MovimientoResidente{},
		&model.Puesto{},
		&model.Empleado{},
		&model.Asignacion{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Each statement uses IF NOT EXISTS semantics so re-running is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Partial index for the late-fee sweep: only unpaid, overdue cuotas
		// with late fees enabled are scanned by the cron.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_cuotas_pendientes_vencidas') THEN
		    CREATE INDEX idx_cuotas_pendientes_vencidas
		        ON cuotas (fecha_vencimiento)
		        WHERE pagada = false;
		  END IF;
		END $$`,
		// Partial index for open visits (salida pending) used by the guard screens
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_visitas_activas') THEN
		    CREATE INDEX idx_visitas_activas
		        ON visitas (fecha_hora_entrada)
		        WHERE fecha_hora_salida IS NULL;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
