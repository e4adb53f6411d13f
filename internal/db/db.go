package db

import (
	"log"
	"time"

	"github.com/tendecorte/turnos-api/internal/config"
	"github.com/tendecorte/turnos-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Slot{},
		&models.Notification{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Guard de doble reserva: a lo sumo un turno reservado/confirmado por
	// minuto, también bajo inserts concurrentes.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_turnos_fecha_activo
        ON turnos (fecha)
        WHERE estado IN ('reservado', 'confirmado')
    `)

	return db
}
