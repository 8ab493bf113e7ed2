package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/glowdesk/salon-platform/internal/config"
	"github.com/glowdesk/salon-platform/internal/models"
	"github.com/glowdesk/salon-platform/internal/timezone"
)

func NewDB(cfg *config.Config, log *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Business{},
		&models.Location{},
		&models.User{},
		&models.Service{},
		&models.WorkingHours{},
		&models.Client{},
		&models.Appointment{},
		&models.AppointmentService{},
		&models.AuditLog{},
	); err != nil {
		log.Fatal("failed to migrate", zap.Error(err))
	}

	db.Exec(`
        UPDATE businesses
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, timezone.DefaultTimezone)

	return db
}
