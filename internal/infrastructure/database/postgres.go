package database

import (
	"fmt"

	"github.com/chopdesk/chopdesk-api/internal/config"
	"github.com/chopdesk/chopdesk-api/internal/domain/entity"
	"github.com/chopdesk/chopdesk-api/pkg/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, log *logrus.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.WithFields(logrus.Fields{
		"host": cfg.Host,
		"db":   cfg.Name,
	}).Info("connected to PostgreSQL")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		// Account entities
		&entity.Tenant{},
		&entity.User{},

		// Cash session ledger
		&entity.CashSession{},
		&entity.RevenueEntry{},
		&entity.ExpenseEntry{},

		// Inventory
		&entity.InventoryItem{},
		&entity.StockMovement{},

		// External facts (owned by the ordering module, migrated here for
		// local development only)
		&entity.PlatformPayment{},

		// System entities
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return err
	}

	// At most one open session per tenant and day, enforced by the store
	// itself. Duplicate-key violations surface as gorm.ErrDuplicatedKey.
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_one_open_session_per_day
		ON cash_sessions (tenant_id, session_date) WHERE status = 'open'`).Error
}

// SeedDemoTenant creates a demo tenant and owner user when ADMIN_EMAIL and
// ADMIN_PASSWORD are configured. Safe to call repeatedly.
func SeedDemoTenant(db *gorm.DB, log *logrus.Logger) error {
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	tenantName := viper.GetString("ADMIN_TENANT_NAME")

	if adminEmail == "" || adminPassword == "" {
		return nil
	}
	if tenantName == "" {
		tenantName = "Demo Restaurant"
	}

	var existing entity.User
	if err := db.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
		log.WithField("email", adminEmail).Debug("seed user already exists")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	ownerID := uuid.New()
	tenant := entity.Tenant{
		Name:    tenantName,
		Slug:    utils.Slugify(tenantName),
		OwnerID: ownerID,
	}
	if err := db.Create(&tenant).Error; err != nil {
		return fmt.Errorf("failed to create seed tenant: %w", err)
	}

	owner := entity.User{
		ID:        ownerID,
		TenantID:  tenant.ID,
		FirstName: "Owner",
		LastName:  tenantName,
		Email:     adminEmail,
		Password:  string(hashed),
		Role:      "owner",
	}
	if err := db.Create(&owner).Error; err != nil {
		return fmt.Errorf("failed to create seed user: %w", err)
	}

	log.WithFields(logrus.Fields{
		"tenant": tenant.Slug,
		"email":  adminEmail,
	}).Info("seeded demo tenant")
	return nil
}
