package config

import (
	"fmt"

	"github.com/Govind-619/StudioSite/models"
	"github.com/Govind-619/StudioSite/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the database connection and migrates the schema
func InitDB(cfg *Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{}
	if cfg.IsProduction() {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	utils.LogInfo("Connected to database %s on %s:%s", cfg.DBName, cfg.DBHost, cfg.DBPort)
	return db, nil
}

// Migrate auto-migrates the order and admin tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Order{}, &models.Admin{}); err != nil {
		return fmt.Errorf("failed to migrate database: %v", err)
	}
	return nil
}
