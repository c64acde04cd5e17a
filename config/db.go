package config

import (
	"log"

	"aavm-dashboard/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB opens the Postgres connection and migrates the schema. Returns
// nil when no database is configured or the store is unreachable so the
// caller can fall back to degraded mode.
func InitDB(cfg Config) *gorm.DB {
	if !cfg.HasDatabase() {
		log.Println("DATABASE_URL not set, running without durable store")
		return nil
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Printf("Database unreachable, falling back to degraded mode: %v", err)
		return nil
	}

	if err := db.AutoMigrate(&models.User{}, &models.Article{}, &models.ApprovalToken{}); err != nil {
		log.Printf("Migration failed: %v", err)
	}

	return db
}
