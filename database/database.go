package database

import (
	"fmt"
	"log"
	"os"

	"issuecart-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=issuecart port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Ensure PostgreSQL has gen_random_uuid() available (pgcrypto extension).
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		return fmt.Errorf("failed to enable pgcrypto extension: %w", err)
	}

	return db.AutoMigrate(
		&models.Customer{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Session{},
	)
}

// SeedDemoData loads a handful of customers and products so the development
// customer switch has something to work with. Each table is seeded only when
// it is empty, so restarts never duplicate rows.
func SeedDemoData(db *gorm.DB) error {
	var customerCount int64
	if err := db.Model(&models.Customer{}).Count(&customerCount).Error; err != nil {
		return err
	}
	if customerCount == 0 {
		customers := []models.Customer{
			{Username: "tanaka", Age: 28, Email: "tanaka@example.com", Sex: models.SexMale},
			{Username: "suzuki", Age: 34, Email: "suzuki@example.com", Sex: models.SexFemale},
			{Username: "sato", Age: 22, Email: "sato@example.com", Sex: models.SexOther},
		}
		if err := db.Create(&customers).Error; err != nil {
			return err
		}
		log.Printf("Seeded %d demo customers", len(customers))
	}

	var productCount int64
	if err := db.Model(&models.Product{}).Count(&productCount).Error; err != nil {
		return err
	}
	if productCount == 0 {
		products := []models.Product{
			{Name: "りんご", Price: decimal.RequireFromString("120.00")},
			{Name: "コーヒー豆", Price: decimal.RequireFromString("1480.00")},
			{Name: "ノート", Price: decimal.RequireFromString("350.00")},
			{Name: "マグカップ", Price: decimal.RequireFromString("980.00")},
		}
		if err := db.Create(&products).Error; err != nil {
			return err
		}
		log.Printf("Seeded %d demo products", len(products))
	}

	return nil
}
