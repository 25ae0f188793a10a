package database

import (
	"testing"

	"issuecart-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}

	tables := []string{
		`CREATE TABLE IF NOT EXISTS "customers" (
			"id" TEXT PRIMARY KEY, "username" TEXT NOT NULL UNIQUE, "age" INTEGER,
			"email" TEXT NOT NULL UNIQUE, "sex" TEXT NOT NULL, "created_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "products" (
			"id" TEXT PRIMARY KEY, "name" TEXT NOT NULL, "price" NUMERIC NOT NULL,
			"created_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "carts" (
			"id" TEXT PRIMARY KEY, "customer_id" TEXT NOT NULL,
			"created_at" DATETIME, "updated_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "cart_items" (
			"id" TEXT PRIMARY KEY, "cart_id" TEXT NOT NULL, "product_id" TEXT NOT NULL,
			"quantity" INTEGER NOT NULL DEFAULT 1 CHECK ("quantity" >= 0),
			"added_at" DATETIME
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_cart_items_cart_product ON "cart_items"("cart_id","product_id")`,
		`CREATE TABLE IF NOT EXISTS "sessions" (
			"id" TEXT PRIMARY KEY, "token" TEXT NOT NULL UNIQUE, "customer_id" TEXT NOT NULL,
			"created_at" DATETIME, "updated_at" DATETIME
		)`,
	}

	for _, sql := range tables {
		if err := db.Exec(sql).Error; err != nil {
			t.Fatal(err)
		}
	}
	return db
}

func TestSeedDemoDataEmptyDB(t *testing.T) {
	db := setupTestDB(t)

	if err := SeedDemoData(db); err != nil {
		t.Fatal(err)
	}

	var customerCount int64
	db.Model(&models.Customer{}).Count(&customerCount)
	if customerCount == 0 {
		t.Error("expected demo customers to be seeded")
	}

	var productCount int64
	db.Model(&models.Product{}).Count(&productCount)
	if productCount == 0 {
		t.Error("expected demo products to be seeded")
	}
}

func TestSeedDemoDataIdempotent(t *testing.T) {
	db := setupTestDB(t)

	if err := SeedDemoData(db); err != nil {
		t.Fatal(err)
	}

	var firstCustomers, firstProducts int64
	db.Model(&models.Customer{}).Count(&firstCustomers)
	db.Model(&models.Product{}).Count(&firstProducts)

	// Second call should skip seeding entirely
	if err := SeedDemoData(db); err != nil {
		t.Fatal(err)
	}

	var secondCustomers, secondProducts int64
	db.Model(&models.Customer{}).Count(&secondCustomers)
	db.Model(&models.Product{}).Count(&secondProducts)

	if firstCustomers != secondCustomers {
		t.Errorf("expected %d customers after reseed, got %d", firstCustomers, secondCustomers)
	}
	if firstProducts != secondProducts {
		t.Errorf("expected %d products after reseed, got %d", firstProducts, secondProducts)
	}
}

func TestSeedDemoDataSkipsExistingCustomers(t *testing.T) {
	db := setupTestDB(t)

	existing := models.Customer{Username: "existing", Age: 50, Email: "existing@example.com", Sex: models.SexMale}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatal(err)
	}

	if err := SeedDemoData(db); err != nil {
		t.Fatal(err)
	}

	var count int64
	db.Model(&models.Customer{}).Count(&count)
	if count != 1 {
		t.Errorf("expected seeding to skip non-empty customer table, got %d rows", count)
	}

	// Products table was empty, so it still gets seeded
	var productCount int64
	db.Model(&models.Product{}).Count(&productCount)
	if productCount == 0 {
		t.Error("expected products to be seeded")
	}
}
