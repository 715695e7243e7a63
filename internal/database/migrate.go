package database

import (
	"fmt"

	"gorm.io/gorm"

	"restaurant-pos/internal/database/models"
)

// Migrate creates the schema if it does not exist and seeds the default
// categories and tables. Safe to run on every startup: seeding only happens
// when the target table is empty.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Table{},
		&models.Customer{},
		&models.Payment{},
	); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}

	if err := seedCategories(db); err != nil {
		return fmt.Errorf("category seeding failed: %w", err)
	}
	if err := seedTables(db); err != nil {
		return fmt.Errorf("table seeding failed: %w", err)
	}
	return nil
}

func strPtr(s string) *string {
	return &s
}

func seedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []models.Category{
		{Name: "Appetizers", Color: "#ef4444", Description: strPtr("Starters and appetizers")},
		{Name: "Main Course", Color: "#f59e0b", Description: strPtr("Main dishes and entrees")},
		{Name: "Drinks", Color: "#3b82f6", Description: strPtr("Beverages and drinks")},
		{Name: "Desserts", Color: "#ec4899", Description: strPtr("Sweet treats and desserts")},
		{Name: "Sides", Color: "#10b981", Description: strPtr("Side dishes and extras")},
	}
	return db.Create(&categories).Error
}

func seedTables(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Table{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tables := make([]models.Table, 0, 12)
	for i := 1; i <= 12; i++ {
		section, capacity := "Outdoor", 6
		switch {
		case i <= 4:
			section, capacity = "Main Hall", 2
		case i <= 8:
			section, capacity = "VIP", 4
		}
		tables = append(tables, models.Table{
			Number:   i,
			Name:     fmt.Sprintf("Table %d", i),
			Capacity: capacity,
			Section:  section,
			Status:   models.TableAvailable,
		})
	}
	return db.Create(&tables).Error
}
