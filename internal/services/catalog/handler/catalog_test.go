package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"restaurant-pos/internal/database"
	"restaurant-pos/internal/database/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestCreateCategoryDefaultsColor(t *testing.T) {
	db := newTestDB(t)
	h := NewCatalogHandler(db, nil)
	ctx := context.Background()

	category, err := h.CreateCategory(ctx, CreateCategoryInput{Name: "Specials"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if category.Color != "#2563eb" {
		t.Errorf("expected default color, got %q", category.Color)
	}

	if _, err := h.CreateCategory(ctx, CreateCategoryInput{}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

func TestUpdateCategoryRequiresFields(t *testing.T) {
	db := newTestDB(t)
	h := NewCatalogHandler(db, nil)
	ctx := context.Background()

	category, err := h.CreateCategory(ctx, CreateCategoryInput{Name: "Soups", Color: "#111111"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	if _, err := h.UpdateCategory(ctx, category.ID, CategoryUpdate{}); !errors.Is(err, ErrNoFields) {
		t.Fatalf("expected ErrNoFields, got %v", err)
	}

	empty := ""
	if _, err := h.UpdateCategory(ctx, category.ID, CategoryUpdate{Name: &empty}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}

	name := "Hot Soups"
	updated, err := h.UpdateCategory(ctx, category.ID, CategoryUpdate{Name: &name})
	if err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	if updated.Name != "Hot Soups" {
		t.Errorf("expected renamed category, got %q", updated.Name)
	}
	if updated.Color != "#111111" {
		t.Errorf("color must survive a name-only update, got %q", updated.Color)
	}
}

func TestDeleteCategoryDetachesProducts(t *testing.T) {
	db := newTestDB(t)
	h := NewCatalogHandler(db, nil)
	ctx := context.Background()

	category, err := h.CreateCategory(ctx, CreateCategoryInput{Name: "Seasonal"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	product, err := h.CreateProduct(ctx, CreateProductInput{
		Name:       "Pumpkin Soup",
		CategoryID: &category.ID,
		Price:      decimal.RequireFromString("6.50"),
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	if err := h.DeleteCategory(ctx, category.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}

	var kept models.Product
	if err := db.First(&kept, product.ID).Error; err != nil {
		t.Fatalf("product must survive category deletion: %v", err)
	}
	if kept.CategoryID != nil {
		t.Errorf("expected detached product, got category_id %d", *kept.CategoryID)
	}

	if err := h.DeleteCategory(ctx, category.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found on second delete, got %v", err)
	}
}

func TestCreateProductValidatesAndDefaults(t *testing.T) {
	db := newTestDB(t)
	h := NewCatalogHandler(db, nil)
	ctx := context.Background()

	if _, err := h.CreateProduct(ctx, CreateProductInput{Price: decimal.NewFromInt(1)}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}

	negative := decimal.RequireFromString("-0.01")
	if _, err := h.CreateProduct(ctx, CreateProductInput{Name: "Bad", Price: negative}); !errors.Is(err, ErrNegativePrice) {
		t.Fatalf("expected ErrNegativePrice, got %v", err)
	}

	product, err := h.CreateProduct(ctx, CreateProductInput{
		Name:  "Lemonade",
		Price: decimal.RequireFromString("3.00"),
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if !product.Active {
		t.Error("new products must be active")
	}
	if product.MinStock != 5 {
		t.Errorf("expected default min stock 5, got %d", product.MinStock)
	}
}

func TestDeleteProductIsSoft(t *testing.T) {
	db := newTestDB(t)
	h := NewCatalogHandler(db, nil)
	ctx := context.Background()

	product, err := h.CreateProduct(ctx, CreateProductInput{
		Name:  "Espresso",
		Price: decimal.RequireFromString("2.00"),
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	if err := h.DeleteProduct(ctx, product.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}

	// the row stays so old order items keep their reference
	var kept models.Product
	if err := db.First(&kept, product.ID).Error; err != nil {
		t.Fatalf("expected product row retained: %v", err)
	}
	if kept.Active {
		t.Error("expected product marked inactive")
	}

	listed, err := h.ListProducts(ctx, nil)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	for _, p := range listed {
		if p.ID == product.ID {
			t.Error("inactive product must not appear in listings")
		}
	}

	if err := h.DeleteProduct(ctx, 9999); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}

func TestListProductsFiltersByCategory(t *testing.T) {
	db := newTestDB(t)
	h := NewCatalogHandler(db, nil)
	ctx := context.Background()

	drinks, err := h.CreateCategory(ctx, CreateCategoryInput{Name: "Cold Drinks"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	food, err := h.CreateCategory(ctx, CreateCategoryInput{Name: "Snacks"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	if _, err := h.CreateProduct(ctx, CreateProductInput{
		Name: "Iced Tea", CategoryID: &drinks.ID, Price: decimal.RequireFromString("2.50"),
	}); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if _, err := h.CreateProduct(ctx, CreateProductInput{
		Name: "Nachos", CategoryID: &food.ID, Price: decimal.RequireFromString("5.00"),
	}); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	filtered, err := h.ListProducts(ctx, &drinks.ID)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Name != "Iced Tea" {
		t.Fatalf("expected only Iced Tea, got %d products", len(filtered))
	}
}

func TestUpdateProductPartialFields(t *testing.T) {
	db := newTestDB(t)
	h := NewCatalogHandler(db, nil)
	ctx := context.Background()

	product, err := h.CreateProduct(ctx, CreateProductInput{
		Name:      "Bruschetta",
		Price:     decimal.RequireFromString("4.00"),
		CostPrice: decimal.RequireFromString("1.50"),
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	if _, err := h.UpdateProduct(ctx, product.ID, ProductUpdate{}); !errors.Is(err, ErrNoFields) {
		t.Fatalf("expected ErrNoFields, got %v", err)
	}

	negative := decimal.RequireFromString("-1")
	if _, err := h.UpdateProduct(ctx, product.ID, ProductUpdate{Price: &negative}); !errors.Is(err, ErrNegativePrice) {
		t.Fatalf("expected ErrNegativePrice, got %v", err)
	}

	price := decimal.RequireFromString("4.50")
	updated, err := h.UpdateProduct(ctx, product.ID, ProductUpdate{Price: &price})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if !updated.Price.Equal(price) {
		t.Errorf("expected price 4.50, got %s", updated.Price)
	}
	if !updated.CostPrice.Equal(decimal.RequireFromString("1.50")) {
		t.Errorf("cost price must survive a price-only update, got %s", updated.CostPrice)
	}
}
