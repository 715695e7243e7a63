package handler

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"restaurant-pos/internal/database"
	"restaurant-pos/internal/database/models"
	orders "restaurant-pos/internal/services/orders/handler"
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

func TestStatsOnEmptyDatabase(t *testing.T) {
	db := newTestDB(t)
	h := NewStatsHandler(db)

	stats, err := h.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.ActiveOrders != 0 || stats.TotalProducts != 0 || stats.TotalCustomers != 0 {
		t.Errorf("expected zero counts, got %+v", stats)
	}
	if !stats.TotalRevenue.IsZero() {
		t.Errorf("expected zero revenue, got %s", stats.TotalRevenue)
	}
}

func TestStatsCountsAndRevenue(t *testing.T) {
	db := newTestDB(t)
	h := NewStatsHandler(db)
	ctx := context.Background()

	product := models.Product{Name: "Ramen", Price: decimal.RequireFromString("11.00"), Active: true}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	inactive := models.Product{Name: "Retired Dish", Price: decimal.RequireFromString("8.00"), Active: false}
	if err := db.Create(&inactive).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	if err := db.Create(&models.Customer{Name: "Ada"}).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	oh := orders.NewOrderHandler(db)

	paid, err := oh.Checkout(ctx, orders.CheckoutInput{
		TableNumber: 1,
		Lines:       []orders.CheckoutLine{{ProductID: product.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if _, err := oh.Pay(ctx, paid.ID, models.MethodCash, nil); err != nil {
		t.Fatalf("Pay: %v", err)
	}

	// a second, unpaid order still counts as active but adds no revenue
	if _, err := oh.Checkout(ctx, orders.CheckoutInput{
		TableNumber: 2,
		Lines:       []orders.CheckoutLine{{ProductID: product.ID, Quantity: 1}},
	}); err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	stats, err := h.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.ActiveOrders != 2 {
		t.Errorf("expected 2 active orders, got %d", stats.ActiveOrders)
	}
	if stats.TotalProducts != 1 {
		t.Errorf("expected 1 active product, got %d", stats.TotalProducts)
	}
	if stats.TotalCustomers != 1 {
		t.Errorf("expected 1 customer, got %d", stats.TotalCustomers)
	}
	// 2 x 11.00 = 22.00 subtotal, 2.20 tax
	if !stats.TotalRevenue.Equal(decimal.RequireFromString("24.20")) {
		t.Errorf("expected revenue 24.20, got %s", stats.TotalRevenue)
	}

	if _, err := oh.UpdateStatus(ctx, paid.ID, models.OrderCompleted); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	stats, err = h.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.ActiveOrders != 1 {
		t.Errorf("expected 1 active order after completion, got %d", stats.ActiveOrders)
	}
	// revenue keeps the completed order
	if !stats.TotalRevenue.Equal(decimal.RequireFromString("24.20")) {
		t.Errorf("expected revenue unchanged at 24.20, got %s", stats.TotalRevenue)
	}
}
