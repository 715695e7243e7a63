package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"restaurant-pos/internal/database"
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

func TestCreateCustomerRequiresName(t *testing.T) {
	db := newTestDB(t)
	h := NewCustomerHandler(db)
	ctx := context.Background()

	if _, err := h.Create(ctx, CreateCustomerInput{}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}

	phone := "555-0101"
	customer, err := h.Create(ctx, CreateCustomerInput{Name: "Ada", Phone: &phone})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if customer.LoyaltyPoints != 0 {
		t.Errorf("expected zero loyalty points, got %d", customer.LoyaltyPoints)
	}
	if !customer.TotalSpent.IsZero() {
		t.Errorf("expected zero total spent, got %s", customer.TotalSpent)
	}
}

func TestListCustomersSortedByName(t *testing.T) {
	db := newTestDB(t)
	h := NewCustomerHandler(db)
	ctx := context.Background()

	for _, name := range []string{"Zed", "Ada", "Mia"} {
		if _, err := h.Create(ctx, CreateCustomerInput{Name: name}); err != nil {
			t.Fatalf("Create(%s): %v", name, err)
		}
	}

	customers, err := h.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(customers) != 3 {
		t.Fatalf("expected 3 customers, got %d", len(customers))
	}
	for i, want := range []string{"Ada", "Mia", "Zed"} {
		if customers[i].Name != want {
			t.Errorf("position %d: expected %q, got %q", i, want, customers[i].Name)
		}
	}
}
