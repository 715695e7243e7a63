package handler

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"restaurant-pos/internal/database/models"
)

var ErrNameRequired = errors.New("name is required")

// CustomerHandler keeps the customer directory. Loyalty points and spend
// counters live in the schema but no flow maintains them yet.
type CustomerHandler struct {
	db *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{db: db}
}

type CreateCustomerInput struct {
	Name      string
	Phone     *string
	Email     *string
	Address   *string
	BirthDate *time.Time
}

func (h *CustomerHandler) List(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := h.db.WithContext(ctx).Order("name").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (h *CustomerHandler) Create(ctx context.Context, in CreateCustomerInput) (*models.Customer, error) {
	if in.Name == "" {
		return nil, ErrNameRequired
	}

	customer := models.Customer{
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		BirthDate: in.BirthDate,
	}

	if err := h.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}
