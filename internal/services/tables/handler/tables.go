package handler

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"restaurant-pos/internal/database/models"
)

var (
	ErrNoFields      = errors.New("no fields to update")
	ErrInvalidStatus = errors.New("unknown table status")
)

// TableHandler manages the physical floor plan. Table status changes made
// here are independent of orders; the order service owns the coupling that
// frees a table when its order completes or is cancelled.
type TableHandler struct {
	db *gorm.DB
}

func NewTableHandler(db *gorm.DB) *TableHandler {
	return &TableHandler{db: db}
}

type CreateTableInput struct {
	Number   int
	Name     string
	Capacity int
	Section  string
}

type TableUpdate struct {
	Number   *int
	Name     *string
	Capacity *int
	Section  *string
}

func (h *TableHandler) List(ctx context.Context) ([]models.Table, error) {
	var tables []models.Table
	if err := h.db.WithContext(ctx).Order("number").Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

func (h *TableHandler) Get(ctx context.Context, id int32) (*models.Table, error) {
	var table models.Table
	if err := h.db.WithContext(ctx).First(&table, id).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

func (h *TableHandler) Create(ctx context.Context, in CreateTableInput) (*models.Table, error) {
	table := models.Table{
		Number:   in.Number,
		Name:     in.Name,
		Capacity: in.Capacity,
		Section:  in.Section,
		Status:   models.TableAvailable,
	}
	if table.Capacity == 0 {
		table.Capacity = 4
	}

	if err := h.db.WithContext(ctx).Create(&table).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

func (h *TableHandler) Update(ctx context.Context, id int32, in TableUpdate) (*models.Table, error) {
	updates := map[string]interface{}{}
	if in.Number != nil {
		updates["number"] = *in.Number
	}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Capacity != nil {
		updates["capacity"] = *in.Capacity
	}
	if in.Section != nil {
		updates["section"] = *in.Section
	}
	if len(updates) == 0 {
		return nil, ErrNoFields
	}

	var table models.Table
	if err := h.db.WithContext(ctx).First(&table, id).Error; err != nil {
		return nil, err
	}
	if err := h.db.WithContext(ctx).Model(&table).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

func (h *TableHandler) Delete(ctx context.Context, id int32) error {
	result := h.db.WithContext(ctx).Delete(&models.Table{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateStatus is the floor-plan panel's direct status write (seat, reserve,
// clean). It never looks at orders.
func (h *TableHandler) UpdateStatus(ctx context.Context, id int32, status models.TableStatus) (*models.Table, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	var table models.Table
	if err := h.db.WithContext(ctx).First(&table, id).Error; err != nil {
		return nil, err
	}
	if err := h.db.WithContext(ctx).Model(&table).Update("status", status).Error; err != nil {
		return nil, err
	}
	return &table, nil
}
