package handler

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"restaurant-pos/internal/database/models"
)

// StatsHandler produces the dashboard aggregates. Every call recomputes
// from full scans; nothing here is a maintained counter or cached.
type StatsHandler struct {
	db *gorm.DB
}

func NewStatsHandler(db *gorm.DB) *StatsHandler {
	return &StatsHandler{db: db}
}

type Stats struct {
	ActiveOrders   int64           `json:"active_orders"`
	TotalProducts  int64           `json:"total_products"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalCustomers int64           `json:"total_customers"`
}

func (h *StatsHandler) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats

	err := h.db.WithContext(ctx).Model(&models.Order{}).
		Where("status NOT IN ?", []models.OrderStatus{models.OrderCompleted, models.OrderCancelled}).
		Count(&stats.ActiveOrders).Error
	if err != nil {
		return nil, err
	}

	err = h.db.WithContext(ctx).Model(&models.Product{}).
		Where("active = ?", true).
		Count(&stats.TotalProducts).Error
	if err != nil {
		return nil, err
	}

	var revenue struct {
		Total decimal.Decimal
	}
	err = h.db.WithContext(ctx).Model(&models.Order{}).
		Where("payment_status = ?", models.PaymentPaid).
		Select("COALESCE(SUM(total), 0) AS total").
		Scan(&revenue).Error
	if err != nil {
		return nil, err
	}
	stats.TotalRevenue = revenue.Total

	err = h.db.WithContext(ctx).Model(&models.Customer{}).Count(&stats.TotalCustomers).Error
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
