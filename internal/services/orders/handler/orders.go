package handler

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"restaurant-pos/internal/database/models"
)

// taxRate is the fixed 10% applied on every total recomputation.
var taxRate = decimal.RequireFromString("0.10")

var (
	ErrNoFields        = errors.New("no fields to update")
	ErrInvalidStatus   = errors.New("unknown order status")
	ErrInvalidMethod   = errors.New("unknown payment method")
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
	ErrEmptyOrder      = errors.New("order must have at least one item")
	ErrAlreadyPaid     = errors.New("order already paid")
)

// OrderHandler implements the order lifecycle: creation, line items, total
// derivation, status transitions and the table coupling, plus the checkout
// orchestration. It is the only component with cross-entity side effects.
type OrderHandler struct {
	db *gorm.DB
}

func NewOrderHandler(db *gorm.DB) *OrderHandler {
	return &OrderHandler{db: db}
}

type CreateOrderInput struct {
	TableNumber   int
	CustomerName  *string
	CustomerPhone *string
	CustomerEmail *string
	Notes         *string
}

type AddItemInput struct {
	ProductID int32
	Quantity  int
	Notes     *string
}

type OrderUpdate struct {
	TableNumber   *int
	Discount      *decimal.Decimal
	PaymentMethod *models.PaymentMethod
	Notes         *string
}

type CheckoutLine struct {
	ProductID int32
	Quantity  int
	Notes     *string
}

type CheckoutInput struct {
	TableNumber   int
	CustomerName  *string
	CustomerPhone *string
	CustomerEmail *string
	Notes         *string
	Lines         []CheckoutLine
}

// generateOrderNumber builds the human-facing order label. Timestamp plus a
// random suffix; the unique index on order_number catches the rare collision.
func generateOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%d", time.Now().UnixMilli(), rand.Intn(1000))
}

func (h *OrderHandler) Create(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	order := models.Order{
		OrderNumber:   generateOrderNumber(),
		TableNumber:   in.TableNumber,
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		CustomerEmail: in.CustomerEmail,
		Notes:         in.Notes,
		Subtotal:      decimal.Zero,
		Tax:           decimal.Zero,
		Discount:      decimal.Zero,
		Total:         decimal.Zero,
		Status:        models.OrderPending,
		PaymentMethod: models.MethodCash,
		PaymentStatus: models.PaymentPending,
	}

	if err := h.db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// AddItem snapshots the product's current price and cost price onto a new
// line item and recomputes the order totals, all in one transaction. A
// missing order or product leaves the order untouched.
func (h *OrderHandler) AddItem(ctx context.Context, orderID int32, in AddItemInput) (*models.OrderItem, error) {
	if in.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var item models.OrderItem
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}

		var product models.Product
		if err := tx.First(&product, in.ProductID).Error; err != nil {
			return err
		}

		qty := decimal.NewFromInt(int64(in.Quantity))
		subtotal := product.Price.Mul(qty)
		profit := subtotal.Sub(product.CostPrice.Mul(qty))

		item = models.OrderItem{
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  in.Quantity,
			Price:     product.Price,
			CostPrice: product.CostPrice,
			Subtotal:  subtotal,
			Profit:    profit,
			Notes:     in.Notes,
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}

		return recomputeTotals(tx, &order)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// recomputeTotals derives the order's money columns from its current line
// items: subtotal is the sum of item subtotals, tax is 10% of that, and the
// stored discount is carried through into the total.
func recomputeTotals(tx *gorm.DB, order *models.Order) error {
	var row struct {
		Subtotal decimal.Decimal
	}
	err := tx.Model(&models.OrderItem{}).
		Where("order_id = ?", order.ID).
		Select("COALESCE(SUM(subtotal), 0) AS subtotal").
		Scan(&row).Error
	if err != nil {
		return err
	}

	subtotal := row.Subtotal
	tax := subtotal.Mul(taxRate).Round(2)
	total := subtotal.Add(tax).Sub(order.Discount)

	return tx.Model(order).Updates(map[string]interface{}{
		"subtotal": subtotal,
		"tax":      tax,
		"total":    total,
	}).Error
}

// UpdateStatus writes the new status. Any member of the status set may
// follow any other; only unknown values are rejected. Completing or
// cancelling an order frees the table sharing its table_number — the sole
// mechanism that releases a table after service.
func (h *OrderHandler) UpdateStatus(ctx context.Context, orderID int32, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	var order models.Order
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}
		if err := tx.Model(&order).Update("status", status).Error; err != nil {
			return err
		}

		if status.Terminal() {
			return tx.Model(&models.Table{}).
				Where("number = ?", order.TableNumber).
				Update("status", models.TableAvailable).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (h *OrderHandler) Get(ctx context.Context, orderID int32) (*models.Order, error) {
	var order models.Order
	err := h.db.WithContext(ctx).
		Preload("Items.Product").
		First(&order, orderID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListActive returns orders still in service, newest first.
func (h *OrderHandler) ListActive(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := h.db.WithContext(ctx).
		Where("status NOT IN ?", []models.OrderStatus{models.OrderCompleted, models.OrderCancelled}).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (h *OrderHandler) List(ctx context.Context, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	var orders []models.Order
	err := h.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (h *OrderHandler) Update(ctx context.Context, orderID int32, in OrderUpdate) (*models.Order, error) {
	updates := map[string]interface{}{}
	if in.TableNumber != nil {
		updates["table_number"] = *in.TableNumber
	}
	if in.Discount != nil {
		updates["discount"] = *in.Discount
	}
	if in.PaymentMethod != nil {
		if !in.PaymentMethod.Valid() {
			return nil, ErrInvalidMethod
		}
		updates["payment_method"] = *in.PaymentMethod
	}
	if in.Notes != nil {
		updates["notes"] = *in.Notes
	}
	if len(updates) == 0 {
		return nil, ErrNoFields
	}

	var order models.Order
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return err
		}
		if in.Discount != nil {
			return recomputeTotals(tx, &order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Checkout runs the point-of-sale sequence as a single transaction: create
// the order, add every cart line, then mark the table occupied. Any failing
// step rolls the whole sequence back.
func (h *OrderHandler) Checkout(ctx context.Context, in CheckoutInput) (*models.Order, error) {
	if len(in.Lines) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, line := range in.Lines {
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	var orderID int32
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order := models.Order{
			OrderNumber:   generateOrderNumber(),
			TableNumber:   in.TableNumber,
			CustomerName:  in.CustomerName,
			CustomerPhone: in.CustomerPhone,
			CustomerEmail: in.CustomerEmail,
			Notes:         in.Notes,
			Subtotal:      decimal.Zero,
			Tax:           decimal.Zero,
			Discount:      decimal.Zero,
			Total:         decimal.Zero,
			Status:        models.OrderPending,
			PaymentMethod: models.MethodCash,
			PaymentStatus: models.PaymentPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, line := range in.Lines {
			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				return err
			}

			qty := decimal.NewFromInt(int64(line.Quantity))
			subtotal := product.Price.Mul(qty)
			item := models.OrderItem{
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  line.Quantity,
				Price:     product.Price,
				CostPrice: product.CostPrice,
				Subtotal:  subtotal,
				Profit:    subtotal.Sub(product.CostPrice.Mul(qty)),
				Notes:     line.Notes,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			if err := recomputeTotals(tx, &order); err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Table{}).
			Where("number = ?", in.TableNumber).
			Update("status", models.TableOccupied).Error; err != nil {
			return err
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return h.Get(ctx, orderID)
}

// Pay records a payment row for the order's current total and marks the
// order paid. An already-paid order is rejected.
func (h *OrderHandler) Pay(ctx context.Context, orderID int32, method models.PaymentMethod, reference *string) (*models.Payment, error) {
	if !method.Valid() {
		return nil, ErrInvalidMethod
	}

	var payment models.Payment
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}
		if order.PaymentStatus == models.PaymentPaid {
			return ErrAlreadyPaid
		}

		payment = models.Payment{
			OrderID:   order.ID,
			Amount:    order.Total,
			Method:    method,
			Reference: reference,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		return tx.Model(&order).Updates(map[string]interface{}{
			"payment_status": models.PaymentPaid,
			"payment_method": method,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
