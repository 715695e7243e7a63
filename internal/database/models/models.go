package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the closed set of order lifecycle stages. Transitions are
// not restricted beyond membership: any valid status may follow any other.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderServed    OrderStatus = "served"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPreparing, OrderReady, OrderServed, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status ends the order's occupancy of a table.
func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	MethodCash   PaymentMethod = "cash"
	MethodCard   PaymentMethod = "card"
	MethodMobile PaymentMethod = "mobile"
	MethodCredit PaymentMethod = "credit"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodCard, MethodMobile, MethodCredit:
		return true
	}
	return false
}

type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TableReserved  TableStatus = "reserved"
	TableCleaning  TableStatus = "cleaning"
)

func (s TableStatus) Valid() bool {
	switch s {
	case TableAvailable, TableOccupied, TableReserved, TableCleaning:
		return true
	}
	return false
}

type Category struct {
	ID          int32     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Color       string    `gorm:"type:varchar(7);default:'#2563eb'" json:"color"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Products []Product `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
}

type Product struct {
	ID              int32           `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID      *int32          `gorm:"index" json:"category_id"`
	Name            string          `gorm:"type:varchar(200);not null" json:"name"`
	Description     *string         `gorm:"type:text" json:"description,omitempty"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Image           *string         `gorm:"type:varchar(500)" json:"image,omitempty"`
	SKU             *string         `gorm:"type:varchar(50);uniqueIndex" json:"sku,omitempty"`
	CostPrice       decimal.Decimal `gorm:"type:decimal(10,2)" json:"cost_price"`
	StockQuantity   int             `gorm:"default:0" json:"stock_quantity"`
	MinStock        int             `gorm:"default:5" json:"min_stock"`
	PreparationTime int             `gorm:"default:0" json:"preparation_time"`
	Active          bool            `gorm:"default:true" json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

type Order struct {
	ID            int32           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber   string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"order_number"`
	TableNumber   int             `gorm:"not null" json:"table_number"`
	CustomerName  *string         `gorm:"type:varchar(100)" json:"customer_name,omitempty"`
	CustomerPhone *string         `gorm:"type:varchar(20)" json:"customer_phone,omitempty"`
	CustomerEmail *string         `gorm:"type:varchar(100)" json:"customer_email,omitempty"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"subtotal"`
	Tax           decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"tax"`
	Discount      decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"discount"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total"`
	Status        OrderStatus     `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(20);default:'cash'" json:"payment_method"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(20);default:'pending'" json:"payment_status"`
	Notes         *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// OrderItem is immutable once created. Price and cost price are snapshots
// taken from the product at insertion time, so later menu edits never
// change historical order values.
type OrderItem struct {
	ID        int32           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int32           `gorm:"index;not null" json:"order_id"`
	ProductID int32           `gorm:"not null" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CostPrice decimal.Decimal `gorm:"type:decimal(10,2)" json:"cost_price"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Profit    decimal.Decimal `gorm:"type:decimal(10,2)" json:"profit"`
	Notes     *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"product,omitempty"`
}

// Table is correlated with orders only through the shared Number value.
// The order service is the single writer of that coupling.
type Table struct {
	ID        int32       `gorm:"primaryKey;autoIncrement" json:"id"`
	Number    int         `gorm:"uniqueIndex;not null" json:"number"`
	Name      string      `gorm:"type:varchar(50)" json:"name"`
	Capacity  int         `gorm:"not null;default:4" json:"capacity"`
	Section   string      `gorm:"type:varchar(50)" json:"section"`
	Status    TableStatus `gorm:"type:varchar(20);default:'available'" json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type Customer struct {
	ID            int32           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string          `gorm:"type:varchar(100);not null" json:"name"`
	Phone         *string         `gorm:"type:varchar(20);uniqueIndex" json:"phone,omitempty"`
	Email         *string         `gorm:"type:varchar(100)" json:"email,omitempty"`
	Address       *string         `gorm:"type:text" json:"address,omitempty"`
	BirthDate     *time.Time      `gorm:"type:date" json:"birth_date,omitempty"`
	LoyaltyPoints int             `gorm:"default:0" json:"loyalty_points"`
	TotalOrders   int             `gorm:"default:0" json:"total_orders"`
	TotalSpent    decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"total_spent"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type Payment struct {
	ID        int32           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int32           `gorm:"index;not null" json:"order_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Method    PaymentMethod   `gorm:"type:varchar(20);not null" json:"method"`
	Reference *string         `gorm:"type:varchar(100)" json:"reference,omitempty"`
	Notes     *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`

	Order *Order `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
}
