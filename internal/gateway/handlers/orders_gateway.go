package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"restaurant-pos/internal/database/models"
	orders "restaurant-pos/internal/services/orders/handler"
)

type OrderHTTPHandler struct {
	orders *orders.OrderHandler
}

func NewOrderHTTPHandler(h *orders.OrderHandler) *OrderHTTPHandler {
	return &OrderHTTPHandler{orders: h}
}

// Request structs
type CreateOrderRequest struct {
	TableNumber   int     `json:"table_number" binding:"required"`
	CustomerName  *string `json:"customer_name,omitempty"`
	CustomerPhone *string `json:"customer_phone,omitempty"`
	CustomerEmail *string `json:"customer_email,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

type AddOrderItemRequest struct {
	ProductID int32   `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Notes     *string `json:"notes,omitempty"`
}

type UpdateOrderRequest struct {
	TableNumber   *int                  `json:"table_number,omitempty"`
	Discount      *decimal.Decimal      `json:"discount,omitempty"`
	PaymentMethod *models.PaymentMethod `json:"payment_method,omitempty"`
	Notes         *string               `json:"notes,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

type CheckoutLineRequest struct {
	ProductID int32   `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Notes     *string `json:"notes,omitempty"`
}

type CheckoutRequest struct {
	TableNumber   int                   `json:"table_number" binding:"required"`
	CustomerName  *string               `json:"customer_name,omitempty"`
	CustomerPhone *string               `json:"customer_phone,omitempty"`
	CustomerEmail *string               `json:"customer_email,omitempty"`
	Notes         *string               `json:"notes,omitempty"`
	Items         []CheckoutLineRequest `json:"items" binding:"required,min=1"`
}

type PayOrderRequest struct {
	Method    models.PaymentMethod `json:"method" binding:"required"`
	Reference *string              `json:"reference,omitempty"`
}

func (h *OrderHTTPHandler) ListOrders(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	list, err := h.orders.List(c.Request.Context(), limit)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse("Orders retrieved successfully", list))
}

func (h *OrderHTTPHandler) ListActiveOrders(c *gin.Context) {
	list, err := h.orders.ListActive(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse("Active orders retrieved successfully", list))
}

func (h *OrderHTTPHandler) GetOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	order, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse("Order retrieved successfully", order))
}

func (h *OrderHTTPHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	order, err := h.orders.Create(c.Request.Context(), orders.CreateOrderInput{
		TableNumber:   req.TableNumber,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Notes:         req.Notes,
	})
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse("Order created successfully", order))
}

func (h *OrderHTTPHandler) AddOrderItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req AddOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	item, err := h.orders.AddItem(c.Request.Context(), id, orders.AddItemInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Notes:     req.Notes,
	})
	if err != nil {
		if errors.Is(err, orders.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse("Item added successfully", item))
}

func (h *OrderHTTPHandler) UpdateOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	order, err := h.orders.Update(c.Request.Context(), id, orders.OrderUpdate{
		TableNumber:   req.TableNumber,
		Discount:      req.Discount,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrNoFields):
			c.JSON(http.StatusOK, successResponse("No fields to update", nil))
		case errors.Is(err, orders.ErrInvalidMethod):
			c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		default:
			serviceError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, successResponse("Order updated successfully", order))
}

func (h *OrderHTTPHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, orders.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("Order status updated successfully", order))
}

func (h *OrderHTTPHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	lines := make([]orders.CheckoutLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, orders.CheckoutLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Notes:     item.Notes,
		})
	}

	order, err := h.orders.Checkout(c.Request.Context(), orders.CheckoutInput{
		TableNumber:   req.TableNumber,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Notes:         req.Notes,
		Lines:         lines,
	})
	if err != nil {
		if errors.Is(err, orders.ErrEmptyOrder) || errors.Is(err, orders.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse("Order placed successfully", order))
}

func (h *OrderHTTPHandler) PayOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req PayOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	payment, err := h.orders.Pay(c.Request.Context(), id, req.Method, req.Reference)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrAlreadyPaid), errors.Is(err, orders.ErrInvalidMethod):
			c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		default:
			serviceError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, successResponse("Payment recorded successfully", payment))
}
