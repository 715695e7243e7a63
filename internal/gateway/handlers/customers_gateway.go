package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	customers "restaurant-pos/internal/services/customers/handler"
)

type CustomerHTTPHandler struct {
	customers *customers.CustomerHandler
}

func NewCustomerHTTPHandler(h *customers.CustomerHandler) *CustomerHTTPHandler {
	return &CustomerHTTPHandler{customers: h}
}

type CreateCustomerRequest struct {
	Name      string  `json:"name" binding:"required"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	Address   *string `json:"address,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"`
}

func (h *CustomerHTTPHandler) ListCustomers(c *gin.Context) {
	list, err := h.customers.List(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse("Customers retrieved successfully", list))
}

func (h *CustomerHTTPHandler) CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	var birthDate *time.Time
	if req.BirthDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("Invalid birth_date, expected YYYY-MM-DD"))
			return
		}
		birthDate = &parsed
	}

	customer, err := h.customers.Create(c.Request.Context(), customers.CreateCustomerInput{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		BirthDate: birthDate,
	})
	if err != nil {
		if errors.Is(err, customers.ErrNameRequired) {
			c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse("Customer created successfully", customer))
}
