package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	catalog "restaurant-pos/internal/services/catalog/handler"
)

type CatalogHTTPHandler struct {
	catalog *catalog.CatalogHandler
}

func NewCatalogHTTPHandler(h *catalog.CatalogHandler) *CatalogHTTPHandler {
	return &CatalogHTTPHandler{catalog: h}
}

// Request structs
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Color       string  `json:"color,omitempty"`
	Description *string `json:"description,omitempty"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Color       *string `json:"color,omitempty"`
	Description *string `json:"description,omitempty"`
}

type CreateProductRequest struct {
	CategoryID      *int32          `json:"category_id,omitempty"`
	Name            string          `json:"name" binding:"required"`
	Description     *string         `json:"description,omitempty"`
	Price           decimal.Decimal `json:"price"`
	Image           *string         `json:"image,omitempty"`
	SKU             *string         `json:"sku,omitempty"`
	CostPrice       decimal.Decimal `json:"cost_price"`
	StockQuantity   int             `json:"stock_quantity"`
	MinStock        *int            `json:"min_stock,omitempty"`
	PreparationTime int             `json:"preparation_time"`
}

type UpdateProductRequest struct {
	CategoryID      *int32           `json:"category_id,omitempty"`
	Name            *string          `json:"name,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	Image           *string          `json:"image,omitempty"`
	SKU             *string          `json:"sku,omitempty"`
	CostPrice       *decimal.Decimal `json:"cost_price,omitempty"`
	StockQuantity   *int             `json:"stock_quantity,omitempty"`
	MinStock        *int             `json:"min_stock,omitempty"`
	PreparationTime *int             `json:"preparation_time,omitempty"`
}

// --- Categories ---

func (h *CatalogHTTPHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse("Categories retrieved successfully", categories))
}

func (h *CatalogHTTPHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	category, err := h.catalog.CreateCategory(c.Request.Context(), catalog.CreateCategoryInput{
		Name:        req.Name,
		Color:       req.Color,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, catalog.ErrNameRequired) {
			c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse("Category created successfully", category))
}

func (h *CatalogHTTPHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	category, err := h.catalog.UpdateCategory(c.Request.Context(), id, catalog.CategoryUpdate{
		Name:        req.Name,
		Color:       req.Color,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNoFields):
			c.JSON(http.StatusOK, successResponse("No fields to update", nil))
		case errors.Is(err, catalog.ErrNameRequired):
			c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		default:
			serviceError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, successResponse("Category updated successfully", category))
}

func (h *CatalogHTTPHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse("Category deleted successfully", nil))
}

// --- Products ---

func (h *CatalogHTTPHandler) ListProducts(c *gin.Context) {
	var categoryID *int32
	if raw := c.Query("category_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("Invalid category_id"))
			return
		}
		id := int32(parsed)
		categoryID = &id
	}

	products, err := h.catalog.ListProducts(c.Request.Context(), categoryID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse("Products retrieved successfully", products))
}

func (h *CatalogHTTPHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse("Product retrieved successfully", product))
}

func (h *CatalogHTTPHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), catalog.CreateProductInput{
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Image:           req.Image,
		SKU:             req.SKU,
		CostPrice:       req.CostPrice,
		StockQuantity:   req.StockQuantity,
		MinStock:        req.MinStock,
		PreparationTime: req.PreparationTime,
	})
	if err != nil {
		if errors.Is(err, catalog.ErrNameRequired) || errors.Is(err, catalog.ErrNegativePrice) {
			c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse("Product created successfully", product))
}

func (h *CatalogHTTPHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), id, catalog.ProductUpdate{
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Image:           req.Image,
		SKU:             req.SKU,
		CostPrice:       req.CostPrice,
		StockQuantity:   req.StockQuantity,
		MinStock:        req.MinStock,
		PreparationTime: req.PreparationTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNoFields):
			c.JSON(http.StatusOK, successResponse("No fields to update", nil))
		case errors.Is(err, catalog.ErrNameRequired), errors.Is(err, catalog.ErrNegativePrice):
			c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		default:
			serviceError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, successResponse("Product updated successfully", product))
}

func (h *CatalogHTTPHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse("Product deactivated successfully", nil))
}
