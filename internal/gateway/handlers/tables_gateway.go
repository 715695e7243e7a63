package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-pos/internal/database/models"
	tables "restaurant-pos/internal/services/tables/handler"
)

type TableHTTPHandler struct {
	tables *tables.TableHandler
}

func NewTableHTTPHandler(h *tables.TableHandler) *TableHTTPHandler {
	return &TableHTTPHandler{tables: h}
}

// Request structs
type CreateTableRequest struct {
	Number   int    `json:"number" binding:"required"`
	Name     string `json:"name,omitempty"`
	Capacity int    `json:"capacity,omitempty"`
	Section  string `json:"section,omitempty"`
}

type UpdateTableRequest struct {
	Number   *int    `json:"number,omitempty"`
	Name     *string `json:"name,omitempty"`
	Capacity *int    `json:"capacity,omitempty"`
	Section  *string `json:"section,omitempty"`
}

type UpdateTableStatusRequest struct {
	Status models.TableStatus `json:"status" binding:"required"`
}

func (h *TableHTTPHandler) ListTables(c *gin.Context) {
	list, err := h.tables.List(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse("Tables retrieved successfully", list))
}

func (h *TableHTTPHandler) GetTable(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	table, err := h.tables.Get(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse("Table retrieved successfully", table))
}

func (h *TableHTTPHandler) CreateTable(c *gin.Context) {
	var req CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	table, err := h.tables.Create(c.Request.Context(), tables.CreateTableInput{
		Number:   req.Number,
		Name:     req.Name,
		Capacity: req.Capacity,
		Section:  req.Section,
	})
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse("Table created successfully", table))
}

func (h *TableHTTPHandler) UpdateTable(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	table, err := h.tables.Update(c.Request.Context(), id, tables.TableUpdate{
		Number:   req.Number,
		Name:     req.Name,
		Capacity: req.Capacity,
		Section:  req.Section,
	})
	if err != nil {
		if errors.Is(err, tables.ErrNoFields) {
			c.JSON(http.StatusOK, successResponse("No fields to update", nil))
			return
		}
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("Table updated successfully", table))
}

func (h *TableHTTPHandler) DeleteTable(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.tables.Delete(c.Request.Context(), id); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse("Table deleted successfully", nil))
}

func (h *TableHTTPHandler) UpdateTableStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateTableStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	table, err := h.tables.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, tables.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("Table status updated successfully", table))
}
