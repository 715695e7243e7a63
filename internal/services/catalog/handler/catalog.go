package handler

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"restaurant-pos/internal/database/models"
)

const (
	productCacheKey = "pos:products"
	cacheTTL        = 5 * time.Minute
)

var (
	ErrNoFields      = errors.New("no fields to update")
	ErrNameRequired  = errors.New("name is required")
	ErrNegativePrice = errors.New("price must not be negative")
)

// CatalogHandler owns the menu: categories and products. Product list reads
// go through a best-effort redis cache that every mutation invalidates.
type CatalogHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewCatalogHandler(db *gorm.DB, redisClient *redis.Client) *CatalogHandler {
	return &CatalogHandler{
		db:    db,
		redis: redisClient,
	}
}

// --- Categories ---

type CreateCategoryInput struct {
	Name        string
	Color       string
	Description *string
}

type CategoryUpdate struct {
	Name        *string
	Color       *string
	Description *string
}

func (h *CatalogHandler) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := h.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (h *CatalogHandler) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	if in.Name == "" {
		return nil, ErrNameRequired
	}

	category := models.Category{
		Name:        in.Name,
		Color:       in.Color,
		Description: in.Description,
	}
	if category.Color == "" {
		category.Color = "#2563eb"
	}

	if err := h.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}

	h.invalidateProductCache(ctx)
	return &category, nil
}

func (h *CatalogHandler) UpdateCategory(ctx context.Context, id int32, in CategoryUpdate) (*models.Category, error) {
	updates := map[string]interface{}{}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, ErrNameRequired
		}
		updates["name"] = *in.Name
	}
	if in.Color != nil {
		updates["color"] = *in.Color
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if len(updates) == 0 {
		return nil, ErrNoFields
	}

	var category models.Category
	if err := h.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	if err := h.db.WithContext(ctx).Model(&category).Updates(updates).Error; err != nil {
		return nil, err
	}

	h.invalidateProductCache(ctx)
	return &category, nil
}

// DeleteCategory removes the category row. Products that referenced it are
// kept and their category_id becomes NULL through the foreign key action.
func (h *CatalogHandler) DeleteCategory(ctx context.Context, id int32) error {
	result := h.db.WithContext(ctx).Delete(&models.Category{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	h.invalidateProductCache(ctx)
	return nil
}

// --- Products ---

type CreateProductInput struct {
	CategoryID      *int32
	Name            string
	Description     *string
	Price           decimal.Decimal
	Image           *string
	SKU             *string
	CostPrice       decimal.Decimal
	StockQuantity   int
	MinStock        *int
	PreparationTime int
}

type ProductUpdate struct {
	CategoryID      *int32
	Name            *string
	Description     *string
	Price           *decimal.Decimal
	Image           *string
	SKU             *string
	CostPrice       *decimal.Decimal
	StockQuantity   *int
	MinStock        *int
	PreparationTime *int
}

// ListProducts returns active products, optionally filtered by category.
// The unfiltered listing is cached; filtered reads always hit the database.
func (h *CatalogHandler) ListProducts(ctx context.Context, categoryID *int32) ([]models.Product, error) {
	if categoryID == nil {
		if cached, ok := h.cachedProducts(ctx); ok {
			return cached, nil
		}
	}

	query := h.db.WithContext(ctx).Where("active = ?", true)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}

	if categoryID == nil {
		h.cacheProducts(ctx, products)
	}
	return products, nil
}

func (h *CatalogHandler) GetProduct(ctx context.Context, id int32) (*models.Product, error) {
	var product models.Product
	if err := h.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (h *CatalogHandler) CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	if in.Name == "" {
		return nil, ErrNameRequired
	}
	if in.Price.IsNegative() {
		return nil, ErrNegativePrice
	}

	minStock := 5
	if in.MinStock != nil {
		minStock = *in.MinStock
	}

	product := models.Product{
		CategoryID:      in.CategoryID,
		Name:            in.Name,
		Description:     in.Description,
		Price:           in.Price,
		Image:           in.Image,
		SKU:             in.SKU,
		CostPrice:       in.CostPrice,
		StockQuantity:   in.StockQuantity,
		MinStock:        minStock,
		PreparationTime: in.PreparationTime,
		Active:          true,
	}

	if err := h.db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, err
	}

	h.invalidateProductCache(ctx)
	return &product, nil
}

func (h *CatalogHandler) UpdateProduct(ctx context.Context, id int32, in ProductUpdate) (*models.Product, error) {
	updates := map[string]interface{}{}
	if in.CategoryID != nil {
		updates["category_id"] = *in.CategoryID
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, ErrNameRequired
		}
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, ErrNegativePrice
		}
		updates["price"] = *in.Price
	}
	if in.Image != nil {
		updates["image"] = *in.Image
	}
	if in.SKU != nil {
		updates["sku"] = *in.SKU
	}
	if in.CostPrice != nil {
		updates["cost_price"] = *in.CostPrice
	}
	if in.StockQuantity != nil {
		updates["stock_quantity"] = *in.StockQuantity
	}
	if in.MinStock != nil {
		updates["min_stock"] = *in.MinStock
	}
	if in.PreparationTime != nil {
		updates["preparation_time"] = *in.PreparationTime
	}
	if len(updates) == 0 {
		return nil, ErrNoFields
	}

	var product models.Product
	if err := h.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	if err := h.db.WithContext(ctx).Model(&product).Updates(updates).Error; err != nil {
		return nil, err
	}

	h.invalidateProductCache(ctx)
	return &product, nil
}

// DeleteProduct deactivates the product. The row stays so historical order
// items keep a valid reference; listings stop returning it.
func (h *CatalogHandler) DeleteProduct(ctx context.Context, id int32) error {
	result := h.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		Update("active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	h.invalidateProductCache(ctx)
	return nil
}

// --- Cache ---

func (h *CatalogHandler) cachedProducts(ctx context.Context) ([]models.Product, bool) {
	if h.redis == nil {
		return nil, false
	}
	raw, err := h.redis.Get(ctx, productCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var products []models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false
	}
	return products, true
}

func (h *CatalogHandler) cacheProducts(ctx context.Context, products []models.Product) {
	if h.redis == nil {
		return
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return
	}
	_ = h.redis.Set(ctx, productCacheKey, raw, cacheTTL).Err()
}

func (h *CatalogHandler) invalidateProductCache(ctx context.Context) {
	if h.redis == nil {
		return
	}
	_ = h.redis.Del(ctx, productCacheKey).Err()
}
