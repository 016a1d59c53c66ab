package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/FahadStacks1996/Mad/models"
)

type IngredientHandler struct {
	db *gorm.DB
}

func NewIngredientHandler(db *gorm.DB) *IngredientHandler {
	return &IngredientHandler{db: db}
}

// ListIngredients returns all ingredients sorted by name
func (h *IngredientHandler) ListIngredients(c *gin.Context) {
	var ingredients []models.Ingredient
	h.db.Order("name asc").Find(&ingredients)
	c.JSON(http.StatusOK, ingredients)
}

type IngredientRequest struct {
	Name              string   `json:"name" binding:"required"`
	Unit              string   `json:"unit" binding:"required"`
	StockQuantity     float64  `json:"stock_quantity" binding:"min=0"`
	LowStockThreshold *float64 `json:"low_stock_threshold"`
}

// CreateIngredient adds an inventory ingredient (admin only)
func (h *IngredientHandler) CreateIngredient(c *gin.Context) {
	var req IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.Ingredient
	if err := h.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Ingredient already exists"})
		return
	}

	ingredient := models.Ingredient{
		Name:          req.Name,
		Unit:          req.Unit,
		StockQuantity: req.StockQuantity,
	}
	if req.LowStockThreshold != nil {
		ingredient.LowStockThreshold = *req.LowStockThreshold
	}
	if err := h.db.Create(&ingredient).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding ingredient"})
		return
	}
	c.JSON(http.StatusCreated, ingredient)
}

// UpdateIngredient edits name, unit or threshold (admin only)
func (h *IngredientHandler) UpdateIngredient(c *gin.Context) {
	var ingredient models.Ingredient
	if err := h.db.First(&ingredient, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ingredient not found"})
		return
	}

	var req struct {
		Name              string   `json:"name"`
		Unit              string   `json:"unit"`
		LowStockThreshold *float64 `json:"low_stock_threshold"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := map[string]interface{}{}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.Unit != "" {
		update["unit"] = req.Unit
	}
	if req.LowStockThreshold != nil {
		update["low_stock_threshold"] = *req.LowStockThreshold
	}
	if err := h.db.Model(&ingredient).Updates(update).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating ingredient"})
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

// UpdateStock sets the absolute stock quantity (admin only).
// Orders never deduct stock; this endpoint is the only stock mutation.
func (h *IngredientHandler) UpdateStock(c *gin.Context) {
	var ingredient models.Ingredient
	if err := h.db.First(&ingredient, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ingredient not found"})
		return
	}

	var req struct {
		StockQuantity *float64 `json:"stock_quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *req.StockQuantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock quantity cannot be negative"})
		return
	}

	if err := h.db.Model(&ingredient).Update("stock_quantity", *req.StockQuantity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating stock"})
		return
	}
	ingredient.StockQuantity = *req.StockQuantity
	c.JSON(http.StatusOK, ingredient)
}

// DeleteIngredient removes an ingredient (admin only)
func (h *IngredientHandler) DeleteIngredient(c *gin.Context) {
	res := h.db.Delete(&models.Ingredient{}, c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting ingredient"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ingredient not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ingredient deleted"})
}
