package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/FahadStacks1996/Mad/middleware"
	"github.com/FahadStacks1996/Mad/models"
)

type ProductHandler struct {
	db *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

// ListProducts returns visible products to everyone. Admins asking for
// the admin view get the full catalog with recipe ingredient detail.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var products []models.Product
	query := h.db.Preload("SizeVariants").Preload("CrustOptions")

	if c.Query("adminView") == "true" && middleware.GetRole(c) == string(models.RoleAdmin) {
		query.Preload("SizeVariants.Recipe.Ingredient").Find(&products)
	} else {
		query.Where("is_visible = ?", true).Find(&products)
	}

	c.JSON(http.StatusOK, products)
}

type SizeVariantRequest struct {
	SizeName string  `json:"size_name" binding:"required"`
	Price    float64 `json:"price" binding:"min=0"`
	Recipe   []struct {
		IngredientID     uint    `json:"ingredient_id" binding:"required"`
		QuantityRequired float64 `json:"quantity_required" binding:"min=0"`
	} `json:"recipe"`
}

type CrustOptionRequest struct {
	Name            string  `json:"name" binding:"required"`
	AdditionalPrice float64 `json:"additional_price"`
}

type ProductRequest struct {
	Name         string               `json:"name" binding:"required"`
	Category     string               `json:"category" binding:"required"`
	Image        string               `json:"image"`
	SizeVariants []SizeVariantRequest `json:"size_variants"`
	CrustOptions []CrustOptionRequest `json:"crust_options"`
	IsVisible    *bool                `json:"is_visible"`
}

func (r ProductRequest) toModel() models.Product {
	product := models.Product{
		Name:      r.Name,
		Category:  r.Category,
		Image:     r.Image,
		IsVisible: true,
	}
	if r.IsVisible != nil {
		product.IsVisible = *r.IsVisible
	}
	for _, sv := range r.SizeVariants {
		variant := models.SizeVariant{SizeName: sv.SizeName, Price: sv.Price}
		for _, ri := range sv.Recipe {
			variant.Recipe = append(variant.Recipe, models.RecipeItem{
				IngredientID:     ri.IngredientID,
				QuantityRequired: ri.QuantityRequired,
			})
		}
		product.SizeVariants = append(product.SizeVariants, variant)
	}
	for _, co := range r.CrustOptions {
		product.CrustOptions = append(product.CrustOptions, models.CrustOption{
			Name:            co.Name,
			AdditionalPrice: co.AdditionalPrice,
		})
	}
	return product
}

// CreateProduct adds a product with its size variants, recipes and
// crust options (admin only)
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := req.toModel()
	if err := h.db.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding product"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct replaces a product's details. Variants and crust
// options are replaced wholesale when supplied.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var product models.Product
	if err := h.db.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	replacement := req.toModel()
	err := h.db.Transaction(func(tx *gorm.DB) error {
		// Clear old variants (and their recipes) before re-attaching
		var variantIDs []uint
		tx.Model(&models.SizeVariant{}).Where("product_id = ?", product.ID).Pluck("id", &variantIDs)
		if len(variantIDs) > 0 {
			if err := tx.Where("size_variant_id IN ?", variantIDs).Delete(&models.RecipeItem{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.SizeVariant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.CrustOption{}).Error; err != nil {
			return err
		}

		replacement.ID = product.ID
		replacement.CreatedAt = product.CreatedAt
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&replacement).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating product"})
		return
	}

	h.db.Preload("SizeVariants.Recipe").Preload("CrustOptions").First(&product, product.ID)
	c.JSON(http.StatusOK, product)
}
