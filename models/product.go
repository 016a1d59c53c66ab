package models

import "time"

type Product struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	Name         string        `json:"name" gorm:"not null"`
	Category     string        `json:"category" gorm:"not null"`
	Image        string        `json:"image"`
	SizeVariants []SizeVariant `json:"size_variants,omitempty" gorm:"foreignKey:ProductID"`
	CrustOptions []CrustOption `json:"crust_options,omitempty" gorm:"foreignKey:ProductID"`
	IsVisible    bool          `json:"is_visible" gorm:"not null;default:true"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// SizeVariant carries the per-size price and the recipe for that size
type SizeVariant struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	ProductID uint         `json:"product_id" gorm:"not null;index"`
	SizeName  string       `json:"size_name" gorm:"not null"`
	Price     float64      `json:"price" gorm:"not null"`
	Recipe    []RecipeItem `json:"recipe,omitempty" gorm:"foreignKey:SizeVariantID"`
}

// RecipeItem links a size variant to an ingredient and the quantity it consumes.
// Stock is never decremented by order placement; recipes only document usage.
type RecipeItem struct {
	ID               uint        `json:"id" gorm:"primaryKey"`
	SizeVariantID    uint        `json:"size_variant_id" gorm:"not null;index"`
	IngredientID     uint        `json:"ingredient_id" gorm:"not null"`
	Ingredient       *Ingredient `json:"ingredient,omitempty" gorm:"foreignKey:IngredientID"`
	QuantityRequired float64     `json:"quantity_required" gorm:"not null"`
}

type CrustOption struct {
	ID              uint    `json:"id" gorm:"primaryKey"`
	ProductID       uint    `json:"product_id" gorm:"not null;index"`
	Name            string  `json:"name" gorm:"not null"`
	AdditionalPrice float64 `json:"additional_price" gorm:"not null;default:0"`
}
