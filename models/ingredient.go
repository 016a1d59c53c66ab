package models

import "time"

type Ingredient struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	Name              string    `json:"name" gorm:"uniqueIndex;not null"`
	Unit              string    `json:"unit" gorm:"not null"`
	StockQuantity     float64   `json:"stock_quantity" gorm:"not null;default:0"`
	LowStockThreshold float64   `json:"low_stock_threshold" gorm:"not null;default:0"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
