package models

import (
	"time"

	"gorm.io/gorm"
)

// RiderStatus is the single source of truth for rider availability
type RiderStatus string

const (
	RiderAvailable RiderStatus = "Available"
	RiderOnOrder   RiderStatus = "On Order"
	RiderDayOff    RiderStatus = "Day Off"
)

type Rider struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	Name         string      `json:"name" gorm:"not null"`
	Phone        string      `json:"phone" gorm:"uniqueIndex;not null"`
	BikeNumber   string      `json:"bike_number" gorm:"not null"`
	Username     string      `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string      `json:"-" gorm:"not null"`
	Status       RiderStatus `json:"status" gorm:"not null;default:'Available'"`
	// IsAvailable is derived from Status and never stored, so the two
	// can't diverge. Kept in the JSON body for client compatibility.
	IsAvailable    bool      `json:"is_available" gorm:"-"`
	CurrentOrderID *uint     `json:"current_order_id"`
	Location       string    `json:"location"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AfterFind recomputes the derived availability flag on every read
func (r *Rider) AfterFind(tx *gorm.DB) error {
	r.IsAvailable = r.Status == RiderAvailable
	return nil
}
