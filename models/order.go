package models

import "time"

// OrderStatus represents the business status of an order
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusCompleted  OrderStatus = "Completed"
	StatusCancelled  OrderStatus = "Cancelled"
	// StatusOutOfStock is part of the enum but no operation currently
	// produces it: stock is never deducted when an order is placed.
	StatusOutOfStock OrderStatus = "Failed - Out of Stock"
)

// TrackingStatus is the fulfillment axis, independent of OrderStatus
type TrackingStatus string

const (
	TrackingPreparing      TrackingStatus = "Preparing"
	TrackingOutForDelivery TrackingStatus = "Out for Delivery"
	TrackingDelivered      TrackingStatus = "Delivered"
)

type Order struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	OrderNumber string      `json:"order_number" gorm:"uniqueIndex;not null"`
	Items       []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	TotalAmount float64     `json:"total_amount" gorm:"not null"`
	Status      OrderStatus `json:"status" gorm:"not null;default:'Pending'"`

	CustomerName    string `json:"customer_name" gorm:"default:'Walk-in Customer'"`
	UserID          *uint  `json:"user_id"`
	User            *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	PaymentMethod   string `json:"payment_method" gorm:"default:'Cash'"`
	DeliveryAddress string `json:"delivery_address"`
	CustomerPhone   string `json:"customer_phone"`

	// Dispatch snapshot, populated once when a rider is assigned.
	RiderID               *uint          `json:"rider_id"`
	Rider                 *Rider         `json:"rider,omitempty" gorm:"foreignKey:RiderID"`
	TrackingStatus        TrackingStatus `json:"tracking_status" gorm:"not null;default:'Preparing'"`
	EstimatedDeliveryTime *time.Time     `json:"estimated_delivery_time"`
	DeliveryDistanceKm    float64        `json:"delivery_distance_km"`
	DeliveryDurationMin   float64        `json:"delivery_duration_min"`
	DeliveryDistanceText  string         `json:"delivery_distance_text"`
	DeliveryDurationText  string         `json:"delivery_duration_text"`
	RiderAssignedAt       *time.Time     `json:"rider_assigned_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	OrderID   uint    `json:"order_id" gorm:"not null"`
	ProductID uint    `json:"product_id" gorm:"not null"`
	Name      string  `json:"name" gorm:"not null"` // snapshot name at order time
	SizeName  string  `json:"size_name"`
	Crust     Crust   `json:"selected_crust" gorm:"embedded;embeddedPrefix:crust_"`
	Price     float64 `json:"price" gorm:"not null"` // snapshot unit price
	Quantity  int     `json:"quantity" gorm:"not null;default:1"`
}

// Crust is an optional crust selection carried on each line item
type Crust struct {
	Name            string  `json:"name"`
	AdditionalPrice float64 `json:"additional_price"`
}

// IsTerminal reports whether the business status accepts no further transitions
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusOutOfStock
}
