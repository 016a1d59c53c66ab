package models

import (
	"time"
)

// UserRole defines allowed roles for console users
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleCustomer UserRole = "customer"
)

type User struct {
	ID uint `json:"id" gorm:"primaryKey"`
	// Username is required for admins only; customers sign up with email.
	Username     *string       `json:"username" gorm:"uniqueIndex"`
	Email        *string       `json:"email" gorm:"index"`
	PasswordHash string        `json:"-" gorm:"not null"`
	Role         UserRole      `json:"role" gorm:"not null;default:'customer'"`
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	Phone        string        `json:"phone"`
	Addresses    []UserAddress `json:"addresses,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// UserAddress is a saved delivery address for a registered customer
type UserAddress struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	UserID uint   `json:"user_id" gorm:"not null;index"`
	Text   string `json:"text" gorm:"not null"`
}
