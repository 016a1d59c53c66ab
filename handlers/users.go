package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/FahadStacks1996/Mad/models"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// FindByPhone looks up a registered customer for the POS checkout flow
func (h *UserHandler) FindByPhone(c *gin.Context) {
	var user models.User
	if err := h.db.Preload("Addresses").
		Where("phone = ?", c.Param("phone")).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

type AddAddressRequest struct {
	CustomerID uint   `json:"customer_id" binding:"required"`
	Address    string `json:"address" binding:"required"`
}

// AddAddress saves a delivery address on a customer profile,
// skipping duplicates
func (h *UserHandler) AddAddress(c *gin.Context) {
	var req AddAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := h.db.Preload("Addresses").First(&user, req.CustomerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	exists := false
	for _, a := range user.Addresses {
		if a.Text == req.Address {
			exists = true
			break
		}
	}
	if !exists {
		addr := models.UserAddress{UserID: user.ID, Text: req.Address}
		if err := h.db.Create(&addr).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding address"})
			return
		}
		user.Addresses = append(user.Addresses, addr)
	}

	c.JSON(http.StatusOK, gin.H{"addresses": user.Addresses})
}
