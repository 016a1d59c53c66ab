package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/FahadStacks1996/Mad/dispatch"
	"github.com/FahadStacks1996/Mad/logger"
	"github.com/FahadStacks1996/Mad/middleware"
	"github.com/FahadStacks1996/Mad/models"
	"github.com/FahadStacks1996/Mad/statemachine"
)

type RiderHandler struct {
	db       *gorm.DB
	registry *dispatch.Registry
	log      logger.ILogger
}

func NewRiderHandler(db *gorm.DB, registry *dispatch.Registry, log logger.ILogger) *RiderHandler {
	return &RiderHandler{db: db, registry: registry, log: log}
}

// ── Admin: rider management ─────────────────────────────────────────────────

// ListRiders returns every rider on the roster
func (h *RiderHandler) ListRiders(c *gin.Context) {
	var riders []models.Rider
	h.db.Order("name asc").Find(&riders)
	c.JSON(http.StatusOK, gin.H{"count": len(riders), "riders": riders})
}

// ListAvailableRiders returns riders ready for an assignment
func (h *RiderHandler) ListAvailableRiders(c *gin.Context) {
	riders, err := h.registry.ListAvailable(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching available riders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(riders), "riders": riders})
}

type CreateRiderRequest struct {
	Name       string `json:"name" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	BikeNumber string `json:"bike_number" binding:"required"`
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required,min=6"`
}

// CreateRider adds a rider to the roster (admin only)
func (h *RiderHandler) CreateRider(c *gin.Context) {
	var req CreateRiderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.Rider
	if err := h.db.Where("phone = ? OR username = ?", req.Phone, req.Username).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Phone or username already exists"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	rider := models.Rider{
		Name:         req.Name,
		Phone:        req.Phone,
		BikeNumber:   req.BikeNumber,
		Username:     req.Username,
		PasswordHash: string(hash),
		Status:       models.RiderAvailable,
	}
	if err := h.db.Create(&rider).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rider"})
		return
	}
	// Reload so AfterFind derives the availability flag for the response
	h.db.First(&rider, rider.ID)

	h.log.Info("rider created", logger.Uint("rider_id", rider.ID), logger.String("name", rider.Name))
	c.JSON(http.StatusCreated, rider)
}

// ── Rider portal ────────────────────────────────────────────────────────────

// MyOrders lists every order ever assigned to the calling rider
func (h *RiderHandler) MyOrders(c *gin.Context) {
	riderID := middleware.GetRiderID(c)
	var orders []models.Order
	h.db.Preload("Items").
		Where("rider_id = ?", riderID).
		Order("created_at desc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// MarkDelivered is the terminal delivery confirmation. Only the rider
// currently assigned to the order may call it; it completes the order
// and frees the rider for the next assignment.
func (h *RiderHandler) MarkDelivered(c *gin.Context) {
	riderID := middleware.GetRiderID(c)

	var order models.Order
	if err := h.db.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.RiderID == nil || *order.RiderID != riderID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized for this order"})
		return
	}
	// Both axes must allow it: the business status via the rider rows of
	// the transition table (a cancelled order stays cancelled), and the
	// tracking axis, which only moves forward.
	if err := statemachine.CanTransition(order.Status, models.StatusCompleted, "rider"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err := statemachine.CanAdvanceTracking(order.TrackingStatus, models.TrackingDelivered); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if err := h.db.Model(&order).Updates(map[string]interface{}{
		"status":          models.StatusCompleted,
		"tracking_status": models.TrackingDelivered,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error marking as delivered"})
		return
	}
	if err := h.registry.Release(c.Request.Context(), riderID); err != nil {
		h.log.Error("release rider after delivery",
			logger.Uint("rider_id", riderID), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to release rider"})
		return
	}

	order.Status = models.StatusCompleted
	order.TrackingStatus = models.TrackingDelivered
	c.JSON(http.StatusOK, gin.H{"message": "Order marked as delivered", "order": order})
}

type RiderStatusRequest struct {
	Status models.RiderStatus `json:"status" binding:"required"`
}

// SetStatus is the rider's availability toggle (Available / Day Off)
func (h *RiderHandler) SetStatus(c *gin.Context) {
	riderID := middleware.GetRiderID(c)

	var req RiderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.registry.SetStatus(c.Request.Context(), riderID, req.Status); err != nil {
		switch {
		case errors.Is(err, dispatch.ErrInvalidRiderStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		case errors.Is(err, dispatch.ErrRiderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Rider not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated", "status": req.Status})
}
