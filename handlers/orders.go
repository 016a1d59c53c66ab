package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/FahadStacks1996/Mad/dispatch"
	"github.com/FahadStacks1996/Mad/logger"
	"github.com/FahadStacks1996/Mad/middleware"
	"github.com/FahadStacks1996/Mad/models"
	"github.com/FahadStacks1996/Mad/sequence"
	"github.com/FahadStacks1996/Mad/statemachine"
)

type OrderHandler struct {
	db         *gorm.DB
	numbers    *sequence.Generator
	dispatcher *dispatch.Dispatcher
	riders     *dispatch.Registry
	log        logger.ILogger
}

func NewOrderHandler(db *gorm.DB, numbers *sequence.Generator, dispatcher *dispatch.Dispatcher, riders *dispatch.Registry, log logger.ILogger) *OrderHandler {
	return &OrderHandler{db: db, numbers: numbers, dispatcher: dispatcher, riders: riders, log: log}
}

type CreateOrderRequest struct {
	Items []struct {
		ProductID uint          `json:"product_id" binding:"required"`
		Name      string        `json:"name" binding:"required"`
		SizeName  string        `json:"size_name"`
		Crust     *models.Crust `json:"selected_crust"`
		Price     float64       `json:"price" binding:"min=0"`
		Quantity  int           `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1,dive"`
	TotalAmount     *float64 `json:"total_amount" binding:"required"`
	CustomerName    string   `json:"customer_name"`
	PaymentMethod   string   `json:"payment_method"`
	UserID          *uint    `json:"user_id"`
	DeliveryAddress string   `json:"delivery_address"`
	CustomerPhone   string   `json:"customer_phone"`
}

// CreateOrder places a new order. Open to storefront, POS and guest
// checkout alike; the order number comes from the daily sequence and the
// order is never created without one.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *req.TotalAmount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order items and valid total amount required"})
		return
	}

	order := models.Order{
		TotalAmount:     *req.TotalAmount,
		Status:          models.StatusPending,
		TrackingStatus:  models.TrackingPreparing,
		PaymentMethod:   req.PaymentMethod,
		DeliveryAddress: req.DeliveryAddress,
		CustomerPhone:   req.CustomerPhone,
	}
	if req.CustomerName != "" {
		order.CustomerName = req.CustomerName
	} else {
		order.CustomerName = "Walk-in Customer"
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = "Cash"
	}

	// Attach the customer reference only when it resolves to a
	// registered customer; guest checkouts stay anonymous.
	if req.UserID != nil {
		var user models.User
		if err := h.db.Where("id = ? AND role = ?", *req.UserID, models.RoleCustomer).
			First(&user).Error; err == nil {
			order.UserID = &user.ID
		}
	}

	for _, it := range req.Items {
		item := models.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			SizeName:  it.SizeName,
			Price:     it.Price,
			Quantity:  it.Quantity,
		}
		if it.Crust != nil {
			item.Crust = *it.Crust
		}
		order.Items = append(order.Items, item)
	}

	number, err := h.numbers.Next(time.Now())
	if err != nil {
		h.log.Error("order number generation failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate order number"})
		return
	}
	order.OrderNumber = number

	if err := h.db.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	h.log.Info("order created",
		logger.Uint("order_id", order.ID),
		logger.String("order_number", order.OrderNumber))
	c.JSON(http.StatusCreated, order)
}

// ListOrders returns all orders for admins, own orders for customers
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var orders []models.Order
	query := h.db.Preload("Items").Preload("Rider")

	if middleware.GetRole(c) != string(models.RoleAdmin) {
		query = query.Where("user_id = ?", middleware.GetUserID(c))
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Order("created_at desc").Find(&orders)

	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus moves an order through the business state machine.
// Closing an order (Completed/Cancelled) frees its rider; the rider
// reference on the order stays put as assignment history.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var order models.Order
	if err := h.db.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := statemachine.CanTransition(order.Status, req.Status, "admin"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    order.Status,
			"requested":         req.Status,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
		})
		return
	}

	if err := h.db.Model(&order).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}
	order.Status = req.Status

	// Release only after the status write committed. A failed write must
	// leave the rider assigned, not freed against an open order.
	if (req.Status == models.StatusCompleted || req.Status == models.StatusCancelled) && order.RiderID != nil {
		if err := h.riders.Release(c.Request.Context(), *order.RiderID); err != nil {
			h.log.Error("release rider on order close",
				logger.Uint("order_id", order.ID), logger.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to release rider"})
			return
		}
	}

	c.JSON(http.StatusOK, order)
}

type AssignRiderRequest struct {
	RiderID uint `json:"rider_id" binding:"required"`
}

// AssignRider dispatches an available rider to the order
func (h *OrderHandler) AssignRider(c *gin.Context) {
	var order models.Order
	if err := h.db.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var req AssignRiderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assigned, err := h.dispatcher.AssignRider(c.Request.Context(), order.ID, req.RiderID)
	if err != nil {
		switch {
		case errors.Is(err, dispatch.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, dispatch.ErrRiderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Rider not found"})
		case errors.Is(err, dispatch.ErrRiderNotAvailable):
			c.JSON(http.StatusConflict, gin.H{"error": "Selected rider not available"})
		case errors.Is(err, dispatch.ErrOrderAlreadyAssigned):
			c.JSON(http.StatusConflict, gin.H{"error": "Order already has a rider"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error assigning rider"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rider assigned", "order": assigned})
}

// GetTracking is the public live-status projection: tracking status, ETA
// and a rider summary, straight from current state with no caching.
func (h *OrderHandler) GetTracking(c *gin.Context) {
	var order models.Order
	if err := h.db.Preload("Rider").First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var rider gin.H
	if order.Rider != nil {
		rider = gin.H{
			"name":        order.Rider.Name,
			"phone":       order.Rider.Phone,
			"bike_number": order.Rider.BikeNumber,
			"status":      order.Rider.Status,
			"location":    order.Rider.Location,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"tracking_status":         order.TrackingStatus,
		"estimated_delivery_time": order.EstimatedDeliveryTime,
		"rider":                   rider,
	})
}
