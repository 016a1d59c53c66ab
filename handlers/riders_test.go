package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/FahadStacks1996/Mad/dispatch"
	"github.com/FahadStacks1996/Mad/logger"
	"github.com/FahadStacks1996/Mad/models"
	"github.com/FahadStacks1996/Mad/testutil"
)

func newRiderHandler(db *gorm.DB) *RiderHandler {
	return NewRiderHandler(db, dispatch.NewRegistry(db), logger.Nop())
}

func seedRosterRider(t *testing.T, db *gorm.DB, name string, status models.RiderStatus) *models.Rider {
	t.Helper()
	rider := &models.Rider{
		Name:         name,
		Phone:        "0321-" + name,
		BikeNumber:   "LHR-" + name,
		Username:     name,
		PasswordHash: "x",
		Status:       status,
	}
	if err := db.Create(rider).Error; err != nil {
		t.Fatalf("seed rider: %v", err)
	}
	return rider
}

func TestCreateRider_DuplicatePhoneOrUsername(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.OpenTestDB(t, "riders_create")
	h := newRiderHandler(db)

	r := gin.New()
	r.POST("/api/admin/riders", asRole("admin", 1, 0), h.CreateRider)

	body := gin.H{
		"name": "Waqar", "phone": "0333-1234567", "bike_number": "KHI-9",
		"username": "waqar", "password": "secret1",
	}
	w := doJSON(t, r, http.MethodPost, "/api/admin/riders", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create rider: %d: %s", w.Code, w.Body.String())
	}
	var created models.Rider
	_ = json.Unmarshal(w.Body.Bytes(), &created)
	if created.Status != models.RiderAvailable || !created.IsAvailable {
		t.Fatalf("new riders start Available, got %+v", created)
	}

	w = doJSON(t, r, http.MethodPost, "/api/admin/riders", body)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate should 409, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/admin/riders", gin.H{
		"name": "Short", "phone": "0333-000", "bike_number": "x",
		"username": "short", "password": "123",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("short password should 400, got %d", w.Code)
	}
}

func TestMarkDelivered(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.OpenTestDB(t, "riders_delivered")
	h := newRiderHandler(db)

	assigned := seedRosterRider(t, db, "yasir", models.RiderOnOrder)
	stranger := seedRosterRider(t, db, "zubair", models.RiderAvailable)

	order := models.Order{
		OrderNumber: "01012025000010", TotalAmount: 1100,
		Status: models.StatusProcessing, TrackingStatus: models.TrackingOutForDelivery,
		CustomerName: "Walk-in Customer", RiderID: &assigned.ID,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	db.Model(assigned).Update("current_order_id", order.ID)

	path := fmt.Sprintf("/api/rider/orders/%d/delivered", order.ID)

	strangerRouter := gin.New()
	strangerRouter.PUT("/api/rider/orders/:id/delivered", asRole("rider", 0, stranger.ID), h.MarkDelivered)
	w := doJSON(t, strangerRouter, http.MethodPut, path, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("foreign rider should 403, got %d: %s", w.Code, w.Body.String())
	}

	ownRouter := gin.New()
	ownRouter.PUT("/api/rider/orders/:id/delivered", asRole("rider", 0, assigned.ID), h.MarkDelivered)
	w = doJSON(t, ownRouter, http.MethodPut, path, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("mark delivered: %d: %s", w.Code, w.Body.String())
	}

	var gotOrder models.Order
	db.First(&gotOrder, order.ID)
	if gotOrder.Status != models.StatusCompleted || gotOrder.TrackingStatus != models.TrackingDelivered {
		t.Fatalf("expected Completed/Delivered, got %s/%s", gotOrder.Status, gotOrder.TrackingStatus)
	}
	var gotRider models.Rider
	db.First(&gotRider, assigned.ID)
	if gotRider.Status != models.RiderAvailable || gotRider.CurrentOrderID != nil {
		t.Fatalf("rider must be freed after delivery, got %+v", gotRider)
	}

	// Delivering twice would move tracking backwards-or-equal.
	w = doJSON(t, ownRouter, http.MethodPut, path, nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("second delivery should 422, got %d", w.Code)
	}

	w = doJSON(t, ownRouter, http.MethodPut, "/api/rider/orders/9999/delivered", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown order should 404, got %d", w.Code)
	}
}

func TestMarkDelivered_CancelledOrderStaysTerminal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.OpenTestDB(t, "riders_cancelled")
	orderHandler := newOrderHandler(t, db)
	riderHandler := newRiderHandler(db)

	rider := seedRosterRider(t, db, "ghulam", models.RiderOnOrder)
	order := models.Order{
		OrderNumber: "01012025000013", TotalAmount: 950,
		Status: models.StatusPending, TrackingStatus: models.TrackingOutForDelivery,
		CustomerName: "Walk-in Customer", RiderID: &rider.ID,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	db.Model(rider).Update("current_order_id", order.ID)

	adminRouter := gin.New()
	adminRouter.PUT("/api/orders/:id/status", asRole("admin", 1, 0), orderHandler.UpdateOrderStatus)
	riderRouter := gin.New()
	riderRouter.PUT("/api/rider/orders/:id/delivered", asRole("rider", 0, rider.ID), riderHandler.MarkDelivered)

	w := doJSON(t, adminRouter, http.MethodPut,
		fmt.Sprintf("/api/orders/%d/status", order.ID), gin.H{"status": "Cancelled"})
	if w.Code != http.StatusOK {
		t.Fatalf("cancel: %d: %s", w.Code, w.Body.String())
	}

	// The rider reference survives cancellation as history, so the guard
	// must be the state machine, not ownership alone.
	w = doJSON(t, riderRouter, http.MethodPut,
		fmt.Sprintf("/api/rider/orders/%d/delivered", order.ID), nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("delivering a cancelled order should 422, got %d: %s", w.Code, w.Body.String())
	}

	var gotOrder models.Order
	db.First(&gotOrder, order.ID)
	if gotOrder.Status != models.StatusCancelled {
		t.Fatalf("cancelled is terminal, got %s", gotOrder.Status)
	}
	if gotOrder.TrackingStatus == models.TrackingDelivered {
		t.Fatal("tracking must not advance on a rejected delivery")
	}
}

func TestRiderSetStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.OpenTestDB(t, "riders_status")
	h := newRiderHandler(db)

	rider := seedRosterRider(t, db, "asad", models.RiderAvailable)

	r := gin.New()
	r.PUT("/api/rider/status", asRole("rider", 0, rider.ID), h.SetStatus)

	w := doJSON(t, r, http.MethodPut, "/api/rider/status", gin.H{"status": "Day Off"})
	if w.Code != http.StatusOK {
		t.Fatalf("set day off: %d: %s", w.Code, w.Body.String())
	}
	var got models.Rider
	db.First(&got, rider.ID)
	if got.Status != models.RiderDayOff {
		t.Fatalf("expected Day Off, got %s", got.Status)
	}

	w = doJSON(t, r, http.MethodPut, "/api/rider/status", gin.H{"status": "On Order"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("On Order is dispatcher-only, got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodPut, "/api/rider/status", gin.H{"status": "Napping"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown status should 400, got %d", w.Code)
	}
}

func TestMyOrders_ScopedToCaller(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.OpenTestDB(t, "riders_myorders")
	h := newRiderHandler(db)

	mine := seedRosterRider(t, db, "bashir", models.RiderAvailable)
	other := seedRosterRider(t, db, "chand", models.RiderAvailable)

	db.Create(&models.Order{OrderNumber: "01012025000011", TotalAmount: 600, Status: models.StatusCompleted, TrackingStatus: models.TrackingDelivered, CustomerName: "Walk-in Customer", RiderID: &mine.ID})
	db.Create(&models.Order{OrderNumber: "01012025000012", TotalAmount: 800, Status: models.StatusProcessing, TrackingStatus: models.TrackingOutForDelivery, CustomerName: "Walk-in Customer", RiderID: &other.ID})

	r := gin.New()
	r.GET("/api/rider/orders", asRole("rider", 0, mine.ID), h.MyOrders)

	w := doJSON(t, r, http.MethodGet, "/api/rider/orders", nil)
	var listing struct {
		Count  int            `json:"count"`
		Orders []models.Order `json:"orders"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &listing)
	if listing.Count != 1 || listing.Orders[0].RiderID == nil || *listing.Orders[0].RiderID != mine.ID {
		t.Fatalf("rider should only see own orders: %+v", listing)
	}
}

func TestListAvailableRidersEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.OpenTestDB(t, "riders_available")
	h := newRiderHandler(db)

	seedRosterRider(t, db, "daud", models.RiderAvailable)
	seedRosterRider(t, db, "ehsan", models.RiderDayOff)
	seedRosterRider(t, db, "farid", models.RiderOnOrder)

	r := gin.New()
	r.GET("/api/admin/riders/available", asRole("admin", 1, 0), h.ListAvailableRiders)

	w := doJSON(t, r, http.MethodGet, "/api/admin/riders/available", nil)
	var listing struct {
		Count  int            `json:"count"`
		Riders []models.Rider `json:"riders"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &listing)
	if listing.Count != 1 || listing.Riders[0].Name != "daud" {
		t.Fatalf("expected only the available rider, got %+v", listing)
	}
}
