package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/FahadStacks1996/Mad/handlers"
	"github.com/FahadStacks1996/Mad/middleware"
	"github.com/FahadStacks1996/Mad/models"
)

// Handlers bundles everything SetupRoutes needs to wire the API
type Handlers struct {
	Auth        *handlers.AuthHandler
	Orders      *handlers.OrderHandler
	Riders      *handlers.RiderHandler
	Products    *handlers.ProductHandler
	Ingredients *handlers.IngredientHandler
	Users       *handlers.UserHandler
}

func SetupRoutes(r *gin.Engine, auth *middleware.Auth, h Handlers) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/signup", h.Auth.Signup)
		public.POST("/auth/login", h.Auth.Login)
		public.POST("/rider/login", h.Auth.RiderLogin)

		// Guest checkout and POS both create orders unauthenticated
		public.POST("/orders", h.Orders.CreateOrder)
		public.GET("/orders/:id/tracking", h.Orders.GetTracking)

		public.GET("/products", auth.Optional(), h.Products.ListProducts)
		public.GET("/ingredients", h.Ingredients.ListIngredients)

		// POS helpers for looking up registered customers
		public.GET("/users/by-phone/:phone", h.Users.FindByPhone)
		public.POST("/users/add-address", h.Users.AddAddress)
	}

	// ── Authenticated (admin or customer) ──────────────────────────
	authed := r.Group("/api")
	authed.Use(auth.Required(), middleware.RoleRequired(string(models.RoleAdmin), string(models.RoleCustomer)))
	{
		authed.GET("/orders", h.Orders.ListOrders)
	}

	// ── Admin console ──────────────────────────────────────────────
	admin := r.Group("/api")
	admin.Use(auth.Required(), middleware.RoleRequired(string(models.RoleAdmin)))
	{
		admin.PUT("/orders/:id/status", h.Orders.UpdateOrderStatus)
		admin.POST("/orders/:id/assign-rider", h.Orders.AssignRider)

		admin.GET("/riders", h.Riders.ListRiders)
		admin.POST("/riders", h.Riders.CreateRider)
		admin.GET("/riders/available", h.Riders.ListAvailableRiders)

		admin.POST("/products", h.Products.CreateProduct)
		admin.PUT("/products/:id", h.Products.UpdateProduct)

		admin.POST("/ingredients", h.Ingredients.CreateIngredient)
		admin.PUT("/ingredients/:id", h.Ingredients.UpdateIngredient)
		admin.PUT("/ingredients/:id/stock", h.Ingredients.UpdateStock)
		admin.DELETE("/ingredients/:id", h.Ingredients.DeleteIngredient)
	}

	// ── Rider portal ───────────────────────────────────────────────
	rider := r.Group("/api/rider")
	rider.Use(auth.Required(), middleware.RoleRequired(middleware.RoleRider))
	{
		rider.GET("/orders", h.Riders.MyOrders)
		rider.PUT("/orders/:id/delivered", h.Riders.MarkDelivered)
		rider.PUT("/status", h.Riders.SetStatus)
	}
}
