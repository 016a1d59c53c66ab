package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/FahadStacks1996/Mad/config"
	"github.com/FahadStacks1996/Mad/dispatch"
	"github.com/FahadStacks1996/Mad/handlers"
	"github.com/FahadStacks1996/Mad/logger"
	"github.com/FahadStacks1996/Mad/middleware"
	"github.com/FahadStacks1996/Mad/models"
	"github.com/FahadStacks1996/Mad/routes"
	"github.com/FahadStacks1996/Mad/routing"
	"github.com/FahadStacks1996/Mad/sequence"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName)

	gin.SetMode(cfg.GinMode)

	db, err := config.OpenDB(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database", logger.Error(err))
		panic(err)
	}

	if err := seedAdmin(db, cfg.AdminUsername, cfg.AdminPassword, log); err != nil {
		log.Error("failed to seed admin user", logger.Error(err))
	}

	auth := middleware.NewAuth(cfg.JWTSecret, cfg.UserTokenTTL, cfg.RiderTokenTTL)
	numbers := sequence.NewGenerator(db)
	registry := dispatch.NewRegistry(db)
	directions := routing.NewClient(cfg.RoutingBaseURL, cfg.RoutingAPIKey, cfg.RoutingTimeout)
	dispatcher := dispatch.NewDispatcher(db, registry, directions, cfg.ShopAddress, log)

	h := routes.Handlers{
		Auth:        handlers.NewAuthHandler(db, auth),
		Orders:      handlers.NewOrderHandler(db, numbers, dispatcher, registry, log),
		Riders:      handlers.NewRiderHandler(db, registry, log),
		Products:    handlers.NewProductHandler(db),
		Ingredients: handlers.NewIngredientHandler(db),
		Users:       handlers.NewUserHandler(db),
	}

	r := gin.Default()

	// CORS for the storefront and the admin console
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": cfg.ServiceName})
	})

	routes.SetupRoutes(r, auth, h)

	log.Info("server starting", logger.String("port", cfg.ServerPort))
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Error("server exited", logger.Error(err))
		panic(err)
	}
}

// seedAdmin guarantees an admin account exists on first boot
func seedAdmin(db *gorm.DB, username, password string, log logger.ILogger) error {
	var existing models.User
	err := db.Where("role = ? AND username = ?", models.RoleAdmin, username).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Username:     &username,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Info("initial admin user created", logger.String("username", username))
	return nil
}
