package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Config carries everything the components need at construction time.
// Nothing reads the environment after Load returns.
type Config struct {
	ServiceName string
	ServerPort  string
	GinMode     string

	DBPath string

	JWTSecret    string
	UserTokenTTL time.Duration
	// Rider shifts outlast customer sessions, so rider tokens live longer.
	RiderTokenTTL time.Duration

	// ShopAddress is the routing origin for every outbound delivery leg.
	ShopAddress    string
	RoutingBaseURL string
	RoutingAPIKey  string
	RoutingTimeout time.Duration

	AdminUsername string
	AdminPassword string
}

func Load() Config {
	_ = godotenv.Load(".env")

	return Config{
		ServiceName: cast.ToString(getOrReturnDefault("SERVICE_NAME", "madpizza-pos")),
		ServerPort:  cast.ToString(getOrReturnDefault("PORT", "5001")),
		GinMode:     cast.ToString(getOrReturnDefault("GIN_MODE", "debug")),

		DBPath: cast.ToString(getOrReturnDefault("DB_PATH", "madpizza.db")),

		JWTSecret:     cast.ToString(getOrReturnDefault("JWT_SECRET", "dev-secret-change-me")),
		UserTokenTTL:  time.Duration(cast.ToInt(getOrReturnDefault("USER_TOKEN_TTL_HOURS", 1))) * time.Hour,
		RiderTokenTTL: time.Duration(cast.ToInt(getOrReturnDefault("RIDER_TOKEN_TTL_HOURS", 8))) * time.Hour,

		ShopAddress:    cast.ToString(getOrReturnDefault("SHOP_ADDRESS", "Mad Pizza, Karachi, Pakistan")),
		RoutingBaseURL: cast.ToString(getOrReturnDefault("ROUTING_BASE_URL", "https://maps.googleapis.com/maps/api/directions")),
		RoutingAPIKey:  cast.ToString(getOrReturnDefault("ROUTING_API_KEY", "")),
		RoutingTimeout: time.Duration(cast.ToInt(getOrReturnDefault("ROUTING_TIMEOUT_SECONDS", 10))) * time.Second,

		AdminUsername: cast.ToString(getOrReturnDefault("ADMIN_USERNAME", "admin")),
		AdminPassword: cast.ToString(getOrReturnDefault("ADMIN_PASSWORD", "adminpassword")),
	}
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}
