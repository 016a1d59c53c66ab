package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/FahadStacks1996/Mad/models"
)

// RoleRider is carried in rider tokens alongside the user roles
const RoleRider = "rider"

type Claims struct {
	UserID  uint   `json:"user_id,omitempty"`
	RiderID uint   `json:"rider_id,omitempty"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// Auth issues and validates the JWTs for console users and riders.
// The signing key comes in at construction time; nothing here reads
// global state.
type Auth struct {
	secret       []byte
	userTokenTTL time.Duration
	riderTTL     time.Duration
}

func NewAuth(secret string, userTokenTTL, riderTokenTTL time.Duration) *Auth {
	return &Auth{secret: []byte(secret), userTokenTTL: userTokenTTL, riderTTL: riderTokenTTL}
}

// GenerateUserToken creates a signed JWT for an admin or customer
func (a *Auth) GenerateUserToken(user *models.User) (string, error) {
	claims := Claims{
		UserID: user.ID,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.userTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// GenerateRiderToken creates a signed JWT for a delivery rider
func (a *Auth) GenerateRiderToken(rider *models.Rider) (string, error) {
	claims := Claims{
		RiderID: rider.ID,
		Role:    RoleRider,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.riderTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

func (a *Auth) parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// Required validates the JWT and injects claims into context
func (a *Auth) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required (Bearer <token>)"})
			c.Abort()
			return
		}
		claims, err := a.parse(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		c.Set("userID", claims.UserID)
		c.Set("riderID", claims.RiderID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// Optional parses a token when present but never rejects the request.
// The public product listing uses it to unlock the admin view.
func (a *Auth) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			if claims, err := a.parse(strings.TrimPrefix(authHeader, "Bearer ")); err == nil {
				c.Set("userID", claims.UserID)
				c.Set("riderID", claims.RiderID)
				c.Set("role", claims.Role)
			}
		}
		c.Next()
	}
}

// RoleRequired enforces that caller has one of the allowed roles
func RoleRequired(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Role not found in context"})
			c.Abort()
			return
		}
		callerRole := roleVal.(string)
		for _, r := range roles {
			if callerRole == r {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Access denied. Required role(s): " + strings.Join(roles, ", "),
		})
		c.Abort()
	}
}

// GetUserID extracts the caller's user id from context
func GetUserID(c *gin.Context) uint {
	val, _ := c.Get("userID")
	id, _ := val.(uint)
	return id
}

// GetRiderID extracts the caller's rider id from context
func GetRiderID(c *gin.Context) uint {
	val, _ := c.Get("riderID")
	id, _ := val.(uint)
	return id
}

// GetRole extracts the caller's role from context
func GetRole(c *gin.Context) string {
	val, _ := c.Get("role")
	role, _ := val.(string)
	return role
}
