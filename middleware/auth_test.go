package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/FahadStacks1996/Mad/models"
)

func protectedRouter(auth *Auth, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{auth.Required()}
	if len(roles) > 0 {
		handlers = append(handlers, RoleRequired(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  GetUserID(c),
			"rider_id": GetRiderID(c),
			"role":     GetRole(c),
		})
	})
	r.GET("/protected", handlers...)
	return r
}

func get(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequired_UserTokenRoundTrip(t *testing.T) {
	auth := NewAuth("test-secret", time.Hour, time.Hour)
	r := protectedRouter(auth)

	if w := get(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token should 401, got %d", w.Code)
	}
	if w := get(r, "not-a-jwt"); w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token should 401, got %d", w.Code)
	}

	user := &models.User{ID: 7, Role: models.RoleAdmin}
	token, err := auth.GenerateUserToken(user)
	if err != nil {
		t.Fatalf("GenerateUserToken: %v", err)
	}
	w := get(r, token)
	if w.Code != http.StatusOK {
		t.Fatalf("valid token should pass, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequired_RejectsForeignSecretAndExpiredToken(t *testing.T) {
	auth := NewAuth("test-secret", time.Hour, time.Hour)
	r := protectedRouter(auth)

	forged, err := NewAuth("other-secret", time.Hour, time.Hour).
		GenerateUserToken(&models.User{ID: 1, Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("sign with foreign secret: %v", err)
	}
	if w := get(r, forged); w.Code != http.StatusUnauthorized {
		t.Fatalf("foreign-secret token should 401, got %d", w.Code)
	}

	expired, err := NewAuth("test-secret", -time.Minute, -time.Minute).
		GenerateUserToken(&models.User{ID: 1, Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}
	if w := get(r, expired); w.Code != http.StatusUnauthorized {
		t.Fatalf("expired token should 401, got %d", w.Code)
	}
}

func TestRoleRequired_SeparatesRiderAndAdmin(t *testing.T) {
	auth := NewAuth("test-secret", time.Hour, time.Hour)
	adminOnly := protectedRouter(auth, string(models.RoleAdmin))
	riderOnly := protectedRouter(auth, RoleRider)

	riderToken, err := auth.GenerateRiderToken(&models.Rider{ID: 3})
	if err != nil {
		t.Fatalf("GenerateRiderToken: %v", err)
	}
	adminToken, err := auth.GenerateUserToken(&models.User{ID: 9, Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("GenerateUserToken: %v", err)
	}

	if w := get(adminOnly, riderToken); w.Code != http.StatusForbidden {
		t.Fatalf("rider on admin route should 403, got %d", w.Code)
	}
	if w := get(riderOnly, adminToken); w.Code != http.StatusForbidden {
		t.Fatalf("admin on rider route should 403, got %d", w.Code)
	}
	if w := get(riderOnly, riderToken); w.Code != http.StatusOK {
		t.Fatalf("rider on rider route should pass, got %d: %s", w.Code, w.Body.String())
	}
}
