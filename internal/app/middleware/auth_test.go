package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketplace/internal/app/ds"
	"marketplace/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

const secret = "test-secret"

type revokedSet map[string]bool

func (r revokedSet) IsRevoked(_ context.Context, token string) bool { return r[token] }

func sign(t *testing.T, key string, userID uint, r role.Role, ttl time.Duration) string {
	t.Helper()

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{ExpiresAt: now.Add(ttl).Unix(), IssuedAt: now.Unix()},
		UserID:         userID,
		Role:           r,
	})
	s, err := token.SignedString([]byte(key))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestWithAuthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	revoked := sign(t, secret, 5, role.Admin, time.Hour)
	am := NewAuthMiddleware(revokedSet{revoked: true}, secret)

	router := gin.New()
	router.GET("/admin", am.WithAuthCheck(role.Admin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetUint(ContextUserID)})
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
		{"wrong key", "Bearer " + sign(t, "other", 1, role.Admin, time.Hour), http.StatusUnauthorized},
		{"expired", "Bearer " + sign(t, secret, 1, role.Admin, -time.Minute), http.StatusUnauthorized},
		{"revoked", "Bearer " + revoked, http.StatusUnauthorized},
		{"wrong role", "Bearer " + sign(t, secret, 1, role.Expert, time.Hour), http.StatusForbidden},
		{"admin", "Bearer " + sign(t, secret, 1, role.Admin, time.Hour), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
