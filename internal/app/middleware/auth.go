package middleware

import (
	"context"
	"net/http"
	"strings"

	"marketplace/internal/app/ds"
	"marketplace/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// Revocations answers whether a token was logged out.
type Revocations interface {
	IsRevoked(ctx context.Context, token string) bool
}

type AuthMiddleware struct {
	revoked Revocations
	secret  []byte
}

func NewAuthMiddleware(revoked Revocations, secret string) *AuthMiddleware {
	return &AuthMiddleware{
		revoked: revoked,
		secret:  []byte(secret),
	}
}

// WithAuthCheck requires a valid bearer token; with roles given, the token's role must be one of them.
func (am *AuthMiddleware) WithAuthCheck(assignedRoles ...role.Role) gin.HandlerFunc {
	return func(gCtx *gin.Context) {
		jwtStr := BearerToken(gCtx)
		if jwtStr == "" {
			gCtx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if am.revoked.IsRevoked(gCtx.Request.Context(), jwtStr) {
			gCtx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := am.ParseToken(jwtStr)
		if err != nil {
			gCtx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if len(assignedRoles) > 0 && !hasRequiredRole(claims.Role, assignedRoles) {
			gCtx.AbortWithStatus(http.StatusForbidden)
			return
		}

		gCtx.Set(ContextUserID, claims.UserID)
		gCtx.Set(ContextUserRole, claims.Role)

		gCtx.Next()
	}
}

// ParseToken validates signature and expiry.
func (am *AuthMiddleware) ParseToken(tokenString string) (*ds.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ds.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return am.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*ds.JWTClaims)
	if !ok || !token.Valid || !claims.Role.Valid() {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims, nil
}

// BearerToken strips the "Bearer " prefix from the Authorization header.
func BearerToken(gCtx *gin.Context) string {
	return strings.TrimPrefix(gCtx.GetHeader("Authorization"), "Bearer ")
}

func hasRequiredRole(userRole role.Role, requiredRoles []role.Role) bool {
	for _, requiredRole := range requiredRoles {
		if userRole == requiredRole {
			return true
		}
	}
	return false
}
