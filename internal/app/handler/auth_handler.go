package handler

import (
	"errors"
	"net/http"
	"time"

	"marketplace/internal/app/apperr"
	"marketplace/internal/app/ds"
	"marketplace/internal/app/dto"
	"marketplace/internal/app/middleware"
	"marketplace/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenIssuer = "marketplace"

// RegisterUser creates a client or expert account
// @Summary Register
// @Description Creates a client (role 0) or expert (role 1) and returns a token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Account"
// @Success 201 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/auth/register [post]
func (h *Handler) RegisterUser(ctx *gin.Context) {
	var request dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.badRequest(ctx, err)
		return
	}

	exists, err := h.Repository.WithContext(ctx.Request.Context()).UserExistsByLogin(request.Login)
	if err != nil {
		h.errorResponse(ctx, apperr.FromStore("register", err))
		return
	}
	if exists {
		h.errorResponse(ctx, apperr.New(apperr.Conflict, "register", "login already taken"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		h.errorResponse(ctx, err)
		return
	}

	user := &ds.User{
		Login:    request.Login,
		Password: string(hash),
		Role:     request.Role,
		Email:    request.Email,
		Phone:    request.Phone,
		FullName: request.FullName,
	}
	repo := h.Repository.WithContext(ctx.Request.Context())
	if err := repo.CreateUser(user); err != nil {
		logrus.Error("Error creating user: ", err)
		h.errorResponse(ctx, apperr.FromStore("register", err))
		return
	}
	if user.Role == role.Expert {
		if err := repo.SetExpertSkills(user.ID, request.Skills); err != nil {
			h.errorResponse(ctx, apperr.FromStore("register", err))
			return
		}
	}

	h.issueToken(ctx, http.StatusCreated, user)
}

// LoginUser authenticates and returns a JWT
// @Summary Login
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/login [post]
func (h *Handler) LoginUser(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.badRequest(ctx, err)
		return
	}

	user, err := h.Repository.WithContext(ctx.Request.Context()).GetUserByLogin(request.Login)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		h.errorResponse(ctx, apperr.FromStore("login", err))
		return
	}
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)) != nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
			Status:      "fail",
			Code:        "unauthorized",
			Description: "invalid login or password",
		})
		return
	}
	if user.Status != ds.UserActive {
		h.errorResponse(ctx, apperr.New(apperr.Forbidden, "login", "account suspended"))
		return
	}

	h.issueToken(ctx, http.StatusOK, user)
}

// LogoutUser revokes the caller's token
// @Summary Logout
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/logout [post]
func (h *Handler) LogoutUser(ctx *gin.Context) {
	tokenString := middleware.BearerToken(ctx)
	claims, err := h.Auth.ParseToken(tokenString)
	if err != nil {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	if ttl > 0 {
		if err := h.Sessions.WriteJWTToBlacklist(ctx.Request.Context(), tokenString, ttl); err != nil {
			h.errorResponse(ctx, apperr.Wrap(apperr.Unavailable, "logout", err))
			return
		}
	}

	h.successResponse(ctx, http.StatusOK, "logged out", nil)
}

func (h *Handler) issueToken(ctx *gin.Context, status int, user *ds.User) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(h.Config.JWTExpiresIn).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    tokenIssuer,
		},
		UserID: user.ID,
		Role:   user.Role,
	})

	accessToken, err := token.SignedString([]byte(h.Config.JWTSecret))
	if err != nil {
		h.errorResponse(ctx, err)
		return
	}

	ctx.JSON(status, dto.TokenResponse{
		UserID:    user.ID,
		Login:     user.Login,
		Role:      user.Role,
		Token:     accessToken,
		TokenType: "Bearer",
		ExpiresIn: int(h.Config.JWTExpiresIn.Seconds()),
	})
}
