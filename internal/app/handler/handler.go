package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"marketplace/internal/app/apperr"
	"marketplace/internal/app/dto"
	"marketplace/internal/app/lifecycle"
	"marketplace/internal/app/matching"
	"marketplace/internal/app/middleware"
	"marketplace/internal/app/repository"
	"marketplace/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Config struct {
	JWTSecret         string
	JWTExpiresIn      time.Duration
	PaymentWebhookKey string
}

// Sessions is the Redis-backed token and callback bookkeeping.
type Sessions interface {
	WriteJWTToBlacklist(ctx context.Context, jwtStr string, jwtTTL time.Duration) error
	MarkPaymentEvent(ctx context.Context, eventID string, ttl time.Duration) (bool, error)
	ForgetPaymentEvent(ctx context.Context, eventID string) error
}

// DocumentLinker hands out temporary download links for stored documents.
type DocumentLinker interface {
	PresignedURL(ctx context.Context, key string) (string, error)
}

type Handler struct {
	Repository *repository.Repository
	Engine     *lifecycle.Engine
	Matcher    *matching.Matcher
	Sessions   Sessions
	Links      DocumentLinker
	Auth       *middleware.AuthMiddleware
	Config     Config
}

func NewHandler(r *repository.Repository, engine *lifecycle.Engine, sessions Sessions, auth *middleware.AuthMiddleware, cfg Config) *Handler {
	if cfg.JWTExpiresIn <= 0 {
		cfg.JWTExpiresIn = time.Hour
	}
	return &Handler{
		Repository: r,
		Engine:     engine,
		Sessions:   sessions,
		Auth:       auth,
		Config:     cfg,
	}
}

// statusFor maps an error kind to the HTTP status and a client-safe message.
func statusFor(err error) (int, string) {
	switch apperr.KindOf(err) {
	case apperr.InvalidTransition, apperr.Conflict, apperr.AlreadyAssigned:
		return http.StatusConflict, err.Error()
	case apperr.Forbidden:
		return http.StatusForbidden, err.Error()
	case apperr.NoFundsAvailable:
		return http.StatusUnprocessableEntity, err.Error()
	case apperr.NotFound:
		return http.StatusNotFound, "not found"
	case apperr.BadInput:
		return http.StatusBadRequest, err.Error()
	case apperr.Unavailable:
		return http.StatusServiceUnavailable, "temporarily unavailable, try again"
	case apperr.DependencyFailure:
		return http.StatusBadGateway, "a downstream service failed, try again"
	}
	return http.StatusInternalServerError, "internal error"
}

// errorResponse writes err with the status of its kind.
func (h *Handler) errorResponse(c *gin.Context, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		logrus.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Status:      "fail",
		Code:        apperr.KindOf(err).String(),
		Description: message,
	})
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	h.errorResponse(c, apperr.Wrap(apperr.BadInput, c.FullPath(), err))
}

func (h *Handler) successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}

// actor reads the caller placed in the context by the auth middleware.
func (h *Handler) actor(c *gin.Context) (lifecycle.Actor, bool) {
	id, ok := c.Get(middleware.ContextUserID)
	if !ok {
		return lifecycle.Actor{}, false
	}
	r, ok := c.Get(middleware.ContextUserRole)
	if !ok {
		return lifecycle.Actor{}, false
	}

	userID, idOK := id.(uint)
	userRole, roleOK := r.(role.Role)
	if !idOK || !roleOK {
		logrus.Errorf("actor: unexpected context types %T, %T", id, r)
		return lifecycle.Actor{}, false
	}
	return lifecycle.Actor{ID: userID, Role: userRole}, true
}

func (h *Handler) mustActor(c *gin.Context) (lifecycle.Actor, bool) {
	a, ok := h.actor(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
			Status:      "fail",
			Code:        "unauthorized",
			Description: "user not authenticated",
		})
	}
	return a, ok
}

func requestIDParam(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid request id %q", c.Param("id"))
	}
	return id, nil
}

func uintParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("invalid %s %q", name, c.Param(name))
	}
	return uint(v), nil
}

var errMatcherDisabled = errors.New("service matching is not configured")
