package handler

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"marketplace/internal/app/apperr"
	"marketplace/internal/app/ds"
	"marketplace/internal/app/dto"
	"marketplace/internal/app/lifecycle"
	"marketplace/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const paymentEventTTL = 24 * time.Hour

type transitionFunc func(ctx context.Context, id uuid.UUID, a lifecycle.Actor) (*ds.Request, error)

// transition runs one actor-driven edge of the request lifecycle.
func (h *Handler) transition(ctx *gin.Context, fn transitionFunc) {
	a, ok := h.mustActor(ctx)
	if !ok {
		return
	}
	id, err := requestIDParam(ctx)
	if err != nil {
		h.badRequest(ctx, err)
		return
	}

	req, err := fn(ctx.Request.Context(), id, a)
	if err != nil {
		h.errorResponse(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.FromRequest(req))
}

// CreateRequest is checkout
// @Summary Create request
// @Description Client buys a service or a pricing plan. The request waits for payment.
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CheckoutRequest true "Service or plan"
// @Success 201 {object} dto.RequestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/requests [post]
func (h *Handler) CreateRequest(ctx *gin.Context) {
	a, ok := h.mustActor(ctx)
	if !ok {
		return
	}

	var request dto.CheckoutRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.badRequest(ctx, err)
		return
	}

	req, err := h.Engine.Machine.CreateRequest(ctx.Request.Context(), a, lifecycle.Checkout{
		ServiceID:     request.ServiceID,
		PricingPlanID: request.PricingPlanID,
	})
	if err != nil {
		h.errorResponse(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.FromRequest(req))
}

// GetRequests lists the caller's requests
// @Summary List requests
// @Description Admins see all, clients their own, experts their assigned ones
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Success 200 {array} dto.RequestResponse
// @Router /api/requests [get]
func (h *Handler) GetRequests(ctx *gin.Context) {
	a, ok := h.mustActor(ctx)
	if !ok {
		return
	}

	requests, err := h.Engine.Machine.List(ctx.Request.Context(), a, ctx.Query("status"))
	if err != nil {
		h.errorResponse(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.FromRequests(requests))
}

// GetRequest returns one request
// @Summary Get request
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} dto.RequestResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/requests/{id} [get]
func (h *Handler) GetRequest(ctx *gin.Context) {
	h.transition(ctx, h.Engine.Machine.View)
}

// ConfirmPayment is the payment provider callback
// @Summary Confirm payment
// @Description Moves the request to NEW and issues its invoice. Authenticated by X-Payment-Key.
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param X-Payment-Key header string true "Webhook key"
// @Param request body dto.PaymentConfirmation false "Callback event"
// @Success 200 {object} dto.PaymentResponse
// @Success 202 {object} dto.PaymentResponse "Paid, invoice pending"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/requests/{id}/payment [put]
func (h *Handler) ConfirmPayment(ctx *gin.Context) {
	const op = "confirmPayment"

	key := ctx.GetHeader("X-Payment-Key")
	if h.Config.PaymentWebhookKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(h.Config.PaymentWebhookKey)) != 1 {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
			Status:      "fail",
			Code:        "unauthorized",
			Description: "invalid payment key",
		})
		return
	}

	id, err := requestIDParam(ctx)
	if err != nil {
		h.badRequest(ctx, err)
		return
	}

	var event dto.PaymentConfirmation
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&event); err != nil {
			h.badRequest(ctx, err)
			return
		}
	}

	// An event id is marked before processing and released again if the
	// payment did not stick, so the provider's retry is not swallowed.
	marked := false
	if event.EventID != "" && h.Sessions != nil {
		first, err := h.Sessions.MarkPaymentEvent(ctx.Request.Context(), event.EventID, paymentEventTTL)
		switch {
		case err != nil:
			logrus.WithField("event_id", event.EventID).Warnf("%s: dedupe unavailable: %v", op, err)
		case !first:
			if h.replayPayment(ctx, id) {
				return
			}
		default:
			marked = true
		}
	}

	req, invoice, err := h.Engine.Machine.ConfirmPayment(ctx.Request.Context(), id)
	if err != nil {
		if req != nil && apperr.KindOf(err) == apperr.DependencyFailure {
			ctx.JSON(http.StatusAccepted, dto.PaymentResponse{
				Request: dto.FromRequest(req),
				Warning: "payment recorded, invoice will be issued shortly",
			})
			return
		}
		if marked {
			if ferr := h.Sessions.ForgetPaymentEvent(ctx.Request.Context(), event.EventID); ferr != nil {
				logrus.WithField("event_id", event.EventID).Errorf("%s: release event: %v", op, ferr)
			}
		}
		h.errorResponse(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PaymentResponse{
		Request: dto.FromRequest(req),
		Invoice: dto.FromInvoice(invoice),
	})
}

// replayPayment answers a repeated callback with the current state. It
// returns false without writing when the request is still unpaid, in which
// case the callback is processed as new.
func (h *Handler) replayPayment(ctx *gin.Context, id uuid.UUID) bool {
	req, err := h.Engine.Machine.Get(ctx.Request.Context(), id)
	if err != nil {
		h.errorResponse(ctx, err)
		return true
	}
	if req.Status == ds.StatusPendingPayment {
		return false
	}

	resp := dto.PaymentResponse{Request: dto.FromRequest(req)}
	invoice, err := h.Engine.Issuer.ForRequest(ctx.Request.Context(), lifecycle.Actor{ID: req.ClientID, Role: role.Client}, id)
	if err == nil {
		resp.Invoice = dto.FromInvoice(invoice)
	}
	ctx.JSON(http.StatusOK, resp)
	return true
}

// OpenPool publishes a request to eligible experts
// @Summary Open pool
// @Tags Assignment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body dto.OpenPoolRequest false "Required skills"
// @Success 200 {object} dto.PoolResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/requests/{id}/pool [put]
func (h *Handler) OpenPool(ctx *gin.Context) {
	a, ok := h.mustActor(ctx)
	if !ok {
		return
	}
	id, err := requestIDParam(ctx)
	if err != nil {
		h.badRequest(ctx, err)
		return
	}

	var request dto.OpenPoolRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			h.badRequest(ctx, err)
			return
		}
	}

	req, invited, err := h.Engine.Machine.OpenPool(ctx.Request.Context(), id, a, request.RequiredSkills)
	if err != nil {
		h.errorResponse(ctx, err)
		return
	}

	ids := make([]uint, 0, len(invited))
	for _, u := range invited {
		ids = append(ids, u.ID)
	}
	ctx.JSON(http.StatusOK, dto.PoolResponse{Request: dto.FromRequest(req), Invited: ids})
}

// ClosePool withdraws an open request back to admin assignment
// @Summary Close pool
// @Tags Assignment
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} dto.RequestResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/requests/{id}/pool/close [put]
func (h *Handler) ClosePool(ctx *gin.Context) {
	h.transition(ctx, h.Engine.Machine.ClosePool)
}

// GetInvites lists the pool of a request
// @Summary List invites
// @Tags Assignment
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {array} dto.InviteResponse
// @Router /api/requests/{id}/invites [get]
func (h *Handler) GetInvites(ctx *gin.Context) {
	id, err := requestIDParam(ctx)
	if err != nil {
		h.badRequest(ctx, err)
		return
	}

	invites, err := h.Engine.Pool.Invites(ctx.Request.Context(), id)
	if err != nil {
		h.errorResponse(ctx, err)
		return
	}

	out := make([]dto.InviteResponse, 0, len(invites))
	for _, inv := range invites {
		out = append(out, fromInvite(inv))
	}
	ctx.JSON(http.StatusOK, out)
}

// AssignDirect assigns an expert without a pool
// @Summary Assign expert
// @Tags Assignment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body dto.AssignRequest true "Expert"
// @Success 200 {object} dto.RequestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/requests/{id}/assign [put]
func (h *Handler) AssignDirect(ctx *gin.Context) {
	var request dto.AssignRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.badRequest(ctx, err)
		return
	}
	h.transition(ctx, func(c context.Context, id uuid.UUID, a lifecycle.Actor) (*ds.Request, error) {
		return h.Engine.Machine.AssignDirect(c, id, a, request.ExpertID)
	})
}

// AcceptFromPool claims an open request. Exactly one expert wins.
// @Summary Accept from pool
// @Tags Assignment
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} dto.RequestResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "already_assigned"
// @Router /api/requests/{id}/accept [put]
func (h *Handler) AcceptFromPool(ctx *gin.Context) {
	h.transition(ctx, h.Engine.Machine.AcceptFromPool)
}

// DeclineInvite steps an expert out of a pool
// @Summary Decline invite
// @Tags Assignment
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} dto.InviteResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/requests/{id}/decline [put]
func (h *Handler) DeclineInvite(ctx *gin.Context) {
	a, ok := h.mustActor(ctx)
	if !ok {
		return
	}
	id, err := requestIDParam(ctx)
	if err != nil {
		h.badRequest(ctx, err)
		return
	}

	invite, err := h.Engine.Machine.DeclineInvite(ctx.Request.Context(), id, a)
	if err != nil {
		h.errorResponse(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, fromInvite(*invite))
}

// StartWork moves a matched request into progress
// @Summary Start work
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} dto.RequestResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/requests/{id}/start [put]
func (h *Handler) StartWork(ctx *gin.Context) {
	h.transition(ctx, h.Engine.Machine.StartWork)
}

// SubmitForReview hands the work to the client
// @Summary Submit for review
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} dto.RequestResponse
// @Router /api/requests/{id}/submit [put]
func (h *Handler) SubmitForReview(ctx *gin.Context) {
	h.transition(ctx, h.Engine.Machine.SubmitForReview)
}

// ClientApprove accepts the delivered work
// @Summary Client approve
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} dto.RequestResponse
// @Router /api/requests/{id}/approve [put]
func (h *Handler) ClientApprove(ctx *gin.Context) {
	h.transition(ctx, h.Engine.Machine.ClientApprove)
}

// AdminFinalize completes a reviewed request
// @Summary Finalize
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} dto.RequestResponse
// @Router /api/requests/{id}/finalize [put]
func (h *Handler) AdminFinalize(ctx *gin.Context) {
	h.transition(ctx, h.Engine.Machine.AdminFinalize)
}

// CancelRequest cancels a request that has not started
// @Summary Cancel
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} dto.RequestResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/requests/{id}/cancel [put]
func (h *Handler) CancelRequest(ctx *gin.Context) {
	h.transition(ctx, h.Engine.Machine.Cancel)
}

// DisputeRequest freezes a request for admin arbitration
// @Summary Dispute
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} dto.RequestResponse
// @Router /api/requests/{id}/dispute [put]
func (h *Handler) DisputeRequest(ctx *gin.Context) {
	h.transition(ctx, h.Engine.Machine.Dispute)
}

// ResolveDispute ends a dispute
// @Summary Resolve dispute
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body dto.ResolveRequest true "Outcome"
// @Success 200 {object} dto.RequestResponse
// @Router /api/requests/{id}/resolve [put]
func (h *Handler) ResolveDispute(ctx *gin.Context) {
	var request dto.ResolveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.badRequest(ctx, err)
		return
	}
	h.transition(ctx, func(c context.Context, id uuid.UUID, a lifecycle.Actor) (*ds.Request, error) {
		return h.Engine.Machine.ResolveDispute(c, id, a, lifecycle.DisputeOutcome(request.Outcome))
	})
}

func fromInvite(inv ds.PoolInvite) dto.InviteResponse {
	return dto.InviteResponse{
		RequestID: inv.RequestID,
		ExpertID:  inv.ExpertID,
		Status:    string(inv.Status),
		UpdatedAt: inv.UpdatedAt,
	}
}
