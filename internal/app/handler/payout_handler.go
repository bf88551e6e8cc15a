package handler

import (
	"net/http"

	"marketplace/internal/app/ds"
	"marketplace/internal/app/dto"

	"github.com/gin-gonic/gin"
)

// GetBalance shows the expert's unsettled earnings
// @Summary Unsettled balance
// @Tags Payouts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.BalanceResponse
// @Router /api/payouts/balance [get]
func (h *Handler) GetBalance(ctx *gin.Context) {
	a, ok := h.mustActor(ctx)
	if !ok {
		return
	}

	earnings, err := h.Engine.Settlement.Earnings(ctx.Request.Context(), a.ID)
	if err != nil {
		h.errorResponse(ctx, err)
		return
	}

	resp := dto.BalanceResponse{ExpertID: a.ID, Requests: make([]dto.EarningItem, 0, len(earnings))}
	for _, e := range earnings {
		resp.Balance = resp.Balance.Add(e.Share)
		resp.Requests = append(resp.Requests, dto.EarningItem{
			RequestID: e.Request.ID,
			DisplayID: e.Request.DisplayID,
			Share:     e.Share,
		})
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreatePayout requests payment for unsettled work
// @Summary Request payout
// @Description Settles the selected completed requests, or all of them when request_ids is empty
// @Tags Payouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PayoutCreateRequest false "Selection"
// @Success 201 {object} dto.PayoutResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse "no_funds_available"
// @Router /api/payouts [post]
func (h *Handler) CreatePayout(ctx *gin.Context) {
	a, ok := h.mustActor(ctx)
	if !ok {
		return
	}

	var request dto.PayoutCreateRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			h.badRequest(ctx, err)
			return
		}
	}

	payout, err := h.Engine.Settlement.RequestPayout(ctx.Request.Context(), a, request.RequestIDs)
	if err != nil {
		h.errorResponse(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.FromPayout(payout))
}

// GetPayouts lists payouts
// @Summary List payouts
// @Description Admins see all payouts, experts their own
// @Tags Payouts
// @Produce json
// @Security BearerAuth
// @Param status query string false "PENDING, APPROVED or REJECTED"
// @Success 200 {array} dto.PayoutResponse
// @Router /api/payouts [get]
func (h *Handler) GetPayouts(ctx *gin.Context) {
	a, ok := h.mustActor(ctx)
	if !ok {
		return
	}

	payouts, err := h.Engine.Settlement.List(ctx.Request.Context(), a, ctx.Query("status"))
	if err != nil {
		h.errorResponse(ctx, err)
		return
	}

	out := make([]dto.PayoutResponse, 0, len(payouts))
	for i := range payouts {
		out = append(out, dto.FromPayout(&payouts[i]))
	}
	ctx.JSON(http.StatusOK, out)
}

// ApprovePayout marks a pending payout as paid
// @Summary Approve payout
// @Tags Payouts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payout ID"
// @Success 200 {object} dto.PayoutResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/payouts/{id}/approve [put]
func (h *Handler) ApprovePayout(ctx *gin.Context) {
	h.decidePayout(ctx, ds.PayoutApproved)
}

// RejectPayout returns the payout's requests to the unsettled balance
// @Summary Reject payout
// @Tags Payouts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payout ID"
// @Success 200 {object} dto.PayoutResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/payouts/{id}/reject [put]
func (h *Handler) RejectPayout(ctx *gin.Context) {
	h.decidePayout(ctx, ds.PayoutRejected)
}

func (h *Handler) decidePayout(ctx *gin.Context, status ds.PayoutStatus) {
	a, ok := h.mustActor(ctx)
	if !ok {
		return
	}
	id, err := uintParam(ctx, "id")
	if err != nil {
		h.badRequest(ctx, err)
		return
	}

	payout, err := h.Engine.Settlement.Decide(ctx.Request.Context(), a, id, status)
	if err != nil {
		h.errorResponse(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.FromPayout(payout))
}
