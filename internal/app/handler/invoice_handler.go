package handler

import (
	"io"
	"net/http"
	"path"

	"marketplace/internal/app/apperr"
	"marketplace/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GetRequestInvoice returns the invoice of a request
// @Summary Request invoice
// @Tags Invoices
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/requests/{id}/invoice [get]
func (h *Handler) GetRequestInvoice(ctx *gin.Context) {
	a, ok := h.mustActor(ctx)
	if !ok {
		return
	}
	id, err := requestIDParam(ctx)
	if err != nil {
		h.badRequest(ctx, err)
		return
	}

	invoice, err := h.Engine.Issuer.ForRequest(ctx.Request.Context(), a, id)
	if err != nil {
		h.errorResponse(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.FromInvoice(invoice))
}

// GetInvoiceDocument streams the archived invoice document
// @Summary Invoice document
// @Tags Invoices
// @Produce octet-stream
// @Security BearerAuth
// @Param id path int true "Invoice ID"
// @Success 200 {file} file
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/invoices/{id}/document [get]
func (h *Handler) GetInvoiceDocument(ctx *gin.Context) {
	a, ok := h.mustActor(ctx)
	if !ok {
		return
	}
	id, err := uintParam(ctx, "id")
	if err != nil {
		h.badRequest(ctx, err)
		return
	}

	body, invoice, err := h.Engine.Issuer.Document(ctx.Request.Context(), a, id)
	if err != nil {
		h.errorResponse(ctx, err)
		return
	}
	defer body.Close()

	name := path.Base(*invoice.StorageKey)
	ctx.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	ctx.Header("Content-Type", "application/json")
	ctx.Status(http.StatusOK)
	if _, err := io.Copy(ctx.Writer, body); err != nil {
		logrus.WithField("invoice_id", id).Errorf("stream invoice document: %v", err)
	}
}

// GetInvoiceLink returns a temporary download link for the invoice document
// @Summary Invoice link
// @Tags Invoices
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invoice ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/invoices/{id}/link [get]
func (h *Handler) GetInvoiceLink(ctx *gin.Context) {
	const op = "invoiceLink"
	a, ok := h.mustActor(ctx)
	if !ok {
		return
	}
	id, err := uintParam(ctx, "id")
	if err != nil {
		h.badRequest(ctx, err)
		return
	}

	invoice, err := h.Engine.Issuer.Get(ctx.Request.Context(), a, id)
	if err != nil {
		h.errorResponse(ctx, err)
		return
	}
	if h.Links == nil {
		h.errorResponse(ctx, apperr.New(apperr.Unavailable, op, "document storage is not configured"))
		return
	}
	if invoice.StorageKey == nil {
		h.errorResponse(ctx, apperr.New(apperr.NotFound, op, "invoice document not stored yet"))
		return
	}

	url, err := h.Links.PresignedURL(ctx.Request.Context(), *invoice.StorageKey)
	if err != nil {
		h.errorResponse(ctx, apperr.Wrap(apperr.DependencyFailure, op, err))
		return
	}
	h.successResponse(ctx, http.StatusOK, "link valid for one hour", gin.H{"url": url})
}
