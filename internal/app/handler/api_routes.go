package handler

import (
	"marketplace/internal/app/role"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes registers the REST API with its role checks.
func (h *Handler) RegisterAPIRoutes(router *gin.Engine) {
	api := router.Group("/api")
	anyone := h.Auth.WithAuthCheck()
	admin := h.Auth.WithAuthCheck(role.Admin)
	client := h.Auth.WithAuthCheck(role.Client)
	expert := h.Auth.WithAuthCheck(role.Expert)

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.RegisterUser)
		auth.POST("/login", h.LoginUser)
		auth.POST("/logout", anyone, h.LogoutUser)
	}

	services := api.Group("/services")
	{
		services.GET("", h.GetServices)
		services.GET("/:id", h.GetService)
		services.POST("", admin, h.CreateService)
		services.POST("/match", anyone, h.MatchService)
	}

	plans := api.Group("/plans")
	{
		plans.GET("", h.GetPlans)
		plans.POST("", admin, h.CreatePlan)
	}

	// payment confirmation is authenticated by the shared webhook key, not a user token
	api.PUT("/requests/:id/payment", h.ConfirmPayment)

	requests := api.Group("/requests")
	{
		requests.POST("", client, h.CreateRequest)
		requests.GET("", anyone, h.GetRequests)
		requests.GET("/:id", anyone, h.GetRequest)

		requests.PUT("/:id/pool", admin, h.OpenPool)
		requests.PUT("/:id/pool/close", admin, h.ClosePool)
		requests.GET("/:id/invites", admin, h.GetInvites)
		requests.PUT("/:id/assign", admin, h.AssignDirect)
		requests.PUT("/:id/accept", expert, h.AcceptFromPool)
		requests.PUT("/:id/decline", expert, h.DeclineInvite)

		requests.PUT("/:id/start", expert, h.StartWork)
		requests.PUT("/:id/submit", expert, h.SubmitForReview)
		requests.PUT("/:id/approve", client, h.ClientApprove)
		requests.PUT("/:id/finalize", admin, h.AdminFinalize)
		requests.PUT("/:id/cancel", anyone, h.CancelRequest)
		requests.PUT("/:id/dispute", anyone, h.DisputeRequest)
		requests.PUT("/:id/resolve", admin, h.ResolveDispute)

		requests.GET("/:id/invoice", anyone, h.GetRequestInvoice)
	}

	invoices := api.Group("/invoices")
	invoices.Use(anyone)
	{
		invoices.GET("/:id/document", h.GetInvoiceDocument)
		invoices.GET("/:id/link", h.GetInvoiceLink)
	}

	payouts := api.Group("/payouts")
	{
		payouts.GET("/balance", expert, h.GetBalance)
		payouts.POST("", expert, h.CreatePayout)
		payouts.GET("", anyone, h.GetPayouts)
		payouts.PUT("/:id/approve", admin, h.ApprovePayout)
		payouts.PUT("/:id/reject", admin, h.RejectPayout)
	}

	router.GET("/ping", h.Ping)
}

// Ping checks the API is up
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *Handler) Ping(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"message": "pong"})
}
