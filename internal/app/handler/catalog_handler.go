package handler

import (
	"errors"
	"net/http"
	"strconv"

	"marketplace/internal/app/apperr"
	"marketplace/internal/app/ds"
	"marketplace/internal/app/dto"
	"marketplace/internal/app/matching"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GetServices lists the catalog
// @Summary List services
// @Description Active services, optionally filtered by name
// @Tags Catalog
// @Produce json
// @Param query query string false "Name filter"
// @Success 200 {array} dto.ServiceResponse
// @Router /api/services [get]
func (h *Handler) GetServices(ctx *gin.Context) {
	services, err := h.Repository.WithContext(ctx.Request.Context()).ListServices(ctx.Query("query"))
	if err != nil {
		h.errorResponse(ctx, apperr.FromStore("listServices", err))
		return
	}

	out := make([]dto.ServiceResponse, 0, len(services))
	for i := range services {
		out = append(out, dto.FromService(&services[i], nil))
	}
	ctx.JSON(http.StatusOK, out)
}

// GetService returns one service with its plans
// @Summary Get service
// @Tags Catalog
// @Produce json
// @Param id path int true "Service ID"
// @Success 200 {object} dto.ServiceResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/services/{id} [get]
func (h *Handler) GetService(ctx *gin.Context) {
	id, err := uintParam(ctx, "id")
	if err != nil {
		h.badRequest(ctx, err)
		return
	}

	repo := h.Repository.WithContext(ctx.Request.Context())
	service, err := repo.GetService(id)
	if err != nil {
		h.errorResponse(ctx, apperr.FromStore("getService", err))
		return
	}
	plans, err := repo.ListPlans(id)
	if err != nil {
		h.errorResponse(ctx, apperr.FromStore("getService", err))
		return
	}

	ctx.JSON(http.StatusOK, dto.FromService(service, plans))
}

// CreateService adds a service to the catalog
// @Summary Create service
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateServiceRequest true "Service"
// @Success 201 {object} dto.ServiceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/services [post]
func (h *Handler) CreateService(ctx *gin.Context) {
	var request dto.CreateServiceRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.badRequest(ctx, err)
		return
	}
	if !request.Price.IsPositive() || !request.ExpertShareValue.IsPositive() {
		h.errorResponse(ctx, apperr.New(apperr.BadInput, "createService", "price and expert share must be positive"))
		return
	}

	service := &ds.Service{
		Name:             request.Name,
		Description:      request.Description,
		Price:            request.Price.Round(2),
		ExpertShareType:  request.ExpertShareType,
		ExpertShareValue: request.ExpertShareValue.Round(2),
	}
	if err := h.Repository.WithContext(ctx.Request.Context()).CreateService(service); err != nil {
		h.errorResponse(ctx, apperr.FromStore("createService", err))
		return
	}

	logrus.Infof("service %d (%s) created", service.ID, service.Slug)
	ctx.JSON(http.StatusCreated, dto.FromService(service, nil))
}

// GetPlans lists pricing plans
// @Summary List plans
// @Tags Catalog
// @Produce json
// @Param service_id query int false "Service ID"
// @Success 200 {array} dto.PlanResponse
// @Router /api/plans [get]
func (h *Handler) GetPlans(ctx *gin.Context) {
	var serviceID uint
	if raw := ctx.Query("service_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			h.badRequest(ctx, err)
			return
		}
		serviceID = uint(v)
	}

	plans, err := h.Repository.WithContext(ctx.Request.Context()).ListPlans(serviceID)
	if err != nil {
		h.errorResponse(ctx, apperr.FromStore("listPlans", err))
		return
	}

	out := make([]dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, dto.PlanResponse{ID: p.ID, ServiceID: p.ServiceID, Name: p.Name, Slug: p.Slug, Price: p.Price})
	}
	ctx.JSON(http.StatusOK, out)
}

// CreatePlan adds a pricing plan to a service
// @Summary Create plan
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePlanRequest true "Plan"
// @Success 201 {object} dto.PlanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/plans [post]
func (h *Handler) CreatePlan(ctx *gin.Context) {
	var request dto.CreatePlanRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.badRequest(ctx, err)
		return
	}
	if !request.Price.IsPositive() || !request.ExpertShareValue.IsPositive() {
		h.errorResponse(ctx, apperr.New(apperr.BadInput, "createPlan", "price and expert share must be positive"))
		return
	}

	repo := h.Repository.WithContext(ctx.Request.Context())
	if _, err := repo.GetService(request.ServiceID); err != nil {
		h.errorResponse(ctx, apperr.FromStore("createPlan", err))
		return
	}

	plan := &ds.PricingPlan{
		ServiceID:        request.ServiceID,
		Name:             request.Name,
		Price:            request.Price.Round(2),
		ExpertShareType:  request.ExpertShareType,
		ExpertShareValue: request.ExpertShareValue.Round(2),
	}
	if err := repo.CreatePlan(plan); err != nil {
		h.errorResponse(ctx, apperr.FromStore("createPlan", err))
		return
	}

	ctx.JSON(http.StatusCreated, dto.PlanResponse{ID: plan.ID, ServiceID: plan.ServiceID, Name: plan.Name, Slug: plan.Slug, Price: plan.Price})
}

// MatchService suggests a catalog service for a free-text problem
// @Summary Match a service
// @Description Asks the language model to pick a service and skill tags
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MatchRequest true "Problem description"
// @Success 200 {object} dto.MatchResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/services/match [post]
func (h *Handler) MatchService(ctx *gin.Context) {
	const op = "matchService"
	if h.Matcher == nil {
		h.errorResponse(ctx, apperr.Wrap(apperr.Unavailable, op, errMatcherDisabled))
		return
	}

	var request dto.MatchRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.badRequest(ctx, err)
		return
	}

	repo := h.Repository.WithContext(ctx.Request.Context())
	services, err := repo.ListServices("")
	if err != nil {
		h.errorResponse(ctx, apperr.FromStore(op, err))
		return
	}

	suggestion, err := h.Matcher.Suggest(ctx.Request.Context(), request.Text, services)
	switch {
	case errors.Is(err, matching.ErrNoMatch):
		h.errorResponse(ctx, apperr.New(apperr.NotFound, op, "no service fits"))
		return
	case err != nil:
		h.errorResponse(ctx, apperr.Wrap(apperr.DependencyFailure, op, err))
		return
	}

	var picked *ds.Service
	for i := range services {
		if services[i].ID == suggestion.ServiceID {
			picked = &services[i]
			break
		}
	}
	plans, err := repo.ListPlans(picked.ID)
	if err != nil {
		h.errorResponse(ctx, apperr.FromStore(op, err))
		return
	}

	ctx.JSON(http.StatusOK, dto.MatchResponse{
		Service: dto.FromService(picked, plans),
		Skills:  suggestion.Skills,
		Reason:  suggestion.Reason,
	})
}
