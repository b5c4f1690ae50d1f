package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sciops/workorder-gin/internal/model"
	"github.com/sciops/workorder-gin/internal/service"
	"github.com/sciops/workorder-gin/internal/statemachine"
	"github.com/sciops/workorder-gin/internal/store"
)

// WorkOrderController HTTP surface of the work order manager.
type WorkOrderController struct {
	orders service.WorkOrderService
}

// NewWorkOrderController creates a work order controller.
func NewWorkOrderController(orders service.WorkOrderService) *WorkOrderController {
	return &WorkOrderController{orders: orders}
}

// handleDomainError maps core error values onto HTTP responses. All core
// errors are recoverable; the caller gets the detail it needs to re-present
// the form.
func handleDomainError(ctx *gin.Context, err error, operation string) {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		ValidationFailed(ctx, validationErr.Errors)
		return
	}
	var transitionErr *statemachine.TransitionError
	if errors.As(err, &transitionErr) {
		Error(ctx, http.StatusConflict, "illegal status transition", transitionErr.Error())
		return
	}
	var conflictErr *store.NumberingConflictError
	if errors.As(err, &conflictErr) {
		Error(ctx, http.StatusConflict, "numbering conflict", conflictErr.Error())
		return
	}
	if errors.Is(err, service.ErrNotFound) {
		Error(ctx, http.StatusNotFound, "work order not found", err.Error())
		return
	}
	Error(ctx, http.StatusInternalServerError, "failed to "+operation, err.Error())
}

// Create creates a work order
// @Summary      Create a work order
// @Description  Validates the request for its kind, assigns the next ticket number and stores the order as pending
// @Tags         work-orders
// @Accept       json
// @Produce      json
// @Param        request body service.CreateWorkOrderRequest true "Work order"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /work-orders [post]
func (c *WorkOrderController) Create(ctx *gin.Context) {
	var req service.CreateWorkOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	order, err := c.orders.Create(ctx.Request.Context(), &req)
	if err != nil {
		handleDomainError(ctx, err, "create work order")
		return
	}

	Success(ctx, order)
}

// Get returns one work order
// @Summary      Get a work order
// @Tags         work-orders
// @Produce      json
// @Param        ticket path string true "Ticket number"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /work-orders/{ticket} [get]
func (c *WorkOrderController) Get(ctx *gin.Context) {
	order, err := c.orders.Get(ctx.Param("ticket"))
	if err != nil {
		handleDomainError(ctx, err, "get work order")
		return
	}

	Success(ctx, order)
}

// Update edits a work order
// @Summary      Update a work order
// @Description  Merges the edit, re-validates the result and commits it; kind, sequence ID and ticket number are immutable
// @Tags         work-orders
// @Accept       json
// @Produce      json
// @Param        ticket path string true "Ticket number"
// @Param        request body service.UpdateWorkOrderRequest true "Fields to change"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /work-orders/{ticket} [put]
func (c *WorkOrderController) Update(ctx *gin.Context) {
	var req service.UpdateWorkOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	order, err := c.orders.Update(ctx.Request.Context(), ctx.Param("ticket"), &req)
	if err != nil {
		handleDomainError(ctx, err, "update work order")
		return
	}

	Success(ctx, order)
}

// setStatusRequest status change body.
type setStatusRequest struct {
	Status   string `json:"status" binding:"required" example:"in_progress"`
	Operator string `json:"operator" example:"almeida"`
}

// SetStatus transitions a work order
// @Summary      Change a work order's status
// @Description  Applies the status engine; illegal transitions are rejected with the attempted and current status
// @Tags         work-orders
// @Accept       json
// @Produce      json
// @Param        ticket path string true "Ticket number"
// @Param        request body setStatusRequest true "Target status"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /work-orders/{ticket}/status [post]
func (c *WorkOrderController) SetStatus(ctx *gin.Context) {
	var req setStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	status, err := model.ParseStatus(req.Status)
	if err != nil {
		Error(ctx, http.StatusBadRequest, "invalid status", err.Error())
		return
	}

	order, err := c.orders.SetStatus(ctx.Request.Context(), ctx.Param("ticket"), status, req.Operator)
	if err != nil {
		handleDomainError(ctx, err, "change work order status")
		return
	}

	Success(ctx, order)
}

// List filters work orders
// @Summary      List work orders
// @Description  Filters by kind, status (open/closed or a specific status), requester substring and free text; newest first
// @Tags         work-orders
// @Produce      json
// @Param        kind      query string false "Work order kind"
// @Param        status    query string false "open, closed or a specific status"
// @Param        requester query string false "Requester substring"
// @Param        q         query string false "Free-text search"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Router       /work-orders [get]
func (c *WorkOrderController) List(ctx *gin.Context) {
	var filter store.Filter

	if raw := ctx.Query("kind"); raw != "" {
		kind, err := model.ParseKind(raw)
		if err != nil {
			Error(ctx, http.StatusBadRequest, "invalid kind", err.Error())
			return
		}
		filter.Kind = &kind
	}

	switch raw := ctx.Query("status"); raw {
	case "":
	case string(store.ScopeOpen):
		filter.Scope = store.ScopeOpen
	case string(store.ScopeClosed):
		filter.Scope = store.ScopeClosed
	default:
		status, err := model.ParseStatus(raw)
		if err != nil {
			Error(ctx, http.StatusBadRequest, "invalid status", err.Error())
			return
		}
		filter.Status = &status
	}

	filter.Requester = ctx.Query("requester")
	filter.Query = ctx.Query("q")

	Success(ctx, c.orders.List(filter))
}

// History returns a ticket's status transitions
// @Summary      Get a work order's status history
// @Tags         work-orders
// @Produce      json
// @Param        ticket path string true "Ticket number"
// @Success      200  {object}  Response
// @Router       /work-orders/{ticket}/history [get]
func (c *WorkOrderController) History(ctx *gin.Context) {
	history, err := c.orders.History(ctx.Param("ticket"))
	if err != nil {
		handleDomainError(ctx, err, "get status history")
		return
	}

	Success(ctx, history)
}

// Fields returns the per-kind form contract
// @Summary      Get the field contract of a kind
// @Description  Which variant fields to render, whether each is required, and the allowed enum values
// @Tags         work-orders
// @Produce      json
// @Param        kind path string true "Work order kind"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Router       /work-orders/fields/{kind} [get]
func (c *WorkOrderController) Fields(ctx *gin.Context) {
	kind, err := model.ParseKind(ctx.Param("kind"))
	if err != nil {
		Error(ctx, http.StatusBadRequest, "invalid kind", err.Error())
		return
	}

	fields, err := model.KindFields(kind)
	if err != nil {
		Error(ctx, http.StatusBadRequest, "invalid kind", err.Error())
		return
	}

	Success(ctx, gin.H{"kind": kind, "fields": fields})
}

// Kinds lists the work order kinds
// @Summary      List work order kinds
// @Tags         work-orders
// @Produce      json
// @Success      200  {object}  Response
// @Router       /work-orders/kinds [get]
func (c *WorkOrderController) Kinds(ctx *gin.Context) {
	Success(ctx, model.Kinds())
}
