package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/fleetops_finance/internal/core/domain"
	portssvc "github.com/SscSPs/fleetops_finance/internal/core/ports/services"
	"github.com/SscSPs/fleetops_finance/internal/dto"
	"github.com/SscSPs/fleetops_finance/internal/middleware"
	"github.com/gin-gonic/gin"
)

// expenseHandler handles HTTP requests related to expenses and allocations.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

// newExpenseHandler creates a new expenseHandler.
func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{
		expenseService: es,
	}
}

// registerExpenseRoutes registers routes related to expenses and their allocations.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)
	financeOnly := middleware.RequireRoles(domain.RoleAdmin, domain.RoleFinance)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", financeOnly, h.createExpense)
		expenses.GET("/:expenseID", h.getExpense)
		expenses.POST("/:expenseID/confirm", financeOnly, h.confirmExpense)
		expenses.POST("/:expenseID/cancel", financeOnly, h.cancelExpense)
		expenses.POST("/:expenseID/assign", financeOnly, h.assignExpense)
		expenses.GET("/:expenseID/allocations", h.listAllocations)
		expenses.POST("/:expenseID/allocations", financeOnly, h.createAllocation)
	}

	rg.DELETE("/allocations/:allocationID", financeOnly, h.deleteAllocation)
}

// createExpense godoc
// @Summary Create a new expense
// @Description Registers a draft expense, optionally directly assigned to a trip
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Trip not found"
// @Failure 409 {object} map[string]string "Expense code already exists"
// @Failure 422 {object} dto.RefusalResponse "Refused"
// @Failure 500 {object} map[string]string "Failed to create expense"
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, logger, "CreateExpense", err)
		return
	}

	actor, ok := actorFromRequest(c, logger)
	if !ok {
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to create expense")
		return
	}

	logger.Info("Expense created successfully", slog.String("expense_id", expense.ExpenseID))
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// getExpense godoc
// @Summary Get an expense by ID
// @Tags expenses
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 500 {object} map[string]string "Failed to retrieve expense"
// @Security BearerAuth
// @Router /expenses/{expenseID} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("expense_id", c.Param("expenseID")))

	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), c.Param("expenseID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// confirmExpense godoc
// @Summary Confirm a draft expense
// @Tags expenses
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 422 {object} dto.RefusalResponse "Refused"
// @Failure 500 {object} map[string]string "Failed to confirm expense"
// @Security BearerAuth
// @Router /expenses/{expenseID}/confirm [post]
func (h *expenseHandler) confirmExpense(c *gin.Context) {
	h.changeExpense(c, "Failed to confirm expense", h.expenseService.ConfirmExpense)
}

// cancelExpense godoc
// @Summary Cancel an expense
// @Description Refused when the expense date is locked or the expense is linked to a closed trip
// @Tags expenses
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 422 {object} dto.RefusalResponse "Refused"
// @Failure 500 {object} map[string]string "Failed to cancel expense"
// @Security BearerAuth
// @Router /expenses/{expenseID}/cancel [post]
func (h *expenseHandler) cancelExpense(c *gin.Context) {
	h.changeExpense(c, "Failed to cancel expense", h.expenseService.CancelExpense)
}

// changeExpense runs a status change that needs nothing but the expense ID.
func (h *expenseHandler) changeExpense(c *gin.Context, fallback string, fn func(ctx context.Context, expenseID string, actor domain.Actor) (*domain.Expense, error)) {
	expenseID := c.Param("expenseID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("expense_id", expenseID))

	actor, ok := actorFromRequest(c, logger)
	if !ok {
		return
	}

	expense, err := fn(c.Request.Context(), expenseID, actor)
	if err != nil {
		respondError(c, logger, err, fallback)
		return
	}

	logger.Info("Expense status changed", slog.String("status", string(expense.Status)))
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// assignExpense godoc
// @Summary Directly assign an expense to a trip
// @Description Refused when the expense already has allocations
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Param   assignment body dto.AssignExpenseRequest true "Target trip"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Expense or trip not found"
// @Failure 422 {object} dto.RefusalResponse "Refused"
// @Failure 500 {object} map[string]string "Failed to assign expense"
// @Security BearerAuth
// @Router /expenses/{expenseID}/assign [post]
func (h *expenseHandler) assignExpense(c *gin.Context) {
	expenseID := c.Param("expenseID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("expense_id", expenseID))

	var req dto.AssignExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, logger, "AssignExpense", err)
		return
	}

	actor, ok := actorFromRequest(c, logger)
	if !ok {
		return
	}

	expense, err := h.expenseService.AssignExpense(c.Request.Context(), expenseID, req.TripID, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to assign expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// listAllocations godoc
// @Summary List the allocations of an expense
// @Tags expenses
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Success 200 {object} dto.ListAllocationsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 500 {object} map[string]string "Failed to list allocations"
// @Security BearerAuth
// @Router /expenses/{expenseID}/allocations [get]
func (h *expenseHandler) listAllocations(c *gin.Context) {
	expenseID := c.Param("expenseID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("expense_id", expenseID))

	allocations, err := h.expenseService.ListAllocations(c.Request.Context(), expenseID)
	if err != nil {
		respondError(c, logger, err, "Failed to list allocations")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAllocationsResponse(allocations))
}

// createAllocation godoc
// @Summary Allocate part of an expense to a trip
// @Description The allocated percentages of one expense never exceed 100
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Param   allocation body dto.CreateAllocationRequest true "Trip and percentage"
// @Success 201 {object} dto.AllocationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Expense or trip not found"
// @Failure 422 {object} dto.RefusalResponse "Refused"
// @Failure 500 {object} map[string]string "Failed to create allocation"
// @Security BearerAuth
// @Router /expenses/{expenseID}/allocations [post]
func (h *expenseHandler) createAllocation(c *gin.Context) {
	expenseID := c.Param("expenseID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("expense_id", expenseID))

	var req dto.CreateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, logger, "CreateAllocation", err)
		return
	}

	actor, ok := actorFromRequest(c, logger)
	if !ok {
		return
	}

	allocation, err := h.expenseService.CreateAllocation(c.Request.Context(), expenseID, req.TripID, req.Percentage, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to create allocation")
		return
	}

	logger.Info("Allocation created", slog.String("allocation_id", allocation.AllocationID), slog.String("trip_id", allocation.TripID))
	c.JSON(http.StatusCreated, dto.ToAllocationResponse(allocation))
}

// deleteAllocation godoc
// @Summary Delete an allocation
// @Tags expenses
// @Param   allocationID path string true "Allocation ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Allocation not found"
// @Failure 500 {object} map[string]string "Failed to delete allocation"
// @Security BearerAuth
// @Router /allocations/{allocationID} [delete]
func (h *expenseHandler) deleteAllocation(c *gin.Context) {
	allocationID := c.Param("allocationID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("allocation_id", allocationID))

	actor, ok := actorFromRequest(c, logger)
	if !ok {
		return
	}

	if err := h.expenseService.DeleteAllocation(c.Request.Context(), allocationID, actor); err != nil {
		respondError(c, logger, err, "Failed to delete allocation")
		return
	}
	c.Status(http.StatusNoContent)
}
