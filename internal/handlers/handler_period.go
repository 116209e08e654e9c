package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/fleetops_finance/internal/core/ports/services"
	"github.com/SscSPs/fleetops_finance/internal/dto"
	"github.com/SscSPs/fleetops_finance/internal/middleware"
	"github.com/gin-gonic/gin"
)

// periodHandler answers accounting period lock queries.
type periodHandler struct {
	periodService portssvc.PeriodLockSvc
}

// registerPeriodRoutes registers routes related to accounting periods.
func registerPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodLockSvc) {
	h := &periodHandler{periodService: periodService}

	periods := rg.Group("/periods")
	{
		periods.GET("/locked", h.isDateLocked)
	}
}

// isDateLocked godoc
// @Summary Check whether a date is locked
// @Description Reports whether a closed accounting period contains the date, and which one
// @Tags periods
// @Produce  json
// @Param   date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.PeriodLockResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to check period lock"
// @Security BearerAuth
// @Router /periods/locked [get]
func (h *periodHandler) isDateLocked(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var query dto.PeriodLockQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindFailed(c, logger, "IsDateLocked", err)
		return
	}

	date, err := time.Parse(time.DateOnly, query.Date)
	if err != nil {
		bindFailed(c, logger, "IsDateLocked", err)
		return
	}

	period, err := h.periodService.LockingPeriod(c.Request.Context(), date)
	if err != nil {
		respondError(c, logger.With(slog.String("date", query.Date)), err, "Failed to check period lock")
		return
	}

	c.JSON(http.StatusOK, dto.PeriodLockResponse{
		Date:   query.Date,
		Locked: period != nil,
		Period: period,
	})
}
