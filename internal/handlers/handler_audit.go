package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/fleetops_finance/internal/core/ports/services"
	"github.com/SscSPs/fleetops_finance/internal/dto"
	"github.com/SscSPs/fleetops_finance/internal/middleware"
	"github.com/gin-gonic/gin"
)

// auditHandler serves a trip's audit trail.
type auditHandler struct {
	auditService portssvc.AuditTrailSvc
}

// registerAuditRoutes registers the audit trail route under trips.
func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditTrailSvc) {
	h := &auditHandler{auditService: auditService}
	rg.GET("/trips/:tripID/audit", h.getAuditTrail)
}

// getAuditTrail godoc
// @Summary Get a trip's audit trail
// @Description Newest first, including blocked attempts. Pass nextToken from the previous page to continue.
// @Tags trips
// @Produce  json
// @Param   tripID path string true "Trip ID"
// @Param   limit query int false "Page size (max 200)"
// @Param   nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListAuditResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Trip not found"
// @Failure 500 {object} map[string]string "Failed to retrieve audit trail"
// @Security BearerAuth
// @Router /trips/{tripID}/audit [get]
func (h *auditHandler) getAuditTrail(c *gin.Context) {
	tripID := c.Param("tripID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("trip_id", tripID))

	var params dto.ListAuditParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindFailed(c, logger, "GetAuditTrail", err)
		return
	}

	page, err := h.auditService.GetAuditTrail(c.Request.Context(), tripID, params.Limit, params.NextToken)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve audit trail")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAuditResponse(page))
}
