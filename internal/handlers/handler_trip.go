package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/fleetops_finance/internal/core/domain"
	portssvc "github.com/SscSPs/fleetops_finance/internal/core/ports/services"
	"github.com/SscSPs/fleetops_finance/internal/dto"
	"github.com/SscSPs/fleetops_finance/internal/middleware"
	"github.com/gin-gonic/gin"
)

// tripHandler handles HTTP requests related to trips and their transitions.
type tripHandler struct {
	tripService      portssvc.TripSvcFacade
	financialService portssvc.FinancialAggregatorSvc
}

// newTripHandler creates a new tripHandler.
func newTripHandler(ts portssvc.TripSvcFacade, fs portssvc.FinancialAggregatorSvc) *tripHandler {
	return &tripHandler{
		tripService:      ts,
		financialService: fs,
	}
}

// registerTripRoutes registers routes related to trips.
// Transitions and updates carry no role middleware: the service audits attempts that a role
// check would otherwise hide.
func registerTripRoutes(rg *gin.RouterGroup, tripService portssvc.TripSvcFacade, financialService portssvc.FinancialAggregatorSvc) {
	h := newTripHandler(tripService, financialService)

	trips := rg.Group("/trips")
	{
		trips.POST("", middleware.RequireRoles(domain.RoleAdmin, domain.RoleFinance, domain.RoleDispatcher), h.createTrip)
		trips.GET("/:tripID", h.getTrip)
		trips.PATCH("/:tripID", h.updateTrip)
		trips.POST("/:tripID/transitions", h.requestTransition)
		trips.GET("/:tripID/transitions/:target/validate", h.validateTransition)
		trips.GET("/:tripID/financials", h.getFinancials)
	}
}

// actorFromRequest returns the authenticated actor, writing a 401 when there is none.
func actorFromRequest(c *gin.Context, logger *slog.Logger) (domain.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return domain.Actor{}, false
	}
	return actor, true
}

// createTrip godoc
// @Summary Create a new trip
// @Description Registers a trip in draft. Refused when the planned departure falls in a closed accounting period.
// @Tags trips
// @Accept  json
// @Produce  json
// @Param   trip body dto.CreateTripRequest true "Trip details"
// @Success 201 {object} dto.TripResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Trip code already exists"
// @Failure 422 {object} dto.RefusalResponse "Refused"
// @Failure 500 {object} map[string]string "Failed to create trip"
// @Security BearerAuth
// @Router /trips [post]
func (h *tripHandler) createTrip(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, logger, "CreateTrip", err)
		return
	}

	actor, ok := actorFromRequest(c, logger)
	if !ok {
		return
	}

	logger.Info("Received request to create trip", slog.String("trip_code", req.Code))

	trip, err := h.tripService.CreateTrip(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to create trip")
		return
	}

	logger.Info("Trip created successfully", slog.String("trip_id", trip.TripID))
	c.JSON(http.StatusCreated, dto.ToTripResponse(trip))
}

// getTrip godoc
// @Summary Get a trip by ID
// @Description Retrieves a trip with the transitions currently reachable from its status
// @Tags trips
// @Produce  json
// @Param   tripID path string true "Trip ID"
// @Success 200 {object} dto.TripResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Trip not found"
// @Failure 500 {object} map[string]string "Failed to retrieve trip"
// @Security BearerAuth
// @Router /trips/{tripID} [get]
func (h *tripHandler) getTrip(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("trip_id", c.Param("tripID")))

	trip, err := h.tripService.GetTripByID(c.Request.Context(), c.Param("tripID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve trip")
		return
	}
	c.JSON(http.StatusOK, dto.ToTripResponse(trip))
}

// updateTrip godoc
// @Summary Update trip fields
// @Description Changes revenue, schedule or assignment fields. Closed trips and trips dated in a closed period refuse and the attempt is audited.
// @Tags trips
// @Accept  json
// @Produce  json
// @Param   tripID path string true "Trip ID"
// @Param   trip body dto.UpdateTripRequest true "Fields to update"
// @Success 200 {object} dto.TripResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Trip not found"
// @Failure 409 {object} map[string]string "Version conflict"
// @Failure 422 {object} dto.RefusalResponse "Refused"
// @Failure 500 {object} map[string]string "Failed to update trip"
// @Security BearerAuth
// @Router /trips/{tripID} [patch]
func (h *tripHandler) updateTrip(c *gin.Context) {
	tripID := c.Param("tripID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("trip_id", tripID))

	var req dto.UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, logger, "UpdateTrip", err)
		return
	}

	actor, ok := actorFromRequest(c, logger)
	if !ok {
		return
	}

	trip, err := h.tripService.UpdateTrip(c.Request.Context(), tripID, req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to update trip")
		return
	}

	logger.Info("Trip updated successfully", slog.Int64("version", trip.Version))
	c.JSON(http.StatusOK, dto.ToTripResponse(trip))
}

// requestTransition godoc
// @Summary Move a trip to another status
// @Description Evaluates every guard. A refusal lists all failed conditions and is recorded in the audit trail.
// @Tags trips
// @Accept  json
// @Produce  json
// @Param   tripID path string true "Trip ID"
// @Param   transition body dto.TransitionTripRequest true "Target status"
// @Success 200 {object} dto.TransitionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Trip not found"
// @Failure 422 {object} dto.TransitionResponse "Transition refused"
// @Failure 500 {object} map[string]string "Failed to transition trip"
// @Security BearerAuth
// @Router /trips/{tripID}/transitions [post]
func (h *tripHandler) requestTransition(c *gin.Context) {
	tripID := c.Param("tripID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("trip_id", tripID))

	var req dto.TransitionTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, logger, "RequestTransition", err)
		return
	}

	actor, ok := actorFromRequest(c, logger)
	if !ok {
		return
	}

	result, err := h.tripService.RequestTransition(c.Request.Context(), tripID, domain.TransitionRequest{
		Target:      req.Target,
		Actor:       actor,
		ArrivalTime: req.ArrivalTime,
		DistanceKm:  req.DistanceKm,
	})
	if err != nil {
		respondError(c, logger, err, "Failed to transition trip")
		return
	}

	status := http.StatusOK
	if !result.OK {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, dto.ToTransitionResponse(result))
}

// validateTransition godoc
// @Summary Pre-flight check for a transition
// @Description Lists every reason the transition would be refused right now. Writes nothing.
// @Tags trips
// @Produce  json
// @Param   tripID path string true "Trip ID"
// @Param   target path string true "Target status"
// @Param   arrivalTime query string false "Planned arrival time for completed (RFC3339)"
// @Param   distanceKm query string false "Planned distance for completed"
// @Success 200 {object} dto.ValidateTransitionResponse
// @Failure 400 {object} map[string]string "Unknown target status or invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Trip not found"
// @Failure 500 {object} map[string]string "Failed to validate transition"
// @Security BearerAuth
// @Router /trips/{tripID}/transitions/{target}/validate [get]
func (h *tripHandler) validateTransition(c *gin.Context) {
	tripID := c.Param("tripID")
	target := domain.TripStatus(c.Param("target"))
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("trip_id", tripID), slog.String("target", string(target)))

	if !target.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown target status: " + string(target)})
		return
	}

	var query dto.ValidateTransitionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindFailed(c, logger, "ValidateTransition", err)
		return
	}

	actor, ok := actorFromRequest(c, logger)
	if !ok {
		return
	}

	req, err := query.ToTransitionRequest(target, actor)
	if err != nil {
		bindFailed(c, logger, "ValidateTransition", err)
		return
	}

	reasons, err := h.tripService.ValidateTransition(c.Request.Context(), tripID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to validate transition")
		return
	}
	if reasons == nil {
		reasons = []string{}
	}

	c.JSON(http.StatusOK, dto.ValidateTransitionResponse{
		Target:  target,
		Allowed: len(reasons) == 0,
		Reasons: reasons,
	})
}

// getFinancials godoc
// @Summary Get the financial summary of a trip
// @Description Revenue, confirmed expenses (direct and allocated), profit and margin
// @Tags trips
// @Produce  json
// @Param   tripID path string true "Trip ID"
// @Success 200 {object} domain.TripFinancials
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Trip not found"
// @Failure 500 {object} map[string]string "Failed to compute financials"
// @Security BearerAuth
// @Router /trips/{tripID}/financials [get]
func (h *tripHandler) getFinancials(c *gin.Context) {
	tripID := c.Param("tripID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("trip_id", tripID))

	fin, err := h.financialService.Aggregate(c.Request.Context(), tripID)
	if err != nil {
		respondError(c, logger, err, "Failed to compute financials")
		return
	}
	c.JSON(http.StatusOK, fin)
}
