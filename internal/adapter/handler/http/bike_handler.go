package http

import (
	"net/http"
	"time"

	"github.com/pedalkeep/bike_maintenance_service/internal/core/domain"
	"github.com/pedalkeep/bike_maintenance_service/internal/core/ports"
	"github.com/pedalkeep/bike_maintenance_service/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BikeHandler struct {
	bikeService     *services.BikeService
	intervalService *services.IntervalService
	logger          ports.LoggerPort
	metrics         ports.MetricsPort
}

type BikeRequest struct {
	BikeName     string `json:"bike_name" binding:"required" example:"Trek Fuel EX 9.8"`
	Type         string `json:"type,omitempty" example:"full_suspension"`
	StravaGearID string `json:"strava_gear_id,omitempty" example:"b1234567"`
}

type UpdateBike struct {
	BikeName     *string  `json:"bike_name,omitempty" example:"Trek Fuel EX 9.8"`
	Type         *string  `json:"type,omitempty" example:"full_suspension"`
	StravaGearID *string  `json:"strava_gear_id,omitempty" example:"b1234567"`
	DistanceKM   *float64 `json:"distance_km,omitempty" example:"2450.5"`
}

type CreateBikeResponse struct {
	BikeID    uuid.UUID              `json:"bike_id"`
	UserID    uuid.UUID              `json:"user_id"`
	BikeName  string                 `json:"bike_name"`
	Type      string                 `json:"type"`
	Detection domain.DetectionResult `json:"detection"`
	CreatedAt time.Time              `json:"created_at"`
}

type BikeInfo struct {
	BikeID       uuid.UUID `json:"bike_id"`
	UserID       uuid.UUID `json:"user_id"`
	BikeName     string    `json:"bike_name"`
	Type         string    `json:"type"`
	Manufacturer string    `json:"manufacturer,omitempty"`
	Model        string    `json:"model,omitempty"`
	StravaGearID string    `json:"strava_gear_id,omitempty"`
	DistanceKM   float64   `json:"distance_km"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type GetMyBikesResponse struct {
	Bikes []BikeInfo `json:"bikes"`
	Count int        `json:"count"`
}

type BikeStatusResponse struct {
	BikeID    uuid.UUID                 `json:"bike_id"`
	Intervals []services.IntervalStatus `json:"intervals"`
}

func NewBikeHandler(
	bikeService *services.BikeService,
	intervalService *services.IntervalService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *BikeHandler {
	return &BikeHandler{
		bikeService:     bikeService,
		intervalService: intervalService,
		logger:          logger,
		metrics:         metrics,
	}
}

func bikeInfoOf(bike *domain.Bike) BikeInfo {
	return BikeInfo{
		BikeID:       bike.BikeID,
		UserID:       bike.UserID,
		BikeName:     bike.BikeName,
		Type:         string(bike.Type),
		Manufacturer: bike.Manufacturer,
		Model:        bike.Model,
		StravaGearID: bike.StravaGearID,
		DistanceKM:   bike.DistanceKM,
		CreatedAt:    bike.CreatedAt,
		UpdatedAt:    bike.UpdatedAt,
	}
}

// @Summary Create bike
// @Description Creates a bike; the name is run through detection to infer type and suggested intervals
// @Tags bikes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body BikeRequest true "Bike data"
// @Success 201 {object} CreateBikeResponse "Bike created"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Router /bikes [post]
func (h *BikeHandler) CreateBike(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), start)
	}()

	payload, exists := getAuthPayload(c, authPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req BikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in create bike", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	bike := &domain.Bike{
		UserID:       payload.UserID,
		BikeName:     req.BikeName,
		Type:         domain.BikeType(req.Type),
		StravaGearID: req.StravaGearID,
	}

	createdBike, detection, err := h.bikeService.CreateBike(c.Request.Context(), bike)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.metrics.IncDetections(string(detection.Confidence))

	c.JSON(http.StatusCreated, CreateBikeResponse{
		BikeID:    createdBike.BikeID,
		UserID:    createdBike.UserID,
		BikeName:  createdBike.BikeName,
		Type:      string(createdBike.Type),
		Detection: detection,
		CreatedAt: createdBike.CreatedAt,
	})
}

// @Summary My bikes
// @Tags bikes
// @Security BearerAuth
// @Produce json
// @Success 200 {object} GetMyBikesResponse
// @Failure 401 {object} errorResponse "Unauthorized"
// @Router /bikes/my [get]
func (h *BikeHandler) GetMyBikes(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), start)
	}()

	payload, exists := getAuthPayload(c, authPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	bikes, err := h.bikeService.GetBikesByUserID(c.Request.Context(), payload.UserID.String())
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "Failed to get bikes")
		return
	}

	infos := make([]BikeInfo, 0, len(bikes))
	for _, bike := range bikes {
		infos = append(infos, bikeInfoOf(bike))
	}

	c.JSON(http.StatusOK, GetMyBikesResponse{Bikes: infos, Count: len(infos)})
}

// @Summary Get bike
// @Tags bikes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Bike ID"
// @Success 200 {object} BikeInfo
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "Not found"
// @Router /bikes/{id} [get]
func (h *BikeHandler) GetBike(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), start)
	}()

	bike, ok := h.ownedBike(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, bikeInfoOf(bike))
}

// @Summary Bike maintenance status
// @Description Hours used, hours remaining, urgency and usage fraction for every interval on the bike
// @Tags bikes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Bike ID"
// @Success 200 {object} BikeStatusResponse
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "Not found"
// @Router /bikes/{id}/status [get]
func (h *BikeHandler) GetBikeStatus(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), start)
	}()

	bike, ok := h.ownedBike(c)
	if !ok {
		return
	}

	statuses, err := h.intervalService.StatusForBike(c.Request.Context(), bike.BikeID)
	if err != nil {
		h.logger.Error("Failed to compute bike status", map[string]interface{}{
			"error":   err.Error(),
			"bike_id": bike.BikeID.String(),
		})
		newErrorResponse(c, http.StatusInternalServerError, "Failed to compute status")
		return
	}

	c.JSON(http.StatusOK, BikeStatusResponse{BikeID: bike.BikeID, Intervals: statuses})
}

// @Summary Update bike
// @Tags bikes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Bike ID"
// @Param request body UpdateBike true "Fields to update"
// @Success 200 {object} BikeInfo
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "Not found"
// @Router /bikes/{id} [put]
func (h *BikeHandler) UpdateBike(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), start)
	}()

	bike, ok := h.ownedBike(c)
	if !ok {
		return
	}

	var req UpdateBike
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if req.BikeName != nil {
		bike.BikeName = *req.BikeName
	}
	if req.Type != nil {
		bike.Type = domain.ParseBikeType(*req.Type)
	}
	if req.StravaGearID != nil {
		bike.StravaGearID = *req.StravaGearID
	}
	if req.DistanceKM != nil {
		bike.DistanceKM = *req.DistanceKM
	}

	updated, err := h.bikeService.UpdateBike(c.Request.Context(), bike)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, bikeInfoOf(updated))
}

// @Summary Delete bike
// @Description Deletes the bike with its rides, intervals and service history
// @Tags bikes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Bike ID"
// @Success 200 {object} successResponse
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "Not found"
// @Router /bikes/{id} [delete]
func (h *BikeHandler) DeleteBike(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), start)
	}()

	bike, ok := h.ownedBike(c)
	if !ok {
		return
	}

	if err := h.bikeService.DeleteBike(c.Request.Context(), bike.BikeID.String()); err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "Failed to delete bike")
		return
	}

	c.JSON(http.StatusOK, successResponse{Message: "Bike deleted"})
}

// ownedBike loads the path bike and enforces owner-or-admin access.
func (h *BikeHandler) ownedBike(c *gin.Context) (*domain.Bike, bool) {
	payload, exists := getAuthPayload(c, authPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	bike, err := h.bikeService.GetBikeByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusNotFound, "Bike not found")
		return nil, false
	}

	if payload.Role != domain.Admin && payload.UserID != bike.UserID {
		h.logger.Warn("Access denied to bike", map[string]interface{}{
			"requester_id": payload.UserID.String(),
			"bike_owner":   bike.UserID.String(),
			"bike_id":      bike.BikeID.String(),
		})
		newErrorResponse(c, http.StatusForbidden, "Access denied")
		return nil, false
	}

	return bike, true
}
