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

type IntervalHandler struct {
	intervalService *services.IntervalService
	bikeService     *services.BikeService
	logger          ports.LoggerPort
	metrics         ports.MetricsPort
}

type CreateIntervalsRequest struct {
	TemplateIDs     []string `json:"template_ids" binding:"required" example:"chain,brake_pads"`
	LastServiceDate string   `json:"last_service_date,omitempty" example:"2026-08-01"`
}

type DetectIntervalsRequest struct {
	LastServiceDate string `json:"last_service_date,omitempty" example:"2026-08-01"`
}

type CreateIntervalsResponse struct {
	Created          []*domain.ServiceInterval `json:"created"`
	SkippedTemplates []string                  `json:"skipped_templates,omitempty"`
	Detection        *domain.DetectionResult   `json:"detection,omitempty"`
}

type UpdateIntervalRequest struct {
	Part            *string  `json:"part,omitempty" example:"chain"`
	IntervalHours   *float64 `json:"interval_hours,omitempty" example:"100"`
	Notify          *bool    `json:"notify,omitempty" example:"true"`
	LastServiceDate *string  `json:"last_service_date,omitempty" example:"2026-08-01"`
}

type ResetIntervalRequest struct {
	Date string `json:"date,omitempty" example:"2026-08-30"`
	Note string `json:"note,omitempty" example:"Chain replaced with new KMC X12"`
}

type IntervalHistoryResponse struct {
	Records []domain.ServiceRecord `json:"records"`
	Count   int                    `json:"count"`
}

func NewIntervalHandler(
	intervalService *services.IntervalService,
	bikeService *services.BikeService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *IntervalHandler {
	return &IntervalHandler{
		intervalService: intervalService,
		bikeService:     bikeService,
		logger:          logger,
		metrics:         metrics,
	}
}

// parseServiceDate accepts a plain date or RFC3339; empty means now.
// The clients only let users pick a date, not a time.
func parseServiceDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// @Summary Create intervals from detection
// @Description Runs detection on the bike's name and seeds service intervals from the suggested templates
// @Tags intervals
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Bike ID"
// @Param request body DetectIntervalsRequest true "Creation options"
// @Success 201 {object} CreateIntervalsResponse "Intervals created"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "Bike not found"
// @Router /bikes/{id}/intervals/detect [post]
func (h *IntervalHandler) CreateFromDetection(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), start)
	}()

	bike, ok := h.ownedBike(c, c.Param("id"))
	if !ok {
		return
	}

	var req DetectIntervalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	lastServiceDate, err := parseServiceDate(req.LastServiceDate)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid last_service_date")
		return
	}

	detection := h.bikeService.Detect(bike.BikeName)
	h.metrics.IncDetections(string(detection.Confidence))

	created, skipped, err := h.intervalService.CreateFromDetection(c.Request.Context(), bike, detection, lastServiceDate)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, CreateIntervalsResponse{
		Created:          created,
		SkippedTemplates: skipped,
		Detection:        &detection,
	})
}

// @Summary Create intervals from selected templates
// @Tags intervals
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Bike ID"
// @Param request body CreateIntervalsRequest true "Template ids and service date"
// @Success 201 {object} CreateIntervalsResponse "Intervals created"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "Bike not found"
// @Router /bikes/{id}/intervals [post]
func (h *IntervalHandler) CreateFromSelection(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), start)
	}()

	bike, ok := h.ownedBike(c, c.Param("id"))
	if !ok {
		return
	}

	var req CreateIntervalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	lastServiceDate, err := parseServiceDate(req.LastServiceDate)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid last_service_date")
		return
	}

	created, skipped, err := h.intervalService.CreateFromManualSelection(c.Request.Context(), bike, req.TemplateIDs, lastServiceDate)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, CreateIntervalsResponse{
		Created:          created,
		SkippedTemplates: skipped,
	})
}

// @Summary Get interval
// @Tags intervals
// @Security BearerAuth
// @Produce json
// @Param id path string true "Interval ID"
// @Success 200 {object} domain.ServiceInterval
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "Not found"
// @Router /intervals/{id} [get]
func (h *IntervalHandler) GetInterval(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), start)
	}()

	interval, ok := h.ownedInterval(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, interval)
}

// @Summary Update interval
// @Description Saves an edit; a save that changes nothing (dates compared by calendar day) is a no-op
// @Tags intervals
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Interval ID"
// @Param request body UpdateIntervalRequest true "Fields to update"
// @Success 200 {object} domain.ServiceInterval
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "Not found"
// @Router /intervals/{id} [put]
func (h *IntervalHandler) UpdateInterval(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), start)
	}()

	interval, ok := h.ownedInterval(c)
	if !ok {
		return
	}

	var req UpdateIntervalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if req.Part != nil {
		interval.Part = *req.Part
	}
	if req.IntervalHours != nil {
		interval.IntervalHours = *req.IntervalHours
	}
	if req.Notify != nil {
		interval.Notify = *req.Notify
	}
	if req.LastServiceDate != nil {
		date, err := parseServiceDate(*req.LastServiceDate)
		if err != nil {
			newErrorResponse(c, http.StatusBadRequest, "Invalid last_service_date")
			return
		}
		interval.LastServiceDate = date
	}

	updated, err := h.intervalService.UpdateInterval(c.Request.Context(), interval)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, updated)
}

// @Summary Log a service
// @Description Resets the interval's usage baseline and appends a history record
// @Tags intervals
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Interval ID"
// @Param request body ResetIntervalRequest true "Service date and note"
// @Success 200 {object} domain.ServiceInterval
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "Not found"
// @Router /intervals/{id}/reset [post]
func (h *IntervalHandler) ResetInterval(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), start)
	}()

	interval, ok := h.ownedInterval(c)
	if !ok {
		return
	}

	var req ResetIntervalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	date, err := parseServiceDate(req.Date)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid date")
		return
	}

	updated, err := h.intervalService.ResetAndLog(c.Request.Context(), interval.ID, date, req.Note)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, updated)
}

// @Summary Delete interval
// @Description Deletes the interval and its service history
// @Tags intervals
// @Security BearerAuth
// @Produce json
// @Param id path string true "Interval ID"
// @Success 200 {object} successResponse
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "Not found"
// @Router /intervals/{id} [delete]
func (h *IntervalHandler) DeleteInterval(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), start)
	}()

	interval, ok := h.ownedInterval(c)
	if !ok {
		return
	}

	if err := h.intervalService.DeleteInterval(c.Request.Context(), interval.ID); err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "Failed to delete interval")
		return
	}

	c.JSON(http.StatusOK, successResponse{Message: "Interval deleted"})
}

// @Summary Interval service history
// @Tags intervals
// @Security BearerAuth
// @Produce json
// @Param id path string true "Interval ID"
// @Success 200 {object} IntervalHistoryResponse
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "Not found"
// @Router /intervals/{id}/history [get]
func (h *IntervalHandler) GetHistory(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), start)
	}()

	interval, ok := h.ownedInterval(c)
	if !ok {
		return
	}

	records, err := h.intervalService.History(c.Request.Context(), interval.ID)
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "Failed to get history")
		return
	}

	c.JSON(http.StatusOK, IntervalHistoryResponse{Records: records, Count: len(records)})
}

// ownedBike loads a bike and enforces owner-or-admin access.
func (h *IntervalHandler) ownedBike(c *gin.Context, bikeID string) (*domain.Bike, bool) {
	payload, exists := getAuthPayload(c, authPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	bike, err := h.bikeService.GetBikeByID(c.Request.Context(), bikeID)
	if err != nil {
		newErrorResponse(c, http.StatusNotFound, "Bike not found")
		return nil, false
	}

	if payload.Role != domain.Admin && payload.UserID != bike.UserID {
		newErrorResponse(c, http.StatusForbidden, "Access denied")
		return nil, false
	}

	return bike, true
}

// ownedInterval loads the path interval and checks access through its
// owning bike.
func (h *IntervalHandler) ownedInterval(c *gin.Context) (*domain.ServiceInterval, bool) {
	intervalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid interval ID")
		return nil, false
	}

	interval, err := h.intervalService.GetInterval(c.Request.Context(), intervalID.String())
	if err != nil {
		newErrorResponse(c, http.StatusNotFound, "Interval not found")
		return nil, false
	}

	if _, ok := h.ownedBike(c, interval.BikeID.String()); !ok {
		return nil, false
	}

	return interval, true
}
