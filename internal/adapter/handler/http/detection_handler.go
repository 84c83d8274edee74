package http

import (
	"net/http"
	"time"

	"github.com/pedalkeep/bike_maintenance_service/internal/core/catalog"
	"github.com/pedalkeep/bike_maintenance_service/internal/core/domain"
	"github.com/pedalkeep/bike_maintenance_service/internal/core/ports"
	"github.com/pedalkeep/bike_maintenance_service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type DetectionHandler struct {
	bikeService *services.BikeService
	parts       *catalog.PartTemplateCatalog
	logger      ports.LoggerPort
	metrics     ports.MetricsPort
}

type DetectRequest struct {
	Name string `json:"name" binding:"required" example:"Trek Fuel EX 9.8 (2024)"`
}

type TemplatesResponse struct {
	Templates []domain.PartTemplate `json:"templates"`
	Count     int                   `json:"count"`
}

type CategoriesResponse struct {
	Categories []domain.PartCategory `json:"categories"`
}

func NewDetectionHandler(
	bikeService *services.BikeService,
	parts *catalog.PartTemplateCatalog,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *DetectionHandler {
	return &DetectionHandler{
		bikeService: bikeService,
		parts:       parts,
		logger:      logger,
		metrics:     metrics,
	}
}

// @Summary Detect bike from name
// @Description Dry-run detection: infers manufacturer, model, type and suggested intervals from a free-form name
// @Tags detection
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body DetectRequest true "Bike name"
// @Success 200 {object} domain.DetectionResult
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Router /detect [post]
func (h *DetectionHandler) Detect(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), start)
	}()

	var req DetectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	result := h.bikeService.Detect(req.Name)
	h.metrics.IncDetections(string(result.Confidence))

	c.JSON(http.StatusOK, result)
}

// @Summary List part templates
// @Tags templates
// @Security BearerAuth
// @Produce json
// @Param category query string false "Filter by category id"
// @Success 200 {object} TemplatesResponse
// @Router /templates [get]
func (h *DetectionHandler) GetTemplates(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), start)
	}()

	var templates []domain.PartTemplate
	if category := c.Query("category"); category != "" {
		templates = h.parts.ByCategory(category)
	} else {
		templates = h.parts.All()
	}

	c.JSON(http.StatusOK, TemplatesResponse{Templates: templates, Count: len(templates)})
}

// @Summary List part categories
// @Tags templates
// @Security BearerAuth
// @Produce json
// @Success 200 {object} CategoriesResponse
// @Router /templates/categories [get]
func (h *DetectionHandler) GetCategories(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), start)
	}()

	c.JSON(http.StatusOK, CategoriesResponse{Categories: h.parts.AllCategories()})
}
