package http

import (
	"net/http"

	"github.com/pedalkeep/bike_maintenance_service/internal/config"
	"github.com/pedalkeep/bike_maintenance_service/internal/core/ports"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Router struct {
	router *gin.Engine
}

func NewRouter(
	cfg *config.HTTP,
	tokenService ports.TokenService,
	bikeHandler *BikeHandler,
	intervalHandler *IntervalHandler,
	detectionHandler *DetectionHandler,
) (*Router, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigins},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Bikes routes
	bikes := router.Group("/bikes")
	bikes.Use(AuthMiddleware(tokenService))
	{
		bikes.POST("", bikeHandler.CreateBike)
		bikes.GET("/my", bikeHandler.GetMyBikes)
		bikes.GET("/:id", bikeHandler.GetBike)
		bikes.PUT("/:id", bikeHandler.UpdateBike)
		bikes.DELETE("/:id", bikeHandler.DeleteBike)
		bikes.GET("/:id/status", bikeHandler.GetBikeStatus)
		bikes.POST("/:id/intervals", intervalHandler.CreateFromSelection)
		bikes.POST("/:id/intervals/detect", intervalHandler.CreateFromDetection)
	}

	// Intervals routes
	intervals := router.Group("/intervals")
	intervals.Use(AuthMiddleware(tokenService))
	{
		intervals.GET("/:id", intervalHandler.GetInterval)
		intervals.PUT("/:id", intervalHandler.UpdateInterval)
		intervals.DELETE("/:id", intervalHandler.DeleteInterval)
		intervals.POST("/:id/reset", intervalHandler.ResetInterval)
		intervals.GET("/:id/history", intervalHandler.GetHistory)
	}

	// Detection and template routes
	authed := router.Group("/")
	authed.Use(AuthMiddleware(tokenService))
	{
		authed.POST("/detect", detectionHandler.Detect)
		authed.GET("/templates", detectionHandler.GetTemplates)
		authed.GET("/templates/categories", detectionHandler.GetCategories)
	}

	return &Router{router: router}, nil
}

func (r *Router) Serve(addr string) error {
	return r.router.Run(addr)
}

func (r *Router) Engine() *gin.Engine {
	return r.router
}
