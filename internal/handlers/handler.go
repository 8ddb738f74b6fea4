package handlers

import (
	"heater_dashboard/internal/logger"
	"heater_dashboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	registry *prometheus.Registry
}

// NewHandler constructs a new HTTP handler with dependencies. A nil registry
// leaves /metrics unregistered.
func NewHandler(services *service.Service, log *logger.Logger, registry *prometheus.Registry) *Handler {
	return &Handler{services: services, log: log.Component("http"), registry: registry}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)
	if h.registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{})))
	}

	h.registerAPIRoutes(router)

	// State, view and notice stream on the same port.
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		h.registerDashboardRoutes(api)
		h.registerChartRoutes(api)
		h.registerActionRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerDashboardRoutes(api *gin.RouterGroup) {
	api.GET("/status", h.getStatus)
	api.POST("/status/refresh", h.refreshStatus)
	api.GET("/view", h.getView)
	// Body example: {"active":false}
	api.POST("/focus", h.setFocus)
}

func (h *Handler) registerChartRoutes(api *gin.RouterGroup) {
	api.GET("/charts/:metric", h.getChart)
}

func (h *Handler) registerActionRoutes(api *gin.RouterGroup) {
	actions := api.Group("/actions")
	{
		actions.GET("", h.listActions)
		// Body example: {"low":95,"high":105}
		actions.POST("/:id", h.dispatchAction)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("/", h.getLogs)
	}
}
