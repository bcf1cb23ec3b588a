package api

import (
	"map-routing-service/internal/api/handlers"
	"map-routing-service/internal/ports"
	"map-routing-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter wires HTTP handlers with their dependencies and returns the engine.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(planner *services.RoutePlanner, artifacts ports.ArtifactStore, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(loadTemplates())
	r.Use(requestContext(logger), loggingMiddleware(), recovery())

	routeHandler := &handlers.RouteHandler{Planner: planner}
	mapHandler := &handlers.MapHandler{Artifacts: artifacts}

	r.GET("/", routeHandler.Form)
	r.POST("/", routeHandler.Submit)
	r.POST("/api/routes", routeHandler.CreateJSON)
	r.GET("/maps/:id", mapHandler.Get)
	r.GET("/health", handlers.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
