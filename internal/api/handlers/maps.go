package handlers

import (
	"errors"
	"map-routing-service/internal/platform/obs"
	"map-routing-service/internal/ports"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MapHandler serves stored map documents.
type MapHandler struct {
	Artifacts ports.ArtifactStore
}

func (h *MapHandler) Get(c *gin.Context) {
	id := c.Param("id")

	html, err := h.Artifacts.Open(c.Request.Context(), id)
	if errors.Is(err, ports.ErrArtifactNotFound) {
		c.String(http.StatusNotFound, "map not found")
		return
	}
	if err != nil {
		obs.Logger(c.Request.Context()).Error("open map failed", zap.String("map_id", id), zap.Error(err))
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}
