package handlers

import (
	"context"
	"errors"
	"map-routing-service/internal/api/dto"
	"map-routing-service/internal/platform/obs"
	"map-routing-service/internal/services"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// User-facing failure messages.
const (
	MsgInvalidAddresses = "Invalid addresses. Please try again."
	MsgRouteUnavailable = "Unable to fetch route data. Please try again."
	msgInternal         = "Something went wrong. Please try again."
)

// Planner is the pipeline the handler drives.
type Planner interface {
	PlanRoute(ctx context.Context, startName, endName string) (*services.RoutePlan, error)
}

type RouteHandler struct {
	Planner Planner
}

type formView struct {
	Error string
	Start string
	End   string
}

type resultView struct {
	StartName string
	EndName   string
	Plan      *services.RoutePlan
}

// Form renders the empty input form.
func (h *RouteHandler) Form(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", formView{})
}

// Submit resolves the posted start/end names. Failures re-render the form
// with a message; the status stays 200 so the form is shown as-is.
func (h *RouteHandler) Submit(c *gin.Context) {
	start := strings.TrimSpace(c.PostForm("start"))
	end := strings.TrimSpace(c.PostForm("end"))

	plan, err := h.Planner.PlanRoute(c.Request.Context(), start, end)
	if err != nil {
		c.HTML(http.StatusOK, "index.html", formView{
			Error: userMessage(c.Request.Context(), err),
			Start: start,
			End:   end,
		})
		return
	}

	c.HTML(http.StatusOK, "result.html", resultView{StartName: start, EndName: end, Plan: plan})
}

// CreateJSON is the JSON variant of Submit.
func (h *RouteHandler) CreateJSON(c *gin.Context) {
	var req dto.RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json body")
		return
	}

	plan, err := h.Planner.PlanRoute(c.Request.Context(), strings.TrimSpace(req.Start), strings.TrimSpace(req.End))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAddresses):
			writeError(c, http.StatusUnprocessableEntity, MsgInvalidAddresses)
		case errors.Is(err, services.ErrRouteUnavailable):
			writeError(c, http.StatusBadGateway, MsgRouteUnavailable)
		default:
			obs.Logger(c.Request.Context()).Error("plan route failed", zap.Error(err))
			writeError(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	coords := make([][2]float64, 0, len(plan.Route.Path))
	for _, p := range plan.Route.Path {
		coords = append(coords, [2]float64{p.Lat, p.Lon})
	}

	c.JSON(http.StatusOK, dto.RouteResponse{
		MapID:            plan.ID,
		MapURL:           "/maps/" + plan.ID,
		DistanceKm:       plan.Route.DistanceKm,
		DurationMinutes:  plan.Route.DurationMinutes,
		RouteCoordinates: coords,
		Car:              dto.EstimateResponse{Minutes: plan.Car.Minutes, Formatted: plan.Car.Formatted},
		Bike:             dto.EstimateResponse{Minutes: plan.Bike.Minutes, Formatted: plan.Bike.Formatted},
	})
}

// userMessage maps pipeline errors to the message shown to the user.
// Unexpected errors are logged since they are not part of the taxonomy.
func userMessage(ctx context.Context, err error) string {
	switch {
	case errors.Is(err, services.ErrInvalidAddresses):
		return MsgInvalidAddresses
	case errors.Is(err, services.ErrRouteUnavailable):
		return MsgRouteUnavailable
	default:
		obs.Logger(ctx).Error("plan route failed", zap.Error(err))
		return msgInternal
	}
}
