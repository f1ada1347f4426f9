package projection

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	httperr "github.com/aevon-lab/drivelog/internal/core/errors"
	"github.com/aevon-lab/drivelog/internal/core/storage"
	"github.com/aevon-lab/drivelog/internal/core/trip"
	"github.com/gin-gonic/gin"
)

// maxGapSeconds is the largest gap_seconds representable as a time.Duration.
const maxGapSeconds = math.MaxInt64 / int64(time.Second)

// RegisterRoutes registers all projection API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	devices := r.Group("/v1/devices/:device_id")
	devices.GET("/drives", s.HandleDrives)
	devices.GET("/trips", s.HandleTrips)
	devices.GET("/stats", s.HandleStats)
	devices.GET("/trips/weekday", s.HandleWeekday)
	devices.GET("/trips/time-of-day", s.HandleTimeOfDay)

	r.PATCH("/v1/trips/:trip_id", s.HandleUpdateTrip)
}

// HandleDrives handles GET /v1/devices/:device_id/drives
// Query parameters: since, end, gap_seconds
func (s *Service) HandleDrives(c *gin.Context) {
	q, _, ok := s.bindQuery(c, s.policy.DriveGap)
	if !ok {
		return
	}
	resp, err := s.Drives(c.Request.Context(), q)
	if err != nil {
		writeQueryError(c, err, "Failed to group drives")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleTrips handles GET /v1/devices/:device_id/trips
// Query parameters: since, end, gap_seconds, source
func (s *Service) HandleTrips(c *gin.Context) {
	q, _, ok := s.bindQuery(c, s.policy.TripGap)
	if !ok {
		return
	}
	resp, err := s.Trips(c.Request.Context(), q)
	if err != nil {
		writeQueryError(c, err, "Failed to summarize trips")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleStats handles GET /v1/devices/:device_id/stats
func (s *Service) HandleStats(c *gin.Context) {
	q, _, ok := s.bindQuery(c, s.policy.TripGap)
	if !ok {
		return
	}
	resp, err := s.Stats(c.Request.Context(), q)
	if err != nil {
		writeQueryError(c, err, "Failed to compute vehicle stats")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleWeekday handles GET /v1/devices/:device_id/trips/weekday
func (s *Service) HandleWeekday(c *gin.Context) {
	q, _, ok := s.bindQuery(c, s.policy.TripGap)
	if !ok {
		return
	}
	resp, err := s.Weekday(c.Request.Context(), q)
	if err != nil {
		writeQueryError(c, err, "Failed to compute weekday histogram")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleTimeOfDay handles GET /v1/devices/:device_id/trips/time-of-day
// Query parameters: since, end, gap_seconds, source, view (count | percent)
func (s *Service) HandleTimeOfDay(c *gin.Context) {
	q, params, ok := s.bindQuery(c, s.policy.TripGap)
	if !ok {
		return
	}
	resp, err := s.TimeOfDay(c.Request.Context(), q, params.View)
	if err != nil {
		writeQueryError(c, err, "Failed to compute time-of-day histogram")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleUpdateTrip handles PATCH /v1/trips/:trip_id
func (s *Service) HandleUpdateTrip(c *gin.Context) {
	var details trip.Details
	if err := c.ShouldBindJSON(&details); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid JSON body",
			Details:   err.Error(),
		})
		return
	}

	t, err := s.UpdateTrip(c.Request.Context(), c.Param("trip_id"), details)
	if err != nil {
		writeQueryError(c, err, "Failed to update trip")
		return
	}
	c.JSON(http.StatusOK, NewTripResponse(*t))
}

// bindQuery binds the shared query parameters, applying defaultGap when gap_seconds is absent.
// On failure it writes the 400 response and returns ok=false.
func (s *Service) bindQuery(c *gin.Context, defaultGap time.Duration) (Query, queryParams, bool) {
	var uri struct {
		DeviceID string `uri:"device_id" binding:"required"`
	}
	var params queryParams

	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidRequestError,
			Message:   "Invalid path parameters",
			Details:   err.Error(),
		})
		return Query{}, params, false
	}

	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidRequestError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return Query{}, params, false
	}

	gap := defaultGap
	if params.GapSeconds != nil {
		if *params.GapSeconds > maxGapSeconds {
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidRequestError,
				Message:   "Invalid query parameters",
				Details:   fmt.Sprintf("gap_seconds must not exceed %d", maxGapSeconds),
			})
			return Query{}, params, false
		}
		gap = time.Duration(*params.GapSeconds) * time.Second
	}

	return Query{
		DeviceID: uri.DeviceID,
		Window:   trip.Window{Since: params.Since, End: params.End},
		Gap:      gap,
		Source:   params.Source,
	}, params, true
}

func writeQueryError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, ErrInvalidQuery),
		errors.Is(err, trip.ErrInvalidWindow),
		errors.Is(err, trip.ErrInvalidThreshold):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidRequestError,
			Message:   "Invalid trip query",
			Details:   err.Error(),
		})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, httperr.ErrorResponse{
			ErrorType: httperr.HttpNotFoundError,
			Message:   "Trip not found",
		})
	default:
		slog.Error("[Projection] Query failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   message,
			Details:   err.Error(),
		})
	}
}
