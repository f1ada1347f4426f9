package ingestion

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	v1 "github.com/aevon-lab/drivelog/internal/api/v1"
	httperr "github.com/aevon-lab/drivelog/internal/core/errors"
	"github.com/aevon-lab/drivelog/internal/core/storage"
	"github.com/aevon-lab/drivelog/internal/core/telemetry"
	"github.com/aevon-lab/drivelog/internal/core/trip"
	"github.com/gin-gonic/gin"
)

const (
	msgReadBodyFailed  = "Failed to read request body"
	msgInvalidJSON     = "Invalid JSON body"
	msgPersistFailed   = "Failed to persist telemetry"
	msgAssignConflict  = "Concurrent trip assignment for this device, retry the request"
	msgSampleNotFound  = "No telemetry for device"
	msgLatestFailed    = "Failed to fetch latest telemetry"
	msgEmptyBatch      = "Batch contains no samples"
	msgDeviceIDMissing = "device_id is required"
)

// ingestionError carries the structured HTTP error shape from a helper back to the orchestrator.
// Helpers return this instead of writing to gin.Context directly, keeping them decoupled from HTTP.
type ingestionError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *ingestionError) Error() string {
	return e.message
}

// IngestHandler handles POST /v1/telemetry.
func (s *Service) IngestHandler(c *gin.Context) {
	var req v1.TelemetryRequest
	payloadSize, perr := s.parseBody(c, &req)
	if perr != nil {
		writeError(c, perr)
		return
	}
	if err := req.Validate(); err != nil {
		slog.Warn("[Ingestion] Envelope validation failed", "error", err, "device_id", req.DeviceID)
		writeError(c, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidRequestError,
			message:    err.Error(),
		})
		return
	}

	sample := req.ToSample(s.nowFn())
	slog.Info("[Ingestion] Received telemetry",
		"device_id", sample.DeviceID,
		"has_start", sample.HasStart(),
		"payload_size", payloadSize)

	if err := s.Ingest(c.Request.Context(), &sample); err != nil {
		writeError(c, persistError(err, sample.DeviceID))
		return
	}

	c.JSON(http.StatusCreated, v1.NewSampleResponse(sample))
}

// IngestBatchHandler handles POST /v1/telemetry/batch.
func (s *Service) IngestBatchHandler(c *gin.Context) {
	var req v1.BatchTelemetryRequest
	if _, perr := s.parseBody(c, &req); perr != nil {
		writeError(c, perr)
		return
	}
	if len(req.Samples) == 0 {
		writeError(c, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidRequestError,
			message:    msgEmptyBatch,
		})
		return
	}

	now := s.nowFn()
	samples := make([]*telemetry.Sample, len(req.Samples))
	for i := range req.Samples {
		if err := req.Samples[i].Validate(); err != nil {
			writeError(c, &ingestionError{
				statusCode: http.StatusBadRequest,
				errorType:  httperr.HttpInvalidRequestError,
				message:    err.Error(),
				details:    map[string]interface{}{"index": i},
			})
			return
		}
		sample := req.Samples[i].ToSample(now)
		samples[i] = &sample
	}

	if err := s.IngestBatch(c.Request.Context(), samples); err != nil {
		ierr := persistError(err, "")
		var batchErr *BatchError
		if errors.As(err, &batchErr) {
			ierr.details = map[string]interface{}{"stored": batchErr.Stored}
		}
		writeError(c, ierr)
		return
	}

	resp := make([]v1.SampleResponse, len(samples))
	for i, sample := range samples {
		resp[i] = v1.NewSampleResponse(*sample)
	}
	c.JSON(http.StatusCreated, gin.H{"samples": resp})
}

// LatestHandler handles GET /v1/devices/:device_id/telemetry/latest.
func (s *Service) LatestHandler(c *gin.Context) {
	deviceID := c.Param("device_id")
	if deviceID == "" {
		writeError(c, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidRequestError,
			message:    msgDeviceIDMissing,
		})
		return
	}

	sample, err := s.Latest(c.Request.Context(), deviceID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(c, &ingestionError{
				statusCode: http.StatusNotFound,
				errorType:  httperr.HttpNotFoundError,
				message:    msgSampleNotFound,
				details:    map[string]interface{}{"device_id": deviceID},
			})
			return
		}
		slog.Error("[Ingestion] Failed to fetch latest sample", "error", err, "device_id", deviceID)
		writeError(c, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgLatestFailed,
		})
		return
	}

	c.JSON(http.StatusOK, v1.NewSampleResponse(*sample))
}

// parseBody reads the raw request body under the size limit and decodes it into dst.
// Returns the raw payload size (used for structured logging upstream).
func (s *Service) parseBody(c *gin.Context, dst interface{}) (int, *ingestionError) {
	// Enforce maximum body size to prevent OOM attacks
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("[Ingestion] Failed to read request body", "error", err)
		return 0, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("[Ingestion] Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return len(bodyBytes), &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpInvalidJsonError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	if err := c.ShouldBindJSON(dst); err != nil {
		slog.Warn("[Ingestion] Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return len(bodyBytes), &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}

	return len(bodyBytes), nil
}

// persistError maps an ingest failure to its HTTP shape.
func persistError(err error, deviceID string) *ingestionError {
	switch {
	case errors.Is(err, storage.ErrConflict):
		return &ingestionError{
			statusCode: http.StatusConflict,
			errorType:  httperr.HttpConflictError,
			message:    msgAssignConflict,
		}
	case errors.Is(err, telemetry.ErrInvalidSample), errors.Is(err, trip.ErrInvalidThreshold):
		return &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidRequestError,
			message:    err.Error(),
		}
	}

	slog.Error("[Ingestion] Failed to persist telemetry", "error", err, "device_id", deviceID)
	return &ingestionError{
		statusCode: http.StatusInternalServerError,
		errorType:  httperr.HttpInternalError,
		message:    msgPersistFailed,
	}
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
