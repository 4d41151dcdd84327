package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/openpdfa/openpdfa/internal/convert"
	"github.com/openpdfa/openpdfa/internal/metrics"
	"github.com/openpdfa/openpdfa/pkg/types"
)

func (s *Server) convertDocument(c echo.Context) error {
	var req types.ConvertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, types.ConvertResponse{
			Success: false,
			Error:   "invalid request body: " + err.Error(),
		})
	}

	metrics.ConversionsActive.Inc()
	defer metrics.ConversionsActive.Dec()

	start := time.Now()
	out, err := s.converter.Convert(c.Request().Context(), req.PDF)
	duration := time.Since(start)

	if err != nil {
		var cerr *convert.Error
		if !errors.As(err, &cerr) {
			s.logger.Errorw("conversion returned unclassified error", "error", err)
			cerr = &convert.Error{Kind: convert.KindUnexpected, Message: convert.GenericFailureMessage}
		}

		metrics.ConversionsTotal.WithLabelValues(string(cerr.Kind)).Inc()
		s.audit(types.ConversionRecord{
			ID:         uuid.NewString(),
			Status:     "failed",
			ErrorKind:  string(cerr.Kind),
			DurationMs: int(duration.Milliseconds()),
			InputBytes: len(req.PDF),
		})

		return c.JSON(statusFor(cerr.Kind), types.ConvertResponse{
			Success: false,
			Error:   cerr.Message,
		})
	}

	metrics.ConversionsTotal.WithLabelValues("success").Inc()
	metrics.ConversionDuration.Observe(duration.Seconds())
	s.audit(types.ConversionRecord{
		ID:          uuid.NewString(),
		Status:      "ok",
		DurationMs:  int(duration.Milliseconds()),
		InputBytes:  len(req.PDF),
		OutputBytes: len(out),
	})

	return c.JSON(http.StatusOK, types.ConvertResponse{
		Success: true,
		PDF:     out,
	})
}

func (s *Server) listConversions(c echo.Context) error {
	if s.store == nil {
		return c.JSON(http.StatusOK, []types.ConversionRecord{})
	}

	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "limit must be a positive integer",
			})
		}
		limit = n
	}

	records, err := s.store.Recent(limit)
	if err != nil {
		s.logger.Errorw("failed to read conversion log", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to read conversion log",
		})
	}
	if records == nil {
		records = []types.ConversionRecord{}
	}
	return c.JSON(http.StatusOK, records)
}

// statusFor maps a failure kind to an HTTP status. Timeouts are
// gateway-style timeouts, not client errors.
func statusFor(kind convert.ErrorKind) int {
	switch kind {
	case convert.KindInvalidInput:
		return http.StatusBadRequest
	case convert.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) audit(rec types.ConversionRecord) {
	if s.store == nil {
		return
	}
	if err := s.store.LogConversion(rec); err != nil {
		s.logger.Warnw("failed to write audit record", "error", err)
	}
}
