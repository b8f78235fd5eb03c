package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	HeaderRequestID     = "X-Request-ID"
	contextKeyRequestID = "requestId"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"requestId,omitempty"`
	Timestamp string            `json:"timestamp"`
	Path      string            `json:"path"`
}

// RequestID propagates the caller's request id or generates one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(contextKeyRequestID, requestID)
		c.Header(HeaderRequestID, requestID)
		c.Next()
	}
}

// Logger writes one structured line per request. Paths in skip are not logged.
func Logger(skip ...string) gin.HandlerFunc {
	skipMap := make(map[string]bool, len(skip))
	for _, p := range skip {
		skipMap[p] = true
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if skipMap[path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		var event *zerolog.Event
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		default:
			event = log.Info()
		}
		event.
			Int("status", status).
			Str("method", c.Request.Method).
			Str("path", path).
			Dur("latency", latency).
			Str("clientIP", c.ClientIP()).
			Str("requestId", requestID(c)).
			Msg("HTTP request")
	}
}

// Recovery turns a panic into a 500 response.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("panic", err).Str("path", c.Request.URL.Path).Str("requestId", requestID(c)).Msg("Panic recovered")
				abortWithAppError(c, NewAppError(CodeInternalError, "An unexpected error occurred", http.StatusInternalServerError))
			}
		}()
		c.Next()
	}
}

// NoRoute answers unknown paths with an ErrorResponse.
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		respondWithAppError(c, NewAppError(CodeNotFound, "The requested resource was not found", http.StatusNotFound))
	}
}

func requestID(c *gin.Context) string {
	v, _ := c.Get(contextKeyRequestID)
	id, _ := v.(string)
	return id
}

func errorResponse(c *gin.Context, appErr *AppError) ErrorResponse {
	return ErrorResponse{
		Code:      appErr.Code,
		Message:   appErr.Message,
		Details:   appErr.Details,
		RequestID: requestID(c),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      c.Request.URL.Path,
	}
}

// respondWithError maps err and writes it.
func respondWithError(c *gin.Context, err error) {
	respondWithAppError(c, MapError(err))
}

func respondWithAppError(c *gin.Context, appErr *AppError) {
	event := log.Warn()
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(appErr.Err).
		Str("code", appErr.Code).
		Int("status", appErr.HTTPStatus).
		Str("path", c.Request.URL.Path).
		Str("requestId", requestID(c)).
		Msg("API error")

	c.JSON(appErr.HTTPStatus, errorResponse(c, appErr))
}

func abortWithAppError(c *gin.Context, appErr *AppError) {
	c.AbortWithStatusJSON(appErr.HTTPStatus, errorResponse(c, appErr))
}
