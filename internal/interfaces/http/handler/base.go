// Package handler implements the HTTP endpoints.
package handler

import (
	"errors"
	"net/http"

	appreport "github.com/bizops/reporting/internal/application/report"
	"github.com/bizops/reporting/internal/domain/shared"
	"github.com/bizops/reporting/internal/infrastructure/logger"
	"github.com/bizops/reporting/internal/interfaces/http/dto"
	"github.com/bizops/reporting/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BaseHandler provides the response helpers shared by all handlers.
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a BaseHandler.
func NewBaseHandler(logger *zap.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// Success writes a success envelope.
func (h *BaseHandler) Success(c *gin.Context, status int, data any) {
	c.JSON(status, dto.NewSuccessResponse(data, middleware.GetRequestID(c)))
}

// Error writes an error envelope with the status derived from the code.
func (h *BaseHandler) Error(c *gin.Context, code, message string, details any) {
	c.JSON(dto.HTTPStatus(code), dto.NewErrorResponse(code, message, details, middleware.GetRequestID(c)))
}

// HandleError maps application and domain errors onto the error envelope.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var validationErr *appreport.ValidationError
	if errors.As(err, &validationErr) {
		h.Error(c, dto.ErrCodeValidation, "Invalid request", validationErr.Fields)
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, domainErr.Code, domainErr.Message, nil)
		return
	}

	logger.FromGin(c).Error("unhandled error",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse(dto.ErrCodeInternal, "Internal server error", nil, middleware.GetRequestID(c)))
}
