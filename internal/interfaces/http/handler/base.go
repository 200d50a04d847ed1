// Package handler serves the portal API over the store and report services.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/shared"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/logger"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/interfaces/http/dto"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// List sends a filtered collection with its counts
func (h *BaseHandler) List(c *gin.Context, data any, total, filtered int) {
	c.JSON(http.StatusOK, dto.NewListResponse(data, total, filtered))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response, deriving the status code from the error code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// HandleError converts domain errors to HTTP responses. Anything else is
// logged and reported as an internal error.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, dto.NormalizeErrorCode(domainErr.Code), domainErr.Message)
		return
	}

	logger.FromGin(c).Error("Unhandled error", zap.Error(err))
	h.Error(c, dto.ErrCodeInternal, "An unexpected error occurred")
}

// BindJSON decodes the body into req and answers the request itself when
// that fails. It reports whether the handler should continue.
func (h *BaseHandler) BindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var (
		tooLarge   *http.MaxBytesError
		syntax     *json.SyntaxError
		unmarshal  *json.UnmarshalTypeError
		validation validator.ValidationErrors
	)
	switch {
	case errors.As(err, &tooLarge):
		h.Error(c, dto.ErrCodeTooLarge, "Request body exceeds maximum allowed size")
	case errors.As(err, &validation):
		h.Error(c, dto.ErrCodeValidation, validationMessage(validation))
	case errors.As(err, &syntax), errors.As(err, &unmarshal),
		errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		h.Error(c, dto.ErrCodeInvalidJSON, "Invalid JSON body")
	default:
		h.Error(c, dto.ErrCodeBadRequest, err.Error())
	}
	return false
}

// BindQuery decodes query parameters into req, answering on failure
func (h *BaseHandler) BindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		h.Error(c, dto.ErrCodeBadRequest, err.Error())
		return false
	}
	return true
}

func validationMessage(errs validator.ValidationErrors) string {
	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "min", "max", "oneof":
		return fe.Field() + " must satisfy " + fe.Tag() + "=" + fe.Param()
	}
	return fe.Field() + " is invalid"
}
