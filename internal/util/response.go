package util

import (
	"circlenet_backend/pkg/logger"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the uniform JSON envelope returned by every endpoint.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// FromServiceError maps the sentinel errors raised by the service layer to
// their HTTP rejection. Unknown errors are logged and become a 500; missing
// or foreign-owned resources both answer 404 so existence is not leaked.
func FromServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		NotFound(c)
	case errors.Is(err, ErrConnectionLimit):
		Error(c, http.StatusConflict, ErrConnectionLimit.Error())
	case errors.Is(err, ErrAlreadyConnected):
		Error(c, http.StatusConflict, ErrAlreadyConnected.Error())
	case errors.Is(err, ErrDuplicateCircle):
		Error(c, http.StatusConflict, ErrDuplicateCircle.Error())
	case errors.Is(err, ErrInvitationExpired):
		Error(c, http.StatusGone, ErrInvitationExpired.Error())
	case errors.Is(err, ErrEmptyCircleSet),
		errors.Is(err, ErrForeignCircle),
		errors.Is(err, ErrSelfConnection),
		errors.Is(err, ErrSelfIntro),
		errors.Is(err, ErrNotConnected),
		errors.Is(err, ErrEmptyPost),
		errors.Is(err, ErrEmailRegistered):
		BadRequest(c, err.Error())
	default:
		LogInternalError(c, err)
	}
}
