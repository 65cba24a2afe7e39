package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// NotFoundError signals an absent principal or resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	return e.Resource + " not found"
}

// ValidationError carries field-level detail for malformed input.
type ValidationError struct {
	Detail string
}

func (e ValidationError) Error() string {
	return "invalid request: " + e.Detail
}

// ErrAuthentication covers bad credentials and invalid, expired, revoked
// or missing tokens. The message stays generic to avoid account
// enumeration.
var ErrAuthentication = errors.New("authentication failed")

// ErrAuthorization covers a valid principal with an insufficient role.
var ErrAuthorization = errors.New("insufficient permissions")

// RespondError maps a service error onto the HTTP error taxonomy.
// Anything unrecognized becomes a generic 500 with full detail kept
// server-side only.
func RespondError(c *gin.Context, err error) {
	var nf NotFoundError
	var ve ValidationError
	switch {
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: nf.Error()})
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request", Details: ve.Detail})
	case errors.Is(err, ErrAuthentication):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Authentication failed"})
	case errors.Is(err, ErrAuthorization):
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "Insufficient permissions"})
	default:
		GetLogger().Error("Unexpected error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal Server Error",
			Details: "An unexpected error occurred. Please try again later.",
		})
	}
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	GetLogger().Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}
