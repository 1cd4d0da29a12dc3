package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/users-api/pkg/helpers"
)

const InternalErrorMessage = "Internal Server Error"

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func OK(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusOK, data)
}

func Created(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusCreated, data)
}

// Error aborts the request with {error: message}.
func Error(ctx *gin.Context, status int, message string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.AbortWithStatusJSON(status, ErrorBody{Error: message})
}

// Invalid aborts with 400 and per-field validation details.
func Invalid(ctx *gin.Context, message string, details map[string]string) {
	ctx.AbortWithStatusJSON(http.StatusBadRequest, ErrorBody{Error: message, Details: details})
}

// Internal logs err with the request id and hides it from the client.
func Internal(ctx *gin.Context, logger logrus.FieldLogger, err error) {
	helpers.LogError(logger, "request failed", err, logrus.Fields{
		"request_id": ctx.GetString("request_id"),
		"method":     ctx.Request.Method,
		"path":       ctx.FullPath(),
	})
	ctx.AbortWithStatusJSON(http.StatusInternalServerError, ErrorBody{Error: InternalErrorMessage})
}
