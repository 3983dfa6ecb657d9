package middleware

import (
	"fmt"
	"strconv"

	"github.com/SaorsaGrowth/saorsa-site-backend/errors"
	"github.com/SaorsaGrowth/saorsa-site-backend/logger"
	"github.com/SaorsaGrowth/saorsa-site-backend/types"
	"github.com/gin-gonic/gin"
)

// relayEnvelopeKey marks a request whose errors must render as the
// {ok, message} contract the site frontend expects from the relay endpoints.
const relayEnvelopeKey = "relay_envelope"

// RelayEnvelope marks every route it wraps for relay-style error rendering.
func RelayEnvelope() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(relayEnvelopeKey, true)
		c.Next()
	}
}

// ErrorHandler converts errors attached to the gin context into a JSON
// envelope with the status from the AppError taxonomy. Routes wrapped in
// RelayEnvelope get the simplified {ok, message} shape instead.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		if c.GetBool(relayEnvelopeKey) {
			renderRelayError(c, err)
			return
		}

		// Handle AppError
		if appError, ok := err.(*errors.AppError); ok {
			statusCode := appError.GetHTTPStatus()
			logger.LogHTTPError(c, err, statusCode, fmt.Sprintf("%s error", appError.Type))

			response := map[string]interface{}{
				"type":    string(appError.Type),
				"message": appError.Message,
				"code":    strconv.Itoa(statusCode),
			}

			// Only include details for validation and not-found errors or in debug mode
			if appError.Detail != "" && (gin.IsDebugging() ||
				appError.Type == errors.ValidationError ||
				appError.Type == errors.NotFoundError) {
				response["details"] = appError.Detail
			}

			c.JSON(statusCode, response)
			return
		}

		// Handle Gin binding errors - which come as public errors
		if c.Errors.Last().Type == gin.ErrorTypeBind {
			logger.LogHTTPError(c, err, 400, "Request binding error")

			response := map[string]interface{}{
				"type":    string(errors.ValidationError),
				"message": "Failed to bind request",
				"code":    "400",
			}

			if gin.IsDebugging() {
				response["details"] = err.Error()
			}

			c.JSON(400, response)
			return
		}

		// Handle unknown errors
		logger.LogHTTPError(c, err, 500, "Unexpected server error")

		response := map[string]interface{}{
			"type":    string(errors.ServerError),
			"message": "Internal Server Error",
			"code":    "500",
		}

		if gin.IsDebugging() {
			response["details"] = err.Error()
		}

		c.JSON(500, response)
	}
}

// renderRelayError writes the browser-facing relay envelope. The error
// taxonomy never leaks to relay clients; only the prepared message does.
func renderRelayError(c *gin.Context, err error) {
	appError, ok := err.(*errors.AppError)
	if !ok {
		appError = errors.InternalServerError("Something went wrong. Please try again later.")
	}

	statusCode := appError.GetHTTPStatus()
	logger.LogHTTPError(c, err, statusCode, fmt.Sprintf("%s error", appError.Type))
	c.JSON(statusCode, types.RelayResponse{Ok: false, Message: appError.Message})
}
