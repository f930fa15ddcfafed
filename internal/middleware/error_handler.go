package middleware

import (
	"ihome-rentals/internal/errors"
	"ihome-rentals/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler catches errors and returns standardized responses.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			appErr := errors.MapError(err)

			// Log technical details
			logger.GlobalLogger.Errorf("Request failed: request_id=%s path=%s method=%s client_ip=%s code=%s error=%s",
				c.GetString(RequestIDKey),
				c.Request.URL.Path,
				c.Request.Method,
				c.ClientIP(),
				appErr.Code,
				appErr.TechnicalMessage)

			if c.Writer.Written() {
				return
			}
			c.JSON(appErr.HTTPStatus, gin.H{
				"error": gin.H{
					"message": appErr.UserMessage,
					"code":    appErr.Code,
				},
			})
		}
	}
}
