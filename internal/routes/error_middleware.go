package routes

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

type errorStruct struct {
	Succeed bool   `json:"success"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ErrorHandler captures errors and returns a consistent JSON error response
// with appropriate HTTP status codes based on the error type
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next() // Process the request first

		// Check if any errors were added to the context
		if len(c.Errors) > 0 {
			// Use the last error (most recent)
			err := c.Errors.Last().Err

			statusCode := GetErrorStatus(err)
			message := GetErrorMessage(err)

			// Log the error with appropriate level based on status code
			if statusCode >= 500 {
				slog.Error("Request failed with server error",
					"error", err,
					"status", statusCode,
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
				)
			} else if statusCode >= 400 {
				slog.Warn("Request failed with client error",
					"error", err,
					"status", statusCode,
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
				)
			}

			// Only send the response if it hasn't been written yet
			if !c.Writer.Written() {
				response := errorStruct{
					Succeed: false,
					Status:  "error",
					Message: message,
				}

				// Browsers send a list like "text/html,application/xhtml+xml,..."
				accept := c.GetHeader("Accept")
				if strings.Contains(accept, "text/html") {
					HTML(c, statusCode, "error", gin.H{"Message": message})
					c.Abort()
				} else {
					c.AbortWithStatusJSON(statusCode, response)
				}
			}
		}
	}
}

// AbortWithError is a helper function to abort the request with an error
// and add it to the Gin error chain for the ErrorHandler middleware
func AbortWithError(c *gin.Context, err error) {
	statusCode := GetErrorStatus(err)
	c.Error(err)
	c.Abort()
	// Set the status code so gin knows not to send 200
	c.Status(statusCode)
}
