package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/what2eat/what2eat-api/internal/models"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// StatusMapping maps domain error kinds to HTTP status codes. It is built
// once at process start and injected into ErrorHandler; it is never
// mutated at runtime.
type StatusMapping map[models.ErrorKind]int

// DefaultStatusMapping returns the standard kind-to-status table
func DefaultStatusMapping() StatusMapping {
	return StatusMapping{
		models.ErrKindNotFound:      http.StatusNotFound,
		models.ErrKindAlreadyExists: http.StatusConflict,
		models.ErrKindUnauthorized:  http.StatusUnauthorized,
		models.ErrKindForbidden:     http.StatusForbidden,
	}
}

// ErrorHandler is the single place where errors collected by handlers
// become HTTP responses. Known domain error kinds resolve through the
// mapping; everything else is logged with full detail and returned to the
// caller as an opaque 500.
func ErrorHandler(mapping StatusMapping) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors[0].Err

		if domainErr := models.GetDomainError(err); domainErr != nil {
			status, ok := mapping[domainErr.Kind]
			if !ok {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": domainErr.Message})
			return
		}

		log.WithFields(logrus.Fields{
			"request_id": c.GetString(RequestIDKey),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"error":      err.Error(),
		}).Error("Unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// Recovery converts panics into the same opaque 500 the error handler
// produces, so internal detail never reaches the response body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.WithFields(logrus.Fields{
			"request_id": c.GetString(RequestIDKey),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"panic":      recovered,
		}).Error("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})
}
