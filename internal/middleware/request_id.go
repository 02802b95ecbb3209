package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader заголовок з ідентифікатором запиту
const RequestIDHeader = "X-Request-ID"

const (
	requestIDKey = "request_id"
	loggerKey    = "logger"
)

// RequestID присвоює кожному запиту ідентифікатор і logrus entry з ним
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}

		c.Set(requestIDKey, requestID)
		c.Set(loggerKey, logrus.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
		}))
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

// Logger повертає logrus entry поточного запиту
func Logger(c *gin.Context) *logrus.Entry {
	if value, ok := c.Get(loggerKey); ok {
		if entry, ok := value.(*logrus.Entry); ok {
			return entry
		}
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// GetRequestID повертає ідентифікатор поточного запиту
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
