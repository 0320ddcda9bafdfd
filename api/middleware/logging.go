package middleware

import (
    "time"

    "promoai-api/pkg/logger"

    "github.com/gin-gonic/gin"
    "github.com/google/uuid"
)

// RequestLogging tags every request with a generated ID and logs its
// start and completion. When SessionAuth ran further down the chain the
// completion line also carries the session ID.
func RequestLogging(appLogger *logger.Logger) gin.HandlerFunc {
    return func(c *gin.Context) {
        requestID := uuid.New().String()
        c.Set("request_id", requestID)

        reqLogger := appLogger.WithRequestID(requestID)
        c.Set("logger", reqLogger)

        start := time.Now()
        path := c.Request.URL.Path
        method := c.Request.Method

        reqLogger.Info("Request started",
            "method", method,
            "path", path,
            "client_ip", c.ClientIP(),
        )

        c.Next()

        completionLogger := reqLogger
        if sess, ok := SessionFromContext(c); ok {
            completionLogger = reqLogger.WithSessionID(string(sess.ID))
        }

        completionLogger.Info("Request completed",
            "method", method,
            "path", path,
            "status_code", c.Writer.Status(),
            "duration_ms", time.Since(start).Milliseconds(),
        )
    }
}
