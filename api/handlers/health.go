package handlers

import (
    "net/http"
    "time"

    "promoai-api/internal/database"
    "promoai-api/pkg/logger"

    "github.com/gin-gonic/gin"
    "gorm.io/gorm"
)

type HealthHandler struct {
    db     *gorm.DB
    logger *logger.Logger
}

func NewHealthHandler(db *gorm.DB, logger *logger.Logger) *HealthHandler {
    return &HealthHandler{
        db:     db,
        logger: logger,
    }
}

func (h *HealthHandler) Check(c *gin.Context) {
    status := "ok"
    statusCode := http.StatusOK
    dbStatus := "disabled"

    // The audit database is optional; health only degrades when a
    // configured database is unreachable.
    if h.db != nil {
        dbStatus = "ok"
        if err := database.HealthCheck(h.db); err != nil {
            h.logger.Error("Database health check failed", "error", err)
            status = "error"
            dbStatus = "error"
            statusCode = http.StatusServiceUnavailable
        }
    }

    c.JSON(statusCode, gin.H{
        "status":    status,
        "database":  dbStatus,
        "timestamp": time.Now().UTC().Format(time.RFC3339),
        "service":   "promoai-api",
    })
}
