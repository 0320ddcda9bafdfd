package handlers

import (
    "net/http"
    "strconv"

    "promoai-api/internal/history"
    "promoai-api/pkg/logger"

    "github.com/gin-gonic/gin"
)

type HistoryHandler struct {
    history history.Service
    logger  *logger.Logger
}

func NewHistoryHandler(historyService history.Service, logger *logger.Logger) *HistoryHandler {
    return &HistoryHandler{
        history: historyService,
        logger:  logger,
    }
}

// List returns audit records, newest first. Supports filtering by
// session_id, operation and status plus limit/offset paging. The total
// count ignores paging so clients can page through the full trail.
func (h *HistoryHandler) List(c *gin.Context) {
    filter := history.RecordFilter{}

    if sessionID := c.Query("session_id"); sessionID != "" {
        filter.SessionID = &sessionID
    }
    if status := c.Query("status"); status != "" {
        filter.Status = &status
    }
    if operation := c.Query("operation"); operation != "" {
        op := history.Operation(operation)
        if !op.IsValid() {
            c.JSON(http.StatusBadRequest, gin.H{"error": "unknown operation " + operation})
            return
        }
        filter.Operation = &op
    }

    var err error
    if filter.Limit, err = parseQueryInt(c, "limit", 0); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
        return
    }
    if filter.Offset, err = parseQueryInt(c, "offset", 0); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be an integer"})
        return
    }

    records, err := h.history.List(filter)
    if err != nil {
        h.logger.Error("Failed to list audit records", "error", err)
        c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list history"})
        return
    }

    total, err := h.history.Count(filter)
    if err != nil {
        h.logger.Error("Failed to count audit records", "error", err)
        c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list history"})
        return
    }

    if records == nil {
        records = []*history.GenerationRecord{}
    }
    c.JSON(http.StatusOK, gin.H{
        "records": records,
        "total":   total,
    })
}

func parseQueryInt(c *gin.Context, key string, fallback int) (int, error) {
    raw := c.Query(key)
    if raw == "" {
        return fallback, nil
    }
    return strconv.Atoi(raw)
}
