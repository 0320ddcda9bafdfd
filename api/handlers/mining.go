package handlers

import (
    "errors"
    "net/http"

    "promoai-api/api/middleware"
    "promoai-api/internal/mining"
    "promoai-api/internal/session"
    "promoai-api/pkg/logger"

    "github.com/gin-gonic/gin"
)

type MiningHandler struct {
    mining   mining.Service
    sessions *session.Store
    logger   *logger.Logger
}

func NewMiningHandler(miningService mining.Service, sessions *session.Store, logger *logger.Logger) *MiningHandler {
    return &MiningHandler{
        mining:   miningService,
        sessions: sessions,
        logger:   logger,
    }
}

// Analyze uploads an event log, returns its trace and event counts and
// the BPMN model discovered from it. With adopt=true the discovered model
// replaces the session's current model.
func (h *MiningHandler) Analyze(c *gin.Context) {
    sess, ok := middleware.SessionFromContext(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
        return
    }

    fileHeader, err := c.FormFile("file")
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
        return
    }

    file, err := fileHeader.Open()
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open uploaded file"})
        return
    }
    defer file.Close()

    analysis, err := h.mining.Analyze(c.Request.Context(), sess.ID, fileHeader.Filename, file)
    if err != nil {
        h.respondAnalyzeError(c, err)
        return
    }

    adopted := false
    if c.PostForm("adopt") == "true" {
        if _, err := h.sessions.SetModel(sess.ID, analysis.BPMNXML); err != nil {
            h.logger.Error("Failed to adopt discovered model", "error", err)
        } else {
            adopted = true
        }
    }

    c.JSON(http.StatusOK, gin.H{
        "analysis": analysis,
        "adopted":  adopted,
    })
}

func (h *MiningHandler) respondAnalyzeError(c *gin.Context, err error) {
    var unsupported mining.UnsupportedFormatError
    if errors.As(err, &unsupported) {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    var malformed mining.MalformedLogError
    if errors.As(err, &malformed) {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    var discovery mining.DiscoveryError
    if errors.As(err, &discovery) {
        h.logger.Error("Process discovery failed", "error", err)
        c.JSON(http.StatusBadGateway, gin.H{"error": "process discovery failed"})
        return
    }

    h.logger.Error("Event log analysis failed", "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": "event log analysis failed"})
}
