package handlers

import (
    "net/http"

    "promoai-api/api/middleware"
    "promoai-api/internal/mining"
    "promoai-api/pkg/logger"

    "github.com/gin-gonic/gin"
)

const (
    exportFileNameBPMN = "process_model.bpmn"
    exportFileNamePNML = "process_model.pnml"
)

type ExportHandler struct {
    mining mining.Service
    logger *logger.Logger
}

func NewExportHandler(miningService mining.Service, logger *logger.Logger) *ExportHandler {
    return &ExportHandler{
        mining: miningService,
        logger: logger,
    }
}

// Export downloads the session's current model as a file attachment,
// either as BPMN XML directly or converted to pnml.
func (h *ExportHandler) Export(c *gin.Context) {
    sess, ok := middleware.SessionFromContext(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
        return
    }
    if !sess.HasModel() {
        c.JSON(http.StatusNotFound, gin.H{"error": "no current model to export"})
        return
    }

    format := c.DefaultQuery("format", "bpmn")
    switch format {
    case "bpmn":
        writeAttachment(c, exportFileNameBPMN, sess.CurrentModelXML)
    case "pnml":
        converted, err := h.mining.Convert(c.Request.Context(), sess.CurrentModelXML, "bpmn", "pnml")
        if err != nil {
            h.logger.Error("pnml conversion failed", "error", err)
            c.JSON(http.StatusBadGateway, gin.H{"error": "failed to convert model to pnml"})
            return
        }
        writeAttachment(c, exportFileNamePNML, converted)
    default:
        c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported export format " + format + " (supported: bpmn, pnml)"})
    }
}

func writeAttachment(c *gin.Context, fileName, content string) {
    c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
    c.Data(http.StatusOK, "application/xml", []byte(content))
}
