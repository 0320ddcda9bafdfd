package handlers

import (
    "io"
    "net/http"
    "path/filepath"
    "strings"

    "promoai-api/api/middleware"
    "promoai-api/internal/common"
    "promoai-api/internal/generator"
    "promoai-api/internal/llm"
    "promoai-api/internal/mining"
    "promoai-api/internal/session"
    "promoai-api/pkg/logger"

    "github.com/gin-gonic/gin"
)

type GenerationHandler struct {
    generator generator.Service
    mining    mining.Service
    sessions  *session.Store
    logger    *logger.Logger
}

func NewGenerationHandler(generatorService generator.Service, miningService mining.Service, sessions *session.Store, logger *logger.Logger) *GenerationHandler {
    return &GenerationHandler{
        generator: generatorService,
        mining:    miningService,
        sessions:  sessions,
        logger:    logger,
    }
}

type generateRequest struct {
    Description  string `json:"description"`
    Instructions string `json:"instructions"`
    Provider     string `json:"provider"`
    Model        string `json:"model"`
}

type refineRequest struct {
    Feedback string `json:"feedback"`
}

type petriNetRequest struct {
    Description string `json:"description"`
}

// Generate produces a fresh BPMN model from a process description and
// makes it the session's current model.
func (h *GenerationHandler) Generate(c *gin.Context) {
    sess, ok := middleware.SessionFromContext(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
        return
    }

    var req generateRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
        return
    }
    if strings.TrimSpace(req.Description) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "description is required"})
        return
    }

    kind, model, err := h.resolveProvider(sess, req.Provider, req.Model)
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    result := h.generator.Generate(c.Request.Context(), generator.GenerateRequest{
        SessionID:    sess.ID,
        Provider:     kind,
        Model:        model,
        Description:  req.Description,
        Instructions: req.Instructions,
    })
    if !result.IsSuccess() {
        c.JSON(http.StatusBadGateway, result)
        return
    }

    if _, err := h.sessions.SetProvider(sess.ID, kind, model); err != nil {
        h.logger.Error("Failed to store provider selection", "error", err)
    }
    if _, err := h.sessions.SetModel(sess.ID, result.BPMNXML); err != nil {
        h.logger.Error("Failed to store generated model", "error", err)
        c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store generated model"})
        return
    }

    c.JSON(http.StatusOK, result)
}

// Refine produces an updated model from the session's current model and
// one round of feedback. The new model replaces the old one wholesale.
func (h *GenerationHandler) Refine(c *gin.Context) {
    sess, ok := middleware.SessionFromContext(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
        return
    }

    var req refineRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
        return
    }
    if strings.TrimSpace(req.Feedback) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "feedback is required"})
        return
    }
    if !sess.HasModel() {
        c.JSON(http.StatusConflict, gin.H{"error": "no current model to refine; generate one first"})
        return
    }

    result := h.generator.Refine(c.Request.Context(), generator.RefineRequest{
        SessionID:  sess.ID,
        Provider:   sess.Provider,
        Model:      sess.Model,
        CurrentXML: sess.CurrentModelXML,
        Feedback:   req.Feedback,
    })
    if !result.IsSuccess() {
        c.JSON(http.StatusBadGateway, result)
        return
    }

    if _, err := h.sessions.SetModel(sess.ID, result.BPMNXML); err != nil {
        h.logger.Error("Failed to store refined model", "error", err)
        c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store refined model"})
        return
    }
    if _, err := h.sessions.AddFeedback(sess.ID, req.Feedback); err != nil {
        h.logger.Error("Failed to record feedback", "error", err)
    }

    c.JSON(http.StatusOK, result)
}

// PetriNet produces a Petri net structure from a process description. It
// does not touch the session's current BPMN model.
func (h *GenerationHandler) PetriNet(c *gin.Context) {
    sess, ok := middleware.SessionFromContext(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
        return
    }

    var req petriNetRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
        return
    }
    if strings.TrimSpace(req.Description) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "description is required"})
        return
    }

    result := h.generator.GeneratePetriNet(c.Request.Context(), generator.PetriNetRequest{
        SessionID:   sess.ID,
        Provider:    sess.Provider,
        Model:       sess.Model,
        Description: req.Description,
    })
    if result.Status == common.StatusError {
        c.JSON(http.StatusBadGateway, result)
        return
    }

    c.JSON(http.StatusOK, result)
}

// Current returns the session's modeling state.
func (h *GenerationHandler) Current(c *gin.Context) {
    sess, ok := middleware.SessionFromContext(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
        return
    }

    c.JSON(http.StatusOK, gin.H{
        "session_id":       string(sess.ID),
        "provider":         sess.Provider.String(),
        "model":            sess.Model,
        "has_model":        sess.HasModel(),
        "bpmn_xml":         sess.CurrentModelXML,
        "feedback_history": sess.FeedbackHistory,
    })
}

// Reset clears the session's current model and feedback history.
func (h *GenerationHandler) Reset(c *gin.Context) {
    sess, ok := middleware.SessionFromContext(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
        return
    }

    if _, err := h.sessions.Reset(sess.ID); err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset session"})
        return
    }

    c.JSON(http.StatusOK, gin.H{"message": "session reset"})
}

// Import uploads an existing process model and makes it the session's
// current model. pnml uploads are converted to BPMN first.
func (h *GenerationHandler) Import(c *gin.Context) {
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

    ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
    switch ext {
    case ".bpmn", ".pnml", ".xml":
    default:
        c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported model format " + ext + " (supported: .bpmn, .pnml, .xml)"})
        return
    }

    file, err := fileHeader.Open()
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open uploaded file"})
        return
    }
    defer file.Close()

    content, err := io.ReadAll(file)
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
        return
    }

    bpmnXML := string(content)
    if ext == ".pnml" {
        bpmnXML, err = h.mining.Convert(c.Request.Context(), string(content), "pnml", "bpmn")
        if err != nil {
            h.logger.Error("Failed to convert pnml upload", "error", err)
            c.JSON(http.StatusBadGateway, gin.H{"error": "failed to convert pnml model to BPMN"})
            return
        }
    }

    if _, err := h.sessions.SetModel(sess.ID, bpmnXML); err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store imported model"})
        return
    }

    c.JSON(http.StatusOK, gin.H{
        "message":  "model imported",
        "bpmn_xml": bpmnXML,
    })
}

// resolveProvider applies the request's provider and model overrides on
// top of the session's current selection.
func (h *GenerationHandler) resolveProvider(sess *session.Session, provider, model string) (llm.Kind, string, error) {
    kind := sess.Provider
    if provider != "" {
        parsed, err := llm.ParseKind(provider)
        if err != nil {
            return "", "", err
        }
        kind = parsed
    }

    resolved := model
    if resolved == "" {
        if kind == sess.Provider {
            resolved = sess.Model
        }
    }
    return kind, resolved, nil
}
