package handlers

import (
    "errors"
    "net/http"

    "promoai-api/internal/auth"
    "promoai-api/internal/config"
    "promoai-api/internal/llm"
    "promoai-api/internal/session"
    "promoai-api/api/middleware"
    "promoai-api/pkg/logger"

    "github.com/gin-gonic/gin"
)

type AuthHandler struct {
    authService *auth.Service
    sessions    *session.Store
    llmConfig   config.LLMConfig
    logger      *logger.Logger
}

func NewAuthHandler(authService *auth.Service, sessions *session.Store, llmConfig config.LLMConfig, logger *logger.Logger) *AuthHandler {
    return &AuthHandler{
        authService: authService,
        sessions:    sessions,
        llmConfig:   llmConfig,
        logger:      logger,
    }
}

type loginRequest struct {
    Username string `json:"username"`
    Password string `json:"password"`
}

type loginResponse struct {
    Token     string `json:"token"`
    SessionID string `json:"session_id"`
    Provider  string `json:"provider"`
    Model     string `json:"model"`
}

// Login validates credentials and opens a fresh modeling session. When the
// credential gate is disabled the username and password are ignored and a
// session is opened unconditionally.
func (h *AuthHandler) Login(c *gin.Context) {
    var req loginRequest
    if err := c.ShouldBindJSON(&req); err != nil && h.authService.Enabled() {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
        return
    }

    if h.authService.Enabled() {
        if err := h.authService.Authenticate(req.Username, req.Password); err != nil {
            if errors.Is(err, auth.ErrInvalidCredentials) {
                c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
                return
            }
            c.JSON(http.StatusInternalServerError, gin.H{"error": "authentication failed"})
            return
        }
    }

    kind, err := llm.ParseKind(h.llmConfig.DefaultProvider)
    if err != nil {
        kind = llm.KindOpenAI
    }
    model := defaultModelFor(h.llmConfig, kind)

    sess := h.sessions.Create(kind, model)
    token, err := h.authService.IssueToken(sess.ID)
    if err != nil {
        h.logger.Error("Failed to issue session token", "error", err)
        h.sessions.Delete(sess.ID)
        c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open session"})
        return
    }

    c.JSON(http.StatusOK, loginResponse{
        Token:     token,
        SessionID: string(sess.ID),
        Provider:  sess.Provider.String(),
        Model:     sess.Model,
    })
}

// Logout closes the current session.
func (h *AuthHandler) Logout(c *gin.Context) {
    sess, ok := middleware.SessionFromContext(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
        return
    }

    h.sessions.Delete(sess.ID)
    c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func defaultModelFor(cfg config.LLMConfig, kind llm.Kind) string {
    switch kind {
    case llm.KindOpenAI:
        return cfg.OpenAI.Model
    case llm.KindAnthropic:
        return cfg.Anthropic.Model
    case llm.KindGoogle:
        return cfg.Google.Model
    case llm.KindCohere:
        return cfg.Cohere.Model
    default:
        return ""
    }
}
