package middleware

import (
    "errors"
    "net/http"
    "strings"

    "promoai-api/internal/auth"
    "promoai-api/internal/session"
    "promoai-api/pkg/logger"

    "github.com/gin-gonic/gin"
)

const (
    // SessionContextKey is the gin context key holding the resolved session
    SessionContextKey = "session"
)

// SessionAuth validates the Bearer token on each request and loads the
// session it names into the gin context. Handlers behind this middleware
// can assume a live session.
func SessionAuth(authService *auth.Service, sessions *session.Store, logger *logger.Logger) gin.HandlerFunc {
    return func(c *gin.Context) {
        header := c.GetHeader("Authorization")
        token, ok := strings.CutPrefix(header, "Bearer ")
        if !ok || token == "" {
            c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
            return
        }

        sessionID, err := authService.VerifyToken(token)
        if err != nil {
            c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session token"})
            return
        }

        sess, err := sessions.Get(sessionID)
        if err != nil {
            if errors.Is(err, session.ErrSessionExpired) {
                c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
                return
            }
            c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown session"})
            return
        }

        c.Set(SessionContextKey, sess)
        c.Next()
    }
}

// SessionFromContext retrieves the session loaded by SessionAuth.
func SessionFromContext(c *gin.Context) (*session.Session, bool) {
    value, exists := c.Get(SessionContextKey)
    if !exists {
        return nil, false
    }
    sess, ok := value.(*session.Session)
    return sess, ok
}
