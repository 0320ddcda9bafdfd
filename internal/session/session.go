package session

import (
	"time"

	"promoai-api/internal/common"
	"promoai-api/internal/llm"
)

// Session is the per-user context object passed to each handler. It owns
// the authoritative current model: every successful generation or
// refinement replaces CurrentModelXML wholesale, never merges into it.
type Session struct {
	ID              common.SessionID `json:"id"`
	Provider        llm.Kind         `json:"provider"`
	Model           string           `json:"model"`
	CurrentModelXML string           `json:"current_model_xml"`
	FeedbackHistory []string         `json:"feedback_history"`
	CreatedAt       time.Time        `json:"created_at"`
	ExpiresAt       time.Time        `json:"expires_at"`
}

// HasModel reports whether the session holds a current model.
func (s *Session) HasModel() bool {
	return s.CurrentModelXML != ""
}

// IsExpired checks if the session has expired at the given time.
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
