package events

import (
	"time"

	"github.com/google/uuid"
)

// Event represents the base event structure with common fields
type Event struct {
	CorrelationID string    `json:"correlation_id" validate:"required"`
	Timestamp     time.Time `json:"timestamp" validate:"required"`
}

// NewEvent creates a new base event with generated correlation ID
func NewEvent() Event {
	return Event{
		CorrelationID: uuid.New().String(),
		Timestamp:     time.Now(),
	}
}

// ModelGenerated is published after a generation round against an LLM
// provider, whether it succeeded or failed. Status carries the outcome.
type ModelGenerated struct {
	Event
	SessionID string `json:"session_id" validate:"required"`
	Provider  string `json:"provider" validate:"required"`
	Model     string `json:"model" validate:"required"`
	Status    string `json:"status" validate:"required"`
	Message   string `json:"message"`
}

// ModelRefined is published after a feedback-driven refinement round.
type ModelRefined struct {
	Event
	SessionID string `json:"session_id" validate:"required"`
	Provider  string `json:"provider" validate:"required"`
	Model     string `json:"model" validate:"required"`
	Status    string `json:"status" validate:"required"`
	Message   string `json:"message"`
	Feedback  string `json:"feedback"`
}

// PetriNetGenerated is published after a Petri-net JSON generation round.
type PetriNetGenerated struct {
	Event
	SessionID string `json:"session_id" validate:"required"`
	Provider  string `json:"provider" validate:"required"`
	Model     string `json:"model" validate:"required"`
	Status    string `json:"status" validate:"required"`
	Message   string `json:"message"`
}

// LogAnalyzed is published after an event-log discovery round.
type LogAnalyzed struct {
	Event
	SessionID string `json:"session_id" validate:"required"`
	FileName  string `json:"file_name" validate:"required"`
	NumTraces int    `json:"num_traces"`
	NumEvents int    `json:"num_events"`
	Status    string `json:"status" validate:"required"`
	Message   string `json:"message"`
}

// Event topics constants
const (
	TopicModelGenerated    = "model.generated"
	TopicModelRefined      = "model.refined"
	TopicPetriNetGenerated = "model.petri_net_generated"
	TopicLogAnalyzed       = "log.analyzed"
)
