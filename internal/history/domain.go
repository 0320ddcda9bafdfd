// Package history persists an audit trail of generation and analysis
// activity. Records are written asynchronously from published events, so
// the request path never blocks on the database.
package history

import (
	"time"

	"promoai-api/internal/common"
)

// Operation names the kind of activity a record captures.
type Operation string

const (
	OperationGenerate    Operation = "generate"
	OperationRefine      Operation = "refine"
	OperationPetriNet    Operation = "petri_net"
	OperationLogAnalysis Operation = "log_analysis"
)

// IsValid checks if the Operation is a known value
func (o Operation) IsValid() bool {
	switch o {
	case OperationGenerate, OperationRefine, OperationPetriNet, OperationLogAnalysis:
		return true
	default:
		return false
	}
}

// GenerationRecord is one row of the audit trail.
type GenerationRecord struct {
	ID        common.RecordID `gorm:"type:varchar(36);primaryKey" json:"id"`
	SessionID string          `gorm:"type:varchar(36);index" json:"session_id"`
	Operation Operation       `gorm:"type:varchar(20);not null;index" json:"operation"`
	Provider  string          `gorm:"type:varchar(20)" json:"provider"`
	Model     string          `gorm:"type:varchar(100)" json:"model"`
	Status    string          `gorm:"type:varchar(10);not null" json:"status"`
	Message   string          `gorm:"type:text" json:"message,omitempty"`
	Feedback  string          `gorm:"type:text" json:"feedback,omitempty"`
	FileName  string          `gorm:"type:varchar(255)" json:"file_name,omitempty"`
	NumTraces int             `json:"num_traces,omitempty"`
	NumEvents int             `json:"num_events,omitempty"`
	CreatedAt time.Time       `gorm:"index" json:"created_at"`
}

// TableName returns the table name for GenerationRecord
func (GenerationRecord) TableName() string {
	return "generation_records"
}

// RecordFilter narrows a record listing.
type RecordFilter struct {
	SessionID *string
	Operation *Operation
	Status    *string
	Limit     int
	Offset    int
}
