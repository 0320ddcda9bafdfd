package history

import (
	"time"

	"promoai-api/internal/common"
)

// Repository defines persistence operations for the audit trail.
type Repository interface {
	CreateRecord(record *GenerationRecord) error
	GetRecordByID(id common.RecordID) (*GenerationRecord, error)
	ListRecords(filter RecordFilter) ([]*GenerationRecord, error)
	CountRecords(filter RecordFilter) (int64, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}
