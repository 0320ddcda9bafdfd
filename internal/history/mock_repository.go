package history

import (
	"sync"
	"time"

	"promoai-api/internal/common"
)

// MockRepository is an in-memory Repository for testing
type MockRepository struct {
	mu      sync.Mutex
	records []*GenerationRecord

	CreateError error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

func (m *MockRepository) CreateRecord(record *GenerationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateError != nil {
		return m.CreateError
	}
	if record.ID == "" {
		record.ID = common.RecordID(common.NewID())
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	copied := *record
	m.records = append(m.records, &copied)
	return nil
}

func (m *MockRepository) GetRecordByID(id common.RecordID) (*GenerationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, record := range m.records {
		if record.ID == id {
			copied := *record
			return &copied, nil
		}
	}
	return nil, common.NotFoundError{Resource: "GenerationRecord", ID: string(id)}
}

func (m *MockRepository) ListRecords(filter RecordFilter) ([]*GenerationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []*GenerationRecord
	for _, record := range m.records {
		if filter.SessionID != nil && record.SessionID != *filter.SessionID {
			continue
		}
		if filter.Operation != nil && record.Operation != *filter.Operation {
			continue
		}
		if filter.Status != nil && record.Status != *filter.Status {
			continue
		}
		copied := *record
		matched = append(matched, &copied)
	}
	return matched, nil
}

func (m *MockRepository) CountRecords(filter RecordFilter) (int64, error) {
	records, err := m.ListRecords(filter)
	if err != nil {
		return 0, err
	}
	return int64(len(records)), nil
}

func (m *MockRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var kept []*GenerationRecord
	var removed int64
	for _, record := range m.records {
		if record.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, record)
	}
	m.records = kept
	return removed, nil
}

// Records returns a snapshot of all stored records
func (m *MockRepository) Records() []*GenerationRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := make([]*GenerationRecord, 0, len(m.records))
	for _, record := range m.records {
		copied := *record
		snapshot = append(snapshot, &copied)
	}
	return snapshot
}
