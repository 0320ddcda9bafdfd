package history

import (
	"errors"
	"time"

	"promoai-api/internal/common"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// gormRepository implements the Repository interface using GORM
type gormRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormRepository creates a new GORM-based history repository
func NewGormRepository(db *gorm.DB, logger *zap.Logger) Repository {
	return &gormRepository{
		db:     db,
		logger: logger,
	}
}

// CreateRecord inserts a new audit record
func (r *gormRepository) CreateRecord(record *GenerationRecord) error {
	if !record.Operation.IsValid() {
		return common.ValidationError{Field: "operation", Message: "unknown operation " + string(record.Operation)}
	}
	if record.ID == "" {
		record.ID = common.RecordID(common.NewID())
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	if err := r.db.Create(record).Error; err != nil {
		return wrapRepositoryError(err, "create record")
	}

	r.logger.Debug("Audit record created",
		zap.String("recordID", string(record.ID)),
		zap.String("operation", string(record.Operation)))
	return nil
}

// GetRecordByID retrieves a record by its ID
func (r *gormRepository) GetRecordByID(id common.RecordID) (*GenerationRecord, error) {
	var record GenerationRecord
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundError{Resource: "GenerationRecord", ID: string(id)}
		}
		return nil, wrapRepositoryError(err, "get record by ID")
	}
	return &record, nil
}

// ListRecords retrieves records matching the filter, newest first
func (r *gormRepository) ListRecords(filter RecordFilter) ([]*GenerationRecord, error) {
	query := r.applyFilter(filter).Order("created_at DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query = query.Limit(limit)
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var records []*GenerationRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, wrapRepositoryError(err, "list records")
	}
	return records, nil
}

// CountRecords counts records matching the filter
func (r *gormRepository) CountRecords(filter RecordFilter) (int64, error) {
	var count int64
	if err := r.applyFilter(filter).Count(&count).Error; err != nil {
		return 0, wrapRepositoryError(err, "count records")
	}
	return count, nil
}

// DeleteOlderThan removes records created before the cutoff
func (r *gormRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Delete(&GenerationRecord{}, "created_at < ?", cutoff)
	if result.Error != nil {
		return 0, wrapRepositoryError(result.Error, "delete old records")
	}

	if result.RowsAffected > 0 {
		r.logger.Info("Old audit records removed",
			zap.Int64("count", result.RowsAffected),
			zap.Time("cutoff", cutoff))
	}
	return result.RowsAffected, nil
}

func (r *gormRepository) applyFilter(filter RecordFilter) *gorm.DB {
	query := r.db.Model(&GenerationRecord{})
	if filter.SessionID != nil {
		query = query.Where("session_id = ?", *filter.SessionID)
	}
	if filter.Operation != nil {
		query = query.Where("operation = ?", *filter.Operation)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	return query
}
