package history

import (
	"fmt"

	"gorm.io/gorm"
)

// RunMigrations performs auto-migration for the audit trail tables
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&GenerationRecord{}); err != nil {
		return fmt.Errorf("failed to auto-migrate history tables: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_generation_records_session_status ON generation_records(session_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_generation_records_operation_created_at ON generation_records(operation, created_at)",
	}
	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create history index: %w", err)
		}
	}

	return nil
}
