package database

import (
    "fmt"
    "time"

    "promoai-api/internal/config"

    "gorm.io/driver/postgres"
    "gorm.io/gorm"
    "gorm.io/gorm/logger"
)

func NewPostgresConnection(cfg config.DatabaseConfig) (*gorm.DB, error) {
    db, err := gorm.Open(postgres.Open(buildDSN(cfg)), &gorm.Config{
        Logger: logger.Default.LogMode(logger.Silent),
    })
    if err != nil {
        return nil, fmt.Errorf("failed to connect to database: %w", err)
    }

    sqlDB, err := db.DB()
    if err != nil {
        return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
    }

    // Configure connection pool
    sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
    sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
    sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

    // Test connection
    if err := sqlDB.Ping(); err != nil {
        return nil, fmt.Errorf("failed to ping database: %w", err)
    }

    return db, nil
}

// buildDSN assembles the postgres connection string. prefer_simple_protocol
// avoids server-side prepared statement name collisions which can surface
// as: ERROR: prepared statement "..." already exists (SQLSTATE 42P05)
func buildDSN(cfg config.DatabaseConfig) string {
    return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s prefer_simple_protocol=true",
        cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
}

func HealthCheck(db *gorm.DB) error {
    if db == nil {
        return fmt.Errorf("database instance is nil")
    }
    
    // Check if GORM DB is properly initialized
    if db.Statement == nil {
        return fmt.Errorf("database is not properly initialized")
    }
    
    sqlDB, err := db.DB()
    if err != nil {
        return fmt.Errorf("failed to get underlying sql.DB: %w", err)
    }

    if sqlDB == nil {
        return fmt.Errorf("underlying sql.DB is nil")
    }

    if err := sqlDB.Ping(); err != nil {
        return fmt.Errorf("database ping failed: %w", err)
    }

    return nil
}