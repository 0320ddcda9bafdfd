//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"promoai-api/internal/config"
	"promoai-api/internal/database"
	"promoai-api/internal/history"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// TestContainer manages the lifecycle of a test database container
type TestContainer struct {
	Container testcontainers.Container
	DB        *gorm.DB
	Config    config.DatabaseConfig
	ctx       context.Context
}

// SetupTestDatabase creates and starts a PostgreSQL test container with
// the history schema migrated.
func SetupTestDatabase(t *testing.T) *TestContainer {
	ctx := context.Background()

	postgresContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		postgres.WithDatabase("test_promoai"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	host, err := postgresContainer.Host(ctx)
	require.NoError(t, err)

	port, err := postgresContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dbConfig := config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "test_user",
		Password:        "test_password",
		DBName:          "test_promoai",
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 300,
	}

	db, err := database.NewPostgresConnection(dbConfig)
	require.NoError(t, err, "Failed to connect to test database")

	require.NoError(t, history.RunMigrations(db), "Failed to migrate history schema")

	return &TestContainer{
		Container: postgresContainer,
		DB:        db,
		Config:    dbConfig,
		ctx:       ctx,
	}
}

// TeardownTestDatabase stops and removes the test container
func (tc *TestContainer) TeardownTestDatabase(t *testing.T) {
	if tc.DB != nil {
		sqlDB, err := tc.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	if tc.Container != nil {
		require.NoError(t, tc.Container.Terminate(tc.ctx))
	}
}
