// Package testutil provides shared test utilities for architect
package testutil

import (
	"context"
	"database/sql"
	"io"
	"log"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dataarchitect/architect/internal/generate"
	"github.com/dataarchitect/architect/internal/logger"
)

var suppressedLogger = log.New(io.Discard, "", 0)

// getPostgresVersion returns the PostgreSQL version to use for testing.
// It reads from the ARCHITECT_POSTGRES_VERSION environment variable,
// defaulting to "17" if not set.
func getPostgresVersion() string {
	if version := os.Getenv("ARCHITECT_POSTGRES_VERSION"); version != "" {
		return version
	}
	return "17"
}

// ContainerInfo holds PostgreSQL container connection details
type ContainerInfo struct {
	Container testcontainers.Container
	DSN       string
	Conn      *sql.DB
}

// SetupPostgresContainer starts a PostgreSQL container and connects to it
// through the pgx database/sql driver
func SetupPostgresContainer(ctx context.Context, t *testing.T) *ContainerInfo {
	t.Helper()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:"+getPostgresVersion()+"-alpine",
		postgres.WithDatabase("architect"),
		postgres.WithUsername("architect"),
		postgres.WithPassword("architect"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
		testcontainers.WithLogger(suppressedLogger),
	)
	if err != nil {
		t.Fatalf("Failed to start container: %v", err)
	}

	dsn, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	return &ContainerInfo{
		Container: postgresContainer,
		DSN:       dsn,
		Conn:      conn,
	}
}

// Terminate cleans up the container and connection
func (ci *ContainerInfo) Terminate(ctx context.Context, t *testing.T) {
	ci.Conn.Close()
	if err := ci.Container.Terminate(ctx); err != nil {
		t.Logf("Failed to terminate container: %v", err)
	}
}

// ExecContextWithLogging executes SQL with debug logging if debug mode is enabled
func ExecContextWithLogging(ctx context.Context, db *sql.DB, stmt string, description string) (sql.Result, error) {
	isDebug := logger.IsDebug()
	if isDebug {
		logger.Get().Debug("Executing SQL", "description", description, "sql", stmt)
	}

	result, err := db.ExecContext(ctx, stmt)

	if isDebug {
		if err != nil {
			logger.Get().Debug("SQL execution failed", "description", description, "error", err)
		} else {
			logger.Get().Debug("SQL execution succeeded", "description", description)
		}
	}
	return result, err
}

// ApplyOutput executes the named artifacts of out in order, or every
// artifact when no names are given
func (ci *ContainerInfo) ApplyOutput(ctx context.Context, t *testing.T, out *generate.Output, names ...string) {
	t.Helper()

	if len(names) == 0 {
		names = out.Names()
	}
	for _, name := range names {
		a, ok := out.Get(name)
		if !ok {
			t.Fatalf("artifact %s not generated (have %v)", name, out.Names())
		}
		if _, err := ExecContextWithLogging(ctx, ci.Conn, a.SQL, name); err != nil {
			t.Fatalf("Failed to execute %s: %v\n%s", name, err, a.SQL)
		}
	}
}
