// Package testutil provides test helpers, including PostgreSQL container
// management for storage integration tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/cory-johannsen/arena/internal/config"
	"github.com/cory-johannsen/arena/internal/storage/postgres"
)

// PostgresContainer wraps a testcontainers PostgreSQL instance.
type PostgresContainer struct {
	container testcontainers.Container
	Pool      *postgres.Pool
	RawPool   *pgxpool.Pool
	Config    config.DatabaseConfig
}

// NewPool starts a PostgreSQL container, applies the arena schema, and
// returns a connected raw pool. Skipped in short mode.
//
// Precondition: Docker must be available.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	pc := NewPostgresContainer(t)
	pc.ApplyMigrations(t)
	return pc.RawPool
}

// NewPostgresContainer starts a PostgreSQL test container and returns
// a connected Pool.
//
// Precondition: Docker must be available.
// Postcondition: Returns a running container with a connected pool,
// or fails the test.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()
	start := time.Now()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("starting postgres container: %v [%s]", err, time.Since(start))
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("getting container host: %v", err)
	}

	mappedPort, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("getting mapped port: %v", err)
	}

	dbCfg := config.DatabaseConfig{
		Host:            host,
		Port:            mappedPort.Int(),
		User:            "test",
		Password:        "test",
		Name:            "test",
		SSLMode:         "disable",
		MaxConns:        5,
		MinConns:        1,
		MaxConnLifetime: 5 * time.Minute,
	}

	pool, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		t.Fatalf("connecting to test postgres: %v [%s]", err, time.Since(start))
	}

	t.Logf("postgres container started [%s]", time.Since(start))

	pc := &PostgresContainer{
		container: container,
		Pool:      pool,
		RawPool:   pool.DB(),
		Config:    dbCfg,
	}

	t.Cleanup(func() {
		pool.Close()
		_ = container.Terminate(ctx)
	})

	return pc
}

// ApplyMigrations runs the schema creation SQL directly for tests.
// This avoids requiring the migrate tool in the test environment.
//
// Precondition: Pool must be connected.
// Postcondition: The players and battle_records tables exist in the test
// database.
func (pc *PostgresContainer) ApplyMigrations(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	start := time.Now()

	schema := `
		CREATE TABLE IF NOT EXISTS players (
			id                      TEXT         PRIMARY KEY,
			username                VARCHAR(64)  NOT NULL,
			level                   INTEGER      NOT NULL,
			experience              INTEGER      NOT NULL,
			experience_to_next      INTEGER      NOT NULL,
			credits                 INTEGER      NOT NULL,
			health                  INTEGER      NOT NULL,
			max_health              INTEGER      NOT NULL,
			attack                  INTEGER      NOT NULL,
			defense                 INTEGER      NOT NULL,
			speed                   INTEGER      NOT NULL,
			critical_damage         INTEGER      NOT NULL,
			combat_wins             INTEGER      NOT NULL DEFAULT 0,
			combat_losses           INTEGER      NOT NULL DEFAULT 0,
			items_found             INTEGER      NOT NULL DEFAULT 0,
			created_at              TIMESTAMPTZ  NOT NULL,
			last_combat             TIMESTAMPTZ,
			last_search             TIMESTAMPTZ,
			inventory               JSONB        NOT NULL DEFAULT '[]'::jsonb,
			combat_cooldown_seconds INTEGER      NOT NULL,
			search_cooldown_seconds INTEGER      NOT NULL,
			updated_at              TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS battle_records (
			id                UUID        PRIMARY KEY,
			occurred_at       TIMESTAMPTZ NOT NULL,
			player_id         TEXT        NOT NULL,
			opponent_name     TEXT        NOT NULL,
			outcome           VARCHAR(16) NOT NULL,
			rounds            INTEGER     NOT NULL,
			experience_gained INTEGER     NOT NULL,
			credits_gained    INTEGER     NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_battle_records_player
			ON battle_records (player_id, occurred_at DESC);
	`

	_, err := pc.RawPool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("applying migrations: %v", err)
	}
	t.Logf("migrations applied [%s]", time.Since(start))
}

// DSN returns the connection string for the test database.
func (pc *PostgresContainer) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		pc.Config.User, pc.Config.Password,
		pc.Config.Host, pc.Config.Port,
		pc.Config.Name, pc.Config.SSLMode,
	)
}
