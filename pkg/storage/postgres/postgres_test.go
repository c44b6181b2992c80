package postgres_test

import (
	"accounts"
	"accounts/pkg/storage/postgres"
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	accountsImage    = "postgres:17"
	accountsUser     = "accounts"
	accountsPassword = "accounts"
	accountsDB       = "accounts_test"
)

// accountsContainer is a throwaway Postgres holding the account schema.
type accountsContainer struct {
	testcontainers.Container
	host string
	port int
}

func startAccountsContainer(ctx context.Context) (*accountsContainer, error) {
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        accountsImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     accountsUser,
				"POSTGRES_PASSWORD": accountsPassword,
				"POSTGRES_DB":       accountsDB,
			},
			// postgres restarts once after initdb, so the first ready line is not enough
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort("5432/tcp"),
			).WithDeadline(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("could not start accounts database: %w", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("could not resolve accounts database host: %w", err)
	}

	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("could not resolve accounts database port: %w", err)
	}

	return &accountsContainer{Container: c, host: host, port: port.Int()}, nil
}

func (c *accountsContainer) options() postgres.Options {
	return postgres.Options{
		Username:           accountsUser,
		Password:           accountsPassword,
		Host:               c.host,
		Port:               c.port,
		Database:           accountsDB,
		SslMode:            "disable",
		ConnMaxLifetime:    time.Minute,
		ConnMaxIdleTime:    time.Minute,
		MaxOpenConnections: 5,
		MaxIdleConnections: 5,
	}
}

// migrateAccounts applies the embedded users and email_verifications migrations.
func migrateAccounts(db *sql.DB) error {
	goose.SetBaseFS(accounts.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("could not set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("could not migrate accounts schema: %w", err)
	}

	return nil
}

// setupTestDB returns a migrated account store and a func that tears it down.
func setupTestDB(t *testing.T) (*postgres.PgSQL, func()) {
	t.Helper()
	ctx := context.Background()

	c, err := startAccountsContainer(ctx)
	require.NoError(t, err)

	pg, err := postgres.New(ctx, c.options())
	if err != nil {
		_ = c.Terminate(ctx)
		require.NoError(t, err)
	}

	if err := migrateAccounts(pg.DB.(*sql.DB)); err != nil {
		_ = pg.Close()
		_ = c.Terminate(ctx)
		require.NoError(t, err)
	}

	return pg, func() {
		_ = pg.Close()
		_ = c.Terminate(ctx)
	}
}
