package testutils

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"textparser/internal/config"
)

const (
	dbName = "scrapers_test"
	dbUser = "test"
	dbPass = "test"
)

// Profile is one row seeded into the source table. A nil Description is
// stored as NULL.
type Profile struct {
	ID          int64
	Description *string
}

type IntegrationSuite struct {
	T  *testing.T
	DB *sql.DB

	pgContainer *postgres.PostgresContainer
}

func NewIntegrationSuite(t *testing.T) *IntegrationSuite {
	return &IntegrationSuite{T: t}
}

func (s *IntegrationSuite) Setup() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPass),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(s.T, err)
	s.pgContainer = pgContainer

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(s.T, err)

	s.DB, err = sql.Open("postgres", connStr)
	require.NoError(s.T, err)
}

// SeedProfiles creates apple_podcasts.profiles and fills it.
func (s *IntegrationSuite) SeedProfiles(profiles []Profile) {
	ctx := context.Background()

	_, err := s.DB.ExecContext(ctx, `CREATE SCHEMA IF NOT EXISTS apple_podcasts`)
	require.NoError(s.T, err)
	_, err = s.DB.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS apple_podcasts.profiles (id BIGINT PRIMARY KEY, show_description TEXT)`)
	require.NoError(s.T, err)

	for _, p := range profiles {
		_, err := s.DB.ExecContext(ctx, `INSERT INTO apple_podcasts.profiles (id, show_description) VALUES ($1, $2)`, p.ID, p.Description)
		require.NoError(s.T, err)
	}
}

// CountContacts returns the number of rows in the contacts table.
func (s *IntegrationSuite) CountContacts() int {
	var n int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM ` + config.ContactsTable).Scan(&n)
	require.NoError(s.T, err)
	return n
}

// GetAppConfig returns a configuration pointing at the suite database.
func (s *IntegrationSuite) GetAppConfig() *config.Config {
	ctx := context.Background()

	host, err := s.pgContainer.Host(ctx)
	require.NoError(s.T, err)
	port, err := s.pgContainer.MappedPort(ctx, "5432/tcp")
	require.NoError(s.T, err)

	return &config.Config{
		DBHost:      host,
		DBPort:      port.Int(),
		DBUser:      dbUser,
		DBPassword:  dbPass,
		DBName:      dbName,
		DBSSLMode:   "disable",
		SourceTable: "apple_podcasts.profiles",
	}
}

func (s *IntegrationSuite) Teardown() {
	ctx := context.Background()
	if s.DB != nil {
		s.DB.Close()
	}
	if s.pgContainer != nil {
		s.pgContainer.Terminate(ctx)
	}
}

func Ptr(s string) *string {
	return &s
}
