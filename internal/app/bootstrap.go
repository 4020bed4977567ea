package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"github.com/nsqio/go-nsq"

	"textparser/features/contact"
	"textparser/internal/config"
	"textparser/migrations"
)

// Dependencies holds the resources a run owns. Conn is the only database
// connection used; Close must be called on every exit path.
type Dependencies struct {
	DB          *sql.DB
	Conn        *sql.Conn
	NSQProducer *nsq.Producer
}

func Bootstrap(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	deps := &Dependencies{DB: db}

	conn, err := db.Conn(ctx)
	if err != nil {
		_ = deps.Close()
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}
	deps.Conn = conn

	if err := conn.PingContext(ctx); err != nil {
		_ = deps.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	if err := EnsureSchema(ctx, conn); err != nil {
		_ = deps.Close()
		return nil, err
	}
	slog.InfoContext(ctx, "contacts table ensured", "table", config.ContactsTable)

	if cfg.NSQDHost != "" {
		deps.NSQProducer = newProducer(ctx, cfg.NSQDHost)
	}

	return deps, nil
}

// EnsureSchema applies the embedded migrations over conn. The migrate instance
// is not closed here because closing it would close conn.
func EnsureSchema(ctx context.Context, conn *sql.Conn) error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("migration source error: %w", err)
	}

	driver, err := postgres.WithConnection(ctx, conn, &postgres.Config{
		MigrationsTable: config.MigrationsTable,
	})
	if err != nil {
		return fmt.Errorf("migration driver error: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("migration instance error: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up error: %w", err)
	}
	return nil
}

// newProducer connects to nsqd for run summaries. Events are best effort, so an
// unreachable nsqd only disables them.
func newProducer(ctx context.Context, addr string) *nsq.Producer {
	producer, err := nsq.NewProducer(addr, nsq.NewConfig())
	if err != nil {
		slog.WarnContext(ctx, "failed to create NSQ producer, events disabled", "addr", addr, "error", err)
		return nil
	}
	producer.SetLogger(slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn), nsq.LogLevelWarning)

	if err := producer.Ping(); err != nil {
		slog.WarnContext(ctx, "failed to reach nsqd, events disabled", "addr", addr, "error", err)
		producer.Stop()
		return nil
	}
	return producer
}

// Publisher returns the event publisher, or nil when events are disabled.
func (d *Dependencies) Publisher() contact.EventPublisher {
	if d.NSQProducer == nil {
		return nil
	}
	return d.NSQProducer
}

func (d *Dependencies) Close() error {
	if d.NSQProducer != nil {
		d.NSQProducer.Stop()
	}

	var errs []error
	if d.Conn != nil {
		if err := d.Conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
			errs = append(errs, fmt.Errorf("failed to release db connection: %w", err))
		}
	}
	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close db: %w", err))
		}
	}
	return errors.Join(errs...)
}
