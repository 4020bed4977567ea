package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"textparser/internal/config"
)

var ErrInvalidTable = errors.New("invalid table identifier")

// DBTX is the subset of *sql.DB and *sql.Conn the repository needs.
type DBTX interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type Repository interface {
	FetchSourceTexts(ctx context.Context) ([]SourceRecord, error)
	AppendContacts(ctx context.Context, rows []Record) error
}

type PostgresRepo struct {
	db          DBTX
	sourceTable string
}

// NewPostgresRepo reads descriptions from sourceTable, a dotted identifier such
// as "apple_podcasts.profiles".
func NewPostgresRepo(db DBTX, sourceTable string) (*PostgresRepo, error) {
	quoted, err := QuoteTable(sourceTable)
	if err != nil {
		return nil, err
	}
	return &PostgresRepo{db: db, sourceTable: quoted}, nil
}

// QuoteTable quotes each dotted part of a table identifier. Parts are folded
// to lower case first, the way Postgres treats an unquoted name.
func QuoteTable(table string) (string, error) {
	parts := strings.Split(table, ".")
	if len(parts) > 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}
	for i, p := range parts {
		if p == "" {
			return "", fmt.Errorf("%w: %q", ErrInvalidTable, table)
		}
		parts[i] = pq.QuoteIdentifier(foldIdentifier(p))
	}
	return strings.Join(parts, "."), nil
}

// foldIdentifier lowers ASCII letters only, matching Postgres' folding of
// unquoted identifiers.
func foldIdentifier(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

func (r *PostgresRepo) FetchSourceTexts(ctx context.Context) ([]SourceRecord, error) {
	query := `SELECT id, show_description::text FROM ` + r.sourceTable + ` ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query source records: %w", err)
	}
	defer rows.Close()

	var records []SourceRecord
	for rows.Next() {
		var rec SourceRecord
		if err := rows.Scan(&rec.ID, &rec.Text); err != nil {
			return nil, fmt.Errorf("failed to scan source record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read source records: %w", err)
	}
	return records, nil
}

const insertContactQuery = `INSERT INTO ` + config.ContactsTable + ` (source, record_id, contact_type, contact_value) VALUES ($1, $2, $3, $4)`

// AppendContacts inserts rows one statement at a time. There is no surrounding
// transaction: rows written before a failure stay written.
func (r *PostgresRepo) AppendContacts(ctx context.Context, rows []Record) error {
	for _, row := range rows {
		if _, err := r.db.ExecContext(ctx, insertContactQuery, row.Source, row.RecordID, string(row.Type), row.Value); err != nil {
			return fmt.Errorf("failed to insert contact for record %d: %w", row.RecordID, err)
		}
	}
	return nil
}
