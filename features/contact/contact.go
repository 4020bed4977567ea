package contact

import "database/sql"

type Type string

const (
	TypeEmail Type = "email"
	TypePhone Type = "phone"
	TypeURL   Type = "url"
)

// SourceRecord is one profile description read from the source table.
// A NULL description has Text.Valid == false.
type SourceRecord struct {
	ID   int64
	Text sql.NullString
}

// Record is one extracted contact ready to be stored.
type Record struct {
	Source   string `json:"source"`
	RecordID int64  `json:"record_id"`
	Type     Type   `json:"contact_type"`
	Value    string `json:"contact_value"`
}

// Summary describes the outcome of a single run.
type Summary struct {
	RunID       string       `json:"run_id"`
	SourceTable string       `json:"source_table"`
	Source      string       `json:"source"`
	Fetched     int          `json:"fetched"`
	Extracted   int          `json:"extracted"`
	ByType      map[Type]int `json:"by_type"`
}
