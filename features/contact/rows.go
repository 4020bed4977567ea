package contact

import (
	"strings"

	"textparser/internal/text"
)

const profilesSuffix = ".profiles"

// SourceName derives the label stored with every row from the source table
// identifier, e.g. "apple_podcasts.profiles" becomes "apple_podcasts".
func SourceName(table string) string {
	return strings.TrimSuffix(table, profilesSuffix)
}

// BuildRows extracts contacts from each record in order. Per record it emits
// emails, then phones, then URLs, each in the order they first appear in the
// text. Nothing is deduplicated across records.
func BuildRows(records []SourceRecord, source string) []Record {
	var rows []Record
	for _, rec := range records {
		found := text.ExtractContacts(rec.Text.String)
		rows = appendRows(rows, source, rec.ID, TypeEmail, found.Emails)
		rows = appendRows(rows, source, rec.ID, TypePhone, found.Phones)
		rows = appendRows(rows, source, rec.ID, TypeURL, found.URLs)
	}
	return rows
}

func appendRows(rows []Record, source string, id int64, typ Type, values []string) []Record {
	for _, v := range values {
		rows = append(rows, Record{Source: source, RecordID: id, Type: typ, Value: v})
	}
	return rows
}

// CountByType tallies rows per contact type.
func CountByType(rows []Record) map[Type]int {
	counts := map[Type]int{TypeEmail: 0, TypePhone: 0, TypeURL: 0}
	for _, r := range rows {
		counts[r.Type]++
	}
	return counts
}
