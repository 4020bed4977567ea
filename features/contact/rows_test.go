package contact_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"

	"textparser/features/contact"
)

func text(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func TestSourceName(t *testing.T) {
	assert.Equal(t, "apple_podcasts", contact.SourceName("apple_podcasts.profiles"))
	assert.Equal(t, "spotify", contact.SourceName("spotify.profiles"))
	assert.Equal(t, "apple_podcasts.episodes", contact.SourceName("apple_podcasts.episodes"))
	assert.Equal(t, "a.profiles.b", contact.SourceName("a.profiles.b"))
}

func TestBuildRows(t *testing.T) {
	t.Run("Same Email In Two Records", func(t *testing.T) {
		rows := contact.BuildRows([]contact.SourceRecord{
			{ID: 1, Text: text("a@b.com")},
			{ID: 2, Text: text("a@b.com")},
		}, "apple_podcasts")

		assert.Equal(t, []contact.Record{
			{Source: "apple_podcasts", RecordID: 1, Type: contact.TypeEmail, Value: "a@b.com"},
			{Source: "apple_podcasts", RecordID: 2, Type: contact.TypeEmail, Value: "a@b.com"},
		}, rows)
	})

	t.Run("Repeated Email Within Record", func(t *testing.T) {
		rows := contact.BuildRows([]contact.SourceRecord{
			{ID: 7, Text: text("a@b.com and a@b.com again")},
		}, "apple_podcasts")

		assert.Equal(t, []contact.Record{
			{Source: "apple_podcasts", RecordID: 7, Type: contact.TypeEmail, Value: "a@b.com"},
		}, rows)
	})

	t.Run("Type Order Per Record", func(t *testing.T) {
		rows := contact.BuildRows([]contact.SourceRecord{
			{ID: 1, Text: text("https://one.example.com call 555 123 4567 or mail z@x.io, y@x.io")},
			{ID: 2, Text: text("https://two.example.com")},
		}, "src")

		assert.Equal(t, []contact.Record{
			{Source: "src", RecordID: 1, Type: contact.TypeEmail, Value: "z@x.io"},
			{Source: "src", RecordID: 1, Type: contact.TypeEmail, Value: "y@x.io"},
			{Source: "src", RecordID: 1, Type: contact.TypePhone, Value: "555 123 4567"},
			{Source: "src", RecordID: 1, Type: contact.TypeURL, Value: "https://one.example.com"},
			{Source: "src", RecordID: 2, Type: contact.TypeURL, Value: "https://two.example.com"},
		}, rows)
	})

	t.Run("Null And Empty Text", func(t *testing.T) {
		rows := contact.BuildRows([]contact.SourceRecord{
			{ID: 1},
			{ID: 2, Text: text("")},
			{ID: 3, Text: text("nothing to see here")},
		}, "src")
		assert.Empty(t, rows)
	})

	t.Run("No Records", func(t *testing.T) {
		assert.Empty(t, contact.BuildRows(nil, "src"))
	})
}

func TestCountByType(t *testing.T) {
	counts := contact.CountByType([]contact.Record{
		{Type: contact.TypeEmail},
		{Type: contact.TypeURL},
		{Type: contact.TypeURL},
	})
	assert.Equal(t, map[contact.Type]int{
		contact.TypeEmail: 1,
		contact.TypePhone: 0,
		contact.TypeURL:   2,
	}, counts)
}
