package config

const (
	// ContactsSchema holds every table this tool writes to.
	ContactsSchema = "text_parser"

	// ContactsTable is the destination for extracted contacts.
	ContactsTable = ContactsSchema + ".contacts_from_profiles_descriptions"

	// MigrationsTable tracks applied schema versions for ContactsTable.
	MigrationsTable = "text_parser_schema_migrations"

	// TopicContactsExtracted is the NSQ topic carrying one summary per run.
	TopicContactsExtracted = "contacts.extracted"
)
