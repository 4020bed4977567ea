package contact

import (
	"context"
	"encoding/json"
	"log/slog"

	"textparser/internal/config"
	"textparser/internal/logger"
)

type EventPublisher interface {
	Publish(topic string, body []byte) error
}

type Service struct {
	repo        Repository
	pub         EventPublisher
	logger      *slog.Logger
	sourceTable string
	source      string
}

// NewService builds the pipeline for one source table. pub may be nil, in which
// case no summary event is sent.
func NewService(repo Repository, pub EventPublisher, logger *slog.Logger, sourceTable string) *Service {
	return &Service{
		repo:        repo,
		pub:         pub,
		logger:      logger,
		sourceTable: sourceTable,
		source:      SourceName(sourceTable),
	}
}

// Source is the label written with every row.
func (s *Service) Source() string {
	return s.source
}

// Run fetches every description, extracts contacts and appends them to the
// contacts table. Running it twice stores the same contacts twice.
func (s *Service) Run(ctx context.Context) (*Summary, error) {
	records, err := s.repo.FetchSourceTexts(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "fetched records", "count", len(records), "table", s.sourceTable)

	rows := BuildRows(records, s.source)
	byType := CountByType(rows)
	s.logger.InfoContext(ctx, "extracted contacts",
		"count", len(rows),
		"emails", byType[TypeEmail],
		"phones", byType[TypePhone],
		"urls", byType[TypeURL],
	)

	if err := s.repo.AppendContacts(ctx, rows); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "saved contacts", "table", config.ContactsTable, "source", s.source, "count", len(rows))

	summary := &Summary{
		RunID:       logger.GetRunID(ctx),
		SourceTable: s.sourceTable,
		Source:      s.source,
		Fetched:     len(records),
		Extracted:   len(rows),
		ByType:      byType,
	}
	s.publish(ctx, summary)

	return summary, nil
}

func (s *Service) publish(ctx context.Context, summary *Summary) {
	if s.pub == nil {
		return
	}
	body, err := json.Marshal(summary)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to encode run summary", "error", err)
		return
	}
	if err := s.pub.Publish(config.TopicContactsExtracted, body); err != nil {
		s.logger.WarnContext(ctx, "failed to publish run summary", "topic", config.TopicContactsExtracted, "error", err)
		return
	}
	s.logger.InfoContext(ctx, "published run summary", "topic", config.TopicContactsExtracted)
}
