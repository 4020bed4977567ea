package app

import (
	"context"
	"log/slog"

	"textparser/features/contact"
	"textparser/internal/config"
)

type App struct {
	ContactService *contact.Service
}

// New wires the contact pipeline on top of db. pub may be nil.
func New(cfg *config.Config, db contact.DBTX, pub contact.EventPublisher, logger *slog.Logger) (*App, error) {
	repo, err := contact.NewPostgresRepo(db, cfg.SourceTable)
	if err != nil {
		return nil, err
	}

	return &App{
		ContactService: contact.NewService(repo, pub, logger, cfg.SourceTable),
	}, nil
}

func (a *App) Run(ctx context.Context) (*contact.Summary, error) {
	return a.ContactService.Run(ctx)
}
