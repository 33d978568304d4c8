// Package app wires configuration, logging, the database pool, stores and
// services into a runnable application. Commands build one App and pick the
// pieces they need.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lumeteam/whisper-backend/internal/adapter/postgres"
	eventpg "github.com/lumeteam/whisper-backend/internal/adapter/postgres/event"
	scopepg "github.com/lumeteam/whisper-backend/internal/adapter/postgres/scope"
	whisperpg "github.com/lumeteam/whisper-backend/internal/adapter/postgres/whisper"
	"github.com/lumeteam/whisper-backend/internal/config"
	"github.com/lumeteam/whisper-backend/internal/service/ingest"
	"github.com/lumeteam/whisper-backend/internal/service/scope"
	"github.com/lumeteam/whisper-backend/internal/service/tagging"
	"github.com/lumeteam/whisper-backend/internal/service/whisper"
)

// App is the wired application.
type App struct {
	Log  *slog.Logger
	Pool *pgxpool.Pool

	Events   *eventpg.Repo
	Scopes   *scopepg.Repo
	Whispers *whisperpg.Repo

	ScopeService   *scope.Service
	TaggingService *tagging.Service
	WhisperService *whisper.Service
	IngestService  *ingest.Service
}

// New connects to the database and wires every store and service. The
// returned App owns the pool; release it with Close.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	events := eventpg.New(pool)
	scopes := scopepg.New(pool)
	whispers := whisperpg.New(pool)
	txm := postgres.NewTxManager(pool)

	scopeSvc := scope.NewService(log, scopes, txm, cfg.Pipeline.MaxScopeItems)
	matcher := tagging.NewMatcher(log, scopes)
	taggingSvc := tagging.NewService(log, events, matcher)
	whisperSvc := whisper.NewService(log, whispers)
	ingestSvc := ingest.NewService(log, taggingSvc, whisperSvc, events, cfg.Pipeline.MaxInsightChars)

	log.InfoContext(ctx, "application wired",
		slog.String("version", BuildVersion()),
	)

	return &App{
		Log:  log,
		Pool: pool,

		Events:   events,
		Scopes:   scopes,
		Whispers: whispers,

		ScopeService:   scopeSvc,
		TaggingService: taggingSvc,
		WhisperService: whisperSvc,
		IngestService:  ingestSvc,
	}, nil
}

// Close releases the database pool.
func (a *App) Close() {
	a.Pool.Close()
}
