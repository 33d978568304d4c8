// Command cleanup archives delivered and failed whispers past the retention
// window and purges old processed events. It is intended to be invoked by an
// external cron job, not as an in-process goroutine.
//
// Retention windows come from the retention config section
// (retention.archive_after, retention.purge_events_after).
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/lumeteam/whisper-backend/internal/adapter/postgres"
	eventpg "github.com/lumeteam/whisper-backend/internal/adapter/postgres/event"
	whisperpg "github.com/lumeteam/whisper-backend/internal/adapter/postgres/whisper"
	"github.com/lumeteam/whisper-backend/internal/app"
	"github.com/lumeteam/whisper-backend/internal/config"
	"github.com/lumeteam/whisper-backend/internal/domain"
)

const failedReportLimit = 20

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	events := eventpg.New(pool)
	whispers := whisperpg.New(pool)

	now := time.Now().UTC()

	archiveCutoff := now.Add(-cfg.Retention.ArchiveAfter)
	archived, err := whispers.ArchiveBefore(ctx, archiveCutoff)
	if err != nil {
		logger.Error("archive whispers",
			slog.String("error", err.Error()),
			slog.Time("cutoff", archiveCutoff),
		)
		os.Exit(1)
	}
	logger.Info("whispers archived",
		slog.Int64("archived", archived),
		slog.Time("cutoff", archiveCutoff),
	)

	purgeCutoff := now.Add(-cfg.Retention.PurgeEventsAfter)
	var purged int64
	for _, integration := range domain.Integrations() {
		n, err := events.PurgeProcessedBefore(ctx, integration, purgeCutoff)
		if err != nil {
			logger.Error("purge events",
				slog.String("integration", integration.String()),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
		purged += n
	}
	logger.Info("processed events purged",
		slog.Int64("purged", purged),
		slog.Time("cutoff", purgeCutoff),
	)

	// Backlog report so the cron log shows what is left behind, including
	// failed events awaiting a replay.
	for _, integration := range domain.Integrations() {
		counts, err := events.CountByStatus(ctx, integration)
		if err != nil {
			logger.Error("count events",
				slog.String("integration", integration.String()),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
		logger.Info("event backlog",
			slog.String("integration", integration.String()),
			slog.Int("pending", counts[domain.EventStatusPending]),
			slog.Int("processing", counts[domain.EventStatusProcessing]),
			slog.Int("processed", counts[domain.EventStatusProcessed]),
			slog.Int("failed", counts[domain.EventStatusFailed]),
		)

		if counts[domain.EventStatusFailed] == 0 {
			continue
		}

		failed, err := events.ListByStatus(ctx, integration, domain.EventStatusFailed, failedReportLimit)
		if err != nil {
			logger.Error("list failed events",
				slog.String("integration", integration.String()),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
		for _, ev := range failed {
			logger.Warn("failed event awaiting replay",
				slog.String("integration", integration.String()),
				slog.String("event_id", ev.ID.String()),
				slog.String("event_type", ev.EventType),
				slog.Time("occurred_at", ev.OccurredAt),
			)
		}
	}
}
