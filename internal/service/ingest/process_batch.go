package ingest

import (
	"context"
	"log/slog"

	"github.com/lumeteam/whisper-backend/internal/domain"
)

// ItemError pairs a batch index with the error that item produced.
type ItemError struct {
	Index int
	Err   error
}

// BatchResult summarizes an ingestion batch.
type BatchResult struct {
	Processed int
	Failed    int
	Whispers  []domain.Whisper
	Errors    []ItemError
}

// ProcessBatch runs the pipeline for each input independently. One item's
// failure never aborts its siblings; failures are logged and reported per
// index.
func (s *Service) ProcessBatch(ctx context.Context, inputs []EventInput) BatchResult {
	var result BatchResult

	for i, in := range inputs {
		res, err := s.ProcessEvent(ctx, in)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, ItemError{Index: i, Err: err})
			s.log.ErrorContext(ctx, "batch item failed",
				slog.Int("index", i),
				slog.String("integration", in.Integration.String()),
				slog.String("error", err.Error()),
			)
			continue
		}

		result.Processed++
		result.Whispers = append(result.Whispers, res.Whispers...)
	}

	s.log.InfoContext(ctx, "batch processed",
		slog.Int("total", len(inputs)),
		slog.Int("processed", result.Processed),
		slog.Int("failed", result.Failed),
		slog.Int("whisper_count", len(result.Whispers)),
	)

	return result
}
