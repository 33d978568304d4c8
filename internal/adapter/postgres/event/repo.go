// Package event implements the tagged-event repository using PostgreSQL.
// Each integration gets its own table (slack_events, teams_events, ...) with
// a shared schema; the repository dispatches on the Integration enum. The
// raw payload and the scope-match snapshot are stored as JSONB.
package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/lumeteam/whisper-backend/internal/adapter/postgres"
	"github.com/lumeteam/whisper-backend/internal/domain"
)

// Repo provides tagged-event persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new event repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// tableFor maps an integration to its event table. The switch is exhaustive
// over domain.Integrations(); an unknown integration is a validation error,
// never a dynamic table name.
func tableFor(integration domain.Integration) (string, error) {
	switch integration {
	case domain.IntegrationSlack:
		return "slack_events", nil
	case domain.IntegrationTeams:
		return "teams_events", nil
	case domain.IntegrationDiscord:
		return "discord_events", nil
	case domain.IntegrationGmail:
		return "gmail_events", nil
	case domain.IntegrationGitHub:
		return "github_events", nil
	}
	return "", fmt.Errorf("integration %q: %w", integration, domain.ErrValidation)
}

const eventColumns = `id, organization_id, event_type, occurred_at, payload, status, scope_matches, created_at, updated_at`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Insert persists a tagged event into its integration's table and returns
// the stored row.
func (r *Repo) Insert(ctx context.Context, event *domain.TaggedEvent) (*domain.TaggedEvent, error) {
	table, err := tableFor(event.Integration)
	if err != nil {
		return nil, err
	}

	payloadJSON, err := json.Marshal(event.Payload)
	if err != nil {
		return nil, fmt.Errorf("event %s marshal payload: %w", event.ID, err)
	}
	matchesJSON, err := json.Marshal(event.ScopeMatches)
	if err != nil {
		return nil, fmt.Errorf("event %s marshal scope_matches: %w", event.ID, err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	//nolint:gosec // table comes from the closed tableFor switch
	sql := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING %s`,
		table, eventColumns, eventColumns)

	row := querier.QueryRow(ctx, sql,
		event.ID,
		event.OrganizationID,
		event.EventType,
		event.OccurredAt,
		payloadJSON,
		event.Status.String(),
		matchesJSON,
		event.CreatedAt,
		event.UpdatedAt,
	)

	stored, err := scanEvent(row, event.Integration)
	if err != nil {
		return nil, mapError(err, "event", event.ID)
	}

	return stored, nil
}

// UpdateStatus advances an event's status. The update only applies when the
// current status is one of allowedFrom, keeping transitions monotonic.
// Returns domain.ErrConflict when the event exists but its status does not
// allow the transition, domain.ErrNotFound when it does not exist.
func (r *Repo) UpdateStatus(ctx context.Context, integration domain.Integration, eventID uuid.UUID, next domain.EventStatus, allowedFrom ...domain.EventStatus) error {
	table, err := tableFor(integration)
	if err != nil {
		return err
	}

	from := make([]string, len(allowedFrom))
	for i, s := range allowedFrom {
		from[i] = s.String()
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	//nolint:gosec // table comes from the closed tableFor switch
	sql := fmt.Sprintf(`UPDATE %s SET status = $1, updated_at = $2 WHERE id = $3 AND status = ANY($4::text[])`, table)

	tag, err := querier.Exec(ctx, sql, next.String(), time.Now().UTC(), eventID, from)
	if err != nil {
		return mapError(err, "event", eventID)
	}
	if tag.RowsAffected() == 0 {
		current, err := r.currentStatus(ctx, table, eventID)
		if err != nil {
			return mapError(err, "event", eventID)
		}
		return fmt.Errorf("event %s: status %s -> %s: %w", eventID, current, next, domain.ErrConflict)
	}

	return nil
}

// PurgeProcessedBefore deletes processed events last touched before the
// cutoff. Returns the number of deleted rows.
func (r *Repo) PurgeProcessedBefore(ctx context.Context, integration domain.Integration, cutoff time.Time) (int64, error) {
	table, err := tableFor(integration)
	if err != nil {
		return 0, err
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	//nolint:gosec // table comes from the closed tableFor switch
	sql := fmt.Sprintf(`DELETE FROM %s WHERE status = $1 AND updated_at < $2`, table)

	tag, err := querier.Exec(ctx, sql, domain.EventStatusProcessed.String(), cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge %s: %w", table, err)
	}

	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a tagged event from its integration's table.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByID(ctx context.Context, integration domain.Integration, eventID uuid.UUID) (*domain.TaggedEvent, error) {
	table, err := tableFor(integration)
	if err != nil {
		return nil, err
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	//nolint:gosec // table comes from the closed tableFor switch
	sql := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, eventColumns, table)

	event, err := scanEvent(querier.QueryRow(ctx, sql, eventID), integration)
	if err != nil {
		return nil, mapError(err, "event", eventID)
	}

	return event, nil
}

// ListByStatus returns up to limit events in the given status, oldest first.
// Returns an empty slice (not nil) when nothing matches.
func (r *Repo) ListByStatus(ctx context.Context, integration domain.Integration, status domain.EventStatus, limit int) ([]*domain.TaggedEvent, error) {
	table, err := tableFor(integration)
	if err != nil {
		return nil, err
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	//nolint:gosec // table comes from the closed tableFor switch
	sql := fmt.Sprintf(`SELECT %s FROM %s WHERE status = $1 ORDER BY occurred_at ASC LIMIT $2`, eventColumns, table)

	rows, err := querier.Query(ctx, sql, status.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("list %s by status: %w", table, err)
	}
	defer rows.Close()

	events, err := scanEvents(rows, integration)
	if err != nil {
		return nil, fmt.Errorf("list %s by status: %w", table, err)
	}

	return events, nil
}

// CountByStatus returns the number of events per status for an integration.
func (r *Repo) CountByStatus(ctx context.Context, integration domain.Integration) (map[domain.EventStatus]int, error) {
	table, err := tableFor(integration)
	if err != nil {
		return nil, err
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	//nolint:gosec // table comes from the closed tableFor switch
	sql := fmt.Sprintf(`SELECT status, count(*) FROM %s GROUP BY status`, table)

	rows, err := querier.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("count %s by status: %w", table, err)
	}
	defer rows.Close()

	counts := make(map[domain.EventStatus]int)
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("count %s by status: %w", table, err)
		}
		counts[domain.EventStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count %s by status: %w", table, err)
	}

	return counts, nil
}

func (r *Repo) currentStatus(ctx context.Context, table string, eventID uuid.UUID) (string, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	//nolint:gosec // table comes from the closed tableFor switch
	sql := fmt.Sprintf(`SELECT status FROM %s WHERE id = $1`, table)

	var status string
	if err := querier.QueryRow(ctx, sql, eventID).Scan(&status); err != nil {
		return "", err
	}
	return status, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanEvent(row pgx.Row, integration domain.Integration) (*domain.TaggedEvent, error) {
	var (
		e           domain.TaggedEvent
		payloadJSON []byte
		status      string
		matchesJSON []byte
	)
	if err := row.Scan(&e.ID, &e.OrganizationID, &e.EventType, &e.OccurredAt, &payloadJSON, &status, &matchesJSON, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return buildEvent(&e, integration, payloadJSON, status, matchesJSON)
}

func scanEvents(rows pgx.Rows, integration domain.Integration) ([]*domain.TaggedEvent, error) {
	var result []*domain.TaggedEvent
	for rows.Next() {
		var (
			e           domain.TaggedEvent
			payloadJSON []byte
			status      string
			matchesJSON []byte
		)
		if err := rows.Scan(&e.ID, &e.OrganizationID, &e.EventType, &e.OccurredAt, &payloadJSON, &status, &matchesJSON, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		event, err := buildEvent(&e, integration, payloadJSON, status, matchesJSON)
		if err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []*domain.TaggedEvent{}
	}

	return result, nil
}

func buildEvent(e *domain.TaggedEvent, integration domain.Integration, payloadJSON []byte, status string, matchesJSON []byte) (*domain.TaggedEvent, error) {
	e.Integration = integration
	e.Status = domain.EventStatus(status)

	if len(payloadJSON) > 0 {
		payload := make(map[string]any)
		if err := json.Unmarshal(payloadJSON, &payload); err != nil {
			return nil, fmt.Errorf("event %s unmarshal payload: %w", e.ID, err)
		}
		e.Payload = payload
	}

	matches := []domain.ScopeMatch{}
	if len(matchesJSON) > 0 {
		if err := json.Unmarshal(matchesJSON, &matches); err != nil {
			return nil, fmt.Errorf("event %s unmarshal scope_matches: %w", e.ID, err)
		}
	}
	e.ScopeMatches = matches

	return e, nil
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	// pgx.ErrNoRows -> domain.ErrNotFound
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	// PgError codes
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	// Everything else: wrap with context
	return fmt.Errorf("%s %s: %w", entity, id, err)
}
