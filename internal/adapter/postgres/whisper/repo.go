// Package whisper implements the whisper repository using PostgreSQL.
// Scoped whispers carry (manager_id, scope_id); organization-wide ones leave
// both NULL. Partial unique indexes enforce one whisper per (event, scope)
// and at most one organization-wide whisper per event.
package whisper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/lumeteam/whisper-backend/internal/adapter/postgres"
	"github.com/lumeteam/whisper-backend/internal/domain"
)

// Repo provides whisper persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new whisper repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// builder is the squirrel statement builder configured for PostgreSQL.
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const whisperColumns = `id, organization_id, event_id, integration, title, category, priority,
message, suggested_actions, rationale, manager_id, scope_id, source_items,
status, feedback, created_at, updated_at`

const insertWhisperSQL = `
INSERT INTO whispers (id, organization_id, event_id, integration, title, category, priority,
message, suggested_actions, rationale, manager_id, scope_id, source_items,
status, feedback, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
RETURNING ` + whisperColumns

const getWhisperSQL = `
SELECT ` + whisperColumns + `
FROM whispers
WHERE id = $1 AND organization_id = $2`

const listByEventSQL = `
SELECT ` + whisperColumns + `
FROM whispers
WHERE event_id = $1
ORDER BY created_at ASC, id ASC`

const updateStatusSQL = `
UPDATE whispers SET status = $1, updated_at = $2
WHERE id = $3 AND organization_id = $4 AND status = ANY($5::text[])`

const currentStatusSQL = `SELECT status FROM whispers WHERE id = $1 AND organization_id = $2`

const attachFeedbackSQL = `
UPDATE whispers SET feedback = $1, updated_at = $2
WHERE id = $3 AND organization_id = $4 AND status = $5`

const archiveBeforeSQL = `
UPDATE whispers SET status = $1, updated_at = $2
WHERE status = ANY($3::text[]) AND created_at < $4`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a whisper and returns the stored row.
// Returns domain.ErrAlreadyExists when a whisper for the same (event, scope)
// pair, or a second organization-wide whisper for the event, already exists.
func (r *Repo) Create(ctx context.Context, w domain.Whisper) (domain.Whisper, error) {
	actionsJSON, err := json.Marshal(w.Content.SuggestedActions)
	if err != nil {
		return domain.Whisper{}, fmt.Errorf("whisper %s marshal suggested_actions: %w", w.ID, err)
	}

	var sourceItemsJSON []byte
	var managerID, scopeID pgtype.UUID
	if w.ScopeInfo != nil {
		managerID = pgtype.UUID{Bytes: w.ScopeInfo.ManagerID, Valid: true}
		scopeID = pgtype.UUID{Bytes: w.ScopeInfo.ScopeID, Valid: true}
		sourceItemsJSON, err = json.Marshal(w.ScopeInfo.SourceItems)
		if err != nil {
			return domain.Whisper{}, fmt.Errorf("whisper %s marshal source_items: %w", w.ID, err)
		}
	}

	feedbackJSON, err := marshalFeedback(w.Feedback)
	if err != nil {
		return domain.Whisper{}, fmt.Errorf("whisper %s marshal feedback: %w", w.ID, err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, insertWhisperSQL,
		w.ID,
		w.OrganizationID,
		w.EventID,
		w.Integration.String(),
		w.Title,
		w.Category.String(),
		int(w.Priority),
		w.Content.Message,
		actionsJSON,
		ptrStringToPgText(w.Content.Rationale),
		managerID,
		scopeID,
		sourceItemsJSON,
		w.Status.String(),
		feedbackJSON,
		w.CreatedAt,
		w.UpdatedAt,
	)

	stored, err := scanWhisper(row)
	if err != nil {
		return domain.Whisper{}, mapError(err, "whisper", w.ID)
	}

	return stored, nil
}

// UpdateStatus advances a whisper's delivery status. The update only applies
// when the current status is one of allowedFrom. Returns domain.ErrConflict
// when the whisper exists but the transition is not allowed,
// domain.ErrNotFound when it does not exist in the organization.
func (r *Repo) UpdateStatus(ctx context.Context, orgID, whisperID uuid.UUID, next domain.WhisperStatus, allowedFrom ...domain.WhisperStatus) error {
	from := make([]string, len(allowedFrom))
	for i, s := range allowedFrom {
		from[i] = s.String()
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateStatusSQL, next.String(), time.Now().UTC(), whisperID, orgID, from)
	if err != nil {
		return mapError(err, "whisper", whisperID)
	}
	if tag.RowsAffected() == 0 {
		var current string
		if err := querier.QueryRow(ctx, currentStatusSQL, whisperID, orgID).Scan(&current); err != nil {
			return mapError(err, "whisper", whisperID)
		}
		return fmt.Errorf("whisper %s: status %s -> %s: %w", whisperID, current, next, domain.ErrConflict)
	}

	return nil
}

// AttachFeedback stores reader feedback on a delivered whisper. Resubmitting
// overwrites the previous feedback. Returns domain.ErrConflict when the
// whisper is not in delivered status, domain.ErrNotFound when it does not
// exist in the organization.
func (r *Repo) AttachFeedback(ctx context.Context, orgID, whisperID uuid.UUID, feedback domain.Feedback) error {
	feedbackJSON, err := marshalFeedback(&feedback)
	if err != nil {
		return fmt.Errorf("whisper %s marshal feedback: %w", whisperID, err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, attachFeedbackSQL, feedbackJSON, time.Now().UTC(), whisperID, orgID, domain.WhisperStatusDelivered.String())
	if err != nil {
		return mapError(err, "whisper", whisperID)
	}
	if tag.RowsAffected() == 0 {
		var current string
		if err := querier.QueryRow(ctx, currentStatusSQL, whisperID, orgID).Scan(&current); err != nil {
			return mapError(err, "whisper", whisperID)
		}
		return fmt.Errorf("whisper %s: feedback on %s whisper: %w", whisperID, current, domain.ErrConflict)
	}

	return nil
}

// ArchiveBefore archives delivered and failed whispers created before the
// cutoff. Returns the number of archived rows.
func (r *Repo) ArchiveBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	from := []string{domain.WhisperStatusDelivered.String(), domain.WhisperStatusFailed.String()}

	tag, err := querier.Exec(ctx, archiveBeforeSQL, domain.WhisperStatusArchived.String(), time.Now().UTC(), from, cutoff)
	if err != nil {
		return 0, fmt.Errorf("archive whispers: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a whisper by primary key within an organization.
// Returns domain.ErrNotFound if it does not exist there.
func (r *Repo) GetByID(ctx context.Context, orgID, whisperID uuid.UUID) (*domain.Whisper, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	w, err := scanWhisper(querier.QueryRow(ctx, getWhisperSQL, whisperID, orgID))
	if err != nil {
		return nil, mapError(err, "whisper", whisperID)
	}

	return &w, nil
}

// ListByEvent returns all whispers fanned out from one event, oldest first.
// Returns an empty slice (not nil) when the event produced none.
func (r *Repo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Whisper, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByEventSQL, eventID)
	if err != nil {
		return nil, fmt.Errorf("list whispers by event: %w", err)
	}
	defer rows.Close()

	whispers, err := scanWhispers(rows)
	if err != nil {
		return nil, fmt.Errorf("list whispers by event: %w", err)
	}

	return whispers, nil
}

// List returns an organization's whispers with filtering and pagination,
// plus the total count matching the filter. When filter.VisibleTo is set the
// listing is narrowed to that manager's scoped whispers and organization-wide
// ones.
func (r *Repo) List(ctx context.Context, orgID uuid.UUID, filter domain.WhisperFilter) ([]domain.Whisper, int, error) {
	filter = normalizeFilter(filter)

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	where := r.listConditions(orgID, filter)

	countQuery := builder.Select("count(*)").From("whispers").Where(where)
	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count whispers query: %w", err)
	}

	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count whispers: %w", err)
	}

	query := builder.
		Select("id", "organization_id", "event_id", "integration", "title", "category", "priority",
			"message", "suggested_actions", "rationale", "manager_id", "scope_id", "source_items",
			"status", "feedback", "created_at", "updated_at").
		From("whispers").
		Where(where).
		OrderBy(fmt.Sprintf("%s %s", filter.SortBy, filter.SortOrder), "id ASC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list whispers query: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list whispers: %w", err)
	}
	defer rows.Close()

	whispers, err := scanWhispers(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("list whispers: %w", err)
	}

	return whispers, total, nil
}

func (r *Repo) listConditions(orgID uuid.UUID, filter domain.WhisperFilter) squirrel.And {
	where := squirrel.And{squirrel.Eq{"organization_id": orgID}}

	if filter.VisibleTo != nil {
		where = append(where, squirrel.Or{
			squirrel.Eq{"manager_id": *filter.VisibleTo},
			squirrel.Eq{"manager_id": nil},
		})
	}
	if filter.Category != nil {
		where = append(where, squirrel.Eq{"category": filter.Category.String()})
	}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"status": filter.Status.String()})
	}
	if filter.Integration != nil {
		where = append(where, squirrel.Eq{"integration": filter.Integration.String()})
	}
	if filter.MinPriority != nil {
		where = append(where, squirrel.GtOrEq{"priority": int(*filter.MinPriority)})
	}

	return where
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanWhisper(row pgx.Row) (domain.Whisper, error) {
	var (
		w               domain.Whisper
		integration     string
		category        string
		priority        int
		actionsJSON     []byte
		rationale       pgtype.Text
		managerID       pgtype.UUID
		scopeID         pgtype.UUID
		sourceItemsJSON []byte
		status          string
		feedbackJSON    []byte
	)

	err := row.Scan(&w.ID, &w.OrganizationID, &w.EventID, &integration, &w.Title, &category, &priority,
		&w.Content.Message, &actionsJSON, &rationale, &managerID, &scopeID, &sourceItemsJSON,
		&status, &feedbackJSON, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return domain.Whisper{}, err
	}

	return buildWhisper(w, integration, category, priority, actionsJSON, rationale, managerID, scopeID, sourceItemsJSON, status, feedbackJSON)
}

func scanWhispers(rows pgx.Rows) ([]domain.Whisper, error) {
	var result []domain.Whisper
	for rows.Next() {
		w, err := scanWhisper(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []domain.Whisper{}
	}

	return result, nil
}

func buildWhisper(w domain.Whisper, integration, category string, priority int, actionsJSON []byte, rationale pgtype.Text, managerID, scopeID pgtype.UUID, sourceItemsJSON []byte, status string, feedbackJSON []byte) (domain.Whisper, error) {
	w.Integration = domain.Integration(integration)
	w.Category = domain.Category(category)
	w.Priority = domain.Priority(priority)
	w.Status = domain.WhisperStatus(status)

	if rationale.Valid {
		w.Content.Rationale = &rationale.String
	}

	actions := []string{}
	if len(actionsJSON) > 0 {
		if err := json.Unmarshal(actionsJSON, &actions); err != nil {
			return domain.Whisper{}, fmt.Errorf("whisper %s unmarshal suggested_actions: %w", w.ID, err)
		}
	}
	w.Content.SuggestedActions = actions

	if managerID.Valid && scopeID.Valid {
		info := &domain.ScopeInfo{
			ManagerID:   uuid.UUID(managerID.Bytes),
			ScopeID:     uuid.UUID(scopeID.Bytes),
			Integration: w.Integration,
		}
		if len(sourceItemsJSON) > 0 {
			if err := json.Unmarshal(sourceItemsJSON, &info.SourceItems); err != nil {
				return domain.Whisper{}, fmt.Errorf("whisper %s unmarshal source_items: %w", w.ID, err)
			}
		}
		w.ScopeInfo = info
	}

	if len(feedbackJSON) > 0 {
		var fb domain.Feedback
		if err := json.Unmarshal(feedbackJSON, &fb); err != nil {
			return domain.Whisper{}, fmt.Errorf("whisper %s unmarshal feedback: %w", w.ID, err)
		}
		w.Feedback = &fb
	}

	return w, nil
}

// marshalFeedback converts feedback to JSONB (nil -> NULL).
func marshalFeedback(fb *domain.Feedback) ([]byte, error) {
	if fb == nil {
		return nil, nil
	}
	return json.Marshal(fb)
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

// ---------------------------------------------------------------------------
// pgtype helpers
// ---------------------------------------------------------------------------

// ptrStringToPgText converts a *string to pgtype.Text (nil -> NULL).
func ptrStringToPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}
