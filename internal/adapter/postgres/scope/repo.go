// Package scope implements the scope registry repository using PostgreSQL.
// Scopes live in the scopes table, their items in scope_items; a partial
// unique index keeps at most one active scope per (organization, manager,
// integration).
package scope

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/lumeteam/whisper-backend/internal/adapter/postgres"
	"github.com/lumeteam/whisper-backend/internal/domain"
)

// Repo provides scope persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new scope repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// builder is the squirrel statement builder configured for PostgreSQL.
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const insertScopeSQL = `
INSERT INTO scopes (id, organization_id, manager_id, integration, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const insertItemsSQL = `
INSERT INTO scope_items (scope_id, item_id, item_type)
SELECT $1, unnest($2::text[]), unnest($3::text[])`

const deleteItemsSQL = `DELETE FROM scope_items WHERE scope_id = $1`

const getScopeSQL = `
SELECT id, organization_id, manager_id, integration, is_active, created_at, updated_at
FROM scopes
WHERE id = $1 AND organization_id = $2`

const getActiveScopeSQL = `
SELECT id, organization_id, manager_id, integration, is_active, created_at, updated_at
FROM scopes
WHERE organization_id = $1 AND manager_id = $2 AND integration = $3 AND is_active`

const getItemsSQL = `
SELECT item_id, item_type FROM scope_items WHERE scope_id = $1 ORDER BY item_id, item_type`

const getItemsBatchSQL = `
SELECT scope_id, item_id, item_type FROM scope_items
WHERE scope_id = ANY($1::uuid[])
ORDER BY scope_id, item_id, item_type`

const touchScopeSQL = `
UPDATE scopes SET updated_at = $1 WHERE id = $2 AND manager_id = $3`

const deactivateScopeSQL = `
UPDATE scopes SET is_active = false, updated_at = $1
WHERE id = $2 AND manager_id = $3`

const deleteScopeSQL = `DELETE FROM scopes WHERE id = $1 AND manager_id = $2`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a scope with its items.
// Returns domain.ErrNotFound if the scope does not exist in the organization.
func (r *Repo) GetByID(ctx context.Context, orgID, scopeID uuid.UUID) (*domain.Scope, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	scope, err := scanScope(querier.QueryRow(ctx, getScopeSQL, scopeID, orgID))
	if err != nil {
		return nil, mapError(err, "scope", scopeID)
	}

	items, err := r.getItems(ctx, scopeID)
	if err != nil {
		return nil, fmt.Errorf("scope %s items: %w", scopeID, err)
	}
	scope.Items = items

	return scope, nil
}

// GetActiveForManager returns the manager's active scope for an integration.
// Returns domain.ErrNotFound when the manager has no active scope there.
func (r *Repo) GetActiveForManager(ctx context.Context, orgID, managerID uuid.UUID, integration domain.Integration) (*domain.Scope, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	scope, err := scanScope(querier.QueryRow(ctx, getActiveScopeSQL, orgID, managerID, integration.String()))
	if err != nil {
		return nil, mapError(err, "scope", uuid.Nil)
	}

	items, err := r.getItems(ctx, scope.ID)
	if err != nil {
		return nil, fmt.Errorf("scope %s items: %w", scope.ID, err)
	}
	scope.Items = items

	return scope, nil
}

// List returns an organization's scopes ordered by created_at DESC, newest
// first. A non-nil managerID narrows the listing to that manager. Items are
// loaded in one batch query. Returns an empty slice (not nil) when nothing
// matches.
func (r *Repo) List(ctx context.Context, orgID uuid.UUID, managerID *uuid.UUID) ([]*domain.Scope, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query := builder.
		Select("id", "organization_id", "manager_id", "integration", "is_active", "created_at", "updated_at").
		From("scopes").
		Where(squirrel.Eq{"organization_id": orgID}).
		OrderBy("created_at DESC")
	if managerID != nil {
		query = query.Where(squirrel.Eq{"manager_id": *managerID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list scopes query: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list scopes: %w", err)
	}
	defer rows.Close()

	scopes, err := scanScopes(rows)
	if err != nil {
		return nil, fmt.Errorf("list scopes: %w", err)
	}

	if err := r.attachItems(ctx, scopes); err != nil {
		return nil, fmt.Errorf("list scopes items: %w", err)
	}

	return scopes, nil
}

// FindMatching returns the distinct active scopes of an organization owning
// at least one of the identifiers. A scope matching through several
// identifiers appears exactly once. Returns an empty slice (not nil) when
// nothing matches or the identifier set is empty.
func (r *Repo) FindMatching(ctx context.Context, orgID uuid.UUID, identifiers []domain.ItemRef) ([]domain.ScopeMatch, error) {
	if len(identifiers) == 0 {
		return []domain.ScopeMatch{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	pairs := make(squirrel.Or, 0, len(identifiers))
	for _, ref := range identifiers {
		pairs = append(pairs, squirrel.Eq{
			"si.item_id":   ref.ItemID,
			"si.item_type": ref.ItemType.String(),
		})
	}

	query := builder.
		Select("s.id", "s.manager_id", "s.organization_id").
		Options("DISTINCT").
		From("scopes s").
		Join("scope_items si ON si.scope_id = s.id").
		Where(squirrel.Eq{"s.organization_id": orgID, "s.is_active": true}).
		Where(pairs).
		OrderBy("s.id")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find matching query: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("find matching scopes: %w", err)
	}
	defer rows.Close()

	matches, err := scanMatches(rows)
	if err != nil {
		return nil, fmt.Errorf("find matching scopes: %w", err)
	}

	return matches, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a scope with its items. Callers that need atomicity wrap it
// in TxManager.RunInTx. Returns domain.ErrAlreadyExists if the manager
// already has an active scope for the integration.
func (r *Repo) Create(ctx context.Context, scope *domain.Scope) (*domain.Scope, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, insertScopeSQL,
		scope.ID,
		scope.OrganizationID,
		scope.ManagerID,
		scope.Integration.String(),
		scope.IsActive,
		scope.CreatedAt,
		scope.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err, "scope", scope.ID)
	}

	if err := r.insertItems(ctx, scope.ID, scope.Items); err != nil {
		return nil, mapError(err, "scope", scope.ID)
	}

	created := *scope
	return &created, nil
}

// ReplaceItems swaps a scope's item set and bumps updated_at. Ownership is
// checked against managerID. Callers wrap it in TxManager.RunInTx.
// Returns domain.ErrNotFound if the scope does not exist or belongs to
// another manager.
func (r *Repo) ReplaceItems(ctx context.Context, managerID, scopeID uuid.UUID, items []domain.ItemRef) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, touchScopeSQL, time.Now().UTC(), scopeID, managerID)
	if err != nil {
		return mapError(err, "scope", scopeID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("scope %s: %w", scopeID, domain.ErrNotFound)
	}

	if _, err := querier.Exec(ctx, deleteItemsSQL, scopeID); err != nil {
		return mapError(err, "scope", scopeID)
	}

	if err := r.insertItems(ctx, scopeID, items); err != nil {
		return mapError(err, "scope", scopeID)
	}

	return nil
}

// Deactivate turns the scope off so it stops matching future events.
// Idempotent: deactivating an inactive scope is not an error.
// Returns domain.ErrNotFound if the scope does not exist or belongs to
// another manager.
func (r *Repo) Deactivate(ctx context.Context, managerID, scopeID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deactivateScopeSQL, time.Now().UTC(), scopeID, managerID)
	if err != nil {
		return mapError(err, "scope", scopeID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("scope %s: %w", scopeID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a scope; scope_items go with it via ON DELETE CASCADE.
// Returns domain.ErrNotFound if the scope does not exist or belongs to
// another manager.
func (r *Repo) Delete(ctx context.Context, managerID, scopeID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteScopeSQL, scopeID, managerID)
	if err != nil {
		return mapError(err, "scope", scopeID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("scope %s: %w", scopeID, domain.ErrNotFound)
	}

	return nil
}

// insertItems bulk-inserts items via unnest. No-op for an empty set.
func (r *Repo) insertItems(ctx context.Context, scopeID uuid.UUID, items []domain.ItemRef) error {
	if len(items) == 0 {
		return nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ids := make([]string, len(items))
	types := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ItemID
		types[i] = item.ItemType.String()
	}

	if _, err := querier.Exec(ctx, insertItemsSQL, scopeID, ids, types); err != nil {
		return err
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func (r *Repo) getItems(ctx context.Context, scopeID uuid.UUID) ([]domain.ItemRef, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getItemsSQL, scopeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

// attachItems loads items for all scopes in one batch query and attaches
// them in place.
func (r *Repo) attachItems(ctx context.Context, scopes []*domain.Scope) error {
	if len(scopes) == 0 {
		return nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ids := make([]uuid.UUID, len(scopes))
	byID := make(map[uuid.UUID]*domain.Scope, len(scopes))
	for i, s := range scopes {
		ids[i] = s.ID
		byID[s.ID] = s
		s.Items = []domain.ItemRef{}
	}

	rows, err := querier.Query(ctx, getItemsBatchSQL, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			scopeID  uuid.UUID
			itemID   string
			itemType string
		)
		if err := rows.Scan(&scopeID, &itemID, &itemType); err != nil {
			return err
		}
		if s, ok := byID[scopeID]; ok {
			s.Items = append(s.Items, domain.ItemRef{ItemID: itemID, ItemType: domain.ItemType(itemType)})
		}
	}

	return rows.Err()
}

func scanScope(row pgx.Row) (*domain.Scope, error) {
	var (
		s           domain.Scope
		integration string
	)
	if err := row.Scan(&s.ID, &s.OrganizationID, &s.ManagerID, &integration, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Integration = domain.Integration(integration)
	return &s, nil
}

func scanScopes(rows pgx.Rows) ([]*domain.Scope, error) {
	var result []*domain.Scope
	for rows.Next() {
		var (
			s           domain.Scope
			integration string
		)
		if err := rows.Scan(&s.ID, &s.OrganizationID, &s.ManagerID, &integration, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		s.Integration = domain.Integration(integration)
		result = append(result, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []*domain.Scope{}
	}

	return result, nil
}

func scanItems(rows pgx.Rows) ([]domain.ItemRef, error) {
	var result []domain.ItemRef
	for rows.Next() {
		var (
			itemID   string
			itemType string
		)
		if err := rows.Scan(&itemID, &itemType); err != nil {
			return nil, err
		}
		result = append(result, domain.ItemRef{ItemID: itemID, ItemType: domain.ItemType(itemType)})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []domain.ItemRef{}
	}

	return result, nil
}

func scanMatches(rows pgx.Rows) ([]domain.ScopeMatch, error) {
	var result []domain.ScopeMatch
	for rows.Next() {
		var m domain.ScopeMatch
		if err := rows.Scan(&m.ScopeID, &m.ManagerID, &m.OrganizationID); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []domain.ScopeMatch{}
	}

	return result, nil
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
