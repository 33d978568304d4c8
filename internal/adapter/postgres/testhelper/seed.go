package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lumeteam/whisper-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// eventTable maps an integration to its event table.
func eventTable(t *testing.T, integration domain.Integration) string {
	t.Helper()

	switch integration {
	case domain.IntegrationSlack:
		return "slack_events"
	case domain.IntegrationTeams:
		return "teams_events"
	case domain.IntegrationDiscord:
		return "discord_events"
	case domain.IntegrationGmail:
		return "gmail_events"
	case domain.IntegrationGitHub:
		return "github_events"
	}
	t.Fatalf("testhelper: eventTable: unknown integration %q", integration)
	return ""
}

// SeedScope creates a scope with its items. Returns a filled domain.Scope.
func SeedScope(t *testing.T, pool *pgxpool.Pool, orgID, managerID uuid.UUID, integration domain.Integration, items []domain.ItemRef, active bool) domain.Scope {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	scope := domain.Scope{
		ID:             uuid.New(),
		OrganizationID: orgID,
		ManagerID:      managerID,
		Integration:    integration,
		Items:          items,
		IsActive:       active,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if scope.Items == nil {
		scope.Items = []domain.ItemRef{}
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO scopes (id, organization_id, manager_id, integration, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		scope.ID, scope.OrganizationID, scope.ManagerID, string(scope.Integration), scope.IsActive, scope.CreatedAt, scope.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedScope insert scope: %v", err)
	}

	for i, item := range scope.Items {
		_, err := pool.Exec(ctx,
			`INSERT INTO scope_items (scope_id, item_id, item_type) VALUES ($1, $2, $3)`,
			scope.ID, item.ItemID, string(item.ItemType),
		)
		if err != nil {
			t.Fatalf("testhelper: SeedScope insert scope_item[%d]: %v", i, err)
		}
	}

	return scope
}

// SeedEvent creates a tagged event in the integration's table with the given
// status and an empty scope-match snapshot. Returns a filled domain.TaggedEvent.
func SeedEvent(t *testing.T, pool *pgxpool.Pool, orgID uuid.UUID, integration domain.Integration, status domain.EventStatus) domain.TaggedEvent {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	event := domain.TaggedEvent{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Integration:    integration,
		EventType:      "message.sent",
		OccurredAt:     now,
		Payload:        map[string]any{"text": "seed message " + suffix},
		Status:         status,
		ScopeMatches:   []domain.ScopeMatch{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	payloadJSON, err := json.Marshal(event.Payload)
	if err != nil {
		t.Fatalf("testhelper: SeedEvent marshal payload: %v", err)
	}

	sql := `INSERT INTO ` + eventTable(t, integration) + ` (id, organization_id, event_type, occurred_at, payload, status, scope_matches, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = pool.Exec(ctx, sql,
		event.ID, event.OrganizationID, event.EventType, event.OccurredAt,
		payloadJSON, string(event.Status), []byte(`[]`), event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEvent insert event: %v", err)
	}

	return event
}

// SeedWhisper creates a whisper for an event. A nil scopeInfo seeds an
// organization-wide whisper; a non-nil one seeds a scoped whisper for that
// manager and scope. Returns a filled domain.Whisper.
func SeedWhisper(t *testing.T, pool *pgxpool.Pool, orgID, eventID uuid.UUID, integration domain.Integration, status domain.WhisperStatus, scopeInfo *domain.ScopeInfo) domain.Whisper {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	whisper := domain.Whisper{
		ID:             uuid.New(),
		OrganizationID: orgID,
		EventID:        eventID,
		Integration:    integration,
		Title:          "Team Communication Insight",
		Category:       domain.CategoryInsight,
		Priority:       domain.PriorityLow,
		Content: domain.WhisperContent{
			Message:          "Seed whisper " + suffix,
			SuggestedActions: []string{"Review team communication patterns", "Monitor for recurring themes"},
		},
		ScopeInfo: scopeInfo,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	actionsJSON, err := json.Marshal(whisper.Content.SuggestedActions)
	if err != nil {
		t.Fatalf("testhelper: SeedWhisper marshal suggested_actions: %v", err)
	}

	var (
		managerID       *uuid.UUID
		scopeID         *uuid.UUID
		sourceItemsJSON []byte
	)
	if scopeInfo != nil {
		managerID = &scopeInfo.ManagerID
		scopeID = &scopeInfo.ScopeID
		sourceItemsJSON, err = json.Marshal(scopeInfo.SourceItems)
		if err != nil {
			t.Fatalf("testhelper: SeedWhisper marshal source_items: %v", err)
		}
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO whispers (id, organization_id, event_id, integration, title, category, priority,
		 message, suggested_actions, rationale, manager_id, scope_id, source_items,
		 status, feedback, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		whisper.ID, whisper.OrganizationID, whisper.EventID, string(whisper.Integration),
		whisper.Title, string(whisper.Category), int(whisper.Priority),
		whisper.Content.Message, actionsJSON, nil, managerID, scopeID, sourceItemsJSON,
		string(whisper.Status), nil, whisper.CreatedAt, whisper.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedWhisper insert whisper: %v", err)
	}

	return whisper
}
