//go:build e2e

package e2e_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/lumeteam/whisper-backend/internal/adapter/postgres"
	eventrepo "github.com/lumeteam/whisper-backend/internal/adapter/postgres/event"
	scoperepo "github.com/lumeteam/whisper-backend/internal/adapter/postgres/scope"
	"github.com/lumeteam/whisper-backend/internal/adapter/postgres/testhelper"
	whisperrepo "github.com/lumeteam/whisper-backend/internal/adapter/postgres/whisper"
	"github.com/lumeteam/whisper-backend/internal/domain"
	"github.com/lumeteam/whisper-backend/internal/service/ingest"
	scopesvc "github.com/lumeteam/whisper-backend/internal/service/scope"
	"github.com/lumeteam/whisper-backend/internal/service/tagging"
	whispersvc "github.com/lumeteam/whisper-backend/internal/service/whisper"
	"github.com/lumeteam/whisper-backend/pkg/ctxutil"
)

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

type testStack struct {
	Pool *pgxpool.Pool

	Events   *eventrepo.Repo
	Whispers *whisperrepo.Repo

	Scopes   *scopesvc.Service
	WhisperSvc *whispersvc.Service
	Ingest   *ingest.Service
}

// ---------------------------------------------------------------------------
// setupTestStack bootstraps the full pipeline stack backed by a real
// PostgreSQL container (shared via testhelper).
// ---------------------------------------------------------------------------

func setupTestStack(t *testing.T) *testStack {
	t.Helper()

	// 1. Get pool from testcontainers-backed helper.
	pool := testhelper.SetupTestDB(t)

	// 2. Infrastructure.
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	// 3. Repositories.
	events := eventrepo.New(pool)
	scopes := scoperepo.New(pool)
	whispers := whisperrepo.New(pool)

	// 4. Services.
	scopeService := scopesvc.NewService(logger, scopes, txm, 0)
	matcher := tagging.NewMatcher(logger, scopes)
	taggingService := tagging.NewService(logger, events, matcher)
	whisperService := whispersvc.NewService(logger, whispers)
	ingestService := ingest.NewService(logger, taggingService, whisperService, events, 0)

	return &testStack{
		Pool:     pool,
		Events:   events,
		Whispers: whispers,
		Scopes:   scopeService,
		WhisperSvc: whisperService,
		Ingest:   ingestService,
	}
}

// ---------------------------------------------------------------------------
// Domain helpers. Every test works inside its own organization, so suites
// sharing the container never see each other's rows.
// ---------------------------------------------------------------------------

func managerCtx(managerID uuid.UUID) context.Context {
	return ctxutil.WithManagerID(context.Background(), managerID)
}

// createScope provisions an active scope for the manager through the service
// layer, exercising validation and the one-active-scope invariant.
func createScope(t *testing.T, ts *testStack, orgID, managerID uuid.UUID, integration domain.Integration, items ...domain.ItemRef) *domain.Scope {
	t.Helper()

	created, err := ts.Scopes.CreateScope(managerCtx(managerID), scopesvc.CreateScopeInput{
		OrganizationID: orgID,
		Integration:    integration,
		Items:          items,
	})
	require.NoError(t, err)
	return created
}

func slackInput(orgID uuid.UUID, userID, channelID, insight string) ingest.EventInput {
	return ingest.EventInput{
		OrganizationID: orgID,
		Integration:    domain.IntegrationSlack,
		EventType:      "message.sent",
		OccurredAt:     time.Now().UTC(),
		Payload:        map[string]any{"user": userID, "channel": channelID},
		Insight:        insight,
	}
}

func userItem(id string) domain.ItemRef {
	return domain.ItemRef{ItemID: id, ItemType: domain.ItemTypeUser}
}

func channelItem(id string) domain.ItemRef {
	return domain.ItemRef{ItemID: id, ItemType: domain.ItemTypeChannel}
}

// listFor fetches the whispers a manager is allowed to see in the org.
func listFor(t *testing.T, ts *testStack, orgID, managerID uuid.UUID) []domain.Whisper {
	t.Helper()

	listed, _, err := ts.WhisperSvc.ListForManager(context.Background(), orgID, managerID, false, domain.WhisperFilter{})
	require.NoError(t, err)
	return listed
}
