// Command seed-scopes loads scope definitions from a JSON file and creates
// them through the scope service. It is used for initial tenant
// provisioning.
//
// Usage:
//
//	seed-scopes --file=scopes.json
//
// The file holds an array of scope definitions:
//
//	[
//	  {
//	    "organization_id": "9b9e2f88-1c7d-4f7e-b7a2-03f6f9a1c001",
//	    "manager_id": "7f0b3c11-5a52-4df0-9f31-8be4f69d5a02",
//	    "integration": "slack",
//	    "items": [
//	      {"item_id": "U02A1B2C3", "item_type": "user"},
//	      {"item_id": "C09X8Y7Z6", "item_type": "channel"}
//	    ]
//	  }
//	]
//
// Definitions whose manager already has an active scope for the integration
// are skipped, so re-running the seed is safe.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/lumeteam/whisper-backend/internal/app"
	"github.com/lumeteam/whisper-backend/internal/config"
	"github.com/lumeteam/whisper-backend/internal/domain"
	"github.com/lumeteam/whisper-backend/internal/service/scope"
	"github.com/lumeteam/whisper-backend/pkg/ctxutil"
)

type scopeDefinition struct {
	OrganizationID uuid.UUID          `json:"organization_id"`
	ManagerID      uuid.UUID          `json:"manager_id"`
	Integration    domain.Integration `json:"integration"`
	Items          []itemDefinition   `json:"items"`
}

type itemDefinition struct {
	ItemID   string          `json:"item_id"`
	ItemType domain.ItemType `json:"item_type"`
}

func main() {
	file := flag.String("file", "", "path to the JSON file with scope definitions")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Usage: seed-scopes --file=scopes.json")
		os.Exit(1)
	}

	definitions, err := loadDefinitions(*file)
	if err != nil {
		log.Fatalf("load scope definitions: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("wire application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer application.Close()

	created, skipped := 0, 0
	for i, def := range definitions {
		items := make([]domain.ItemRef, len(def.Items))
		for j, item := range def.Items {
			items[j] = domain.ItemRef{ItemID: item.ItemID, ItemType: item.ItemType}
		}

		mgrCtx := ctxutil.WithManagerID(ctx, def.ManagerID)

		_, err := application.ScopeService.CreateScope(mgrCtx, scope.CreateScopeInput{
			OrganizationID: def.OrganizationID,
			Integration:    def.Integration,
			Items:          items,
		})
		switch {
		case errors.Is(err, domain.ErrAlreadyExists):
			skipped++
			logger.Info("scope already active, skipping",
				slog.Int("index", i),
				slog.String("manager_id", def.ManagerID.String()),
				slog.String("integration", def.Integration.String()),
			)
		case err != nil:
			logger.Error("create scope",
				slog.Int("index", i),
				slog.String("manager_id", def.ManagerID.String()),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		default:
			created++
		}
	}

	logger.Info("seeding finished",
		slog.Int("created", created),
		slog.Int("skipped", skipped),
		slog.Int("total", len(definitions)),
	)
}

func loadDefinitions(path string) ([]scopeDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var definitions []scopeDefinition
	if err := json.Unmarshal(data, &definitions); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(definitions) == 0 {
		return nil, fmt.Errorf("%s: no scope definitions", path)
	}

	return definitions, nil
}
