// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/jose6941/stocktake/internal/model"
)

// LedgerTotals summarizes the count ledger without loading every event.
type LedgerTotals struct {
	Total     int
	OK        int
	Divergent int
}

// Storage defines the contract for the session store backing the engine.
// Catalog and observation contents are replaced wholesale on ingestion; the
// count ledger and movement log are append-only until explicitly cleared.
type Storage interface {
	// Catalog operations
	ReplaceCatalog(ctx context.Context, items []model.CatalogItem) error
	GetCatalogItem(ctx context.Context, code string) (*model.CatalogItem, error)
	ListCatalog(ctx context.Context) ([]model.CatalogItem, error)

	// Observation operations
	ReplaceObservations(ctx context.Context, observations []model.Observation) error
	GetObservation(ctx context.Context, code string) (*model.Observation, error)
	ListObservations(ctx context.Context) ([]model.Observation, error)

	// Count ledger operations
	AppendCountEvent(ctx context.Context, event *model.CountEvent) error
	ListCountEvents(ctx context.Context) ([]model.CountEvent, error)
	ListDivergentEvents(ctx context.Context) ([]model.CountEvent, error)
	LedgerTotals(ctx context.Context) (*LedgerTotals, error)

	// Movement log operations
	AppendMovement(ctx context.Context, movement *model.Movement) error
	ListMovements(ctx context.Context) ([]model.Movement, error)

	// Reset operations
	ClearCounts(ctx context.Context) error
	ClearAll(ctx context.Context) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
