// Package engine implements the core reconciliation engine that scores
// inventory accuracy from catalog and physical-count data.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jose6941/stocktake/internal/common"
	"github.com/jose6941/stocktake/internal/model"
	"github.com/jose6941/stocktake/internal/service"
	"github.com/shopspring/decimal"
)

// Engine joins the catalog and physical observation stores, records cyclic
// counts in the ledger and derives accuracy and financial figures.
type Engine struct {
	store  service.Storage
	config Config
	now    func() time.Time
}

// Config holds the tunable business constants of the engine.
type Config struct {
	// BaselineAccuracy is reported before any data is loaded.
	BaselineAccuracy float64
	// SavingsRate is the share of found divergence value assumed recoverable
	// per month.
	SavingsRate float64
	// MinMonthlySavings floors the projected savings figure.
	MinMonthlySavings decimal.Decimal
	// InitialInvestment is the up-front cost used by the ROI schedule.
	InitialInvestment decimal.Decimal
	// ROIHorizonMonths is the default length of the ROI schedule.
	ROIHorizonMonths int
	// ProjectionDays is the default length of the accuracy projection.
	ProjectionDays int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		BaselineAccuracy:  78.0,
		SavingsRate:       0.80,
		MinMonthlySavings: decimal.NewFromInt(5000),
		InitialInvestment: decimal.NewFromInt(50000),
		ROIHorizonMonths:  12,
		ProjectionDays:    30,
	}
}

// New creates a new engine with the default configuration.
func New(store service.Storage) *Engine {
	return NewWithConfig(store, DefaultConfig())
}

// NewWithConfig creates a new engine with custom configuration.
func NewWithConfig(store service.Storage, config Config) *Engine {
	return &Engine{
		store:  store,
		config: config,
		now:    time.Now,
	}
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.config
}

// IngestCatalog replaces the system catalog wholesale. Previously loaded
// observations are invalidated; the count ledger is untouched.
func (e *Engine) IngestCatalog(ctx context.Context, items []model.CatalogItem) (int, error) {
	if err := e.store.ReplaceCatalog(ctx, items); err != nil {
		return 0, fmt.Errorf("failed to ingest catalog: %w", err)
	}

	slog.Info("Catalog loaded", "items", len(items))
	return len(items), nil
}

// IngestObservations replaces the physical observations. Rows whose code is
// unknown to the current catalog are dropped and returned for reporting;
// ingestion still succeeds for the valid subset. Repeated codes keep the
// last reported quantity.
func (e *Engine) IngestObservations(ctx context.Context, observations []model.Observation) (int, []string, error) {
	catalog, err := e.store.ListCatalog(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to list catalog: %w", err)
	}

	known := make(map[string]bool, len(catalog))
	for _, item := range catalog {
		known[item.Code] = true
	}

	var kept []model.Observation
	position := make(map[string]int, len(observations))
	var unknown []string

	for _, obs := range observations {
		if !known[obs.Code] {
			unknown = append(unknown, obs.Code)
			continue
		}
		if i, seen := position[obs.Code]; seen {
			kept[i].Quantity = obs.Quantity
			continue
		}
		position[obs.Code] = len(kept)
		kept = append(kept, obs)
	}

	if err := e.store.ReplaceObservations(ctx, kept); err != nil {
		return 0, nil, fmt.Errorf("failed to ingest observations: %w", err)
	}

	if len(unknown) > 0 {
		slog.Warn("Observations for unknown codes dropped", "codes", unknown)
	}
	slog.Info("Observations loaded", "items", len(kept), "unknown", len(unknown))

	return len(kept), unknown, nil
}

// ReconcileAll computes the divergence for every item present in both
// stores, keeping only non-zero divergences, sorted descending by absolute
// divergence value. The result is derived on demand and never stored.
func (e *Engine) ReconcileAll(ctx context.Context) ([]model.Divergence, error) {
	catalog, err := e.store.ListCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}

	observations, err := e.store.ListObservations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list observations: %w", err)
	}

	counted := make(map[string]int64, len(observations))
	for _, obs := range observations {
		counted[obs.Code] = obs.Quantity
	}

	var divergences []model.Divergence
	for _, item := range catalog {
		physicalQty, ok := counted[item.Code]
		if !ok {
			continue
		}
		if d := model.Compare(item, physicalQty); d.Units != 0 {
			divergences = append(divergences, d)
		}
	}

	// Stable: equal values keep catalog order
	sort.SliceStable(divergences, func(i, j int) bool {
		return divergences[i].Value.GreaterThan(divergences[j].Value)
	})

	return divergences, nil
}

// ReconcileOne performs a cyclic count of a single item and appends the
// outcome to the ledger. The item must be present in both stores. Divergent
// counts also record the observed drift in the movement log.
func (e *Engine) ReconcileOne(ctx context.Context, code string) (*model.CountEvent, error) {
	code = strings.TrimSpace(code)

	item, err := e.store.GetCatalogItem(ctx, code)
	if err != nil {
		return nil, err
	}

	obs, err := e.store.GetObservation(ctx, code)
	if err != nil {
		return nil, err
	}

	d := model.Compare(*item, obs.Quantity)

	event := &model.CountEvent{
		ID:          uuid.NewString(),
		RecordedAt:  e.now().UTC(),
		Code:        item.Code,
		Name:        item.Name,
		Category:    item.Category,
		SystemQty:   d.SystemQty,
		PhysicalQty: d.PhysicalQty,
		Units:       d.Units,
		Value:       d.Value,
		Status:      model.StatusOK,
	}
	if d.Units != 0 {
		event.Status = model.StatusDivergent
	}

	if err := e.store.AppendCountEvent(ctx, event); err != nil {
		return nil, err
	}

	if event.Divergent() {
		movement := &model.Movement{
			ID:         uuid.NewString(),
			RecordedAt: event.RecordedAt,
			Code:       event.Code,
			Units:      event.Units,
			Value:      event.Value,
			Reason:     "cyclic count divergence",
		}
		if err := e.store.AppendMovement(ctx, movement); err != nil {
			return nil, err
		}
	}

	slog.Debug("Cyclic count recorded",
		"code", event.Code,
		"status", event.Status,
		"units", event.Units)

	return event, nil
}

// CountAll performs a cyclic count for every item present in both stores,
// in catalog order. Counts are sequential with no atomicity across items: a
// failure partway through leaves the prior events in the ledger. The
// optional progress callback receives (done, total) after each count.
func (e *Engine) CountAll(ctx context.Context, progress func(done, total int)) ([]model.CountEvent, error) {
	catalog, err := e.store.ListCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}

	observations, err := e.store.ListObservations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list observations: %w", err)
	}

	counted := make(map[string]bool, len(observations))
	for _, obs := range observations {
		counted[obs.Code] = true
	}

	var codes []string
	for _, item := range catalog {
		if counted[item.Code] {
			codes = append(codes, item.Code)
		}
	}

	events := make([]model.CountEvent, 0, len(codes))
	for i, code := range codes {
		select {
		case <-ctx.Done():
			return events, ctx.Err()
		default:
		}

		event, err := e.ReconcileOne(ctx, code)
		if err != nil {
			return events, fmt.Errorf("count failed for %s: %w", code, err)
		}
		events = append(events, *event)

		if progress != nil {
			progress(i+1, len(codes))
		}
	}

	return events, nil
}

// Metrics derives the rolling accuracy KPIs from the ledger and the current
// catalog. Returns ErrNoCounts while the ledger is empty.
func (e *Engine) Metrics(ctx context.Context) (*model.Metrics, error) {
	totals, err := e.store.LedgerTotals(ctx)
	if err != nil {
		return nil, err
	}
	if totals.Total == 0 {
		return nil, common.ErrNoCounts
	}

	divergent, err := e.store.ListDivergentEvents(ctx)
	if err != nil {
		return nil, err
	}

	divergenceValue := decimal.Zero
	for _, event := range divergent {
		divergenceValue = divergenceValue.Add(event.Value)
	}

	catalog, err := e.store.ListCatalog(ctx)
	if err != nil {
		return nil, err
	}

	catalogValue := decimal.Zero
	for _, item := range catalog {
		catalogValue = catalogValue.Add(item.TotalValue())
	}

	metrics := &model.Metrics{
		Accuracy:        float64(totals.OK) / float64(totals.Total) * 100,
		TotalCounts:     totals.Total,
		DivergentCounts: totals.Divergent,
		DivergenceValue: divergenceValue,
		CatalogValue:    catalogValue,
	}

	if catalogValue.IsPositive() {
		metrics.ImpactPercent = divergenceValue.Div(catalogValue).InexactFloat64() * 100
	}

	return metrics, nil
}

// InitialAccuracy computes the pre-count baseline: the share of items
// present in both stores whose quantities already match. Falls back to the
// configured baseline when no data is loaded or no keys intersect.
func (e *Engine) InitialAccuracy(ctx context.Context) (float64, error) {
	catalog, err := e.store.ListCatalog(ctx)
	if err != nil {
		return 0, err
	}

	observations, err := e.store.ListObservations(ctx)
	if err != nil {
		return 0, err
	}

	counted := make(map[string]int64, len(observations))
	for _, obs := range observations {
		counted[obs.Code] = obs.Quantity
	}

	intersecting, matching := 0, 0
	for _, item := range catalog {
		physicalQty, ok := counted[item.Code]
		if !ok {
			continue
		}
		intersecting++
		if item.Quantity == physicalQty {
			matching++
		}
	}

	if intersecting == 0 {
		return e.config.BaselineAccuracy, nil
	}

	return float64(matching) / float64(intersecting) * 100, nil
}

// Movements returns the audit log of recorded stock drift, in append order.
func (e *Engine) Movements(ctx context.Context) ([]model.Movement, error) {
	movements, err := e.store.ListMovements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return movements, nil
}

// ResetCounts clears the count ledger and movement log. Catalog and
// observations are left intact.
func (e *Engine) ResetCounts(ctx context.Context) error {
	if err := e.store.ClearCounts(ctx); err != nil {
		return fmt.Errorf("failed to reset counts: %w", err)
	}
	slog.Info("Count ledger reset")
	return nil
}

// ResetAll clears every store.
func (e *Engine) ResetAll(ctx context.Context) error {
	if err := e.store.ClearAll(ctx); err != nil {
		return fmt.Errorf("failed to reset stores: %w", err)
	}
	slog.Info("All stores reset")
	return nil
}
