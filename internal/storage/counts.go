package storage

import (
	"context"
	"fmt"

	"github.com/jose6941/stocktake/internal/model"
	"github.com/jose6941/stocktake/internal/service"
	"github.com/shopspring/decimal"
)

// AppendCountEvent appends one cyclic count to the ledger.
func (s *SQLiteStore) AppendCountEvent(ctx context.Context, event *model.CountEvent) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCountEvent(event); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO count_events (
			id, recorded_at, code, name, category,
			system_qty, physical_qty, units, value, status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		event.ID, event.RecordedAt, event.Code, event.Name, event.Category,
		event.SystemQty, event.PhysicalQty, event.Units, event.Value.String(), string(event.Status),
	)
	if err != nil {
		return fmt.Errorf("failed to append count event: %w", err)
	}

	return nil
}

// ListCountEvents returns the full ledger in append order.
func (s *SQLiteStore) ListCountEvents(ctx context.Context) ([]model.CountEvent, error) {
	return s.listEvents(ctx, `
		SELECT id, recorded_at, code, name, category,
		       system_qty, physical_qty, units, value, status
		FROM count_events
		ORDER BY seq
	`)
}

// ListDivergentEvents returns the divergent subset of the ledger in append
// order. The subset is cumulative: a later OK recount of the same item does
// not remove an earlier divergent entry.
func (s *SQLiteStore) ListDivergentEvents(ctx context.Context) ([]model.CountEvent, error) {
	return s.listEvents(ctx, `
		SELECT id, recorded_at, code, name, category,
		       system_qty, physical_qty, units, value, status
		FROM count_events
		WHERE status = 'DIVERGENT'
		ORDER BY seq
	`)
}

func (s *SQLiteStore) listEvents(ctx context.Context, query string) ([]model.CountEvent, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query count events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []model.CountEvent
	for rows.Next() {
		var event model.CountEvent
		var value, status string

		if err := rows.Scan(
			&event.ID, &event.RecordedAt, &event.Code, &event.Name, &event.Category,
			&event.SystemQty, &event.PhysicalQty, &event.Units, &value, &status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan count event: %w", err)
		}

		parsed, parseErr := decimal.NewFromString(value)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid value %q for event %s: %w", value, event.ID, parseErr)
		}
		event.Value = parsed
		event.Status = model.CountStatus(status)

		events = append(events, event)
	}

	return events, rows.Err()
}

// LedgerTotals returns event counts for the whole ledger.
func (s *SQLiteStore) LedgerTotals(ctx context.Context) (*service.LedgerTotals, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var totals service.LedgerTotals
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN status = 'OK' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN status = 'DIVERGENT' THEN 1 ELSE 0 END), 0)
		FROM count_events
	`).Scan(&totals.Total, &totals.OK, &totals.Divergent)
	if err != nil {
		return nil, fmt.Errorf("failed to count ledger events: %w", err)
	}

	return &totals, nil
}

// AppendMovement appends one observed stock movement to the movement log.
func (s *SQLiteStore) AppendMovement(ctx context.Context, movement *model.Movement) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if movement == nil {
		return fmt.Errorf("%w: movement", ErrNilParameter)
	}
	if err := validateString(movement.ID, "movement.ID"); err != nil {
		return err
	}
	if err := validateString(movement.Code, "movement.Code"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO movements (id, recorded_at, code, units, value, reason)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		movement.ID, movement.RecordedAt, movement.Code,
		movement.Units, movement.Value.String(), movement.Reason,
	)
	if err != nil {
		return fmt.Errorf("failed to append movement: %w", err)
	}

	return nil
}

// ListMovements returns the movement log in append order.
func (s *SQLiteStore) ListMovements(ctx context.Context) ([]model.Movement, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, recorded_at, code, units, value, reason
		FROM movements
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query movements: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var movements []model.Movement
	for rows.Next() {
		var movement model.Movement
		var value string

		if err := rows.Scan(
			&movement.ID, &movement.RecordedAt, &movement.Code,
			&movement.Units, &value, &movement.Reason,
		); err != nil {
			return nil, fmt.Errorf("failed to scan movement: %w", err)
		}

		parsed, parseErr := decimal.NewFromString(value)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid value %q for movement %s: %w", value, movement.ID, parseErr)
		}
		movement.Value = parsed

		movements = append(movements, movement)
	}

	return movements, rows.Err()
}

// ClearCounts removes every count event and movement. Catalog and
// observations are left intact.
func (s *SQLiteStore) ClearCounts(ctx context.Context) error {
	return s.clearTables(ctx, "count_events", "movements")
}

// ClearAll removes everything: catalog, observations, ledger and movements.
func (s *SQLiteStore) ClearAll(ctx context.Context) error {
	return s.clearTables(ctx, "count_events", "movements", "observations", "catalog_items")
}

func (s *SQLiteStore) clearTables(ctx context.Context, tables ...string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range tables {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	return tx.Commit()
}
