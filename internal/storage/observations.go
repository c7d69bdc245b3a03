package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jose6941/stocktake/internal/common"
	"github.com/jose6941/stocktake/internal/model"
)

// ReplaceObservations replaces all physical observations with the given set.
// The catalog and the count ledger are left untouched.
func (s *SQLiteStore) ReplaceObservations(ctx context.Context, observations []model.Observation) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateObservations(observations); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, `DELETE FROM observations`); err != nil {
		return fmt.Errorf("failed to clear observations: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO observations (code, quantity) VALUES (?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, obs := range observations {
		if _, err = stmt.ExecContext(ctx, obs.Code, obs.Quantity); err != nil {
			return fmt.Errorf("failed to insert observation %s: %w", obs.Code, err)
		}
	}

	return tx.Commit()
}

// GetObservation returns the physical count for one item code.
func (s *SQLiteStore) GetObservation(ctx context.Context, code string) (*model.Observation, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(code, "code"); err != nil {
		return nil, err
	}

	var obs model.Observation
	err := s.db.QueryRowContext(ctx, `
		SELECT code, quantity FROM observations WHERE code = ?
	`, code).Scan(&obs.Code, &obs.Quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("observation %s: %w", code, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get observation: %w", err)
	}

	return &obs, nil
}

// ListObservations returns all physical observations in ingestion order.
func (s *SQLiteStore) ListObservations(ctx context.Context) ([]model.Observation, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT code, quantity FROM observations ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query observations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var observations []model.Observation
	for rows.Next() {
		var obs model.Observation
		if err := rows.Scan(&obs.Code, &obs.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan observation: %w", err)
		}
		observations = append(observations, obs)
	}

	return observations, rows.Err()
}
