package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jose6941/stocktake/internal/common"
	"github.com/jose6941/stocktake/internal/model"
	"github.com/shopspring/decimal"
)

// ReplaceCatalog replaces the entire catalog with the given items. The
// previous catalog and all physical observations are removed in the same
// transaction: observations are only meaningful against the catalog they
// were counted for.
func (s *SQLiteStore) ReplaceCatalog(ctx context.Context, items []model.CatalogItem) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCatalogItems(items); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, `DELETE FROM catalog_items`); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM observations`); err != nil {
		return fmt.Errorf("failed to clear observations: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO catalog_items (code, name, category, quantity, unit_value)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if seen[item.Code] {
			return fmt.Errorf("%w: %s", common.ErrDuplicateCode, item.Code)
		}
		seen[item.Code] = true

		if _, err = stmt.ExecContext(ctx,
			item.Code, item.Name, item.Category, item.Quantity, item.UnitValue.String(),
		); err != nil {
			return fmt.Errorf("failed to insert catalog item %s: %w", item.Code, err)
		}
	}

	return tx.Commit()
}

// GetCatalogItem returns the catalog entry for one item code.
func (s *SQLiteStore) GetCatalogItem(ctx context.Context, code string) (*model.CatalogItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(code, "code"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT code, name, category, quantity, unit_value
		FROM catalog_items
		WHERE code = ?
	`, code)

	item, err := scanCatalogItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("catalog item %s: %w", code, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog item: %w", err)
	}

	return item, nil
}

// ListCatalog returns all catalog items in ingestion order.
func (s *SQLiteStore) ListCatalog(ctx context.Context) ([]model.CatalogItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT code, name, category, quantity, unit_value
		FROM catalog_items
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.CatalogItem
	for rows.Next() {
		item, scanErr := scanCatalogItem(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan catalog item: %w", scanErr)
		}
		items = append(items, *item)
	}

	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCatalogItem(row rowScanner) (*model.CatalogItem, error) {
	var item model.CatalogItem
	var unitValue string

	if err := row.Scan(&item.Code, &item.Name, &item.Category, &item.Quantity, &unitValue); err != nil {
		return nil, err
	}

	parsed, err := decimal.NewFromString(unitValue)
	if err != nil {
		return nil, fmt.Errorf("invalid unit value %q for %s: %w", unitValue, item.Code, err)
	}
	item.UnitValue = parsed

	return &item, nil
}
