package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jose6941/stocktake/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrNegativeQuantity = errors.New("quantity cannot be negative")
	ErrNegativeValue    = errors.New("unit value cannot be negative")
	ErrInvalidStatus    = errors.New("invalid count status")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateCatalogItems validates a slice of catalog items.
func validateCatalogItems(items []model.CatalogItem) error {
	for i, item := range items {
		if err := validateCatalogItem(&item); err != nil {
			return fmt.Errorf("catalog item at index %d: %w", i, err)
		}
	}
	return nil
}

// validateCatalogItem validates a single catalog item.
func validateCatalogItem(item *model.CatalogItem) error {
	if err := validateString(item.Code, "code"); err != nil {
		return err
	}
	if item.Quantity < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeQuantity, item.Quantity)
	}
	if item.UnitValue.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeValue, item.UnitValue)
	}
	return nil
}

// validateObservations validates a slice of physical observations.
func validateObservations(observations []model.Observation) error {
	for i, obs := range observations {
		if err := validateString(obs.Code, "code"); err != nil {
			return fmt.Errorf("observation at index %d: %w", i, err)
		}
		if obs.Quantity < 0 {
			return fmt.Errorf("observation at index %d: %w: %d", i, ErrNegativeQuantity, obs.Quantity)
		}
	}
	return nil
}

// validateCountEvent validates a count event before it enters the ledger.
func validateCountEvent(event *model.CountEvent) error {
	if event == nil {
		return fmt.Errorf("%w: event", ErrNilParameter)
	}
	if err := validateString(event.ID, "event.ID"); err != nil {
		return err
	}
	if err := validateString(event.Code, "event.Code"); err != nil {
		return err
	}
	if event.Status != model.StatusOK && event.Status != model.StatusDivergent {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, event.Status)
	}
	return nil
}
