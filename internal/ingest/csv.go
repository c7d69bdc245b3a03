// Package ingest parses tabular catalog and physical-count input into domain
// records. Parsing is all-or-nothing: any missing column or malformed value
// rejects the whole file and nothing reaches the stores.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jose6941/stocktake/internal/common"
	"github.com/jose6941/stocktake/internal/model"
	"github.com/shopspring/decimal"
)

// Required columns, located by header name. Extra columns are ignored and
// column order is free.
var (
	catalogColumns     = []string{"code", "name", "category", "quantity", "unit_value"}
	observationColumns = []string{"code", "physical_quantity"}
)

var (
	errEmptyValue    = errors.New("empty value")
	errNegativeValue = errors.New("negative value")
)

// ParseCatalog reads system catalog rows from CSV data.
func ParseCatalog(r io.Reader) ([]model.CatalogItem, error) {
	records, index, err := readTable(r, catalogColumns)
	if err != nil {
		return nil, err
	}

	items := make([]model.CatalogItem, 0, len(records))
	for i, record := range records {
		row := i + 2 // header is row 1

		code, err := stringField(record, index, "code", row)
		if err != nil {
			return nil, err
		}
		name, err := stringField(record, index, "name", row)
		if err != nil {
			return nil, err
		}
		category, err := stringField(record, index, "category", row)
		if err != nil {
			return nil, err
		}
		quantity, err := intField(record, index, "quantity", row)
		if err != nil {
			return nil, err
		}
		unitValue, err := decimalField(record, index, "unit_value", row)
		if err != nil {
			return nil, err
		}

		items = append(items, model.CatalogItem{
			Code:      code,
			Name:      name,
			Category:  category,
			Quantity:  quantity,
			UnitValue: unitValue,
		})
	}

	return items, nil
}

// ParseObservations reads physical count rows from CSV data.
func ParseObservations(r io.Reader) ([]model.Observation, error) {
	records, index, err := readTable(r, observationColumns)
	if err != nil {
		return nil, err
	}

	observations := make([]model.Observation, 0, len(records))
	for i, record := range records {
		row := i + 2

		code, err := stringField(record, index, "code", row)
		if err != nil {
			return nil, err
		}
		quantity, err := intField(record, index, "physical_quantity", row)
		if err != nil {
			return nil, err
		}

		observations = append(observations, model.Observation{
			Code:     code,
			Quantity: quantity,
		})
	}

	return observations, nil
}

// readTable reads all CSV records and maps required column names to indexes.
func readTable(r io.Reader, required []string) ([][]string, map[string]int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, &common.ValidationError{Err: fmt.Errorf("failed to read CSV: %w", err)}
	}
	if len(rows) == 0 {
		return nil, nil, common.NewMissingColumnsError(required)
	}

	index := make(map[string]int, len(rows[0]))
	for i, column := range rows[0] {
		index[strings.TrimSpace(column)] = i
	}

	var missing []string
	for _, column := range required {
		if _, ok := index[column]; !ok {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return nil, nil, common.NewMissingColumnsError(missing)
	}

	return rows[1:], index, nil
}

func field(record []string, index map[string]int, column string, row int) (string, error) {
	i := index[column]
	if i >= len(record) {
		return "", common.NewColumnError(row, column, errEmptyValue)
	}
	return strings.TrimSpace(record[i]), nil
}

func stringField(record []string, index map[string]int, column string, row int) (string, error) {
	value, err := field(record, index, column, row)
	if err != nil {
		return "", err
	}
	if value == "" {
		return "", common.NewColumnError(row, column, errEmptyValue)
	}
	return value, nil
}

func intField(record []string, index map[string]int, column string, row int) (int64, error) {
	value, err := stringField(record, index, column, row)
	if err != nil {
		return 0, err
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, common.NewColumnError(row, column, err)
	}
	if n < 0 {
		return 0, common.NewColumnError(row, column, errNegativeValue)
	}
	return n, nil
}

func decimalField(record []string, index map[string]int, column string, row int) (decimal.Decimal, error) {
	value, err := stringField(record, index, column, row)
	if err != nil {
		return decimal.Zero, err
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, common.NewColumnError(row, column, err)
	}
	if d.IsNegative() {
		return decimal.Zero, common.NewColumnError(row, column, errNegativeValue)
	}
	return d, nil
}
