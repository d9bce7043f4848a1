package artifacts

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"

	apperrors "agviz/internal/errors"
	"agviz/pkg/contracts/domain"
)

// readTable is the shared tabular loader: first row is the header, every
// following row is data. Fails with SchemaError when no data rows remain.
func readTable(kind, path string) (*domain.DataTable, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, apperrors.NewNotFound(kind, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewParse(path, "csv", err)
	}

	if len(records) == 0 {
		return nil, apperrors.NewSchemaInvalid(path, "file is empty")
	}
	if len(records) == 1 {
		return nil, apperrors.NewSchemaInvalid(path, "no data rows")
	}

	table := &domain.DataTable{
		Columns: records[0],
		Rows:    records[1:],
	}

	slog.Debug("loaded tabular artifact",
		slog.String("path", path),
		slog.Int("columns", len(table.Columns)),
		slog.Int("rows", table.RowCount()))

	return table, nil
}

// LoadTable loads a delimited file into a column-referenced table.
func LoadTable(path string) (*domain.DataTable, error) {
	return readTable("CSV file", path)
}

// LoadSeries loads a time-series CSV and parses its first column as the
// observed series. The engine writes one value column with a header row.
func LoadSeries(path string) (*domain.DataTable, []float64, error) {
	table, err := readTable("data file", path)
	if err != nil {
		return nil, nil, err
	}

	series, err := table.Series()
	if err != nil {
		return nil, nil, apperrors.NewParse(path, "csv", err)
	}
	return table, series, nil
}

// missingColumns returns the required columns absent from the table, in
// the order they were required.
func missingColumns(table *domain.DataTable, required []string) []string {
	var missing []string
	for _, col := range required {
		if !table.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	return missing
}
