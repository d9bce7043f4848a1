package artifacts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "agviz/internal/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadTable(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantRows int
		wantErr  func(error) bool
	}{
		{
			name:     "valid file returns one row per data line",
			content:  "value\n0.01\n-0.02\n0.03\n",
			wantRows: 3,
		},
		{
			name:    "header only fails with schema error",
			content: "value\n",
			wantErr: apperrors.IsSchema,
		},
		{
			name:    "empty file fails with schema error",
			content: "",
			wantErr: apperrors.IsSchema,
		},
		{
			name:    "malformed csv fails with parse error",
			content: "value\n\"unterminated\n",
			wantErr: apperrors.IsParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "data.csv", tt.content)
			table, err := LoadTable(path)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tt.wantErr(err), "unexpected error type: %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRows, table.RowCount())
			assert.Equal(t, []string{"value"}, table.Columns)
		})
	}
}

func TestLoadTableMissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "nonexistent.csv"))
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestLoadSeries(t *testing.T) {
	path := writeFile(t, "returns.csv", "value\n0.01\n-0.02\n0.03\n")

	table, series, err := LoadSeries(path)
	require.NoError(t, err)
	assert.Equal(t, 3, table.RowCount())
	assert.Equal(t, []float64{0.01, -0.02, 0.03}, series)
}

func TestLoadSeriesNonNumericFirstColumn(t *testing.T) {
	path := writeFile(t, "returns.csv", "value\nabc\n")

	_, _, err := LoadSeries(path)
	require.Error(t, err)
	assert.True(t, apperrors.IsParse(err))
}
