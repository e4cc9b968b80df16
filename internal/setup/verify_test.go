package setup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dsfetch/internal/catalog"
	"github.com/leapstack-labs/dsfetch/internal/testutil"
)

func TestVerify(t *testing.T) {
	root := t.TempDir()
	datasets := append(catalog.Catalog{openDataset(root, "https://example.invalid/ml-1m.zip")}, gatedDatasets(root)...)

	tests := []struct {
		name    string
		prepare func(t *testing.T)
		found   []bool
	}{
		{
			name:    "nothing present",
			prepare: func(t *testing.T) {},
			found:   []bool{false, false, false},
		},
		{
			name: "file markers present",
			prepare: func(t *testing.T) {
				testutil.WriteFile(t, datasets[0].Marker, "1::1::5::0\n")
				testutil.WriteFile(t, datasets[1].Marker, "show_id\n")
			},
			found: []bool{true, true, false},
		},
		{
			name: "empty directory marker",
			prepare: func(t *testing.T) {
				require.NoError(t, os.MkdirAll(datasets[2].Marker, 0o750))
			},
			found: []bool{true, true, false},
		},
		{
			name: "populated directory marker",
			prepare: func(t *testing.T) {
				testutil.WriteFile(t, filepath.Join(datasets[2].Marker, "combined_data_1.txt"), "1:\n")
			},
			found: []bool{true, true, true},
		},
	}

	// Cases build on each other's filesystem state.
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepare(t)
			report := Verify(datasets)

			require.Len(t, report.Checks, len(datasets))
			allPresent := true
			for i, c := range report.Checks {
				assert.Equal(t, datasets[i].Name, c.Name)
				assert.Equal(t, datasets[i].Marker, c.Path)
				assert.Equal(t, tt.found[i], c.Found, c.Name)
				allPresent = allPresent && tt.found[i]
			}
			assert.Equal(t, allPresent, report.AllPresent())
			assert.Len(t, report.Missing(), countFalse(tt.found))
		})
	}
}

func TestVerify_EmptyCatalog(t *testing.T) {
	report := Verify(nil)
	assert.Empty(t, report.Checks)
	assert.True(t, report.AllPresent())
}

func TestPrintReport(t *testing.T) {
	rep, buf := testutil.NewRenderer(t)
	PrintReport(rep, Report{Checks: []Check{
		{Name: "MovieLens 1M", Found: true},
		{Name: "TMDB Movies", Found: false},
	}})

	assert.Equal(t, "[OK] MovieLens 1M: Found\n[ERROR] TMDB Movies: Missing\n", buf.String())
}

func countFalse(values []bool) int {
	n := 0
	for _, v := range values {
		if !v {
			n++
		}
	}
	return n
}
