package fetch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dsfetch/internal/testutil"
)

func TestIsPopulated(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.MkdirAll(empty, 0o750))

	full := filepath.Join(dir, "full")
	testutil.WriteFile(t, filepath.Join(full, "anime.csv"), "anime_id,name\n")

	file := filepath.Join(dir, "file.txt")
	testutil.WriteFile(t, file, "x")

	// an extraction killed half way leaves only its staging directory
	interrupted := filepath.Join(dir, "interrupted")
	testutil.WriteFile(t, filepath.Join(interrupted, ".extract-123", "combined_data_1.txt"), "1:\n")

	mixed := filepath.Join(dir, "mixed")
	require.NoError(t, os.MkdirAll(filepath.Join(mixed, ".extract-456"), 0o750))
	testutil.WriteFile(t, filepath.Join(mixed, "anime.csv"), "anime_id,name\n")

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"missing", filepath.Join(dir, "missing"), false},
		{"empty directory", empty, false},
		{"populated directory", full, true},
		{"regular file", file, false},
		{"only staging directory", interrupted, false},
		{"staging directory and data", mixed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPopulated(tt.path))
		})
	}
}

func TestPresent(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "netflix_prize")
	require.NoError(t, os.MkdirAll(empty, 0o750))
	assert.False(t, Present(empty), "empty directory marker")

	testutil.WriteFile(t, filepath.Join(empty, "combined_data_1.txt"), "1:\n")
	assert.True(t, Present(empty), "populated directory marker")

	staged := filepath.Join(dir, "staged")
	require.NoError(t, os.MkdirAll(filepath.Join(staged, ".extract-789"), 0o750))
	assert.False(t, Present(staged), "directory marker holding only a staging directory")

	file := filepath.Join(dir, "ratings.dat")
	assert.False(t, Present(file))
	testutil.WriteFile(t, file, "1::1193::5::978300760\n")
	assert.True(t, Present(file))
}
