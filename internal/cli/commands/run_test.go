package commands

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dsfetch/internal/cli/testutil"
	"github.com/leapstack-labs/dsfetch/internal/setup"
	fixtures "github.com/leapstack-labs/dsfetch/internal/testutil"
)

func TestRunSetup_FetchesExtraDataset(t *testing.T) {
	archive := fixtures.ZipBytes(t, map[string]string{
		"ml-100k/u.data": "196\t242\t3\t881250949\n",
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ml-100k.zip" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(archive)
	}))
	t.Cleanup(srv.Close)

	root := testutil.SetupDatasetRoot(t)
	catalogFile := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(catalogFile, []byte(`datasets:
  - name: MovieLens 100K
    family: MovieLens
    kind: open
    source: `+srv.URL+`/ml-100k.zip
    dest: MovieLens/ml-100k
    archive: ml-100k.zip
    extract_to: MovieLens
    marker: MovieLens/ml-100k/u.data
`), 0o600))

	out, _, err := executeCommand(t, NewSetupCommand(), map[string]string{
		"root":      root,
		"catalog":   catalogFile,
		"output":    "plain",
		"no-kaggle": "true",
		"strict":    "true",
	})
	require.NoError(t, err)

	assert.Contains(t, out, setup.Banner)
	assert.Contains(t, out, "[WARNING] MovieLens 1M already exists. Skipping...")
	assert.Contains(t, out, "[OK] Netflix Shows: Already exists")
	assert.Contains(t, out, "[OK] MovieLens 100K setup complete")
	assert.Contains(t, out, "[OK] All datasets are ready!")
	assert.FileExists(t, filepath.Join(root, "MovieLens", "ml-100k", "u.data"))
	assert.NoFileExists(t, filepath.Join(root, "MovieLens", "ml-100k.zip"))
	testutil.AssertNoANSI(t, out)
}

func TestRunSetup_ManualFallbackInStrictMode(t *testing.T) {
	root := testutil.SetupDatasetRoot(t, "MovieLens 1M", "MovieLens 25M")

	out, _, err := executeCommand(t, NewSetupCommand(), map[string]string{
		"root":   root,
		"output": "plain",
		"strict": "true",
	})
	assert.ErrorIs(t, err, ErrMissingDatasets)

	assert.Contains(t, out, "[ERROR] Kaggle API credentials not found")
	assert.Contains(t, out, "Kaggle API not configured - Manual download required")
	assert.Contains(t, out, "Go to: https://www.kaggle.com/datasets/hernan4444/anime-recommendation-database-2020")
	assert.Contains(t, out, "[ERROR] MyAnimeList: Missing")
	assert.Contains(t, out, "[WARNING] Some datasets are missing.")
}

func TestRunSetup_MissingWithoutStrictSucceeds(t *testing.T) {
	root := testutil.SetupDatasetRoot(t, "MovieLens 1M", "MovieLens 25M")

	_, _, err := executeCommand(t, NewSetupCommand(), map[string]string{
		"root":      root,
		"output":    "plain",
		"no-kaggle": "true",
	})
	assert.NoError(t, err)
}

func TestRunSetup_KaggleFromConfigDir(t *testing.T) {
	archive := fixtures.ZipBytes(t, map[string]string{"anime.csv": "anime_id,name\n1,Cowboy Bebop\n"})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, key, ok := r.BasicAuth()
		if !ok || user != "bob" || key != "k3y" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/api/v1/datasets/download/hernan4444/anime-recommendation-database-2020" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(archive)
	}))
	t.Cleanup(srv.Close)

	credsDir := t.TempDir()
	fixtures.WriteFile(t, filepath.Join(credsDir, "kaggle.json"), `{"username":"bob","key":"k3y"}`)

	root := testutil.SetupDatasetRoot(t,
		"MovieLens 1M", "MovieLens 25M", "Netflix Shows", "Netflix Prize", "TMDB Movies")

	out, _, err := executeCommand(t, NewSetupCommand(), map[string]string{
		"root":              root,
		"output":            "plain",
		"kaggle-config-dir": credsDir,
		"kaggle-base-url":   srv.URL,
		"strict":            "true",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "[OK] Kaggle API is configured")
	assert.Contains(t, out, "[OK] MyAnimeList downloaded and extracted")
	assert.Contains(t, out, "[OK] All datasets are ready!")
	assert.FileExists(t, filepath.Join(root, "anime", "anime.csv"))
}

func TestRunSetup_JSON(t *testing.T) {
	root := testutil.SetupDatasetRoot(t)

	out, errOut, err := executeCommand(t, NewSetupCommand(), map[string]string{
		"root":      root,
		"output":    "json",
		"no-kaggle": "true",
	})
	require.NoError(t, err)

	var result setup.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result), "stdout must be pure JSON: %s", out)
	assert.True(t, result.AllPresent)
	assert.False(t, result.KaggleAvailable)
	assert.Equal(t, root, result.Root)
	assert.Len(t, result.Outcomes, 6)
	assert.Equal(t, 6, setup.Count(result.Outcomes, setup.StatusSkipped))
	assert.Len(t, result.Report.Checks, 6)

	assert.Contains(t, errOut, setup.Banner, "human output goes to stderr in JSON mode")
}

func TestRunSetup_CancelledContextFails(t *testing.T) {
	root := filepath.Join(t.TempDir(), "datasets")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, _, err := executeCommandContext(t, ctx, NewSetupCommand(), map[string]string{
		"root":   root,
		"output": "plain",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrMissingDatasets)

	assert.Contains(t, out, "[ERROR] Setup interrupted: context canceled")
	assert.NotContains(t, out, "Setup Complete")
	assert.NoDirExists(t, filepath.Join(root, "MovieLens", "ml-1m"))
}
