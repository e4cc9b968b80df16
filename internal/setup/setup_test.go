package setup

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/leapstack-labs/dsfetch/internal/catalog"
	"github.com/leapstack-labs/dsfetch/internal/fetch"
	"github.com/leapstack-labs/dsfetch/internal/kaggle"
	"github.com/leapstack-labs/dsfetch/internal/testutil"
)

// fakeHosts serves the open archive and the Kaggle API from one test server.
type fakeHosts struct {
	srv   *httptest.Server
	calls atomic.Int32

	// served, when set, runs after each response is written.
	served atomic.Pointer[func(path string)]
}

func newFakeHosts(t *testing.T) *fakeHosts {
	t.Helper()

	movielens := testutil.ZipBytes(t, map[string]string{
		"ml-1m/":            "",
		"ml-1m/ratings.dat": "1::1193::5::978300760\n",
		"ml-1m/movies.dat":  "1::Toy Story (1995)::Animation\n",
	})
	netflix := testutil.ZipBytes(t, map[string]string{
		"netflix_titles.csv": "show_id,type,title\n",
	})

	h := &fakeHosts{}
	h.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.calls.Add(1)
		if fn := h.served.Load(); fn != nil {
			defer (*fn)(r.URL.Path)
		}
		switch r.URL.Path {
		case "/ml-1m.zip":
			_, _ = w.Write(movielens)
		case "/broken.zip":
			_, _ = w.Write([]byte("this is not a zip archive"))
		case "/api/v1/datasets/download/shivamb/netflix-shows":
			if user, key, ok := r.BasicAuth(); !ok || user != "alice" || key != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write(netflix)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(h.srv.Close)
	return h
}

func (h *fakeHosts) downloader() *fetch.Downloader {
	return fetch.NewDownloader(fetch.WithHTTPClient(h.srv.Client()))
}

func (h *fakeHosts) requests() int {
	return int(h.calls.Load())
}

func openDataset(root, source string) catalog.Dataset {
	movielens := filepath.Join(root, "MovieLens")
	return catalog.Dataset{
		Name:      "MovieLens 1M",
		Family:    "MovieLens",
		Kind:      catalog.KindOpen,
		Source:    source,
		Dest:      filepath.Join(movielens, "ml-1m"),
		Archive:   "ml-1m.zip",
		ExtractTo: movielens,
		Marker:    filepath.Join(movielens, "ml-1m", "ratings.dat"),
	}
}

func gatedDatasets(root string) catalog.Catalog {
	netflix := filepath.Join(root, "Netflix")
	return catalog.Catalog{
		{
			Name:    "Netflix Shows",
			Family:  "Netflix",
			Kind:    catalog.KindGated,
			Source:  "shivamb/netflix-shows",
			Dest:    filepath.Join(netflix, "netflix"),
			Marker:  filepath.Join(netflix, "netflix", "netflix_titles.csv"),
			Extract: "netflix_titles.csv",
		},
		{
			Name:    "Netflix Prize",
			Family:  "Netflix",
			Kind:    catalog.KindGated,
			Source:  "netflix-inc/netflix-prize-data",
			Dest:    filepath.Join(netflix, "netflix_prize"),
			Marker:  filepath.Join(netflix, "netflix_prize"),
			Extract: "all files",
		},
	}
}

// envSource returns a credential source that only sees the given variables
// and has an empty home directory.
func envSource(t *testing.T, env map[string]string) kaggle.CredentialSource {
	t.Helper()
	home := t.TempDir()
	return kaggle.CredentialSource{
		Getenv:  func(k string) string { return env[k] },
		HomeDir: func() (string, error) { return home, nil },
	}
}

func validCredentials() map[string]string {
	return map[string]string{
		kaggle.EnvUsername: "alice",
		kaggle.EnvKey:      "secret",
	}
}
