package history_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pkindex/internal/history"
)

func TestSource_LoadHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/index_history.csv", r.URL.Path)
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(exampleCSV))
	}))
	defer srv.Close()

	src := history.NewSource(srv.URL+"/data/index_history.csv", history.WithHTTPClient(srv.Client()))
	records, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "index_history.csv", src.Name())
}

func TestSource_LoadHTTPNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	src := history.NewSource(srv.URL + "/data/index_history.csv")
	records, err := src.Load(context.Background())
	require.Error(t, err)
	assert.Nil(t, records)
	assert.ErrorIs(t, err, history.ErrNotFound)
	assert.Contains(t, err.Error(), "not found")
	assert.Equal(t, "index_history.csv not found (HTTP 404)", err.Error())

	var nf *history.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, http.StatusNotFound, nf.Status)
}

func TestSource_LoadHTTPServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := history.NewSource(srv.URL + "/index_history.csv").Load(context.Background())
	assert.ErrorIs(t, err, history.ErrNotFound)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestSource_LoadHTTPTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	src := history.NewSource(srv.URL+"/index_history.csv", history.WithTimeout(50*time.Millisecond))
	_, err := src.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, history.ErrNotFound)
}

func TestSource_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index_history.csv")
	require.NoError(t, os.WriteFile(path, []byte(exampleCSV), 0o600))

	for _, loc := range []string{path, "file://" + path} {
		records, err := history.NewSource(loc).Load(context.Background())
		require.NoError(t, err, loc)
		assert.Len(t, records, 2)
	}
}

func TestSource_LoadFileMissing(t *testing.T) {
	src := history.NewSource(filepath.Join(t.TempDir(), "index_history.csv"))
	_, err := src.Load(context.Background())
	require.ErrorIs(t, err, history.ErrNotFound)
	assert.Equal(t, "index_history.csv not found", err.Error())
}

func TestSource_Location(t *testing.T) {
	src := history.NewSource("data/index_history.csv")
	assert.Equal(t, "data/index_history.csv", src.Location())
	assert.Equal(t, "index_history.csv", src.Name())
	assert.Equal(t, "example.com", history.NewSource("https://example.com/").Name())
}
