package spam

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContains(t *testing.T) {
	list := New("spam.example", "www.tracker.example")

	assert.True(t, list.Contains("spam.example"))
	assert.True(t, list.Contains("www.spam.example"))
	assert.True(t, list.Contains("tracker.example"))
	assert.False(t, list.Contains("fine.example"))
	assert.False(t, list.Contains("sub.spam.example"))
}

func TestLoadUnionsSources(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("# comment line\nfeed.example\nwww.other.example\n\n"))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "domains.txt")
	require.NoError(t, os.WriteFile(path, []byte("local.example\n# skip me\n"), 0o644))

	list := Load(context.Background(), srv.Client(), []string{srv.URL, path})

	assert.True(t, list.Contains("feed.example"))
	assert.True(t, list.Contains("other.example"))
	assert.True(t, list.Contains("local.example"))
	assert.False(t, list.Contains("skip"))
	assert.Equal(t, 3, list.Len())
}

func TestLoadSkipsFailingSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "domains.txt")
	require.NoError(t, os.WriteFile(path, []byte("local.example\n"), 0o644))

	list := Load(context.Background(), srv.Client(), []string{srv.URL, path, "/does/not/exist"})

	assert.True(t, list.Contains("local.example"))
	assert.Equal(t, 1, list.Len())
}
