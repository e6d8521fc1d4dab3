package search

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xhtml/search-engine/internal/apperr"
	"github.com/0xhtml/search-engine/internal/dispatch"
	"github.com/0xhtml/search-engine/internal/engine"
	"github.com/0xhtml/search-engine/internal/httpx"
	"github.com/0xhtml/search-engine/internal/metrics"
	"github.com/0xhtml/search-engine/internal/query"
	"github.com/0xhtml/search-engine/internal/result"
	"github.com/0xhtml/search-engine/internal/spam"
)

type stubDetector struct{}

func (stubDetector) Detect(string, []string) string    { return "en" }
func (stubDetector) Confidence(string, string) float64 { return 1 }

type stubAdapter struct {
	url     string
	results []result.Result
}

func (a stubAdapter) BuildRequest(query.Query, int) (*httpx.RequestSpec, error) {
	return &httpx.RequestSpec{Method: http.MethodGet, URL: a.url}, nil
}

func (a stubAdapter) ParseResponse(*httpx.Response) ([]result.Result, error) {
	return a.results, nil
}

func newTestService(t *testing.T, engines []*engine.Engine) *Service {
	t.Helper()
	client := httpx.NewClient(httpx.Config{})
	return NewService(
		query.NewParser(stubDetector{}),
		engines,
		dispatch.New(client, metrics.NopSink{}, slog.Default()),
		stubDetector{},
		spam.New(),
		slog.Default(),
	)
}

func TestSearchEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	r1, err := result.NewWeb("https://example.com/go", "The Go Programming Language", "")
	require.NoError(t, err)
	r2, err := result.NewWeb("https://example.com/go", "Go", "Build simple, secure systems.")
	require.NoError(t, err)

	engines := []*engine.Engine{
		{Name: "a", Weight: 1.3, Mode: query.ModeWeb, PageSize: 10, Adapter: stubAdapter{url: srv.URL, results: []result.Result{r1}}},
		{Name: "b", Weight: 1, Mode: query.ModeWeb, PageSize: 10, Adapter: stubAdapter{url: srv.URL, results: []result.Result{r2}}},
	}

	resp, err := newTestService(t, engines).Search(context.Background(), Params{Query: "golang", Page: 1})
	require.NoError(t, err)
	assert.Empty(t, resp.Errors)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "The Go Programming Language", resp.Results[0].Result.Title)
	assert.Equal(t, "Build simple, secure systems.", resp.Results[0].Result.Text)
	assert.Equal(t, []string{"a", "b"}, resp.Results[0].Engines)
	assert.Equal(t, "en", resp.Query.Lang)
}

func TestSearchValidation(t *testing.T) {
	svc := newTestService(t, nil)

	var ve *apperr.ValidationError

	_, err := svc.Search(context.Background(), Params{Query: "", Page: 1})
	require.ErrorAs(t, err, &ve)

	_, err = svc.Search(context.Background(), Params{Query: "golang", Page: 0})
	require.ErrorAs(t, err, &ve)

	_, err = svc.Search(context.Background(), Params{Query: "golang", Mode: "videos", Page: 1})
	require.ErrorAs(t, err, &ve)
}

func TestSearchNoMatchingEngines(t *testing.T) {
	engines := []*engine.Engine{
		{Name: "images-only", Weight: 1, Mode: query.ModeImages, PageSize: 10, Adapter: stubAdapter{}},
	}

	resp, err := newTestService(t, engines).Search(context.Background(), Params{Query: "golang", Page: 1})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Empty(t, resp.Errors)
}

func TestSearchReportsEngineFailures(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer broken.Close()
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer ok.Close()

	r1, err := result.NewWeb("https://example.com/go", "Go", "")
	require.NoError(t, err)

	engines := []*engine.Engine{
		{Name: "healthy", Weight: 1.3, Mode: query.ModeWeb, PageSize: 10, Adapter: stubAdapter{url: ok.URL, results: []result.Result{r1}}},
		{Name: "broken", Weight: 1.3, Mode: query.ModeWeb, PageSize: 10, Adapter: stubAdapter{url: broken.URL}},
	}

	resp, err := newTestService(t, engines).Search(context.Background(), Params{Query: "golang", Page: 1})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Contains(t, resp.Errors, "broken")
}
