package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matsen/confnet/internal/record"
)

func scrape(t *testing.T, c *Collector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestNewCollector_Independent(t *testing.T) {
	// Two collectors must not fail with duplicate registration.
	a := NewCollector("confnet")
	b := NewCollector("confnet")
	a.DatasetRecords.Set(3)
	b.DatasetRecords.Set(5)

	assert.Contains(t, scrape(t, a), "confnet_dataset_records 3")
	assert.Contains(t, scrape(t, b), "confnet_dataset_records 5")
}

func TestObserveRender(t *testing.T) {
	c := NewCollector("confnet")
	c.ObserveRender(record.Flags{IncludeNamedIndividual: false, IncludePosters: true}, 10*time.Millisecond)

	out := scrape(t, c)
	assert.Contains(t, out, `confnet_renders_total{include_named="false",include_posters="true"} 1`)
	assert.Contains(t, out, "confnet_render_duration_seconds_count 1")
}

func TestObserveReload(t *testing.T) {
	c := NewCollector("confnet")
	ds := record.NewDataset([]record.Record{
		{Title: "T", Category: "Talk", Participants: []string{"A", "B"}},
	}, "test")

	c.ObserveReload(ds, nil)
	c.ObserveReload(nil, errors.New("bad line"))

	out := scrape(t, c)
	assert.Contains(t, out, `confnet_dataset_reloads_total{status="ok"} 1`)
	assert.Contains(t, out, `confnet_dataset_reloads_total{status="error"} 1`)
	assert.Contains(t, out, "confnet_dataset_records 1")
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	c := NewCollector("confnet")
	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Get("/api/people/{name}/papers", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/people/Sandy/papers", nil))

	out := scrape(t, c)
	assert.Contains(t, out, `confnet_http_requests_total{method="GET",route="/api/people/{name}/papers",status="404"} 1`)
}

func TestMiddleware_UnmatchedPathsShareOneLabel(t *testing.T) {
	c := NewCollector("confnet")
	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {})

	for _, path := range []string{"/x1", "/x2", "/wp-admin/a.php"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	out := scrape(t, c)
	assert.Contains(t, out, `confnet_http_requests_total{method="GET",route="unmatched",status="404"} 3`)
	assert.NotContains(t, out, `route="/x1"`)
	assert.NotContains(t, out, `route="/wp-admin/a.php"`)
}
