package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeES struct {
	mu       sync.Mutex
	requests []string
	bodies   []string
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	f.bodies = append(f.bodies, string(body))
	f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodHead && r.URL.Path == "/":
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut && r.URL.Path == "/toppings":
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"resource_already_exists_exception"}}`))
	case strings.HasSuffix(r.URL.Path, "/_search"):
		_, _ = w.Write([]byte(`{"hits":{"total":{"value":1},"hits":[{"_id":"t1","_source":{"name":"cheese"}}]}}`))
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"result":"not_found"}`))
	default:
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	}
}

func newTestClient(t *testing.T) (*Client, *fakeES) {
	t.Helper()
	fake := &fakeES{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	c, err := NewClient(context.Background(), &Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return c, fake
}

func TestClientCreateIndexTreatsExistingAsSuccess(t *testing.T) {
	c, _ := newTestClient(t)
	assert.NoError(t, c.CreateIndex(context.Background(), "toppings", `{"mappings":{}}`))
}

func TestClientIndexAndDelete(t *testing.T) {
	c, fake := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Index(ctx, "toppings", "t1", map[string]any{"name": "cheese"}))
	require.NoError(t, c.Delete(ctx, "toppings", "missing"))

	assert.Contains(t, fake.requests, "PUT /toppings/_doc/t1")
	assert.Contains(t, fake.requests, "DELETE /toppings/_doc/missing")
}

func TestClientSearchDecodesHits(t *testing.T) {
	c, fake := newTestClient(t)

	res, err := c.Search(context.Background(), "toppings", map[string]any{
		"query": map[string]any{"term": map[string]any{"tenantId": "t-1"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Hits.Total.Value)
	require.Len(t, res.Hits.Hits, 1)
	assert.Equal(t, "t1", res.Hits.Hits[0].ID)

	var src map[string]string
	require.NoError(t, json.Unmarshal(res.Hits.Hits[0].Source, &src))
	assert.Equal(t, "cheese", src["name"])

	last := fake.bodies[len(fake.bodies)-1]
	assert.Contains(t, last, `"tenantId":"t-1"`)
}
