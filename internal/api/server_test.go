package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/boundlayout/pkg/cache"
	"github.com/matzehuels/boundlayout/pkg/pipeline"
	"github.com/matzehuels/boundlayout/pkg/scene"
)

const sceneJSON = `{
	"name": "api",
	"layout": {"num_iterations": 45},
	"regions": [
		{"id": "A", "x": 0, "y": 0, "width": 100, "height": 100},
		{"id": "B", "shape": "Ellipse", "x": 60, "y": 0, "width": 100, "height": 100}
	],
	"nodes": [
		{"id": "a", "width": 5, "height": 5, "category": "A"},
		{"id": "b", "width": 5, "height": 5, "category": "B"}
	],
	"edges": [{"source": "a", "target": "b"}]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	logger := log.New(io.Discard)
	srv := New(Config{Runner: pipeline.NewRunner(c, nil, logger), Logger: logger, MaxIterations: 1000})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string, header http.Header) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestLayoutAndFetch(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/v1/layout", sceneJSON, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "false", resp.Header.Get("X-Cache-Hit"))

	e, err := scene.ReadExport(resp.Body)
	require.NoError(t, err)
	assert.Len(t, e.Positions, 2)
	assert.Equal(t, e.RunID, resp.Header.Get("X-Run-ID"))

	got, err := http.Get(ts.URL + "/v1/layouts/" + e.RunID)
	require.NoError(t, err)
	defer got.Body.Close()
	assert.Equal(t, http.StatusOK, got.StatusCode)

	again := post(t, ts.URL+"/v1/layout", sceneJSON, nil)
	assert.Equal(t, "true", again.Header.Get("X-Cache-Hit"))
}

func TestLayoutSVG(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts.URL+"/v1/layout?format=svg", sceneJSON, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(body, []byte("<svg")))
}

func TestTenantScopedCache(t *testing.T) {
	ts := newTestServer(t)
	post(t, ts.URL+"/v1/layout", sceneJSON, http.Header{TenantHeader: {"one"}})

	other := post(t, ts.URL+"/v1/layout", sceneJSON, http.Header{TenantHeader: {"two"}})
	assert.Equal(t, "false", other.Header.Get("X-Cache-Hit"))

	same := post(t, ts.URL+"/v1/layout", sceneJSON, http.Header{TenantHeader: {"one"}})
	assert.Equal(t, "true", same.Header.Get("X-Cache-Hit"))
}

func TestPartition(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts.URL+"/v1/partition/A", sceneJSON, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res pipeline.PartitionResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, "A", res.Region)
	assert.Equal(t, []string{"B"}, res.Intersecting)
	assert.NotEmpty(t, res.Leaves)
}

func TestErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"malformed json", "/v1/layout", "{", http.StatusBadRequest},
		{"unsupported shape", "/v1/layout", `{"regions":[{"id":"A","shape":"Star","width":1,"height":1}]}`, http.StatusUnprocessableEntity},
		{"zero area", "/v1/layout", `{"regions":[{"id":"A","width":0,"height":1}]}`, http.StatusBadRequest},
		{"too many iterations", "/v1/layout", `{"layout":{"num_iterations":5000}}`, http.StatusBadRequest},
		{"unknown format", "/v1/layout?format=png", sceneJSON, http.StatusBadRequest},
		{"unknown region", "/v1/partition/Z", sceneJSON, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+tt.path, tt.body, nil)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}

	resp, err := http.Get(ts.URL + "/v1/layouts/00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, statusFor(io.ErrUnexpectedEOF))
}
