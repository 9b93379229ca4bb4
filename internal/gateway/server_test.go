package gateway

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/dev-cockpit/internal/config"
	"github.com/openclaw/dev-cockpit/internal/core/registry"
)

type testEnvelope struct {
	OK     bool                   `json:"ok"`
	Result map[string]interface{} `json:"result"`
	Error  *wireError             `json:"error"`
}

func newTestServer(t *testing.T) (*Server, *httptest.Server, *config.Config) {
	t.Helper()
	base := t.TempDir()
	cfg := &config.Config{
		Registry:  filepath.Join(base, "cockpit", "projects.json"),
		AgentsDir: filepath.Join(base, "agents"),
		ScanRoots: []string{filepath.Join(base, "dev")},
		ScanBase:  base,
	}
	server := NewServer(cfg)
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return server, ts, cfg
}

func seedRegistry(t *testing.T, cfg *config.Config, projectPath string) {
	t.Helper()
	store := registry.NewStore(cfg.Registry)
	reg := registry.Empty()
	reg.Projects["openclaw"] = &registry.Entry{Path: projectPath, Enabled: true}
	require.NoError(t, store.Save(reg))
}

func seedSession(t *testing.T, cfg *config.Config, cwd string) {
	t.Helper()
	dir := filepath.Join(cfg.AgentsDir, "main", "sessions")
	require.NoError(t, os.MkdirAll(dir, 0755))
	content := `{"cwd":"` + cwd + `"}
{"timestamp":"2026-02-09T10:00:00Z","model":"gpt-4o","usage":{"input_tokens":100,"output_tokens":50},"costUSD":0.01}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "s1.jsonl"), []byte(content), 0644))
}

func doRequest(t *testing.T, method, url, body string) (*http.Response, testEnvelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env testEnvelope
	require.NoError(t, sonic.Unmarshal(data, &env), "body: %s", data)
	return resp, env
}

func TestProjectsEmptyRegistry(t *testing.T) {
	_, ts, _ := newTestServer(t)

	resp, env := doRequest(t, http.MethodGet, ts.URL+"/api/projects", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.OK)
	assert.Empty(t, env.Result["projects"])
}

func TestUsageEndpoint(t *testing.T) {
	_, ts, cfg := newTestServer(t)
	seedRegistry(t, cfg, "/dev/openclaw")
	seedSession(t, cfg, "/dev/openclaw/ui")

	resp, env := doRequest(t, http.MethodGet, ts.URL+"/api/usage", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.OK)

	projects, ok := env.Result["projects"].(map[string]interface{})
	require.True(t, ok)
	require.Contains(t, projects, "openclaw")
	proj := projects["openclaw"].(map[string]interface{})
	assert.EqualValues(t, 1, proj["sessions"])
	assert.EqualValues(t, 150, proj["totalTokens"])
}

func TestUsageRejectsBadParams(t *testing.T) {
	_, ts, _ := newTestServer(t)

	resp, env := doRequest(t, http.MethodGet, ts.URL+"/api/usage?days=abc", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.EqualValues(t, "InvalidRequest", env.Error.Code)

	resp, env = doRequest(t, http.MethodGet, ts.URL+"/api/usage?days=-1", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, env = doRequest(t, http.MethodGet, ts.URL+"/api/usage?project=..%2Fetc", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.EqualValues(t, "InvalidRequest", env.Error.Code)
}

func TestGitActivityEndpoint(t *testing.T) {
	_, ts, cfg := newTestServer(t)
	// Project path does not exist; the report still enumerates it with
	// zero values.
	seedRegistry(t, cfg, filepath.Join(cfg.ScanBase, "missing-repo"))

	resp, env := doRequest(t, http.MethodGet, ts.URL+"/api/git-activity?days=7", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.OK)

	projects, ok := env.Result["projects"].([]interface{})
	require.True(t, ok)
	require.Len(t, projects, 1)
	proj := projects[0].(map[string]interface{})
	assert.EqualValues(t, 0, proj["commits"])
}

func TestToggleEndpoint(t *testing.T) {
	_, ts, cfg := newTestServer(t)
	seedRegistry(t, cfg, "/dev/openclaw")

	resp, env := doRequest(t, http.MethodPost, ts.URL+"/api/toggle",
		`{"project":"openclaw","enabled":false}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.OK)

	reg, err := registry.NewStore(cfg.Registry).Load()
	require.NoError(t, err)
	assert.False(t, reg.Projects["openclaw"].Enabled)
}

func TestToggleUnknownProject(t *testing.T) {
	_, ts, cfg := newTestServer(t)
	seedRegistry(t, cfg, "/dev/openclaw")

	resp, env := doRequest(t, http.MethodPost, ts.URL+"/api/toggle",
		`{"project":"ghost","enabled":true}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.EqualValues(t, "NotFound", env.Error.Code)
}

func TestToggleRequiresEnabled(t *testing.T) {
	_, ts, cfg := newTestServer(t)
	seedRegistry(t, cfg, "/dev/openclaw")

	resp, env := doRequest(t, http.MethodPost, ts.URL+"/api/toggle",
		`{"project":"openclaw"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.EqualValues(t, "InvalidRequest", env.Error.Code)
}

func TestScanRejectsRootOutsideBase(t *testing.T) {
	_, ts, _ := newTestServer(t)

	resp, env := doRequest(t, http.MethodPost, ts.URL+"/api/scan",
		`{"roots":["/etc"]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.EqualValues(t, "InvalidRequest", env.Error.Code)
}

func TestScanWritesRegistry(t *testing.T) {
	_, ts, cfg := newTestServer(t)
	repo := filepath.Join(cfg.ScanRoots[0], "discovered")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0755))

	resp, env := doRequest(t, http.MethodPost, ts.URL+"/api/scan", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.OK)

	reg, err := registry.NewStore(cfg.Registry).Load()
	require.NoError(t, err)
	assert.Contains(t, reg.Projects, "discovered")
}

func TestMethodNotAllowed(t *testing.T) {
	_, ts, _ := newTestServer(t)

	resp, env := doRequest(t, http.MethodPost, ts.URL+"/api/usage", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.EqualValues(t, "InvalidRequest", env.Error.Code)

	resp, _ = doRequest(t, http.MethodGet, ts.URL+"/api/toggle", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	_, ts, _ := newTestServer(t)
	resp, env := doRequest(t, http.MethodGet, ts.URL+"/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.OK)
	assert.Equal(t, "ok", env.Result["status"])
}
