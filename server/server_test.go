package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bububa/heroku-a2a/agents"
	"github.com/bububa/heroku-a2a/components"
	"github.com/bububa/heroku-a2a/config"
	"github.com/bububa/heroku-a2a/tools/builtin"
)

type failingClient struct {
	err error
}

func (c failingClient) Chat(context.Context, *components.ChatRequest) (*components.ChatResponse, error) {
	return nil, c.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, apiKey string, opts ...agents.FactoryOption) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.Inference.Provider = config.ProviderEcho
	opts = append(opts, agents.WithFactoryLogger(discardLogger()))
	srv := NewServer(Config{
		Factory: agents.NewFactory(cfg, builtin.NewRegistry(), opts...),
		APIKey:  apiKey,
		MaxBody: 1 << 10,
		Logger:  discardLogger(),
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, body string, header map[string]string) (int, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var ret map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &ret))
	}
	return resp.StatusCode, ret
}

func TestInfoRoutes(t *testing.T) {
	ts := newTestServer(t, "")

	status, body := doJSON(t, http.MethodGet, ts.URL+"/", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["message"])
	assert.Equal(t, []any{"calculator", "search"}, body["available_tools"])

	status, body = doJSON(t, http.MethodGet, ts.URL+"/tools", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{"calculator", "search"}, body["tools"])

	status, body = doJSON(t, http.MethodGet, ts.URL+"/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	status, _ = doJSON(t, http.MethodGet, ts.URL+"/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = doJSON(t, http.MethodGet, ts.URL+"/query", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, status)
}

func TestQuery(t *testing.T) {
	ts := newTestServer(t, "")

	status, body := doJSON(t, http.MethodPost, ts.URL+"/query", `{"query":"hello"}`, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "hello", body["response"])
	assert.Equal(t, []any{"calculator", "search"}, body["tools_used"])
	assert.NotContains(t, body, "tools_invoked")

	status, body = doJSON(t, http.MethodPost, ts.URL+"/query", `{"query":"hello","tools":["search","missing"]}`, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{"search"}, body["tools_used"])

	status, body = doJSON(t, http.MethodPost, ts.URL+"/query", `{"query":"hello","tools":["missing"]}`, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{}, body["tools_used"])
}

func TestQueryBadBody(t *testing.T) {
	ts := newTestServer(t, "")
	for _, body := range []string{`{`, `{}`, `{"query":""}`, `{"query":1}`} {
		status, ret := doJSON(t, http.MethodPost, ts.URL+"/query", body, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, status, body)
		assert.NotEmpty(t, ret["detail"], body)
	}
	status, _ := doJSON(t, http.MethodPost, ts.URL+"/query", `{"query":"`+strings.Repeat("a", 2<<10)+`"}`, nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, status)
}

func TestQueryModelFailure(t *testing.T) {
	ts := newTestServer(t, "", agents.WithClientFactory(func(config.Inference) (components.LLMClient, error) {
		return failingClient{err: errors.New("upstream unavailable")}, nil
	}))
	status, body := doJSON(t, http.MethodPost, ts.URL+"/query", `{"query":"hello"}`, nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	detail, _ := body["detail"].(string)
	assert.True(t, strings.HasPrefix(detail, "Error processing query: "), detail)
	assert.Contains(t, detail, "upstream unavailable")

	status, body = doJSON(t, http.MethodGet, ts.URL+"/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["failures"])
	assert.EqualValues(t, 2, body["requests"])
}

func TestAPIKey(t *testing.T) {
	ts := newTestServer(t, "secret")

	status, body := doJSON(t, http.MethodPost, ts.URL+"/query", `{"query":"hello"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid API key", body["detail"])

	status, _ = doJSON(t, http.MethodPost, ts.URL+"/a2a", `{"query":"hello"}`, map[string]string{APIKeyHeader: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = doJSON(t, http.MethodPost, ts.URL+"/query", `{"query":"hello"}`, map[string]string{APIKeyHeader: "secret"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "hello", body["response"])

	status, _ = doJSON(t, http.MethodGet, ts.URL+"/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestA2A(t *testing.T) {
	ts := newTestServer(t, "")

	status, body := doJSON(t, http.MethodPost, ts.URL+"/a2a", `{"query":"quantum computing","context":"recent breakthroughs","mode":"handoff"}`, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "quantum computing", body["query"])
	assert.Equal(t, "recent breakthroughs", body["context"])
	assert.Equal(t, "handoff", body["mode"])
	assert.Contains(t, body["response"], "recent breakthroughs")

	status, body = doJSON(t, http.MethodPost, ts.URL+"/a2a", `{"query":"quantum computing"}`, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "delegate", body["mode"])
	assert.Contains(t, body, "context")
	assert.Nil(t, body["context"])

	status, _ = doJSON(t, http.MethodPost, ts.URL+"/a2a", `{"query":"q","mode":"broadcast"}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestRequestID(t *testing.T) {
	ts := newTestServer(t, "")

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "req-1")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "req-1", resp.Header.Get(RequestIDHeader))
}
