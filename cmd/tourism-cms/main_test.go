package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaakkos/tourism-cms/internal/api"
	"github.com/jaakkos/tourism-cms/internal/app"
	"github.com/jaakkos/tourism-cms/internal/domain"
	"github.com/jaakkos/tourism-cms/internal/seed"
	"github.com/jaakkos/tourism-cms/internal/tools/cms"
)

type memRepository struct{}

func (memRepository) Load() (*domain.State, error) { return nil, nil }
func (memRepository) Save(*domain.State) error     { return nil }

func newTestRouter(t *testing.T) (*httptest.Server, *app.ContentStore) {
	t.Helper()
	store, err := app.NewContentStore(memRepository{}, seed.Embedded(), nil)
	require.NoError(t, err)
	tokens, err := api.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	mcpServer := server.NewMCPServer("tourism-cms", "test", server.WithResourceCapabilities(false, false))
	cms.Register(mcpServer, store, cms.NewGate(store), log.New(io.Discard, "", 0))

	srv := httptest.NewServer(newRouter(api.NewHandler(store, tokens), mcpServer, tokens))
	t.Cleanup(srv.Close)
	return srv, store
}

func adminToken(t *testing.T, baseURL string) string {
	t.Helper()
	body := `{"email":"admin@tourism.com","password":"Admin123!"}`
	resp, err := http.Post(baseURL+"/api/admin/login", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

// mcpClient speaks streamable HTTP to /mcp with an optional bearer token.
type mcpClient struct {
	t         *testing.T
	url       string
	token     string
	sessionID string
	nextID    int
}

func (c *mcpClient) post(method string, params any) (*http.Response, json.RawMessage) {
	c.t.Helper()
	c.nextID++
	payload, err := json.Marshal(map[string]any{"jsonrpc": "2.0", "id": c.nextID, "method": method, "params": params})
	require.NoError(c.t, err)

	req, err := http.NewRequest(http.MethodPost, c.url, bytes.NewReader(payload))
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	if c.sessionID != "" {
		req.Header.Set(server.HeaderKeySessionID, c.sessionID)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	require.Equal(c.t, http.StatusOK, resp.StatusCode)

	var out struct {
		Result json.RawMessage `json:"result"`
		Error  *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&out))
	require.Nil(c.t, out.Error, "rpc error")
	return resp, out.Result
}

func (c *mcpClient) initialize() {
	c.t.Helper()
	resp, _ := c.post("initialize", map[string]any{
		"protocolVersion": mcp.LATEST_PROTOCOL_VERSION,
		"capabilities":    map[string]any{},
		"clientInfo":      map[string]any{"name": "test", "version": "1"},
	})
	c.sessionID = resp.Header.Get(server.HeaderKeySessionID)
	require.NotEmpty(c.t, c.sessionID)
}

func (c *mcpClient) callTool(name string, args map[string]any) (text string, isError bool) {
	c.t.Helper()
	_, raw := c.post("tools/call", map[string]any{"name": name, "arguments": args})
	var res struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
		IsError bool `json:"isError"`
	}
	require.NoError(c.t, json.Unmarshal(raw, &res))
	require.NotEmpty(c.t, res.Content)
	return res.Content[0].Text, res.IsError
}

func TestMCPOverHTTP_AnonymousClientCannotUseAdminLogin(t *testing.T) {
	srv, store := newTestRouter(t)
	adminToken(t, srv.URL)
	require.True(t, store.Authenticated())

	anon := &mcpClient{t: t, url: srv.URL + "/mcp"}
	anon.initialize()

	text, _ := anon.callTool("get_settings", nil)
	assert.NotContains(t, text, "Admin123!")

	text, isErr := anon.callTool("delete_destination", map[string]any{"id": "raja-ampat-01"})
	assert.True(t, isErr)
	assert.Contains(t, text, "log in")
	assert.Len(t, store.Destinations(), 6)

	_, isErr = anon.callTool("logout", nil)
	assert.True(t, isErr)
	assert.True(t, store.Authenticated())
}

func TestMCPOverHTTP_BearerTokenActsAsAdmin(t *testing.T) {
	srv, store := newTestRouter(t)
	token := adminToken(t, srv.URL)

	forged := &mcpClient{t: t, url: srv.URL + "/mcp", token: token + "x"}
	forged.initialize()
	_, isErr := forged.callTool("delete_destination", map[string]any{"id": "raja-ampat-01"})
	assert.True(t, isErr)

	admin := &mcpClient{t: t, url: srv.URL + "/mcp", token: token}
	admin.initialize()

	text, _ := admin.callTool("get_settings", nil)
	assert.Contains(t, text, "Admin123!")

	text, isErr = admin.callTool("delete_destination", map[string]any{"id": "raja-ampat-01"})
	require.False(t, isErr, text)
	assert.Len(t, store.Destinations(), 5)

	_, isErr = admin.callTool("logout", nil)
	assert.False(t, isErr)
	assert.False(t, store.Authenticated())

	_, isErr = admin.callTool("delete_destination", map[string]any{"id": "borobudur-05"})
	assert.True(t, isErr, "a token does not outlive the logout")
}
