package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jaakkos/tourism-cms/internal/app"
	"github.com/jaakkos/tourism-cms/internal/domain"
	"github.com/jaakkos/tourism-cms/internal/seed"
)

// mockRepository implements app.SnapshotRepository in memory.
type mockRepository struct {
	mu    sync.Mutex
	state *domain.State
	saves int
}

func (m *mockRepository) Load() (*domain.State, error) { return nil, nil }

func (m *mockRepository) Save(state *domain.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	m.saves++
	return nil
}

func (m *mockRepository) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// testServer creates an MCPServer over a store hydrated from the embedded seed.
func testServer(t *testing.T) (*server.MCPServer, *app.ContentStore, *mockRepository) {
	t.Helper()
	repo := &mockRepository{}
	store, err := app.NewContentStore(repo, seed.Embedded(), nil)
	if err != nil {
		t.Fatalf("NewContentStore: %v", err)
	}
	s := server.NewMCPServer("test", "1.0.0", server.WithResourceCapabilities(false, false))
	Register(s, store, NewGate(store), log.New(io.Discard, "", 0))
	return s, store, repo
}

// fakeSession is an MCP client session identified only by its id.
type fakeSession struct {
	id string
	ch chan mcp.JSONRPCNotification
}

func newFakeSession(id string) *fakeSession {
	return &fakeSession{id: id, ch: make(chan mcp.JSONRPCNotification, 8)}
}

func (f *fakeSession) Initialize()                                         {}
func (f *fakeSession) Initialized() bool                                   { return true }
func (f *fakeSession) NotificationChannel() chan<- mcp.JSONRPCNotification { return f.ch }
func (f *fakeSession) SessionID() string                                   { return f.id }

// defaultClient is the session used by rpc and callTool.
const defaultClient = "client-a"

// rpc sends one JSON-RPC request from the default client session and
// returns the raw result, or an error for an RPC-level failure.
func rpc(t *testing.T, s *server.MCPServer, method string, params map[string]any) (json.RawMessage, error) {
	t.Helper()
	return rpcWith(t, s, s.WithContext(context.Background(), newFakeSession(defaultClient)), method, params)
}

// rpcWith sends one JSON-RPC request with ctx.
func rpcWith(t *testing.T, s *server.MCPServer, ctx context.Context, method string, params map[string]any) (json.RawMessage, error) {
	t.Helper()
	reqJSON, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  params,
	})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	respBytes, err := json.Marshal(s.HandleMessage(ctx, reqJSON))
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	var resp struct {
		Result json.RawMessage `json:"result"`
		Error  *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("RPC error %d: %s", resp.Error.Code, resp.Error.Message)
	}
	return resp.Result, nil
}

// callTool calls a registered tool via the MCPServer's HandleMessage.
func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) (*mcp.CallToolResult, error) {
	t.Helper()
	return callToolWith(t, s, s.WithContext(context.Background(), newFakeSession(defaultClient)), name, args)
}

// callToolWith calls a tool with ctx, e.g. another client session.
func callToolWith(t *testing.T, s *server.MCPServer, ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	t.Helper()
	raw, err := rpcWith(t, s, ctx, "tools/call", map[string]any{"name": name, "arguments": args})
	if err != nil {
		return nil, err
	}
	var result mcp.CallToolResult
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	return &result, nil
}

// mustCallWith calls a tool with ctx and fails the test on an RPC error.
func mustCallWith(t *testing.T, s *server.MCPServer, ctx context.Context, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	res, err := callToolWith(t, s, ctx, name, args)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return res
}

// mustCall calls a tool and fails the test on an RPC error.
func mustCall(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	res, err := callTool(t, s, name, args)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return res
}

// resultText extracts the first text content from a CallToolResult.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("result is nil")
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	t.Fatal("no text content in result")
	return ""
}

func login(t *testing.T, s *server.MCPServer) {
	t.Helper()
	res := mustCall(t, s, "login", map[string]any{"email": "admin@tourism.com", "password": "Admin123!"})
	if res.IsError {
		t.Fatalf("login failed: %s", resultText(t, res))
	}
}
