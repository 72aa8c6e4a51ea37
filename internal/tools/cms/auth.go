package cms

import (
	"context"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jaakkos/tourism-cms/internal/app"
	"github.com/jaakkos/tourism-cms/internal/domain"
)

type adminContextKey struct{}

// ContextWithAdmin marks ctx as carrying an admin identity that the
// transport already verified, e.g. the subject of a bearer token on /mcp.
func ContextWithAdmin(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, adminContextKey{}, email)
}

type binding struct {
	email string
	epoch uint64
}

// Gate decides per tool call whether the caller is the logged-in admin.
// The store session alone is not enough: the caller must either present a
// verified identity in its context or be the MCP session that ran login.
// A logout or a later login ends every earlier binding.
type Gate struct {
	store *app.ContentStore

	mu       sync.Mutex
	sessions map[string]binding // MCP session id -> login
}

// NewGate creates a gate over store.
func NewGate(store *app.ContentStore) *Gate {
	return &Gate{store: store, sessions: make(map[string]binding)}
}

// Forget drops the login bound to an MCP session.
func (g *Gate) Forget(sessionID string) {
	g.mu.Lock()
	delete(g.sessions, sessionID)
	g.mu.Unlock()
}

func (g *Gate) bind(ctx context.Context, email string) bool {
	cs := server.ClientSessionFromContext(ctx)
	if cs == nil {
		return false
	}
	g.mu.Lock()
	g.sessions[cs.SessionID()] = binding{email: email, epoch: g.store.SessionEpoch()}
	g.mu.Unlock()
	return true
}

// admin returns the caller's admin email when the caller may act as admin.
func (g *Gate) admin(ctx context.Context) (string, bool) {
	sess := g.store.Session()
	if sess == nil || !sess.IsAuthenticated {
		return "", false
	}
	if email, ok := ctx.Value(adminContextKey{}).(string); ok && email == sess.Email {
		return email, true
	}
	cs := server.ClientSessionFromContext(ctx)
	if cs == nil {
		return "", false
	}
	g.mu.Lock()
	b, ok := g.sessions[cs.SessionID()]
	g.mu.Unlock()
	if !ok || b.email != sess.Email || b.epoch != g.store.SessionEpoch() {
		return "", false
	}
	return b.email, true
}

// require returns an error result unless the caller may act as admin.
func (g *Gate) require(ctx context.Context) *mcp.CallToolResult {
	if _, ok := g.admin(ctx); ok {
		return nil
	}
	return mcp.NewToolResultError(fmt.Sprintf("%v: log in with the login tool first", domain.ErrUnauthenticated))
}
