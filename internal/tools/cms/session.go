package cms

import (
	"context"
	"errors"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jaakkos/tourism-cms/internal/app"
)

func registerLogin(s *server.MCPServer, store *app.ContentStore, gate *Gate, logger *log.Logger) {
	s.AddTool(
		mcp.NewTool("login",
			mcp.WithDescription("Log in as the site administrator. Required before any tool that changes content."),
			mcp.WithString("email", mcp.Required(), mcp.Description("Admin email")),
			mcp.WithString("password", mcp.Required(), mcp.Description("Admin password")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := req.GetArguments()
			email, err := requireString(args, "email")
			if err != nil {
				return nil, err
			}
			password, err := requireString(args, "password")
			if err != nil {
				return nil, err
			}
			if server.ClientSessionFromContext(ctx) == nil {
				return mcp.NewToolResultError("login needs an MCP client session"), nil
			}
			ok, err := store.Login(email, password)
			if err != nil && !errors.Is(err, app.ErrPersist) {
				return storeError(err), nil
			}
			if !ok {
				logger.Printf("MCP login rejected for %s", email)
				return mcp.NewToolResultError("invalid email or password"), nil
			}
			gate.bind(ctx, email)
			logger.Printf("MCP login: %s", email)
			return mcp.NewToolResultText("Logged in as " + email), nil
		},
	)
}

func registerLogout(s *server.MCPServer, store *app.ContentStore, gate *Gate, logger *log.Logger) {
	s.AddTool(
		mcp.NewTool("logout",
			mcp.WithDescription("End the admin session. Outstanding API tokens and other MCP logins stop working. Requires login."),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			if denied := gate.require(ctx); denied != nil {
				return denied, nil
			}
			if cs := server.ClientSessionFromContext(ctx); cs != nil {
				gate.Forget(cs.SessionID())
			}
			if err := store.Logout(); err != nil {
				return storeError(err), nil
			}
			logger.Println("MCP logout")
			return mcp.NewToolResultText("Logged out"), nil
		},
	)
}

type sessionStatus struct {
	Authenticated bool             `json:"authenticated"` // this caller may use the admin tools
	AdminActive   bool             `json:"adminActive"`   // some admin is logged in
	Email         string           `json:"email,omitempty"`
	Dirty         bool             `json:"dirty"`
	Source        app.Source       `json:"source"`
	Stats         app.ContentStats `json:"stats"`
}

func registerSessionStatus(s *server.MCPServer, store *app.ContentStore, gate *Gate) {
	s.AddTool(
		mcp.NewTool("session_status",
			mcp.WithDescription("Show whether this client is logged in as admin, plus content counts and whether unsaved changes exist."),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			st := sessionStatus{
				Dirty:  store.Dirty(),
				Source: store.Source(),
				Stats:  store.Stats(),
			}
			st.AdminActive = store.Authenticated()
			if email, ok := gate.admin(ctx); ok {
				st.Authenticated = true
				st.Email = email
			}
			return jsonResult(st)
		},
	)
}
